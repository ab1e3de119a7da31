package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "authentication", err: Authentication("no token"), want: http.StatusUnauthorized},
		{name: "permission", err: Permission("admin only"), want: http.StatusForbidden},
		{name: "validation", err: Validation("bad input"), want: http.StatusBadRequest},
		{name: "conflict", err: Conflict("already exists"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "dependency", err: Dependency("querying", errors.New("boom")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessageOfHidesCause(t *testing.T) {
	err := Dependency("looking up registration", errors.New("dial tcp: connection refused"))

	assert.Equal(t, "looking up registration", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("missing"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Dependency("storing attempt", cause)

	assert.True(t, errors.Is(err, cause))
}
