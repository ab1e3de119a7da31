package service

import (
	"errors"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"gorm.io/gorm"
)

// mapFindErr turns a repository read failure into the taxonomy: a missing row
// is NotFound with the caller-facing message, anything else is a Dependency
// failure named after the operation (cause stays out of the message).
func mapFindErr(err error, notFoundMsg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Dependency(op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
