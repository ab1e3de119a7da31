package service

import (
	"testing"
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventCreateReq() dto.EventCreateDTO {
	starts := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	return dto.EventCreateDTO{
		Title:           "Hack Night",
		Venue:           "Hall B",
		StartsAt:        starts,
		EndsAt:          starts.Add(12 * time.Hour),
		RegistrationFee: 0,
		MaxParticipants: 100,
	}
}

func TestEventCreate(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	resp, err := svc.Create(adminIdent, eventCreateReq())
	require.NoError(t, err)
	assert.Equal(t, "Hack Night", resp.Title)
	assert.False(t, resp.IsPublished)
}

func TestEventCreate_RequiresAdmin(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.Create(auth.Identity{UserID: 7}, eventCreateReq())
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

func TestEventCreate_EndBeforeStart(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	req := eventCreateReq()
	req.EndsAt = req.StartsAt.Add(-time.Hour)

	_, err := svc.Create(adminIdent, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestEventUpdate_PartialFields(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	created, err := svc.Create(adminIdent, eventCreateReq())
	require.NoError(t, err)

	venue := "Hall C"
	fee := int64(25000)
	resp, err := svc.Update(adminIdent, created.ID, dto.EventUpdateDTO{Venue: &venue, RegistrationFee: &fee})
	require.NoError(t, err)
	assert.Equal(t, "Hall C", resp.Venue)
	assert.Equal(t, int64(25000), resp.RegistrationFee)
	assert.Equal(t, "Hack Night", resp.Title)
}

func TestEventUpdate_RejectsInvertedSchedule(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	created, err := svc.Create(adminIdent, eventCreateReq())
	require.NoError(t, err)

	bad := created.StartsAt.Add(-time.Hour)
	_, err = svc.Update(adminIdent, created.ID, dto.EventUpdateDTO{EndsAt: &bad})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestEventPublishAndVisibility(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	created, err := svc.Create(adminIdent, eventCreateReq())
	require.NoError(t, err)

	// Unpublished events are invisible to the public read paths.
	_, err = svc.Get(created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	listed, err := svc.ListPublished()
	require.NoError(t, err)
	assert.Empty(t, listed)

	published, err := svc.Publish(adminIdent, created.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	listed, err = svc.ListPublished()
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestEventUpdate_UnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	title := "x"
	_, err := svc.Update(adminIdent, 99, dto.EventUpdateDTO{Title: &title})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
