package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func TestEventService_ApprovalFlow(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	host := e.createUser(t)

	event, err := e.eventService.Create(ctx, &entity.Event{
		Title:     "Summer party",
		StartTime: time.Now().Add(14 * 24 * time.Hour),
		EndTime:   time.Now().Add(14*24*time.Hour + 6*time.Hour),
		HostID:    host.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusDraft, event.Status)

	// A draft cannot skip straight to published.
	_, err = e.eventService.Approve(ctx, event.ID)
	assert.ErrorIs(t, err, errorz.InvalidStatus)

	event, err = e.eventService.Submit(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusPendingApproval, event.Status)

	event, err = e.eventService.Approve(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusPublished, event.Status)

	event, err = e.eventService.Cancel(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusCancelled, event.Status)
}

func TestEventService_GetUpcoming(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	soon := e.createEvent(t, 0, time.Now().Add(2*24*time.Hour), time.Now().Add(2*24*time.Hour+time.Hour))
	e.createEvent(t, 0, time.Now().Add(60*24*time.Hour), time.Now().Add(60*24*time.Hour+time.Hour))

	draftHost := e.createUser(t)
	_, err := e.eventService.Create(ctx, &entity.Event{
		Title:     "Unpublished",
		StartTime: time.Now().Add(24 * time.Hour),
		HostID:    draftHost.ID,
	})
	require.NoError(t, err)

	upcoming, err := e.eventService.GetUpcoming(ctx, time.Now().Add(7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, soon.ID, upcoming[0].ID)
}
