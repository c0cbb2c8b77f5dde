package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func TestMembershipService_Renew_FirstMembership(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)

	require.NoError(t, e.membershipService.Renew(ctx, user.ID, 30))

	m, err := e.membershipService.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), m.ExpiresAt, time.Minute)
}

func TestMembershipService_Renew_ExtendsActive(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	expiry := time.Now().Add(100 * 24 * time.Hour)
	_, err := e.memberships.Save(ctx, &entity.UserMembership{UserID: user.ID, ExpiresAt: expiry})
	require.NoError(t, err)

	require.NoError(t, e.membershipService.Renew(ctx, user.ID, 30))

	m, err := e.membershipService.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, expiry.Add(30*24*time.Hour), m.ExpiresAt, time.Second, "renewing early must not lose remaining time")
}

func TestMembershipService_Renew_LapsedStartsFromNow(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	reminded := time.Now().Add(-40 * 24 * time.Hour)
	_, err := e.memberships.Save(ctx, &entity.UserMembership{
		UserID:         user.ID,
		ExpiresAt:      time.Now().Add(-30 * 24 * time.Hour),
		ReminderSentAt: &reminded,
	})
	require.NoError(t, err)

	require.NoError(t, e.membershipService.Renew(ctx, user.ID, 30))

	m, err := e.membershipService.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), m.ExpiresAt, time.Minute)
	assert.Nil(t, m.ReminderSentAt, "a renewed period gets its own reminder")
}

func TestMembershipService_Sweep_PurgesStalePending(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	stale, err := e.users.Create(ctx, &entity.User{FirstName: "Stale", Email: "stale@example.com", Status: entity.UserStatusPending})
	require.NoError(t, err)
	fresh, err := e.users.Create(ctx, &entity.User{FirstName: "Fresh", Email: "fresh@example.com", Status: entity.UserStatusPending})
	require.NoError(t, err)
	member, err := e.users.Create(ctx, &entity.User{FirstName: "Member", Email: "member@example.com", Status: entity.UserStatusPending})
	require.NoError(t, err)
	require.NoError(t, e.membershipService.Renew(ctx, member.ID, 365))

	// Backdate everyone but the fresh applicant past the purge window.
	past := time.Now().Add(-60 * 24 * time.Hour)
	for _, id := range []string{stale.ID, member.ID} {
		require.NoError(t, e.db.Model(&entity.User{}).Where("id = ?", id).Update("created_at", past).Error)
	}

	report := e.membershipService.Sweep(ctx)
	assert.Equal(t, 1, report.PurgedUsers)

	_, err = e.users.Get(ctx, stale.ID)
	assert.Error(t, err)
	_, err = e.users.Get(ctx, fresh.ID)
	assert.NoError(t, err)
	// Holding a membership shields a pending account from the purge.
	_, err = e.users.Get(ctx, member.ID)
	assert.NoError(t, err)
}

func TestMembershipService_Sweep_SendsReminders(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	expiring := e.createUser(t)
	_, err := e.memberships.Save(ctx, &entity.UserMembership{UserID: expiring.ID, ExpiresAt: time.Now().Add(5 * 24 * time.Hour)})
	require.NoError(t, err)

	comfortable := e.createUser(t)
	_, err = e.memberships.Save(ctx, &entity.UserMembership{UserID: comfortable.ID, ExpiresAt: time.Now().Add(300 * 24 * time.Hour)})
	require.NoError(t, err)

	report := e.membershipService.Sweep(ctx)
	assert.Equal(t, 1, report.RemindersSent)
	assert.Equal(t, []string{expiring.ID}, e.reminder.reminded)

	m, err := e.memberships.GetByUserID(ctx, expiring.ID)
	require.NoError(t, err)
	assert.NotNil(t, m.ReminderSentAt)

	// The next sweep has nothing left to remind.
	report = e.membershipService.Sweep(ctx)
	assert.Zero(t, report.RemindersSent)
}

func TestMembershipService_Sweep_SkipsFailedReminders(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.reminder.err = assert.AnError

	expiring := e.createUser(t)
	_, err := e.memberships.Save(ctx, &entity.UserMembership{UserID: expiring.ID, ExpiresAt: time.Now().Add(5 * 24 * time.Hour)})
	require.NoError(t, err)

	report := e.membershipService.Sweep(ctx)
	assert.Zero(t, report.RemindersSent)

	// The failed reminder stays unmarked for the next run.
	m, err := e.memberships.GetByUserID(ctx, expiring.ID)
	require.NoError(t, err)
	assert.Nil(t, m.ReminderSentAt)

	e.reminder.err = nil
	report = e.membershipService.Sweep(ctx)
	assert.Equal(t, 1, report.RemindersSent)
}
