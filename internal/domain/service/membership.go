package service

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type MembershipStorage interface {
	GetByUserID(ctx context.Context, userID string) (*entity.UserMembership, error)
	Save(ctx context.Context, m *entity.UserMembership) (*entity.UserMembership, error)
	GetExpiring(ctx context.Context, before time.Time) ([]entity.UserMembership, error)
}

type membershipUserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	DeleteStalePending(ctx context.Context, before time.Time) (int64, error)
}

type membershipNotifier interface {
	SendMembershipReminder(ctx context.Context, user *entity.User, expiresAt time.Time) error
}

type MembershipOptions struct {
	// PurgeAfter is how long an unvalidated application may sit before the
	// sweep removes it.
	PurgeAfter time.Duration
	// RemindBefore is how close to expiry a membership gets its reminder.
	RemindBefore time.Duration
}

type MembershipService struct {
	logger *types.Logger

	storage  MembershipStorage
	users    membershipUserStorage
	notifier membershipNotifier
	opts     MembershipOptions
}

func NewMembershipService(
	logger *types.Logger,
	storage MembershipStorage,
	users membershipUserStorage,
	notifier membershipNotifier,
	opts MembershipOptions,
) *MembershipService {
	if opts.PurgeAfter == 0 {
		opts.PurgeAfter = 30 * 24 * time.Hour
	}
	if opts.RemindBefore == 0 {
		opts.RemindBefore = 14 * 24 * time.Hour
	}
	return &MembershipService{
		logger: logger,

		storage:  storage,
		users:    users,
		notifier: notifier,
		opts:     opts,
	}
}

func (s *MembershipService) GetByUserID(ctx context.Context, userID string) (*entity.UserMembership, error) {
	return s.storage.GetByUserID(ctx, userID)
}

// Renew extends the user's membership by the given number of days. An active
// membership extends from its current expiry, a lapsed or missing one from
// now, so buying early never loses time.
func (s *MembershipService) Renew(ctx context.Context, userID string, days int) error {
	m, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	extension := time.Duration(days) * 24 * time.Hour
	if m == nil {
		m = &entity.UserMembership{UserID: userID, ExpiresAt: now.Add(extension)}
	} else {
		base := m.ExpiresAt
		if base.Before(now) {
			base = now
		}
		m.ExpiresAt = base.Add(extension)
		// The renewed period deserves a reminder of its own.
		m.ReminderSentAt = nil
	}

	_, err = s.storage.Save(ctx, m)
	if err == nil {
		s.logger.Infof("membership for user %s renewed until %s", userID, m.ExpiresAt.Format(time.DateOnly))
	}
	return err
}

// Sweep runs the periodic maintenance pass: purge stale unvalidated
// applications and remind members whose membership is about to expire.
// Individual failures are logged and skipped so one bad row cannot stall
// the rest of the run.
func (s *MembershipService) Sweep(ctx context.Context) dto.SweepReport {
	var report dto.SweepReport

	purged, err := s.users.DeleteStalePending(ctx, time.Now().Add(-s.opts.PurgeAfter))
	if err != nil {
		s.logger.Errorf("failed to purge stale pending users: %v", err)
	} else {
		report.PurgedUsers = int(purged)
	}

	expiring, err := s.storage.GetExpiring(ctx, time.Now().Add(s.opts.RemindBefore))
	if err != nil {
		s.logger.Errorf("failed to list expiring memberships: %v", err)
		return report
	}
	for i := range expiring {
		m := &expiring[i]
		user, err := s.users.Get(ctx, m.UserID)
		if err != nil {
			s.logger.Errorf("failed to load user %s for reminder: %v", m.UserID, err)
			continue
		}
		if err = s.notifier.SendMembershipReminder(ctx, user, m.ExpiresAt); err != nil {
			s.logger.Errorf("failed to remind user %s: %v", m.UserID, err)
			continue
		}
		now := time.Now()
		m.ReminderSentAt = &now
		if _, err = s.storage.Save(ctx, m); err != nil {
			s.logger.Errorf("failed to mark reminder for user %s: %v", m.UserID, err)
			continue
		}
		report.RemindersSent++
	}

	s.logger.Infof("membership sweep done: %d users purged, %d reminders sent", report.PurgedUsers, report.RemindersSent)
	return report
}

// StartSweepScheduler runs Sweep on a fixed interval until the context is
// cancelled.
func (s *MembershipService) StartSweepScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}
