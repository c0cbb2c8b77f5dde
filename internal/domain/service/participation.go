package service

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type EventParticipantStorage interface {
	GetOrCreate(ctx context.Context, p *entity.EventParticipant) (*entity.EventParticipant, error)
	Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error)
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	Delete(ctx context.Context, eventID, userID string) error
	GetByEventID(ctx context.Context, eventID string) ([]entity.EventParticipant, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}

type EventReserveStorage interface {
	Upsert(ctx context.Context, eventID, userID string, joinedAt time.Time) (*entity.EventReserve, error)
	Get(ctx context.Context, eventID, userID string) (*entity.EventReserve, error)
	Delete(ctx context.Context, eventID, userID string) error
	GetByEventID(ctx context.Context, eventID string) ([]entity.EventReserve, error)
	CountEarlier(ctx context.Context, eventID string, joinedAt time.Time) (int64, error)
}

type participationEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetTicket(ctx context.Context, id string) (*entity.Ticket, error)
}

type ParticipationService struct {
	logger *types.Logger

	participants EventParticipantStorage
	reserves     EventReserveStorage
	events       participationEventStorage
}

func NewParticipationService(
	logger *types.Logger,
	participants EventParticipantStorage,
	reserves EventReserveStorage,
	events participationEventStorage,
) *ParticipationService {
	return &ParticipationService{
		logger: logger,

		participants: participants,
		reserves:     reserves,
		events:       events,
	}
}

// Register signs the user up for the event behind the ticket, rejecting
// duplicates and sold-out events.
func (s *ParticipationService) Register(ctx context.Context, userID, ticketID string) (*entity.EventParticipant, error) {
	ticket, err := s.events.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.Get(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if event.IsOver(0) {
		return nil, errorz.EventOver
	}

	exists, err := s.participants.Exists(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorz.AlreadyParticipant
	}

	soldOut, err := s.IsSoldOut(ctx, event)
	if err != nil {
		return nil, err
	}
	if soldOut {
		return nil, errorz.SoldOut
	}

	return s.admit(ctx, userID, ticket)
}

// Grant admits the user through the ticket without capacity or duplicate
// checks. Order fulfillment and volunteer shift booking both land here, so
// replays must stay idempotent.
func (s *ParticipationService) Grant(ctx context.Context, userID string, ticket *entity.Ticket) error {
	_, err := s.admit(ctx, userID, ticket)
	return err
}

func (s *ParticipationService) Unregister(ctx context.Context, eventID, userID string) error {
	if _, err := s.participants.Get(ctx, eventID, userID); err != nil {
		return err
	}
	return s.participants.Delete(ctx, eventID, userID)
}

// AddReserve puts the user on the event's waiting list. Joining again keeps
// the original spot.
func (s *ParticipationService) AddReserve(ctx context.Context, eventID, userID string) (*entity.EventReserve, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsOver(0) {
		return nil, errorz.EventOver
	}

	exists, err := s.participants.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorz.AlreadyParticipant
	}
	return s.reserves.Upsert(ctx, eventID, userID, time.Now())
}

// RemoveReserve takes the user off the waiting list. Removing an absent
// entry is a no-op.
func (s *ParticipationService) RemoveReserve(ctx context.Context, eventID, userID string) error {
	return s.reserves.Delete(ctx, eventID, userID)
}

// ReservePosition returns the user's one-based place in the waiting list.
func (s *ParticipationService) ReservePosition(ctx context.Context, eventID, userID string) (int, error) {
	r, err := s.reserves.Get(ctx, eventID, userID)
	if err != nil {
		return 0, err
	}
	earlier, err := s.reserves.CountEarlier(ctx, eventID, r.JoinedAt)
	if err != nil {
		return 0, err
	}
	return int(earlier) + 1, nil
}

// IsSoldOut recomputes capacity from the live participant count, so freed
// spots open up again immediately.
func (s *ParticipationService) IsSoldOut(ctx context.Context, event *entity.Event) (bool, error) {
	if event.MaxParticipants <= 0 {
		return false, nil
	}
	count, err := s.participants.CountByEventID(ctx, event.ID)
	if err != nil {
		return false, err
	}
	return count >= int64(event.MaxParticipants), nil
}

func (s *ParticipationService) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return s.participants.Exists(ctx, eventID, userID)
}

func (s *ParticipationService) ParticipantCount(ctx context.Context, eventID string) (int64, error) {
	return s.participants.CountByEventID(ctx, eventID)
}

func (s *ParticipationService) Participants(ctx context.Context, eventID string) ([]entity.EventParticipant, error) {
	return s.participants.GetByEventID(ctx, eventID)
}

func (s *ParticipationService) Reserves(ctx context.Context, eventID string) ([]entity.EventReserve, error) {
	return s.reserves.GetByEventID(ctx, eventID)
}

func (s *ParticipationService) admit(ctx context.Context, userID string, ticket *entity.Ticket) (*entity.EventParticipant, error) {
	p, err := s.participants.GetOrCreate(ctx, &entity.EventParticipant{
		TicketID: ticket.ID,
		EventID:  ticket.EventID,
		UserID:   userID,
	})
	if err != nil {
		return nil, err
	}
	// A participant no longer waits in line.
	if err = s.reserves.Delete(ctx, ticket.EventID, userID); err != nil {
		return nil, err
	}
	return p, nil
}
