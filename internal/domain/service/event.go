package service

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error)
	GetUpcoming(ctx context.Context, before time.Time) ([]entity.Event, error)
	GetTicket(ctx context.Context, id string) (*entity.Ticket, error)
	GetVolunteerTicket(ctx context.Context, eventID string) (*entity.Ticket, error)
}

type EventService struct {
	logger *types.Logger

	storage EventStorage
}

func NewEventService(logger *types.Logger, storage EventStorage) *EventService {
	return &EventService{
		logger: logger,

		storage: storage,
	}
}

func (s *EventService) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	if event.Status == "" {
		event.Status = entity.EventStatusDraft
	}
	return s.storage.Create(ctx, event)
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.storage.Get(ctx, id)
}

func (s *EventService) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	return s.storage.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *EventService) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	return s.storage.GetWithPagination(ctx, limit, offset, order)
}

func (s *EventService) GetUpcoming(ctx context.Context, before time.Time) ([]entity.Event, error) {
	return s.storage.GetUpcoming(ctx, before)
}

// Submit hands a draft over for approval.
func (s *EventService) Submit(ctx context.Context, id string) (*entity.Event, error) {
	return s.moveStatus(ctx, id, entity.EventStatusDraft, entity.EventStatusPendingApproval)
}

// Approve publishes an event awaiting approval.
func (s *EventService) Approve(ctx context.Context, id string) (*entity.Event, error) {
	return s.moveStatus(ctx, id, entity.EventStatusPendingApproval, entity.EventStatusPublished)
}

// Cancel takes the event off the calendar from any prior state.
func (s *EventService) Cancel(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Status = entity.EventStatusCancelled
	return s.storage.Update(ctx, event)
}

func (s *EventService) moveStatus(ctx context.Context, id string, from, to entity.EventStatus) (*entity.Event, error) {
	event, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != from {
		return nil, errorz.InvalidStatus
	}
	event.Status = to
	return s.storage.Update(ctx, event)
}
