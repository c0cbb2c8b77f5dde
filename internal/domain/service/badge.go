package service

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type SkillBadgeStorage interface {
	Create(ctx context.Context, badge *entity.SkillBadge) (*entity.SkillBadge, error)
	GetAll(ctx context.Context) ([]entity.SkillBadge, error)
	GrantToUser(ctx context.Context, userID, badgeID string) error
	RevokeFromUser(ctx context.Context, userID, badgeID string) error
}

// BadgeService manages the skill badges that gate shift booking.
type BadgeService struct {
	logger *types.Logger

	storage SkillBadgeStorage
}

func NewBadgeService(logger *types.Logger, storage SkillBadgeStorage) *BadgeService {
	return &BadgeService{
		logger: logger,

		storage: storage,
	}
}

func (s *BadgeService) Create(ctx context.Context, badge *entity.SkillBadge) (*entity.SkillBadge, error) {
	return s.storage.Create(ctx, badge)
}

func (s *BadgeService) GetAll(ctx context.Context) ([]entity.SkillBadge, error) {
	return s.storage.GetAll(ctx)
}

func (s *BadgeService) Grant(ctx context.Context, userID, badgeID string) error {
	return s.storage.GrantToUser(ctx, userID, badgeID)
}

func (s *BadgeService) Revoke(ctx context.Context, userID, badgeID string) error {
	return s.storage.RevokeFromUser(ctx, userID, badgeID)
}
