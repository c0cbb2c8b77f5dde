package postgres

import (
	"context"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type SkillBadgeStorage struct {
	db *gorm.DB
}

func NewSkillBadgeStorage(db *gorm.DB) *SkillBadgeStorage {
	return &SkillBadgeStorage{
		db: db,
	}
}

func (s *SkillBadgeStorage) Create(ctx context.Context, badge *entity.SkillBadge) (*entity.SkillBadge, error) {
	err := dbFrom(ctx, s.db).Create(&badge).Error
	return badge, err
}

func (s *SkillBadgeStorage) GetAll(ctx context.Context) ([]entity.SkillBadge, error) {
	var badges []entity.SkillBadge
	err := dbFrom(ctx, s.db).Order("name").Find(&badges).Error
	return badges, err
}

// GrantToUser attaches a badge to a user; re-granting is a no-op.
func (s *SkillBadgeStorage) GrantToUser(ctx context.Context, userID, badgeID string) error {
	user := entity.User{ID: userID}
	return dbFrom(ctx, s.db).Model(&user).Association("SkillBadges").Append(&entity.SkillBadge{ID: badgeID})
}

func (s *SkillBadgeStorage) RevokeFromUser(ctx context.Context, userID, badgeID string) error {
	user := entity.User{ID: userID}
	return dbFrom(ctx, s.db).Model(&user).Association("SkillBadges").Delete(&entity.SkillBadge{ID: badgeID})
}
