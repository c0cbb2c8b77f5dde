package postgres

import (
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"gorm.io/gorm"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

func (s *UserStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := dbFrom(ctx, s.db).Create(&user).Error
	return user, err
}

func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, s.db).
		Preload("Membership").
		Preload("SkillBadges").
		Where("id = ?", id).
		First(&user).Error
	return &user, wrapNotFound(err)
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, s.db).Where("email = ?", email).First(&user).Error
	return &user, wrapNotFound(err)
}

func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := dbFrom(ctx, s.db).Omit("Membership", "SkillBadges").Save(&user).Error
	return user, err
}

func (s *UserStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (s *UserStorage) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.User, error) {
	var users []entity.User
	err := dbFrom(ctx, s.db).Order(order).Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

// DeleteStalePending removes unvalidated users created before the cutoff
// that never acquired a membership. Returns how many rows went away.
func (s *UserStorage) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	db := dbFrom(ctx, s.db)
	res := db.
		Where("status = ? AND created_at < ?", entity.UserStatusPending, before).
		Where("id NOT IN (?)", db.Session(&gorm.Session{NewDB: true}).Model(&entity.UserMembership{}).Select("user_id")).
		Delete(&entity.User{})
	return res.RowsAffected, res.Error
}
