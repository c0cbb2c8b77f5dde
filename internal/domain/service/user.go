package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.User, error)
}

type codeStorage interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, code string, expiration time.Duration) error
	Clear(ctx context.Context, userID string)
}

type userSMTPClient interface {
	SendValidationCode(to, code string) error
}

type UserService struct {
	logger *types.Logger

	storage UserStorage
	codes   codeStorage
	smtp    userSMTPClient
}

func NewUserService(logger *types.Logger, storage UserStorage, codes codeStorage, smtp userSMTPClient) *UserService {
	return &UserService{
		logger: logger,

		storage: storage,
		codes:   codes,
		smtp:    smtp,
	}
}

// Create registers a new user as a pending application. The account stays
// pending until the mailed validation code comes back.
func (s *UserService) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.Role == "" {
		user.Role = entity.RoleMember
	}
	user.Status = entity.UserStatusPending

	created, err := s.storage.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if err = s.SendValidationCode(ctx, created.ID); err != nil {
		s.logger.Errorf("failed to send validation code to user %s: %v", created.ID, err)
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.storage.GetByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.storage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.User, error) {
	return s.storage.GetWithPagination(ctx, limit, offset, order)
}

// SendValidationCode mails the user a fresh onboarding code. Codes live for
// a day; requesting a new one replaces the old.
func (s *UserService) SendValidationCode(ctx context.Context, userID string) error {
	user, err := s.storage.Get(ctx, userID)
	if err != nil {
		return err
	}
	code, err := generateRandomCode(4)
	if err != nil {
		return err
	}
	if err = s.codes.Set(ctx, user.ID, code, 24*time.Hour); err != nil {
		return err
	}
	return s.smtp.SendValidationCode(user.Email, code)
}

// Validate checks the mailed code and marks the account validated.
func (s *UserService) Validate(ctx context.Context, userID, code string) (*entity.User, error) {
	stored, err := s.codes.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored != code {
		return nil, errorz.InvalidCode
	}

	user, err := s.storage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Status = entity.UserStatusValidated
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.codes.Clear(ctx, userID)
	return updated, nil
}

func generateRandomCode(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
