package service

import (
	"bytes"
	"context"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type notifySMTPClient interface {
	SendOrderConfirmation(to string, orderID string, totalAmount int64, pass *bytes.Buffer) error
	SendMembershipReminder(to string, expiresAt time.Time) error
}

type notifyUserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

// NotifyService turns domain moments into outbound mail.
type NotifyService struct {
	logger *types.Logger

	smtp   notifySMTPClient
	users  notifyUserStorage
	passes *PassService
}

func NewNotifyService(logger *types.Logger, smtp notifySMTPClient, users notifyUserStorage, passes *PassService) *NotifyService {
	return &NotifyService{
		logger: logger,

		smtp:   smtp,
		users:  users,
		passes: passes,
	}
}

// SendOrderConfirmation mails the receipt, attaching an entry pass when the
// order bought a ticket. Mail trouble is logged and swallowed so a flaky
// SMTP server cannot fail order completion.
func (s *NotifyService) SendOrderConfirmation(ctx context.Context, order *entity.Order) {
	user, err := s.users.Get(ctx, order.UserID)
	if err != nil {
		s.logger.Errorf("failed to load user %s for order confirmation: %v", order.UserID, err)
		return
	}

	var pass *bytes.Buffer
	for _, item := range order.Items {
		if item.Product.Ticket == nil {
			continue
		}
		data, err := s.passes.Generate(user.ID, item.Product.Ticket)
		if err != nil {
			s.logger.Errorf("failed to render pass for order %s: %v", order.ID, err)
			break
		}
		pass = bytes.NewBuffer(data)
		break
	}

	if err = s.smtp.SendOrderConfirmation(user.Email, order.ID, order.TotalAmount, pass); err != nil {
		s.logger.Errorf("failed to send confirmation for order %s: %v", order.ID, err)
	}
}

// SendMembershipReminder mails the expiry warning.
func (s *NotifyService) SendMembershipReminder(ctx context.Context, user *entity.User, expiresAt time.Time) error {
	return s.smtp.SendMembershipReminder(user.Email, expiresAt)
}
