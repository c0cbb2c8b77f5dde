package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type txManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderStorage interface {
	Create(ctx context.Context, order *entity.Order) (*entity.Order, error)
	Get(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	MarkItemFulfilled(ctx context.Context, itemID string, at time.Time) error
	Delete(ctx context.Context, id string) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.Order, error)
}

type orderProductStorage interface {
	Get(ctx context.Context, id string) (*entity.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
}

type membershipRenewer interface {
	Renew(ctx context.Context, userID string, days int) error
}

type participationGranter interface {
	Grant(ctx context.Context, userID string, ticket *entity.Ticket) error
}

type fundsCapturer interface {
	Capture(ctx context.Context, paymentOrderID string, amount, vatAmount int64, payeeReference string) error
}

type orderNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *entity.Order)
}

type OrderService struct {
	logger *types.Logger

	tx            txManager
	storage       OrderStorage
	products      orderProductStorage
	memberships   membershipRenewer
	participation participationGranter
	capturer      fundsCapturer
	notifier      orderNotifier
}

func NewOrderService(
	logger *types.Logger,
	tx txManager,
	storage OrderStorage,
	products orderProductStorage,
	memberships membershipRenewer,
	participation participationGranter,
	capturer fundsCapturer,
	notifier orderNotifier,
) *OrderService {
	return &OrderService{
		logger: logger,

		tx:            tx,
		storage:       storage,
		products:      products,
		memberships:   memberships,
		participation: participation,
		capturer:      capturer,
		notifier:      notifier,
	}
}

// Create places a new order. Unit prices are captured from the products at
// this moment and frozen; finite stocks are decremented. The order and its
// items are persisted atomically.
func (s *OrderService) Create(ctx context.Context, userID string, items []dto.OrderItemRequest) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, errorz.EmptyOrder
	}

	var order *entity.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		orderItems := make([]entity.OrderItem, 0, len(items))
		var total int64
		for _, item := range items {
			product, err := s.products.Get(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err = s.products.DecrementStock(ctx, product.ID, item.Quantity); err != nil {
				return err
			}
			total += product.Price * int64(item.Quantity)
			orderItems = append(orderItems, entity.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
		}

		created, err := s.storage.Create(ctx, &entity.Order{
			UserID:      userID,
			Status:      entity.OrderStatusPending,
			TotalAmount: total,
			OrderedAt:   time.Now(),
			Items:       orderItems,
		})
		order = created
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("order %s created for user %s, total %d", order.ID, userID, order.TotalAmount)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	return s.storage.Get(ctx, id)
}

func (s *OrderService) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.Order, error) {
	return s.storage.GetByUserID(ctx, userID, limit, offset)
}

// Progress moves the order towards the target status. Cancelled and error
// absorb from any state. On the linear path only forward moves are allowed;
// a fast-forward fires every intermediate step's side effect in order. The
// status is re-read and re-written inside one transaction, so concurrent
// calls cannot fulfill twice.
func (s *OrderService) Progress(ctx context.Context, orderID string, target entity.OrderStatus) error {
	if target.Rank() < 0 && !target.Terminal() {
		return errorz.InvalidStatus
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.storage.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == target {
			// Replayed signal, nothing to do.
			return nil
		}

		if target.Terminal() {
			if order.Status == entity.OrderStatusPending && target == entity.OrderStatusCancelled {
				if err = s.restock(ctx, order); err != nil {
					return err
				}
			}
			return s.storage.UpdateStatus(ctx, orderID, target)
		}

		if order.Status.Terminal() || target.Rank() < order.Status.Rank() {
			return errorz.InvalidTransition
		}

		for rank := order.Status.Rank() + 1; rank <= target.Rank(); rank++ {
			next := entity.OrderStatusPath[rank]
			switch next {
			case entity.OrderStatusPaid:
				// Funds were captured by the payment bridge before this signal.
			case entity.OrderStatusShipped:
				if err = s.fulfill(ctx, order); err != nil {
					return err
				}
			case entity.OrderStatusCompleted:
				if err = s.captureFinal(ctx, order); err != nil {
					return err
				}
				s.notifier.SendOrderConfirmation(ctx, order)
			}
			if err = s.storage.UpdateStatus(ctx, orderID, next); err != nil {
				return err
			}
			order.Status = next
		}
		return nil
	})
}

// Delete removes the order and its items as one unit. Admin action,
// irreversible.
func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.storage.Delete(ctx, orderID)
	})
}

// fulfill applies every unfulfilled item's specialization effect and marks
// it fulfilled. Failures are collected rather than aborting on the first,
// then returned as one error: the surrounding transaction rolls back and the
// order stays at paid for a clean retry.
func (s *OrderService) fulfill(ctx context.Context, order *entity.Order) error {
	now := time.Now()
	var errs []error
	for i := range order.Items {
		item := &order.Items[i]
		if item.FulfilledAt != nil {
			continue
		}
		if err := s.applyItem(ctx, order.UserID, item); err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", item.ID, err))
			continue
		}
		if err := s.storage.MarkItemFulfilled(ctx, item.ID, now); err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", item.ID, err))
			continue
		}
		item.FulfilledAt = &now
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{errorz.FulfillmentFailed}, errs...)...)
	}
	return nil
}

func (s *OrderService) applyItem(ctx context.Context, userID string, item *entity.OrderItem) error {
	switch {
	case item.Product.Membership != nil:
		return s.memberships.Renew(ctx, userID, item.Product.Membership.DurationDays*item.Quantity)
	case item.Product.Ticket != nil:
		return s.participation.Grant(ctx, userID, item.Product.Ticket)
	}
	// Plain merch has no side effect.
	return nil
}

func (s *OrderService) captureFinal(ctx context.Context, order *entity.Order) error {
	if !order.Tokenized || order.PaymentOrderID == "" {
		return nil
	}
	ref := PayeeReference(order.ID, time.Now())
	if err := s.capturer.Capture(ctx, order.PaymentOrderID, order.TotalAmount, 0, ref); err != nil {
		return fmt.Errorf("%w: capture: %v", errorz.PaymentRequest, err)
	}
	return nil
}

func (s *OrderService) restock(ctx context.Context, order *entity.Order) error {
	for _, item := range order.Items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
