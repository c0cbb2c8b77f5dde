package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
	"github.com/nordvik-dev/medlemshub/pkg/payorder"
)

type paymentOrderStorage interface {
	Get(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) (*entity.Order, error)
}

type orderProgressor interface {
	Progress(ctx context.Context, orderID string, target entity.OrderStatus) error
}

type paymentEventStorage interface {
	Create(ctx context.Context, event *entity.PaymentEvent) (*entity.PaymentEvent, error)
	GetByOrderID(ctx context.Context, orderID string) ([]entity.PaymentEvent, error)
}

type providerClient interface {
	Create(ctx context.Context, req payorder.Request) (*payorder.CreateResult, error)
	GetStatus(ctx context.Context, paymentOrderID string) (string, error)
	PayeeID() string
}

type paymentStateCache interface {
	GetState(ctx context.Context, orderID string) (string, error)
	SetState(ctx context.Context, orderID, state string, ttl time.Duration) error
}

type PaymentOptions struct {
	BaseURL    string // public URL the provider redirects and calls back to
	Currency   string
	VATPercent int64 // VAT rate included in product prices
	CacheTTL   time.Duration
	Tokenize   bool // request a reusable token for a later capture
}

type PaymentService struct {
	logger *types.Logger

	orders paymentOrderStorage
	engine orderProgressor
	events paymentEventStorage
	cache  paymentStateCache
	client providerClient
	opts   PaymentOptions
}

func NewPaymentService(
	logger *types.Logger,
	orders paymentOrderStorage,
	engine orderProgressor,
	events paymentEventStorage,
	cache paymentStateCache,
	client providerClient,
	opts PaymentOptions,
) *PaymentService {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 30 * time.Second
	}
	return &PaymentService{
		logger: logger,

		orders: orders,
		engine: engine,
		events: events,
		cache:  cache,
		client: client,
		opts:   opts,
	}
}

// MapProviderState translates a provider payment state into an order status.
// Unknown and in-flight states ("Initialized", "Pending") map to nothing.
func MapProviderState(state string) (entity.OrderStatus, bool) {
	switch state {
	case "Paid", "Completed":
		return entity.OrderStatusPaid, true
	case "Failed", "Cancelled", "Aborted":
		return entity.OrderStatusCancelled, true
	default:
		return "", false
	}
}

// PayeeReference derives the provider-side reference for one payment attempt.
// The provider requires it to be alphanumeric and at most 30 characters, and
// rejects reuse, so the order id is combined with the attempt time.
func PayeeReference(orderID string, at time.Time) string {
	base := strings.ReplaceAll(orderID, "-", "")
	if len(base) > 20 {
		base = base[:20]
	}
	ref := base + strconv.FormatInt(at.UnixMilli(), 36)
	if len(ref) > 30 {
		ref = ref[:30]
	}
	return ref
}

// InitiatePayment registers the order with the payment provider and returns
// the checkout URL the customer should be redirected to. The provider's
// payment order id and the payee reference are stored on the order for
// callbacks, polling and later captures.
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID string) (string, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != entity.OrderStatusPending {
		return "", errorz.InvalidTransition
	}

	ref := PayeeReference(order.ID, time.Now())
	result, err := s.client.Create(ctx, payorder.Request{
		Operation:              "Purchase",
		Currency:               s.opts.Currency,
		Amount:                 order.TotalAmount,
		VatAmount:              includedVAT(order.TotalAmount, s.opts.VATPercent),
		Description:            fmt.Sprintf("Order %s", order.ID),
		GenerateRecurrenceToken: s.opts.Tokenize,
		URLs: payorder.URLs{
			CompleteURL: fmt.Sprintf("%s/orders/%s/complete", s.opts.BaseURL, order.ID),
			CancelURL:   fmt.Sprintf("%s/orders/%s/cancel", s.opts.BaseURL, order.ID),
			CallbackURL: fmt.Sprintf("%s/api/v1/payments/callback?orderReference=%s", s.opts.BaseURL, order.ID),
		},
		PayeeInfo: payorder.PayeeInfo{
			PayeeID:        s.client.PayeeID(),
			PayeeReference: ref,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errorz.PaymentRequest, err)
	}

	order.PaymentOrderID = result.ID
	order.PayeeReference = ref
	order.Tokenized = s.opts.Tokenize
	if _, err = s.orders.Update(ctx, order); err != nil {
		return "", err
	}

	s.logger.Infof("payment initiated for order %s, provider id %s", order.ID, result.ID)
	return result.RedirectURL, nil
}

// HandleCallback records the provider notification and applies its state to
// the order. Callbacks arrive at-least-once and out of order; stale and
// duplicate ones are recorded but change nothing.
func (s *PaymentService) HandleCallback(ctx context.Context, callback dto.PaymentCallback) error {
	order, err := s.orders.Get(ctx, callback.OrderReference)
	if err != nil {
		return err
	}

	state := callback.Transaction.State
	if state == "" && callback.PaymentOrder.ID != "" {
		// Thin callback, the provider expects us to fetch the state ourselves.
		state, err = s.client.GetStatus(ctx, callback.PaymentOrder.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", errorz.PaymentRequest, err)
		}
	}

	if _, err = s.events.Create(ctx, &entity.PaymentEvent{
		OrderID: order.ID,
		State:   state,
		Payload: callbackPayload(callback),
	}); err != nil {
		return err
	}

	return s.apply(ctx, order, state)
}

// CheckStatus polls the provider for the order's payment state, applying it
// the same way a callback would, and returns the resulting order status.
// Responses are cached briefly so a redirect-page poll loop does not hammer
// the provider.
func (s *PaymentService) CheckStatus(ctx context.Context, orderID string) (entity.OrderStatus, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.PaymentOrderID == "" {
		return "", errorz.PaymentNotInitiated
	}
	if order.Status.Terminal() || order.Status.Rank() >= entity.OrderStatusPaid.Rank() {
		return order.Status, nil
	}

	state, err := s.cache.GetState(ctx, orderID)
	if err != nil {
		s.logger.Warnf("payment state cache read failed for order %s: %v", orderID, err)
		state = ""
	}
	if state == "" {
		state, err = s.client.GetStatus(ctx, order.PaymentOrderID)
		if err != nil {
			return "", fmt.Errorf("%w: %v", errorz.PaymentRequest, err)
		}
		if cacheErr := s.cache.SetState(ctx, orderID, state, s.opts.CacheTTL); cacheErr != nil {
			s.logger.Warnf("payment state cache write failed for order %s: %v", orderID, cacheErr)
		}
	}

	if err = s.apply(ctx, order, state); err != nil {
		return "", err
	}

	updated, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	return updated.Status, nil
}

// History returns the recorded provider notifications for an order.
func (s *PaymentService) History(ctx context.Context, orderID string) ([]entity.PaymentEvent, error) {
	return s.events.GetByOrderID(ctx, orderID)
}

func (s *PaymentService) apply(ctx context.Context, order *entity.Order, state string) error {
	target, ok := MapProviderState(state)
	if !ok {
		return nil
	}
	if order.Status.Terminal() {
		return nil
	}
	if target.Rank() >= 0 && target.Rank() <= order.Status.Rank() {
		// Stale or replayed signal.
		return nil
	}
	return s.engine.Progress(ctx, order.ID, target)
}

func includedVAT(amount, percent int64) int64 {
	if percent <= 0 {
		return 0
	}
	return amount * percent / (100 + percent)
}

func callbackPayload(callback dto.PaymentCallback) datatypes.JSONMap {
	raw, err := json.Marshal(callback)
	if err != nil {
		return nil
	}
	var payload datatypes.JSONMap
	if err = json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}
