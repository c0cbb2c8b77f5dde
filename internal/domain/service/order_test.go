package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
)

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	shirt := e.createProduct(t, 25000, intPtr(5))
	sticker := e.createProduct(t, 1500, nil)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{
		{ProductID: shirt.ID, Quantity: 2},
		{ProductID: sticker.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*25000+3*1500), order.TotalAmount)
	require.Len(t, order.Items, 2)

	// The finite stock shrank, the unlimited one is untouched.
	shirt, err = e.products.Get(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, *shirt.Stock)
	sticker, err = e.products.Get(ctx, sticker.ID)
	require.NoError(t, err)
	assert.Nil(t, sticker.Stock)
}

func TestOrderService_Create_FreezesPrices(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	product := e.createProduct(t, 10000, nil)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	product.Price = 99999
	_, err = e.products.Update(ctx, product)
	require.NoError(t, err)

	reloaded, err := e.orderService.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), reloaded.TotalAmount)
	assert.Equal(t, int64(10000), reloaded.Items[0].UnitPrice)
}

func TestOrderService_Create_Rejections(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	scarce := e.createProduct(t, 5000, intPtr(1))

	_, err := e.orderService.Create(ctx, user.ID, nil)
	assert.ErrorIs(t, err, errorz.EmptyOrder)

	_, err = e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: scarce.ID, Quantity: 2}})
	assert.ErrorIs(t, err, errorz.OutOfStock)

	_, err = e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: "00000000-0000-0000-0000-000000000000", Quantity: 1}})
	assert.ErrorIs(t, err, errorz.NotFound)

	// The failed order left the stock alone.
	scarce, err = e.products.Get(ctx, scarce.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *scarce.Stock)
}

func TestOrderService_Progress_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		wantErr error
		want    entity.OrderStatus
	}{
		{name: "pending to paid", from: entity.OrderStatusPending, to: entity.OrderStatusPaid, want: entity.OrderStatusPaid},
		{name: "same status is a no-op", from: entity.OrderStatusPaid, to: entity.OrderStatusPaid, want: entity.OrderStatusPaid},
		{name: "backward is rejected", from: entity.OrderStatusShipped, to: entity.OrderStatusPaid, wantErr: errorz.InvalidTransition, want: entity.OrderStatusShipped},
		{name: "completed cannot move back", from: entity.OrderStatusCompleted, to: entity.OrderStatusPending, wantErr: errorz.InvalidTransition, want: entity.OrderStatusCompleted},
		{name: "cancel absorbs from pending", from: entity.OrderStatusPending, to: entity.OrderStatusCancelled, want: entity.OrderStatusCancelled},
		{name: "cancel absorbs from paid", from: entity.OrderStatusPaid, to: entity.OrderStatusCancelled, want: entity.OrderStatusCancelled},
		{name: "error absorbs from shipped", from: entity.OrderStatusShipped, to: entity.OrderStatusError, want: entity.OrderStatusError},
		{name: "no way out of cancelled", from: entity.OrderStatusCancelled, to: entity.OrderStatusPaid, wantErr: errorz.InvalidTransition, want: entity.OrderStatusCancelled},
		{name: "no way out of error", from: entity.OrderStatusError, to: entity.OrderStatusCompleted, wantErr: errorz.InvalidTransition, want: entity.OrderStatusError},
		{name: "unknown target", from: entity.OrderStatusPending, to: entity.OrderStatus("mystery"), wantErr: errorz.InvalidStatus, want: entity.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			e := newTestEnv(t)
			user := e.createUser(t)
			product := e.createProduct(t, 1000, nil)

			order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}})
			require.NoError(t, err)
			require.NoError(t, e.orders.UpdateStatus(ctx, order.ID, tt.from))

			err = e.orderService.Progress(ctx, order.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			reloaded, err := e.orderService.Get(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reloaded.Status)
		})
	}
}

func TestOrderService_Progress_FastForward(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	membership := e.createMembershipProduct(t, 30000, 365)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: membership.ID, Quantity: 1}})
	require.NoError(t, err)

	// Straight from pending to completed fires paid, shipped and completed
	// effects in order.
	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusCompleted))

	reloaded, err := e.orderService.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.Items[0].FulfilledAt)

	m, err := e.memberships.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), m.ExpiresAt, time.Minute)

	assert.Equal(t, []string{order.ID}, e.notifier.confirmed)
	assert.Empty(t, e.capturer.calls, "untokenized orders have nothing to capture")
}

func TestOrderService_Progress_GrantsTicket(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	event := e.createEvent(t, 0, time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))
	ticket := e.createTicketProduct(t, event.ID, entity.TicketKindStandard, 15000)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: ticket.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusPaid))
	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusShipped))

	isParticipant, err := e.participationService.IsParticipant(ctx, event.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, isParticipant)

	// Shipping again is a no-op and leaves the roster alone.
	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusShipped))
	count, err := e.participationService.ParticipantCount(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderService_Progress_SkipsFulfilledItems(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	membership := e.createMembershipProduct(t, 30000, 30)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: membership.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, e.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusPaid))

	// Pretend a previous run already applied this item.
	require.NoError(t, e.orders.MarkItemFulfilled(ctx, order.Items[0].ID, time.Now()))

	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusShipped))

	m, err := e.memberships.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, m, "a fulfilled item must not apply its effect again")
}

func TestOrderService_Progress_CapturesTokenizedOrders(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	product := e.createProduct(t, 42000, nil)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	order.Tokenized = true
	order.PaymentOrderID = "/psp/paymentorders/abc"
	_, err = e.orders.Update(ctx, order)
	require.NoError(t, err)
	require.NoError(t, e.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusShipped))

	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusCompleted))

	require.Len(t, e.capturer.calls, 1)
	assert.Equal(t, "/psp/paymentorders/abc", e.capturer.calls[0].paymentOrderID)
	assert.Equal(t, int64(42000), e.capturer.calls[0].amount)
}

func TestOrderService_Progress_CaptureFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.capturer.err = errors.New("provider is down")
	user := e.createUser(t)
	membership := e.createMembershipProduct(t, 30000, 30)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: membership.ID, Quantity: 1}})
	require.NoError(t, err)
	order.Tokenized = true
	order.PaymentOrderID = "/psp/paymentorders/abc"
	_, err = e.orders.Update(ctx, order)
	require.NoError(t, err)
	require.NoError(t, e.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusPaid))

	err = e.orderService.Progress(ctx, order.ID, entity.OrderStatusCompleted)
	require.ErrorIs(t, err, errorz.PaymentRequest)

	// The whole fast-forward rolled back, including the shipped step.
	reloaded, err := e.orderService.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, reloaded.Status)
	assert.Nil(t, reloaded.Items[0].FulfilledAt)
	m, err := e.memberships.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestOrderService_Progress_RestockOnCancel(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	product := e.createProduct(t, 5000, intPtr(5))

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusCancelled))

	product, err = e.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, *product.Stock, "cancelling an unpaid order returns its stock")
}

func TestOrderService_Progress_NoRestockAfterPayment(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	product := e.createProduct(t, 5000, intPtr(5))

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusPaid))

	require.NoError(t, e.orderService.Progress(ctx, order.ID, entity.OrderStatusCancelled))

	product, err = e.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, *product.Stock)
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.createUser(t)
	product := e.createProduct(t, 5000, nil)

	order, err := e.orderService.Create(ctx, user.ID, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, e.orderService.Delete(ctx, order.ID))
	_, err = e.orderService.Get(ctx, order.ID)
	assert.ErrorIs(t, err, errorz.NotFound)
}
