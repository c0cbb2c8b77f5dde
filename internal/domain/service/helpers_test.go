package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nordvik-dev/medlemshub/internal/adapters/database/postgres"
	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
	"github.com/nordvik-dev/medlemshub/pkg/payorder"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(postgres.Migrations...))
	return db
}

type captureCall struct {
	paymentOrderID string
	amount         int64
	payeeReference string
}

type stubCapturer struct {
	calls []captureCall
	err   error
}

func (c *stubCapturer) Capture(_ context.Context, paymentOrderID string, amount, _ int64, payeeReference string) error {
	if c.err != nil {
		return c.err
	}
	c.calls = append(c.calls, captureCall{paymentOrderID: paymentOrderID, amount: amount, payeeReference: payeeReference})
	return nil
}

type stubNotifier struct {
	confirmed []string
}

func (n *stubNotifier) SendOrderConfirmation(_ context.Context, order *entity.Order) {
	n.confirmed = append(n.confirmed, order.ID)
}

type stubReminder struct {
	reminded []string
	err      error
}

func (r *stubReminder) SendMembershipReminder(_ context.Context, user *entity.User, _ time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.reminded = append(r.reminded, user.ID)
	return nil
}

type stubSMTP struct {
	codes         map[string]string // recipient -> code
	confirmations []string          // order ids
}

func (s *stubSMTP) SendValidationCode(to, code string) error {
	if s.codes == nil {
		s.codes = make(map[string]string)
	}
	s.codes[to] = code
	return nil
}

func (s *stubSMTP) SendOrderConfirmation(_ string, orderID string, _ int64, _ *bytes.Buffer) error {
	s.confirmations = append(s.confirmations, orderID)
	return nil
}

func (s *stubSMTP) SendMembershipReminder(string, time.Time) error {
	return nil
}

// stubCodes is an in-memory stand-in for the redis code storage.
type stubCodes struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *stubCodes) Get(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[userID]
	if !ok {
		return "", errorz.InvalidCode
	}
	return code, nil
}

func (s *stubCodes) Set(_ context.Context, userID, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codes == nil {
		s.codes = make(map[string]string)
	}
	s.codes[userID] = code
	return nil
}

func (s *stubCodes) Clear(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, userID)
}

type stubProvider struct {
	payeeID     string
	createdReqs []payorder.Request
	redirectURL string
	state       string
	statusCalls int
	err         error
}

func (p *stubProvider) Create(_ context.Context, req payorder.Request) (*payorder.CreateResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.createdReqs = append(p.createdReqs, req)
	return &payorder.CreateResult{ID: "/psp/paymentorders/" + uuid.NewString(), RedirectURL: p.redirectURL}, nil
}

func (p *stubProvider) GetStatus(context.Context, string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.statusCalls++
	return p.state, nil
}

func (p *stubProvider) PayeeID() string {
	return p.payeeID
}

// stubStateCache is an in-memory stand-in for the redis payment state cache.
type stubStateCache struct {
	mu     sync.Mutex
	states map[string]string
}

func (c *stubStateCache) GetState(_ context.Context, orderID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[orderID], nil
}

func (c *stubStateCache) SetState(_ context.Context, orderID, state string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.states == nil {
		c.states = make(map[string]string)
	}
	c.states[orderID] = state
	return nil
}

type testEnv struct {
	db *gorm.DB

	orders        *postgres.OrderStorage
	products      *postgres.ProductStorage
	users         *postgres.UserStorage
	events        *postgres.EventStorage
	tasks         *postgres.TaskStorage
	memberships   *postgres.MembershipStorage
	participants  *postgres.EventParticipantStorage
	reserves      *postgres.EventReserveStorage
	paymentEvents *postgres.PaymentEventStorage
	badges        *postgres.SkillBadgeStorage

	capturer *stubCapturer
	notifier *stubNotifier
	reminder *stubReminder

	orderService         *OrderService
	membershipService    *MembershipService
	participationService *ParticipationService
	taskService          *TaskService
	eventService         *EventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := testLogger()

	e := &testEnv{
		db: db,

		orders:        postgres.NewOrderStorage(db),
		products:      postgres.NewProductStorage(db),
		users:         postgres.NewUserStorage(db),
		events:        postgres.NewEventStorage(db),
		tasks:         postgres.NewTaskStorage(db),
		memberships:   postgres.NewMembershipStorage(db),
		participants:  postgres.NewEventParticipantStorage(db),
		reserves:      postgres.NewEventReserveStorage(db),
		paymentEvents: postgres.NewPaymentEventStorage(db),
		badges:        postgres.NewSkillBadgeStorage(db),

		capturer: &stubCapturer{},
		notifier: &stubNotifier{},
		reminder: &stubReminder{},
	}

	tx := postgres.NewTxManager(db)
	e.membershipService = NewMembershipService(log, e.memberships, e.users, e.reminder, MembershipOptions{})
	e.participationService = NewParticipationService(log, e.participants, e.reserves, e.events)
	e.orderService = NewOrderService(log, tx, e.orders, e.products, e.membershipService, e.participationService, e.capturer, e.notifier)
	e.taskService = NewTaskService(log, e.tasks, e.users, e.events, e.participationService)
	e.eventService = NewEventService(log, e.events)
	return e
}

func (e *testEnv) createUser(t *testing.T) *entity.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), &entity.User{
		FirstName: "Test",
		Email:     uuid.NewString() + "@example.com",
		Role:      entity.RoleMember,
		Status:    entity.UserStatusValidated,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createEvent(t *testing.T, maxParticipants int, start, end time.Time) *entity.Event {
	t.Helper()
	host := e.createUser(t)
	event, err := e.events.Create(context.Background(), &entity.Event{
		Title:           "Test event",
		StartTime:       start,
		EndTime:         end,
		MaxParticipants: maxParticipants,
		Status:          entity.EventStatusPublished,
		HostID:          host.ID,
	})
	require.NoError(t, err)
	return event
}

func (e *testEnv) createProduct(t *testing.T, price int64, stock *int) *entity.Product {
	t.Helper()
	product, err := e.products.Create(context.Background(), &entity.Product{
		Name:  "Test product",
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) createMembershipProduct(t *testing.T, price int64, days int) *entity.Product {
	t.Helper()
	product, err := e.products.Create(context.Background(), &entity.Product{
		Name:       "Membership",
		Price:      price,
		Membership: &entity.ProductMembership{DurationDays: days},
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) createTicketProduct(t *testing.T, eventID string, kind entity.TicketKind, price int64) *entity.Product {
	t.Helper()
	product, err := e.products.Create(context.Background(), &entity.Product{
		Name:   "Ticket",
		Price:  price,
		Ticket: &entity.Ticket{EventID: eventID, Kind: kind},
	})
	require.NoError(t, err)
	return product
}

func intPtr(v int) *int {
	return &v
}
