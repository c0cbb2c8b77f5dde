// Package app wires the application together and runs it.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nordvik-dev/medlemshub/internal/adapters/config"
	httpcontroller "github.com/nordvik-dev/medlemshub/internal/adapters/controller/http"
	"github.com/nordvik-dev/medlemshub/internal/adapters/database/postgres"
	"github.com/nordvik-dev/medlemshub/internal/domain/service"
	"github.com/nordvik-dev/medlemshub/pkg/logger"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.Log

	tx := postgres.NewTxManager(cfg.Database)
	userStorage := postgres.NewUserStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)
	productStorage := postgres.NewProductStorage(cfg.Database)
	orderStorage := postgres.NewOrderStorage(cfg.Database)
	taskStorage := postgres.NewTaskStorage(cfg.Database)
	membershipStorage := postgres.NewMembershipStorage(cfg.Database)
	participantStorage := postgres.NewEventParticipantStorage(cfg.Database)
	reserveStorage := postgres.NewEventReserveStorage(cfg.Database)
	paymentEventStorage := postgres.NewPaymentEventStorage(cfg.Database)
	badgeStorage := postgres.NewSkillBadgeStorage(cfg.Database)

	passService := service.NewPassService(cfg.HTTP.BaseURL, cfg.LogoPath)
	notifyService := service.NewNotifyService(namedLogger("notify"), cfg.SMTP, userStorage, passService)
	membershipService := service.NewMembershipService(namedLogger("membership"), membershipStorage, userStorage, notifyService, service.MembershipOptions{
		PurgeAfter:   cfg.Membership.PurgeAfter,
		RemindBefore: cfg.Membership.RemindBefore,
	})
	participationService := service.NewParticipationService(namedLogger("participation"), participantStorage, reserveStorage, eventStorage)
	orderService := service.NewOrderService(namedLogger("order"), tx, orderStorage, productStorage, membershipService, participationService, cfg.PayOrder, notifyService)
	paymentService := service.NewPaymentService(namedLogger("payment"), orderStorage, orderService, paymentEventStorage, cfg.Redis.Payments, cfg.PayOrder, service.PaymentOptions{
		BaseURL:    cfg.HTTP.BaseURL,
		Currency:   cfg.Payment.Currency,
		VATPercent: cfg.Payment.VATPercent,
		CacheTTL:   cfg.Payment.CacheTTL,
		Tokenize:   cfg.Payment.Tokenize,
	})
	taskService := service.NewTaskService(namedLogger("task"), taskStorage, userStorage, eventStorage, participationService)
	eventService := service.NewEventService(namedLogger("event"), eventStorage)
	productService := service.NewProductService(namedLogger("product"), productStorage)
	userService := service.NewUserService(namedLogger("user"), userStorage, cfg.Redis.Codes, cfg.SMTP)
	badgeService := service.NewBadgeService(namedLogger("badge"), badgeStorage)

	handler := httpcontroller.NewHandler(
		namedLogger("http"),
		httpcontroller.Options{
			MaintenanceToken:   cfg.HTTP.MaintenanceToken,
			CallbackAllowCIDRs: cfg.Payment.CallbackAllowCIDRs,
		},
		userService,
		eventService,
		productService,
		orderService,
		paymentService,
		taskService,
		participationService,
		membershipService,
		badgeService,
	)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	if cfg.Debug {
		app.Use(fiberlogger.New())
	}
	handler.RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	membershipService.StartSweepScheduler(ctx, cfg.Membership.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
		log.Infof("listening on %s", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return app.Shutdown()
	}
}

func namedLogger(name string) *types.Logger {
	l, err := logger.Named(name)
	if err != nil {
		panic(err)
	}
	return l
}
