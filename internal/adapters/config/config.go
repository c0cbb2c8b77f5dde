// Package config loads the application settings and opens the backing
// connections they describe.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nordvik-dev/medlemshub/internal/adapters/database/postgres"
	redisadapter "github.com/nordvik-dev/medlemshub/internal/adapters/database/redis"
	"github.com/nordvik-dev/medlemshub/pkg/logger"
	"github.com/nordvik-dev/medlemshub/pkg/payorder"
	"github.com/nordvik-dev/medlemshub/pkg/smtp"
)

type HTTPSettings struct {
	Host             string
	Port             string
	BaseURL          string
	MaintenanceToken string
}

type PaymentSettings struct {
	Currency           string
	VATPercent         int64
	Tokenize           bool
	CacheTTL           time.Duration
	CallbackAllowCIDRs []string
}

type MembershipSettings struct {
	PurgeAfter    time.Duration
	RemindBefore  time.Duration
	SweepInterval time.Duration
}

type Config struct {
	Debug bool

	HTTP       HTTPSettings
	Payment    PaymentSettings
	Membership MembershipSettings
	LogoPath   string

	Database *gorm.DB
	Redis    *redisadapter.Client
	SMTP     *smtp.Client
	PayOrder *payorder.Client
}

// Load reads the yaml config, initializes the logger and connects to the
// backing services.
func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Debug: viper.GetBool("settings.debug"),
		HTTP: HTTPSettings{
			Host:             viper.GetString("http.host"),
			Port:             viper.GetString("http.port"),
			BaseURL:          viper.GetString("http.base-url"),
			MaintenanceToken: viper.GetString("http.maintenance-token"),
		},
		Payment: PaymentSettings{
			Currency:           viper.GetString("payment.currency"),
			VATPercent:         viper.GetInt64("payment.vat-percent"),
			Tokenize:           viper.GetBool("payment.tokenize"),
			CacheTTL:           viper.GetDuration("payment.cache-ttl"),
			CallbackAllowCIDRs: viper.GetStringSlice("payment.callback-allow-cidrs"),
		},
		Membership: MembershipSettings{
			PurgeAfter:    viper.GetDuration("membership.purge-after"),
			RemindBefore:  viper.GetDuration("membership.remind-before"),
			SweepInterval: viper.GetDuration("membership.sweep-interval"),
		},
		LogoPath: viper.GetString("pass.logo-path"),
	}

	location, err := time.LoadLocation(viper.GetString("settings.timezone"))
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	if err = logger.Init(logger.Config{
		Debug:        cfg.Debug,
		TimeLocation: location,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg.Database, err = openDatabase()
	if err != nil {
		return nil, err
	}

	cfg.Redis, err = redisadapter.New(redisadapter.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.user"),
		viper.GetString("service.smtp.password"),
	)
	cfg.SMTP = smtp.NewClient(dialer, smtp.Options{
		From:   viper.GetString("service.smtp.from"),
		Domain: viper.GetString("service.smtp.domain"),
	})

	cfg.PayOrder = payorder.NewClient(payorder.Options{
		BaseURL: viper.GetString("service.payorder.base-url"),
		Token:   viper.GetString("service.payorder.token"),
		PayeeID: viper.GetString("service.payorder.payee-id"),
		Timeout: viper.GetDuration("service.payorder.timeout"),
	})

	return cfg, nil
}

func openDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		viper.GetString("service.database.host"),
		viper.GetString("service.database.port"),
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.ssl-mode"),
	)
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = db.AutoMigrate(postgres.Migrations...); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
