package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"mecanica_xpto_os/internal/domain/entities"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"

	NotificationHTTP = "http"
	NotificationLog  = "log"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Orders       OrdersConfig       `mapstructure:"orders"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Alerts       AlertsConfig       `mapstructure:"alerts"`
	Notification NotificationConfig `mapstructure:"notification"`
	Jobs         JobsConfig         `mapstructure:"jobs"`
	Payments     PaymentsConfig     `mapstructure:"payments"`
	Telemetry    TelemetryConfig    `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	OrdersTable     string `mapstructure:"orders_table"`
	StockItemsTable string `mapstructure:"stock_items_table"`
	ServicesTable   string `mapstructure:"services_table"`
	AlertsTable     string `mapstructure:"alerts_table"`
	PaymentsTable   string `mapstructure:"payments_table"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type OrdersConfig struct {
	ActivePriority []string `mapstructure:"active_priority"`
}

type LedgerConfig struct {
	RetryAttempts uint          `mapstructure:"retry_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

type AlertsConfig struct {
	Recipients []string `mapstructure:"recipients"`
	Timezone   string   `mapstructure:"timezone"`
}

type NotificationConfig struct {
	Driver   string        `mapstructure:"driver"`
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	From     string        `mapstructure:"from"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
}

type JobsConfig struct {
	Embedded           bool          `mapstructure:"embedded"`
	ExpirationInterval time.Duration `mapstructure:"expiration_interval"`
	StockAlertInterval time.Duration `mapstructure:"stock_alert_interval"`
	LockTTL            time.Duration `mapstructure:"lock_ttl"`
	OutboxBuffer       int           `mapstructure:"outbox_buffer"`
}

type PaymentsConfig struct {
	AccessToken     string `mapstructure:"access_token"`
	Mock            bool   `mapstructure:"mock"`
	TestPayerEmail  string `mapstructure:"test_payer_email"`
	TestPayerUserID string `mapstructure:"test_payer_user_id"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Load reads ./config.yaml (or ./configs/config.yaml) when present and lets
// environment variables override every key.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.driver", StorageDynamoDB)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "local")
	v.SetDefault("storage.secret_access_key", "local")
	v.SetDefault("storage.orders_table", "orders")
	v.SetDefault("storage.stock_items_table", "stock_items")
	v.SetDefault("storage.services_table", "services")
	v.SetDefault("storage.alerts_table", "stock_alerts")
	v.SetDefault("storage.payments_table", "payments")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("orders.active_priority", []string{})

	v.SetDefault("ledger.retry_attempts", 3)
	v.SetDefault("ledger.retry_interval", 50*time.Millisecond)

	v.SetDefault("alerts.recipients", []string{})
	v.SetDefault("alerts.timezone", "America/Sao_Paulo")

	v.SetDefault("notification.driver", NotificationLog)
	v.SetDefault("notification.endpoint", "")
	v.SetDefault("notification.api_key", "")
	v.SetDefault("notification.from", "oficina@mecanica-xpto.com.br")
	v.SetDefault("notification.timeout", 10*time.Second)
	v.SetDefault("notification.retries", 2)

	v.SetDefault("jobs.embedded", true)
	v.SetDefault("jobs.expiration_interval", time.Hour)
	v.SetDefault("jobs.stock_alert_interval", 30*time.Minute)
	v.SetDefault("jobs.lock_ttl", 5*time.Minute)
	v.SetDefault("jobs.outbox_buffer", 256)

	v.SetDefault("payments.access_token", "")
	v.SetDefault("payments.mock", false)
	v.SetDefault("payments.test_payer_email", "")
	v.SetDefault("payments.test_payer_user_id", "")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4318")
	v.SetDefault("telemetry.service_name", "mecanica-xpto-os")
}

// bindEnvVariables keeps the variable names the deployment already uses.
func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("server.port", "PORT", "SERVER_PORT")

	v.BindEnv("storage.region", "AWS_REGION", "STORAGE_REGION")
	v.BindEnv("storage.endpoint", "DYNAMODB_ENDPOINT", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key_id", "AWS_ACCESS_KEY_ID", "STORAGE_ACCESS_KEY_ID")
	v.BindEnv("storage.secret_access_key", "AWS_SECRET_ACCESS_KEY", "STORAGE_SECRET_ACCESS_KEY")
	v.BindEnv("storage.orders_table", "ORDERS_TABLE", "STORAGE_ORDERS_TABLE")
	v.BindEnv("storage.stock_items_table", "STOCK_ITEMS_TABLE", "STORAGE_STOCK_ITEMS_TABLE")
	v.BindEnv("storage.services_table", "SERVICES_TABLE", "STORAGE_SERVICES_TABLE")
	v.BindEnv("storage.alerts_table", "STOCK_ALERTS_TABLE", "STORAGE_ALERTS_TABLE")
	v.BindEnv("storage.payments_table", "PAYMENTS_TABLE", "STORAGE_PAYMENTS_TABLE")

	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	v.BindEnv("payments.access_token", "MERCADOPAGO_ACCESS_TOKEN", "PAYMENTS_ACCESS_TOKEN")
	v.BindEnv("payments.mock", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "PAYMENTS_MOCK")
	v.BindEnv("payments.test_payer_email", "MERCADOPAGO_TEST_PAYER_EMAIL", "PAYMENTS_TEST_PAYER_EMAIL")
	v.BindEnv("payments.test_payer_user_id", "MERCADOPAGO_TEST_PAYER_USER_ID", "PAYMENTS_TEST_PAYER_USER_ID")

	v.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT", "TELEMETRY_ENDPOINT")
	v.BindEnv("telemetry.service_name", "SERVICE_NAME", "TELEMETRY_SERVICE_NAME")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Notification.Driver {
	case NotificationHTTP, NotificationLog:
	default:
		return fmt.Errorf("unknown notification driver %q", c.Notification.Driver)
	}
	if c.Notification.Driver == NotificationHTTP && c.Notification.Endpoint == "" {
		return fmt.Errorf("notification.endpoint is required for the %s driver", NotificationHTTP)
	}
	if _, err := c.ActivePriority(); err != nil {
		return err
	}
	if _, err := c.AlertLocation(); err != nil {
		return err
	}
	return nil
}

// ActivePriority parses orders.active_priority. An empty list keeps the
// built-in ordering.
func (c *Config) ActivePriority() ([]entities.OrderStatus, error) {
	out := make([]entities.OrderStatus, 0, len(c.Orders.ActivePriority))
	for _, raw := range c.Orders.ActivePriority {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		s, ok := entities.ParseOrderStatus(raw)
		if !ok {
			return nil, fmt.Errorf("orders.active_priority: unknown status %q", raw)
		}
		out = append(out, s)
	}
	return out, nil
}

// AlertLocation is the time zone whose calendar day bounds low stock alerts.
func (c *Config) AlertLocation() (*time.Location, error) {
	if c.Alerts.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Alerts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("alerts.timezone: %w", err)
	}
	return loc, nil
}

// StockAlertRecipients drops blanks and duplicates from alerts.recipients.
func (c *Config) StockAlertRecipients() []string {
	seen := make(map[string]bool, len(c.Alerts.Recipients))
	out := make([]string, 0, len(c.Alerts.Recipients))
	for _, r := range c.Alerts.Recipients {
		r = strings.TrimSpace(r)
		if r == "" || seen[strings.ToLower(r)] {
			continue
		}
		seen[strings.ToLower(r)] = true
		out = append(out, r)
	}
	return out
}
