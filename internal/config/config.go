package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read when present; real environment variables win over it.
const DefaultEnvFile = ".env"

// Config is the runtime configuration of tienda.
type Config struct {
	AppPort           string `validate:"required"`
	DBDriver          string `validate:"oneof=sqlite postgres memory"`
	DatabaseDSN       string `validate:"required_unless=DBDriver memory"`
	JWTSecret         string `validate:"required"`
	RabbitMQURL       string `validate:"omitempty,url"`
	LowStockThreshold int    `validate:"gte=0"`
	LogLevel          string `validate:"oneof=debug info warn error"`
}

func (c Config) String() string {
	return fmt.Sprintf("app_port=%s, db_driver=%s, database_dsn=%s, rabbitmq_url=%s, low_stock_threshold=%d, log_level=%s",
		c.AppPort, c.DBDriver, maskDSN(c.DatabaseDSN), maskDSN(c.RabbitMQURL), c.LowStockThreshold, c.LogLevel)
}

// maskDSN hides credentials in URLs and key/value postgres DSNs.
func maskDSN(dsn string) string {
	if dsn == "" {
		return "<not configured>"
	}
	if parts := strings.SplitN(dsn, "@", 2); len(parts) == 2 {
		return "****@" + parts[1]
	}
	if strings.Contains(dsn, "password=") {
		return "****"
	}
	return dsn
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "tienda.db")
	v.SetDefault("JWT_SECRET", "tienda-dev-secret")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOW_STOCK_THRESHOLD", 3)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load builds the configuration from defaults, the optional envFile and the
// process environment, in increasing priority, and validates the result.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for key, value := range values {
				v.SetDefault(strings.ToUpper(key), value)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("error reading %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		DBDriver:          strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// NewLogger returns a text slog logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
