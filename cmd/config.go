package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"parcelflow/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	JWTIssuer              string
	KafkaHost              string
	KafkaParcelEventsTopic string
	SettlementSchedule     string
	ReconciliationSchedule string
	ReconciliationLookback time.Duration
	LogLevel               slog.Level
}

// LoadConfig reads the process environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	config := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaParcelEventsTopic: v.GetString("KAFKA_PARCEL_EVENTS_TOPIC"),
		SettlementSchedule:     v.GetString("SETTLEMENT_SCHEDULE"),
		ReconciliationSchedule: v.GetString("RECONCILIATION_SCHEDULE"),
		ReconciliationLookback: v.GetDuration("RECONCILIATION_LOOKBACK"),
		LogLevel:               level,
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "parcelflow")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ISSUER", "parcelflow")
	v.SetDefault("KAFKA_PARCEL_EVENTS_TOPIC", "parcel.events")
	v.SetDefault("SETTLEMENT_SCHEDULE", "0 0 2 * * *")
	v.SetDefault("RECONCILIATION_SCHEDULE", "0 * * * * *")
	v.SetDefault("RECONCILIATION_LOOKBACK", "24h")
	v.SetDefault("LOG_LEVEL", "INFO")
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var jwtErr, lookbackErr error
	if strings.TrimSpace(c.JWTSecret) == "" {
		jwtErr = errs.NewValueIsRequiredError("JWT_SECRET")
	}
	if c.ReconciliationLookback <= 0 {
		lookbackErr = errs.NewValueIsOutOfRangeError("RECONCILIATION_LOOKBACK", c.ReconciliationLookback, "1ns", "unbounded")
	}
	return errors.Join(jwtErr, lookbackErr)
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
