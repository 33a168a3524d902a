package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Gateway    GatewayConfig
	Settlement SettlementConfig
	Broker     BrokerConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// GatewayConfig tunes the simulated mobile-money gateway.
type GatewayConfig struct {
	Delay       time.Duration
	SuccessRate float64
}

type SettlementConfig struct {
	// EnforceSingle rejects a second completed payment for the same booking.
	EnforceSingle bool
}

type BrokerConfig struct {
	URL      string
	Exchange string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "student-housing")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("GATEWAY_DELAY", "3s")
	viper.SetDefault("GATEWAY_SUCCESS_RATE", 0.9)
	viper.SetDefault("SETTLEMENT_ENFORCE_SINGLE", false)
	viper.SetDefault("AMQP_EXCHANGE", "housing.events")

	// .env is optional, containers pass plain environment variables
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			ShutdownTimeout: viper.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			Delay:       viper.GetDuration("GATEWAY_DELAY"),
			SuccessRate: viper.GetFloat64("GATEWAY_SUCCESS_RATE"),
		},
		Settlement: SettlementConfig{
			EnforceSingle: viper.GetBool("SETTLEMENT_ENFORCE_SINGLE"),
		},
		Broker: BrokerConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
	}

	return config, nil
}
