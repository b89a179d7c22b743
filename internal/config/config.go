package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Onboarding OnboardingConfig
	RateLimit  RateLimitConfig
	Document   DocumentConfig
	S3         S3Config
	Assistant  AssistantConfig
	Cache      CacheConfig
}

type CacheConfig struct {
	Enabled bool
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	DBName                string
	SSLMode               string
	MaxOpenConns          int
	MaxIdleConns          int
	ConnMaxLifetimeMinutes int
}

// OnboardingConfig controls how a phone verified user is attached to a
// firm. In dedicated mode every new user gets their own firm; in shared
// mode new users join the configured firm.
type OnboardingConfig struct {
	Mode           types.OnboardingMode `validate:"omitempty,oneof=dedicated shared"`
	SharedTenantID string
}

// RateLimitConfig allows overriding the default per category budgets
type RateLimitConfig struct {
	Enabled   bool
	Overrides map[string]RateLimitRuleConfig
}

type RateLimitRuleConfig struct {
	MaxRequests   int
	WindowSeconds int
}

type DocumentConfig struct {
	MaxSizeBytes int64
}

func NewConfig() (*Configuration, error) {
	// Local development reads secrets from a .env file; in other
	// deployments the environment is injected by the platform.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/jurisflow")

	// Set up environment variables support
	v.SetEnvPrefix("JURISFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Onboarding.Mode == "" {
		c.Onboarding.Mode = types.OnboardingModeDedicated
	}
	if c.Document.MaxSizeBytes == 0 {
		c.Document.MaxSizeBytes = types.MaxDocumentSizeBytes
	}
	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = 25
	}
	if c.Postgres.MaxIdleConns == 0 {
		c.Postgres.MaxIdleConns = 5
	}
	if c.Postgres.ConnMaxLifetimeMinutes == 0 {
		c.Postgres.ConnMaxLifetimeMinutes = 30
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Onboarding.Mode == types.OnboardingModeShared && c.Onboarding.SharedTenantID == "" {
		return fmt.Errorf("onboarding: shared mode requires a shared tenant id")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Onboarding: OnboardingConfig{Mode: types.OnboardingModeDedicated},
		Document:   DocumentConfig{MaxSizeBytes: types.MaxDocumentSizeBytes},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// ConnMaxLifetime returns the configured connection lifetime
func (c PostgresConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

// Rules merges the configured overrides over the default budgets
func (c RateLimitConfig) Rules() map[types.RateLimitCategory]types.RateLimitRule {
	rules := types.DefaultRateLimitRules()
	for name, override := range c.Overrides {
		category := types.RateLimitCategory(name)
		if category.Validate() != nil {
			continue
		}
		if override.MaxRequests <= 0 || override.WindowSeconds <= 0 {
			continue
		}
		rules[category] = types.RateLimitRule{
			MaxRequests: override.MaxRequests,
			Window:      time.Duration(override.WindowSeconds) * time.Second,
		}
	}
	return rules
}
