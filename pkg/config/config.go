package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable read by Load.
const EnvPrefix = "servicepro"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	State StateConfig
	Mock  MockConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.State.ensureDir(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"SERVICEPRO_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"SERVICEPRO_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig selects the backend the client talks to.
type APIConfig struct {
	BaseURL string        `envconfig:"SERVICEPRO_API_URL" default:"http://localhost:5000/api"`
	Timeout time.Duration `envconfig:"SERVICEPRO_API_TIMEOUT" default:"10s"`
}

// StateConfig locates the directory holding persisted client state
// (auth token, last-known user, reviewed-booking hints).
type StateConfig struct {
	Dir string `envconfig:"SERVICEPRO_STATE_DIR"`
}

func (s *StateConfig) ensureDir() error {
	if s.Dir != "" {
		return nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolving state dir: %w", err)
	}
	s.Dir = filepath.Join(base, "servicepro")
	return nil
}

// MockConfig configures the local development backend.
type MockConfig struct {
	Port      string        `envconfig:"SERVICEPRO_MOCK_PORT" default:"5000"`
	JWTSecret string        `envconfig:"SERVICEPRO_MOCK_JWT_SECRET" default:"servicepro-dev-secret"`
	TokenTTL  time.Duration `envconfig:"SERVICEPRO_MOCK_TOKEN_TTL" default:"24h"`
}
