package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

const clientEnvPrefix = "league"

const (
	StateBackendFile   = "file"
	StateBackendRemote = "remote"
)

// ClientConfig configures the league CLI. Every field reads LEAGUE_<NAME>.
type ClientConfig struct {
	APIURL                string        `envconfig:"API_URL" default:"http://localhost:8080"`
	Token                 string        `envconfig:"TOKEN"`
	TokenFile             string        `envconfig:"TOKEN_FILE" default:".league/token"`
	StateBackend          string        `envconfig:"STATE_BACKEND" default:"file"`
	StateFile             string        `envconfig:"STATE_FILE" default:".league/state.json"`
	Timeout               time.Duration `envconfig:"TIMEOUT" default:"10s"`
	MaxRetries            int           `envconfig:"MAX_RETRIES" default:"1"`
	OutboxMaxAttempts     int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"5"`
	OutboxWorkers         int           `envconfig:"OUTBOX_WORKERS" default:"4"`
	RetryInitialInterval  time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"2s"`
	RetryMaxInterval      time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"5m"`
	SyncCron              string        `envconfig:"SYNC_CRON" default:"*/5 * * * *"`
	FlushInterval         time.Duration `envconfig:"FLUSH_INTERVAL" default:"30s"`
	CircuitEnabled        bool          `envconfig:"CIRCUIT_ENABLED" default:"true"`
	CircuitFailureCount   int           `envconfig:"CIRCUIT_FAILURE_COUNT" default:"5"`
	CircuitOpenTimeout    time.Duration `envconfig:"CIRCUIT_OPEN_TIMEOUT" default:"15s"`
	CircuitHalfOpenMaxReq int           `envconfig:"CIRCUIT_HALF_OPEN_MAX_REQ" default:"2"`
	LogLevel              logging.Level `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(clientEnvPrefix, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("process client env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func (c *ClientConfig) validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return fmt.Errorf("LEAGUE_API_URL cannot be empty")
	}

	c.StateBackend = strings.ToLower(strings.TrimSpace(c.StateBackend))
	switch c.StateBackend {
	case StateBackendFile:
		if strings.TrimSpace(c.StateFile) == "" {
			return fmt.Errorf("LEAGUE_STATE_FILE is required when LEAGUE_STATE_BACKEND=file")
		}
	case StateBackendRemote:
	default:
		return fmt.Errorf("invalid LEAGUE_STATE_BACKEND %q: valid values are %s, %s", c.StateBackend, StateBackendFile, StateBackendRemote)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("LEAGUE_TIMEOUT must be > 0")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("LEAGUE_MAX_RETRIES must be >= 0")
	}
	if c.OutboxMaxAttempts < 1 {
		return fmt.Errorf("LEAGUE_OUTBOX_MAX_ATTEMPTS must be >= 1")
	}
	if c.OutboxWorkers < 1 {
		return fmt.Errorf("LEAGUE_OUTBOX_WORKERS must be >= 1")
	}
	if c.RetryInitialInterval <= 0 {
		return fmt.Errorf("LEAGUE_RETRY_INITIAL_INTERVAL must be > 0")
	}
	if c.RetryMaxInterval < c.RetryInitialInterval {
		return fmt.Errorf("LEAGUE_RETRY_MAX_INTERVAL must be >= LEAGUE_RETRY_INITIAL_INTERVAL")
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("LEAGUE_FLUSH_INTERVAL must be > 0")
	}
	if c.CircuitFailureCount < 1 {
		return fmt.Errorf("LEAGUE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.CircuitOpenTimeout <= 0 {
		return fmt.Errorf("LEAGUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	if c.CircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("LEAGUE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if _, err := cron.ParseStandard(c.SyncCron); err != nil {
		return fmt.Errorf("parse LEAGUE_SYNC_CRON: %w", err)
	}
	return nil
}
