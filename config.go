package rgbim

import (
	"errors"
	"strings"
	"time"
)

// Config carries everything the Builder needs beyond injected dependencies.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	Backend BackendConfig
	Storage StorageConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// BackendConfig configures the HTTP client constructed by Build when no
// backend is injected explicitly.
type BackendConfig struct {
	// BaseURL of the RGBim account service, e.g. "https://api.rgbim.com".
	// Falls back to the local development default when empty.
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// StorageConfig configures slot naming for the persistence adapter.
type StorageConfig struct {
	// SlotPrefix namespaces the two durable slots so multiple managers can
	// share one store. Default "auth".
	SlotPrefix string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is full.
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "rgbim-go/1.0"
)

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:   defaultBaseURL,
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		Storage: StorageConfig{
			SlotPrefix: "auth",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	if c.Backend.UserAgent == "" {
		c.Backend.UserAgent = d.Backend.UserAgent
	}
	if c.Storage.SlotPrefix == "" {
		c.Storage.SlotPrefix = d.Storage.SlotPrefix
	}
	if c.Audit.BufferSize <= 0 {
		c.Audit.BufferSize = d.Audit.BufferSize
	}
}

func (c Config) validate() error {
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return errors.New("backend base URL must be http or https")
	}
	if strings.ContainsAny(c.Storage.SlotPrefix, " \t\n") {
		return errors.New("storage slot prefix must not contain whitespace")
	}
	return nil
}
