package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the server settings. Zero-valued fields fall back to
// DefaultConfig values when passed to New.
type Config struct {
	// Addr is the listen address.
	Addr string

	// ReadTimeout, WriteTimeout and IdleTimeout configure the HTTP server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MaxBodyBytes caps request bodies for /v1/query and /v1/mutate.
	MaxBodyBytes int64

	// SessionIdleTimeout closes a WebSocket session that stays silent
	// longer than this.
	SessionIdleTimeout time.Duration

	// MetricsNamespace is the Prometheus namespace (default "dombili").
	MetricsNamespace string

	// Registry receives the server metrics. Defaults to the global
	// registerer.
	Registry prometheus.Registerer

	// TracerName names the OpenTelemetry tracer (default "dombili").
	TracerName string

	// CheckOrigin guards WebSocket upgrades. Nil allows same-origin only,
	// the gorilla default.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the settings used when Config fields are unset.
func DefaultConfig() *Config {
	return &Config{
		Addr:               ":8561",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        120 * time.Second,
		MaxBodyBytes:       4 << 20,
		SessionIdleTimeout: 60 * time.Second,
		MetricsNamespace:   "dombili",
		TracerName:         "dombili",
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server: empty listen address")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("server: negative MaxBodyBytes")
	}
	return nil
}

// withDefaults merges unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	merged := *c
	if merged.Addr == "" {
		merged.Addr = defaults.Addr
	}
	if merged.ReadTimeout == 0 {
		merged.ReadTimeout = defaults.ReadTimeout
	}
	if merged.WriteTimeout == 0 {
		merged.WriteTimeout = defaults.WriteTimeout
	}
	if merged.IdleTimeout == 0 {
		merged.IdleTimeout = defaults.IdleTimeout
	}
	if merged.MaxBodyBytes == 0 {
		merged.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if merged.SessionIdleTimeout == 0 {
		merged.SessionIdleTimeout = defaults.SessionIdleTimeout
	}
	if merged.MetricsNamespace == "" {
		merged.MetricsNamespace = defaults.MetricsNamespace
	}
	if merged.TracerName == "" {
		merged.TracerName = defaults.TracerName
	}
	return &merged
}
