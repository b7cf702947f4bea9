package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultInstanceID   = "boundless-client"
	DefaultAPITimeout   = 30 * time.Second
	DefaultRequestDelay = 1500 * time.Millisecond
	DefaultPollInterval = 15 * time.Minute
	DefaultPollSide     = "sell"
	DefaultMetricsPort  = 9090
	DefaultMetricsPath  = "/metrics"
	DefaultLogLevel     = "info"
)

// ApplyDefaults fills unset fields with defaults. It is exported for callers
// that build a config in code rather than from a file.
func (c *ClientConfig) ApplyDefaults() {
	c.applyDefaults()
}

func (c *ClientConfig) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}

	// API defaults
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RequestDelay == nil {
		d := DefaultRequestDelay
		c.API.RequestDelay = &d
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Side == "" {
		c.Poller.Side = DefaultPollSide
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
