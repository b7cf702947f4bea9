package config

import "time"

// ClientConfig is the root configuration for the boundless client.
type ClientConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Poller   PollerConfig   `yaml:"poller"`
	Catalog  map[string]int `yaml:"catalog"` // Item name -> item ID
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// InstanceConfig identifies this client.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds Boundless API settings.
type APIConfig struct {
	BaseURL      string         `yaml:"base_url"`
	APIKey       string         `yaml:"api_key"`      // Sent as Boundless-API-Key
	APIKeyPath   string         `yaml:"api_key_path"` // File holding the key, used if api_key is empty
	Timeout      time.Duration  `yaml:"timeout"`
	RequestDelay *time.Duration `yaml:"request_delay"` // Minimum spacing between requests; "0s" disables it
}

// Delay returns the configured request delay, or DefaultRequestDelay when
// request_delay is unset.
func (c APIConfig) Delay() time.Duration {
	if c.RequestDelay == nil {
		return DefaultRequestDelay
	}
	return *c.RequestDelay
}

// PollerConfig holds listing poller settings.
type PollerConfig struct {
	Interval time.Duration `yaml:"interval"`
	Side     string        `yaml:"side"`   // "sell", "buy" or "both"
	Items    []string      `yaml:"items"`  // Catalog names or numeric IDs
	Worlds   []int         `yaml:"worlds"` // Empty means every world
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
