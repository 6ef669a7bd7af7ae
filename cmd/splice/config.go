package main

import (
	"fmt"

	"github.com/Nytra/EnumerableToolkit/config"
	"github.com/Nytra/EnumerableToolkit/observability"
	"github.com/Nytra/EnumerableToolkit/rules"
)

const serviceName = "splice"

// Config is the splice configuration, loaded from config.yml, .env and
// SPLICE_* environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Rules   []rules.Rule  `yaml:"rules" mapstructure:"rules"`
}

// TracingConfig enables span export over OTLP HTTP.
type TracingConfig struct {
	Enabled                    bool `yaml:"enabled" mapstructure:"enabled"`
	observability.TracerConfig `yaml:",inline" mapstructure:",squash"`
}

// MetricsConfig enables metric export over OTLP HTTP.
type MetricsConfig struct {
	Enabled                   bool `yaml:"enabled" mapstructure:"enabled"`
	observability.MeterConfig `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()

	tracing := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = tracing.Endpoint
		c.Tracing.Insecure = tracing.Insecure
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = tracing.SampleRate
	}
	c.Tracing.ServiceName = c.Name
	c.Tracing.ServiceVersion = c.Version
	c.Tracing.Environment = c.Environment

	meter := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = meter.Endpoint
		c.Metrics.Insecure = meter.Insecure
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = meter.Interval
	}
	c.Metrics.ServiceName = c.Name
	c.Metrics.ServiceVersion = c.Version
	c.Metrics.Environment = c.Environment
}

// Validate checks the service settings and every rule.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("config.tracing.sample_rate must be between 0 and 1 (got: %v)", c.Tracing.SampleRate)
	}
	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("config.rules[%d]: %w", i, err)
		}
	}
	return nil
}

// loadConfig reads the configuration. Explicit paths override the search.
func loadConfig(configFile, envFile string) (*Config, error) {
	opts := []config.LoaderOption{config.WithEnvPrefix("SPLICE")}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}
