// Package server implements the collector service: a GRPC endpoint that assesses submitted data
// for min-entropy and receives reports from noise source monitors, with prometheus metrics and
// structured logging.
package server

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime parameters for the collector
type Config struct {
	Host        string
	GRPCPort    int
	MetricsPort int

	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	LogLevel string
	LogJSON  bool

	// MaxRecvSize limits the size of an assessment request in bytes
	MaxRecvSize int
	Timeout     time.Duration

	MetricsEnabled bool
}

// LoadConfig reads configuration from environment variables, applies defaults for any unset
// variables, and validates the result
func LoadConfig() (*Config, error) {
	c := &Config{
		Host:           getEnv("ENTROPIC_HOST", "0.0.0.0"),
		GRPCPort:       getEnvAsInt("ENTROPIC_GRPC_PORT", 7878),
		MetricsPort:    getEnvAsInt("ENTROPIC_METRICS_PORT", 9091),
		TLSEnabled:     getEnvAsBool("ENTROPIC_TLS_ENABLED", false),
		TLSCertFile:    getEnv("ENTROPIC_TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("ENTROPIC_TLS_KEY_FILE", ""),
		LogLevel:       getEnv("ENTROPIC_LOG_LEVEL", "info"),
		LogJSON:        getEnvAsBool("ENTROPIC_LOG_JSON", false),
		MaxRecvSize:    getEnvAsInt("ENTROPIC_MAX_RECV_SIZE", 100*1024*1024),
		Timeout:        getEnvAsDuration("ENTROPIC_TIMEOUT", 5*time.Minute),
		MetricsEnabled: getEnvAsBool("ENTROPIC_METRICS_ENABLED", true),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("grpc port out of range: %d", c.GRPCPort)
	}
	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port out of range: %d", c.MetricsPort)
	}
	if c.GRPCPort == c.MetricsPort {
		return fmt.Errorf("grpc and metrics ports must differ")
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("tls enabled but cert or key file not set")
	}
	if c.MaxRecvSize <= 0 {
		return fmt.Errorf("max recv size must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
