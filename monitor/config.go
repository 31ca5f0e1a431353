// Package monitor implements continuous monitoring of a noise source.  Every sample read from the
// source passes through the SP 800-90B continuous health tests, windows of samples are assessed
// for min-entropy, and results are reported to a collector over GRPC.
package monitor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	entropic "github.com/BTBurke/entropic"
)

const defaultHost string = "localhost"
const defaultPort string = "7878"

// Config holds the runtime configuration for a noise source monitor
type Config struct {
	ID               string
	Hostname         string
	Source           string
	WordSize         int
	AssertedEntropy  float64
	APTCutoff        int
	AssessmentWindow int
	TestType         entropic.TestType
	Conditioned      bool
	ReportInterval   time.Duration

	host      string
	port      string
	useTLS    bool
	comingled []string
}

type ConfigOption func(c *Config) error

func newConfig(options ...ConfigOption) (Config, []error) {
	host, err := os.Hostname()
	if err != nil {
		host = ""
	}
	c := Config{
		Hostname:         host,
		Source:           "/dev/hwrng",
		AssessmentWindow: entropic.MinRecommendedSamples,
		TestType:         entropic.NonIID,
		ReportInterval:   1 * time.Hour,
		host:             defaultHost,
		port:             defaultPort,
		useTLS:           true,
	}

	var errors []error
	for _, option := range options {
		err := option(&c)
		if err != nil {
			errors = append(errors, err)
		}
	}
	if len(c.comingled) > 0 {
		errors = append(errors, fmt.Errorf("unknown options: %s", strings.Join(c.comingled, ",")))
	}
	if len(c.ID) == 0 {
		errors = append(errors, fmt.Errorf("id is required, use entropicd -i <id>"))
	}
	if c.AssertedEntropy <= 0 {
		errors = append(errors, fmt.Errorf("asserted-entropy is required and must be > 0; use the conservative estimate from the most recent full assessment"))
	}

	if len(errors) > 0 {
		return Config{}, errors
	}
	return c, nil
}

// ID sets the unique identifier of the noise source for reporting
func ID(id string) ConfigOption {
	return func(c *Config) error {
		c.ID = id
		return nil
	}
}

// Source sets the device file or named pipe to read samples from
func Source(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return fmt.Errorf("source path must not be empty")
		}
		c.Source = path
		return nil
	}
}

// WordSize sets the number of significant bits per sample, 0 for auto-detection
func WordSize(w string) ConfigOption {
	return func(c *Config) error {
		ws, err := strconv.Atoi(w)
		if err != nil || ws < 0 || ws > 8 {
			return fmt.Errorf("word-size must be an integer between 0 and 8")
		}
		c.WordSize = ws
		return nil
	}
}

// AssertedEntropy sets the claimed min-entropy in bits per sample used to derive the health test
// cutoffs
func AssertedEntropy(h string) ConfigOption {
	return func(c *Config) error {
		v, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return fmt.Errorf("could not convert asserted-entropy to float")
		}
		c.AssertedEntropy = v
		return nil
	}
}

// APTCutoff overrides the computed adaptive proportion cutoff with a calibrated value
func APTCutoff(cutoff string) ConfigOption {
	return func(c *Config) error {
		v, err := strconv.Atoi(cutoff)
		if err != nil {
			return fmt.Errorf("could not convert apt-cutoff to integer")
		}
		c.APTCutoff = v
		return nil
	}
}

// AssessmentWindow sets the number of samples collected between full entropy assessments
func AssessmentWindow(w string) ConfigOption {
	return func(c *Config) error {
		v, err := strconv.Atoi(w)
		if err != nil || v <= 0 {
			return fmt.Errorf("assessment-window must be a positive integer")
		}
		c.AssessmentWindow = v
		return nil
	}
}

// IID treats the source output as independent and identically distributed, running the shorter
// confirmatory pipeline instead of the ten Non-IID estimators
func IID() ConfigOption {
	return func(c *Config) error {
		c.TestType = entropic.IID
		return nil
	}
}

// Conditioned marks the source as conditioned output rather than a raw noise source
func Conditioned() ConfigOption {
	return func(c *Config) error {
		c.Conditioned = true
		return nil
	}
}

// ReportInterval sets the period between routine reports to the collector
func ReportInterval(d string) ConfigOption {
	return func(c *Config) error {
		duration, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("could not convert report-interval to time")
		}
		c.ReportInterval = duration
		return nil
	}
}

// Host sets the collector host
func Host(h string) ConfigOption {
	return func(c *Config) error {
		c.host = h
		return nil
	}
}

// Port sets the collector port
func Port(p string) ConfigOption {
	return func(c *Config) error {
		c.port = p
		return nil
	}
}

// NoTLS disables transport security when reporting to a collector on a trusted network
func NoTLS() ConfigOption {
	return func(c *Config) error {
		c.useTLS = false
		return nil
	}
}
