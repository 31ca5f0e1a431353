package monitor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/spf13/pflag"
)

func init() {
	pflag.StringP("config", "c", "", "Use yaml configuration file")
	pflag.StringP("id", "i", "", "Unique identifier of the noise source for reporting.")
	pflag.StringP("source", "s", "/dev/hwrng", "Device file or named pipe to read samples from.")
	pflag.Int("word-size", 0, "Significant bits per sample, 0 to auto-detect from the data.")
	pflag.Float64P("asserted-entropy", "H", 0, "Claimed min-entropy in bits per sample; sets the health test cutoffs.")
	pflag.Int("apt-cutoff", 0, "Override the computed adaptive proportion cutoff with a calibrated value.")
	pflag.Int("assessment-window", 0, "Samples collected between full entropy assessments.")
	pflag.Bool("iid", false, "Treat the source output as IID and run the confirmatory pipeline.")
	pflag.Bool("conditioned", false, "The source is conditioned output rather than a raw noise source.")
	pflag.Duration("report-interval", 0, "Period between routine reports (e.g., 1h).  Accepts values in s, m, h.")
	pflag.String("host", "", "Collector host.")
	pflag.String("port", "", "Collector port.")
	pflag.Bool("no-tls", false, "Disable transport security to the collector.")
}

type options struct {
	options []ConfigOption
}

// ParseCommandLine parses flags and an optional yaml config file into config options.  Flags
// override values from the config file because they are applied after it.
func ParseCommandLine() ([]ConfigOption, error) {
	o := options{}
	pflag.Parse()

	var parseErr error
	pflag.Visit(func(flag *pflag.Flag) {
		if err := parseFlag(&o)(flag, flag.Value.String()); err != nil && parseErr == nil {
			parseErr = err
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return o.options, nil
}

func parseFlag(o *options) func(*pflag.Flag, string) error {
	return func(flag *pflag.Flag, value string) error {
		switch flag.Name {
		case "config":
			opts, err := parseFromFile(value)
			if err != nil {
				return err
			}
			// config file options sort before flags so that flags win
			o.options = append(opts, o.options...)
		default:
			option, err := handleOption(flag.Name, value)
			if err != nil {
				return err
			}
			o.options = append(o.options, option)
		}
		return nil
	}
}

func handleOption(name string, value string) (ConfigOption, error) {
	switch name {
	case "id":
		return ID(value), nil
	case "source":
		return Source(value), nil
	case "word-size":
		return WordSize(value), nil
	case "asserted-entropy":
		return AssertedEntropy(value), nil
	case "apt-cutoff":
		return APTCutoff(value), nil
	case "assessment-window":
		return AssessmentWindow(value), nil
	case "iid":
		if value == "false" {
			return noop(), nil
		}
		return IID(), nil
	case "conditioned":
		if value == "false" {
			return noop(), nil
		}
		return Conditioned(), nil
	case "report-interval":
		return ReportInterval(value), nil
	case "host":
		return Host(value), nil
	case "port":
		return Port(value), nil
	case "no-tls":
		if value == "false" {
			return noop(), nil
		}
		return NoTLS(), nil
	default:
		return nil, fmt.Errorf("unknown option: %s", name)
	}
}

func noop() ConfigOption {
	return func(c *Config) error { return nil }
}

func parseFromFile(fpath string) ([]ConfigOption, error) {
	var options []ConfigOption
	data, err := os.ReadFile(fpath)
	if err != nil {
		return options, err
	}

	cfg := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return options, err
	}
	for k, v := range cfg {
		var value string
		switch v := v.(type) {
		case string:
			value = v
		case int:
			value = strconv.Itoa(v)
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if !v {
				continue
			}
			value = ""
		default:
			return options, fmt.Errorf("could not process config key %s, unknown type", k)
		}
		opt, err := handleOption(k, value)
		if err != nil {
			return options, err
		}
		options = append(options, opt)
	}
	return options, nil
}
