// Package config is for run-wide settings unmarshalled from Viper: an
// optional YAML file, OFFTARGET_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"offtarget/internal/dataset"
	"offtarget/internal/encode"
)

// EnvPrefix namespaces environment overrides, e.g. OFFTARGET_RUN_THREADS.
const EnvPrefix = "OFFTARGET"

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "offtarget.yaml"

// InputConfig locates the dataset.
type InputConfig struct {
	// path to the dataset, "-" for stdin
	Path string `mapstructure:"path"`

	// csv | tsv | jsonl; empty means detect from the extension
	Format string `mapstructure:"format"`
}

// OutputConfig controls serialization.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	NoHeader bool   `mapstructure:"no-header"`
}

// FeatureConfig is the PAM window used by the 7-channel encoder and the
// pam column.
type FeatureConfig struct {
	PAMLocation string `mapstructure:"pam-location"`
	PAMLength   int    `mapstructure:"pam-length"`
}

// RunConfig is the enrichment worker pool.
type RunConfig struct {
	Threads   int  `mapstructure:"threads"`
	KeepGoing bool `mapstructure:"keep-going"`
}

// EmbeddingConfig is the remote encoding service.
type EmbeddingConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Column      string        `mapstructure:"column"`
	BatchSize   int           `mapstructure:"batch-size"`
	Delay       time.Duration `mapstructure:"delay"`
	PolymerType string        `mapstructure:"polymer-type"`
	Strategy    string        `mapstructure:"strategy"`
}

// MetricsConfig is the metrics command.
type MetricsConfig struct {
	Predictions string  `mapstructure:"predictions"`
	Task        string  `mapstructure:"task"`
	Threshold   float64 `mapstructure:"threshold"`
	Beta        float64 `mapstructure:"beta"`
}

// Config is the root-level settings struct.
type Config struct {
	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`

	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Features  FeatureConfig   `mapstructure:"features"`
	Run       RunConfig       `mapstructure:"run"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Bindings maps config keys to the flag names that set them.
var Bindings = map[string]string{
	"log-level":              "log-level",
	"quiet":                  "quiet",
	"input.path":             "input",
	"input.format":           "input-format",
	"output.format":          "output",
	"output.no-header":       "no-header",
	"features.pam-location":  "pam-location",
	"features.pam-length":    "pam-length",
	"run.threads":            "threads",
	"run.keep-going":         "keep-going",
	"embedding.endpoint":     "endpoint",
	"embedding.column":       "column",
	"embedding.batch-size":   "batch-size",
	"embedding.delay":        "delay",
	"embedding.polymer-type": "polymer-type",
	"embedding.strategy":     "strategy",
	"metrics.predictions":    "predictions",
	"metrics.task":           "task",
	"metrics.threshold":      "threshold",
	"metrics.beta":           "beta",
}

// Load resolves settings for the flags registered on fs. file names an
// explicit config file; when empty DefaultFile is used if present.
// Only keys whose flag exists on fs are bound, so each command sees its own
// flag defaults.
func Load(fs *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("config %s: %w", DefaultFile, err)
			}
		}
	}

	for key, name := range Bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	return c, nil
}

// Validate applies shared invariants used by all commands.
func Validate(c *Config) error {
	switch c.Input.Format {
	case "", dataset.FormatCSV, dataset.FormatTSV, dataset.FormatJSONL:
	default:
		return fmt.Errorf("invalid --input-format %q", c.Input.Format)
	}
	if c.Run.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if c.Features.PAMLength < 0 {
		return errors.New("--pam-length must be ≥ 0")
	}
	if c.Features.PAMLocation != "" {
		if _, err := encode.ParsePAMLocation(c.Features.PAMLocation); err != nil {
			return err
		}
	}
	if c.Embedding.Delay < 0 {
		return errors.New("--delay must be ≥ 0")
	}
	if c.Embedding.Column != "" && !isSequenceColumn(c.Embedding.Column) {
		return fmt.Errorf("invalid --column %q (want one of %s)", c.Embedding.Column, strings.Join(dataset.SequenceColumns, ", "))
	}
	if c.Metrics.Threshold < 0 || c.Metrics.Threshold > 1 {
		return errors.New("--threshold must be between 0 and 1")
	}
	if c.Metrics.Beta < 0 {
		return errors.New("--beta must be ≥ 0")
	}
	return nil
}

// PAMWindow returns the configured F-channel window.
func (c Config) PAMWindow() (encode.PAMWindow, error) {
	loc, err := encode.ParsePAMLocation(c.Features.PAMLocation)
	if err != nil {
		return encode.PAMWindow{}, err
	}
	return encode.PAMWindow{Location: loc, Length: c.Features.PAMLength}, nil
}

func isSequenceColumn(col string) bool {
	for _, c := range dataset.SequenceColumns {
		if c == col {
			return true
		}
	}
	return false
}
