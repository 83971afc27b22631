// Package config loads the detection settings from an optional YAML file and
// TARGETDETECT_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/log"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

// EnvPrefix is the prefix of every environment override, e.g.
// TARGETDETECT_THRESHOLDS_CONFIRM_SCORE.
const EnvPrefix = "TARGETDETECT"

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// Logging selects the default logger.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Store selects where decisions are persisted.
type Store struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Dir    string `mapstructure:"dir"`
}

// Config is the full configuration file. Detection keys live at the top level.
type Config struct {
	target.Config `mapstructure:",squash"`

	Logging Logging `mapstructure:"logging"`
	Store   Store   `mapstructure:"store"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Config:  target.DefaultConfig(),
		Logging: Logging{Level: "info", Format: "json"},
		Store:   Store{Driver: DriverFile, Dir: "jobs"},
	}
}

// Load reads path (when non-empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the detection settings plus the logging and store sections.
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return errors.NewConfigError("logging.level", "unknown log level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console", "cloud":
	default:
		return errors.NewConfigError("logging.format", "must be one of json, console, cloud", c.Logging.Format)
	}

	switch c.Store.Driver {
	case DriverFile:
		if c.Store.Dir == "" {
			return errors.NewConfigError("store.dir", "required for the file driver", c.Store.Dir)
		}
	case DriverSQLite:
		if c.Store.DSN == "" {
			return errors.NewConfigError("store.dsn", "required for the sqlite driver", c.Store.DSN)
		}
	case DriverNone:
	default:
		return errors.NewConfigError("store.driver", "must be one of file, sqlite, none", c.Store.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	w := c.Weights
	v.SetDefault("weights.a", w.A)
	v.SetDefault("weights.t", w.T)
	v.SetDefault("weights.v", w.V)
	v.SetDefault("weights.r", w.R)
	v.SetDefault("weights.p", w.P)
	v.SetDefault("weights.s", w.S)
	v.SetDefault("weights.o", w.O)

	v.SetDefault("thresholds.confirm_score", c.Thresholds.ConfirmScore)
	v.SetDefault("thresholds.gap_threshold", c.Thresholds.GapThreshold)

	p := c.Probe
	v.SetDefault("probe.min_sample_rows", p.MinSampleRows)
	v.SetDefault("probe.max_sample_rows", p.MaxSampleRows)
	v.SetDefault("probe.top_k_predictors", p.TopKPredictors)
	v.SetDefault("probe.cv_folds", p.CVFolds)
	v.SetDefault("probe.random_seed", p.RandomSeed)
	v.SetDefault("probe.max_tree_depth", p.MaxTreeDepth)
	v.SetDefault("probe.ridge_alpha", p.RidgeAlpha)
	v.SetDefault("probe.classification_max_distinct", p.ClassificationMaxDistinct)

	v.SetDefault("limits.max_unique_fraction", c.Limits.MaxUniqueFraction)
	v.SetDefault("limits.min_id_string_length", c.Limits.MinIDStringLength)

	v.SetDefault("semantic_keywords", c.SemanticKeywords)
	v.SetDefault("semantic_boost", c.SemanticBoost)
	v.SetDefault("pii_keywords", c.PIIKeywords)
	v.SetDefault("top_candidates", c.TopCandidates)
	v.SetDefault("workers", c.Workers)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)

	v.SetDefault("store.driver", c.Store.Driver)
	v.SetDefault("store.dsn", c.Store.DSN)
	v.SetDefault("store.dir", c.Store.Dir)
}
