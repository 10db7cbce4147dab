// Package config loads fincert settings from an optional config file, .env,
// FINCERT_* environment variables and command-line flags, in increasing
// priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/selector"
)

const envPrefix = "FINCERT"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	BankPath       string      `mapstructure:"bank_path"`        // question bank (JSON or YAML)
	WrongNotesPath string      `mapstructure:"wrong_notes_path"` // wrong-note JSON file
	DBPath         string      `mapstructure:"db_path"`          // attempt history; empty means the default data dir
	RandomCount    int         `mapstructure:"random_count"`     // size of a random session
	Seed           int64       `mapstructure:"seed"`             // selector seed; 0 means time-based
	ListenAddr     string      `mapstructure:"listen_addr"`      // HTTP API address for `fincert serve`
	NoHistory      bool        `mapstructure:"no_history"`       // disable the attempt history database
	Log            Log         `mapstructure:"log"`
	Exams          []quiz.Exam `mapstructure:"exams"`
}

// Log contains logging configuration.
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // log file; the TUI always logs to a file
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config path. When empty, fincert.yaml is
	// looked up in the working directory and $HOME/.config/fincert.
	ConfigFile string

	// EnvFile is loaded into the environment first when it exists.
	EnvFile string

	// Flags named in flagAliases are bound on top of every other source.
	Flags *pflag.FlagSet
}

// flagAliases maps short CLI flag names to config keys.
var flagAliases = map[string]string{
	"bank":    "bank_path",
	"notes":   "wrong_notes_path",
	"db":      "db_path",
	"seed":    "seed",
	"addr":    "listen_addr",
	"count":   "random_count",
	"log":     "log.level",
	"logfile": "log.file",
}

// Load reads configuration from all sources.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env is normal.
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("fincert")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fincert")
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagAliases {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bank_path", "database.json")
	v.SetDefault("wrong_notes_path", "wrong_notes.json")
	v.SetDefault("db_path", "")
	v.SetDefault("random_count", selector.DefaultRandomCount)
	v.SetDefault("seed", 0)
	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("no_history", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("exams", []map[string]any{})
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BankPath) == "" {
		return fmt.Errorf("%w: bank_path is empty", ErrInvalidConfig)
	}
	if c.RandomCount <= 0 {
		c.RandomCount = selector.DefaultRandomCount
	}
	seen := make(map[string]bool)
	for _, e := range c.Exams {
		if e.Name == "" {
			return fmt.Errorf("%w: exam preset without a name", ErrInvalidConfig)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate exam preset %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true
		if e.Start > e.End {
			return fmt.Errorf("%w: exam preset %q: start %d > end %d", ErrInvalidConfig, e.Name, e.Start, e.End)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json", ErrInvalidConfig)
	}
	return nil
}
