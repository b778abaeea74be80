// Package config loads the settings of the trieset command.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aglyzov/go-trieset/internal/logx"
	"github.com/aglyzov/go-trieset/trieset"
)

// EnvPrefix prefixes the environment overrides, e.g. TRIESET_LOG_LEVEL.
const EnvPrefix = "TRIESET"

// Config holds all configuration of the command
type Config struct {
	// Workers is the batch fan-out degree; 0 means one per CPU.
	Workers  int            `mapstructure:"workers"`
	Log      logx.Config    `mapstructure:"log"`
	Wordlist WordlistConfig `mapstructure:"wordlist"`
}

// WordlistConfig holds the accepted byte range of word lists
type WordlistConfig struct {
	MinChar int `mapstructure:"min_char"`
	MaxChar int `mapstructure:"max_char"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"workers":    "workers",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// Load reads the optional config file, then the environment, then the flags
// that were set explicitly. Later sources win.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", trieset.DefaultWorkers)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logx.FormatAuto))
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)

	v.SetDefault("wordlist.min_char", trieset.MinChar)
	v.SetDefault("wordlist.max_char", trieset.MaxChar)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > trieset.MaxWorkers {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}

	lo, hi := c.Wordlist.MinChar, c.Wordlist.MaxChar
	if lo < trieset.MinChar || hi > trieset.MaxChar || lo > hi {
		return fmt.Errorf("invalid wordlist char range [%d..%d], must be within [%d..%d]",
			lo, hi, trieset.MinChar, trieset.MaxChar)
	}

	return nil
}

// TrieOptions turns the settings into trie options.
func (c *Config) TrieOptions() []trieset.Option {
	if c.Workers == 0 {
		return []trieset.Option{trieset.WithMaxWorkers()}
	}
	return []trieset.Option{trieset.WithWorkers(c.Workers)}
}
