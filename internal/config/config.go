package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configSubdir   = "config"
	dataSubdir     = "data"
	configFileName = "dposd.toml"
	genesisFile    = "genesis.json"

	// EnvPrefix prefixes environment overrides, e.g. DPOSD_LOG_LEVEL.
	EnvPrefix = "DPOSD"
)

type Config struct {
	// Log Config
	LogLevel   int    `mapstructure:"log_level"`   // zerolog level: 0 = debug, 1 = info, ...
	LogFormat  string `mapstructure:"log_format"`  // "json" or "console"
	LogSampler bool   `mapstructure:"log_sampler"` // if true, samples logs (1 in 5)

	// Node Config
	HomeDir   string `mapstructure:"-"`
	ChainID   string `mapstructure:"chain_id"`
	DBBackend string `mapstructure:"db_backend"` // cosmos-db backend, e.g. "goleveldb" or "memdb"

	// IrreversibleDepth is how many blocks stay reversible during replay.
	IrreversibleDepth int `mapstructure:"irreversible_depth"`

	// HistoryDB is the SQLite file of the reporting index, relative to the data
	// directory. Empty disables indexing.
	HistoryDB string `mapstructure:"history_db"`
}

// Default returns the default config for home.
func Default(home string) Config {
	return Config{
		LogLevel:          1,
		LogFormat:         "console",
		HomeDir:           home,
		ChainID:           "dposd",
		DBBackend:         "goleveldb",
		IrreversibleDepth: 12,
		HistoryDB:         "history.db",
	}
}

func validateConfig(cfg *Config) error {
	if cfg.LogLevel < -1 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between -1 and 5")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}
	if cfg.IrreversibleDepth < 0 {
		return fmt.Errorf("irreversible depth must not be negative")
	}

	if cfg.ChainID == "" {
		cfg.ChainID = "dposd"
	}
	if cfg.DBBackend == "" {
		cfg.DBBackend = "goleveldb"
	}
	return nil
}

func newViper(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(filepath.Join(home, configSubdir, configFileName))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default(home)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("log_sampler", def.LogSampler)
	v.SetDefault("chain_id", def.ChainID)
	v.SetDefault("db_backend", def.DBBackend)
	v.SetDefault("irreversible_depth", def.IrreversibleDepth)
	v.SetDefault("history_db", def.HistoryDB)
	return v
}

// Save writes cfg to <home>/config/dposd.toml.
func Save(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.HomeDir, configSubdir), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(cfg.HomeDir)
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_format", cfg.LogFormat)
	v.Set("log_sampler", cfg.LogSampler)
	v.Set("chain_id", cfg.ChainID)
	v.Set("db_backend", cfg.DBBackend)
	v.Set("irreversible_depth", cfg.IrreversibleDepth)
	v.Set("history_db", cfg.HistoryDB)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads <home>/config/dposd.toml, applying DPOSD_* environment
// overrides. A missing file yields the defaults.
func Load(home string) (Config, error) {
	v := newViper(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.HomeDir = home
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DataDir holds the chain database and the history index.
func (c Config) DataDir() string {
	return filepath.Join(c.HomeDir, dataSubdir)
}

// GenesisFile is the genesis applied on first start.
func (c Config) GenesisFile() string {
	return filepath.Join(c.HomeDir, configSubdir, genesisFile)
}

// HistoryPath returns the history database path, or "" when disabled.
func (c Config) HistoryPath() string {
	if c.HistoryDB == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryDB) {
		return c.HistoryDB
	}
	return filepath.Join(c.DataDir(), c.HistoryDB)
}
