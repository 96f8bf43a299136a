package configinfra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. SBX_LOG_LEVEL
const EnvPrefix = "SBX"

// Config is the explorer's runtime configuration
type Config struct {
	LogLevel            string `mapstructure:"log_level"`
	LogFile             string `mapstructure:"log_file"`
	LogConsole          bool   `mapstructure:"log_console"`
	RegistryFile        string `mapstructure:"registry_file"`
	ContextTab          string `mapstructure:"context_tab"`
	NotificationHistory int    `mapstructure:"notification_history"`
	MockSeed            int64  `mapstructure:"mock_seed"`
	DataDir             string `mapstructure:"data_dir"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		ContextTab:          "blocks",
		NotificationHistory: 20,
	}
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.NotificationHistory <= 0 {
		return fmt.Errorf("notification_history must be positive, got %d", c.NotificationHistory)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

// Loader handles configuration loading from file, environment and flags
type Loader struct {
	configPath string
	v          *viper.Viper
}

// NewLoader creates a new config loader. An empty path means
// $HOME/.sbx/config.yaml, which may be absent.
func NewLoader(configPath string) *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_console", defaults.LogConsole)
	v.SetDefault("registry_file", defaults.RegistryFile)
	v.SetDefault("context_tab", defaults.ContextTab)
	v.SetDefault("notification_history", defaults.NotificationHistory)
	v.SetDefault("mock_seed", defaults.MockSeed)
	v.SetDefault("data_dir", defaults.DataDir)

	return &Loader{configPath: configPath, v: v}
}

// BindFlag lets an explicitly set command-line flag override key
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %s not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Override forces key to value regardless of file, env and flags
func (l *Loader) Override(key string, value interface{}) {
	l.v.Set(key, value)
}

// Load reads the configuration. Precedence: flags, env, file, defaults.
func (l *Loader) Load() (*Config, error) {
	path, explicit, err := l.resolvePath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if explicit || !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", statErr)
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".sbx")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "sbx.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the file the last Load read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) resolvePath() (path string, explicit bool, err error) {
	if l.configPath != "" {
		return l.configPath, true, nil
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env, true, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sbx", "config.yaml"), false, nil
}
