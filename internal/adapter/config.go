package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// DefaultServerURL is the public Books API
const DefaultServerURL = "https://reactnd-books-api.udacity.com"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds Books API connection settings
type ServerConfig struct {
	URL               string        `mapstructure:"url"`
	Token             string        `mapstructure:"token"`       // Any stable string; identifies the user's shelves
	MaxResults        int           `mapstructure:"max_results"` // Search page size
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	MaxRetries        int           `mapstructure:"max_retries"`
}

// CacheConfig holds search cache settings
type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`        // Empty keeps the cache in memory only
	SearchTTL time.Duration `mapstructure:"search_ttl"` // 0 disables search caching
}

// SyncConfig holds background shelf sync settings
type SyncConfig struct {
	Timeout time.Duration `mapstructure:"timeout"` // Per shelf update
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	RankResults bool `mapstructure:"rank_results"` // Re-rank results by title match instead of server order
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// MetricsConfig holds the optional Prometheus endpoint
type MetricsConfig struct {
	Listen string `mapstructure:"listen"` // e.g. "127.0.0.1:9464"; empty disables
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               DefaultServerURL,
			MaxResults:        20,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
			MaxRetries:        2,
		},
		Cache: CacheConfig{
			Dir:       defaultCachePath(),
			SearchTTL: 10 * time.Minute,
		},
		Sync: SyncConfig{
			Timeout: 10 * time.Second,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "myreads", "myreads.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "myreads", "myreads.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "myreads")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "myreads")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "myreads", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "myreads", "cache")
	}
}

// LoadConfig loads configuration from the default location and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath())
}

// LoadConfigFrom loads config.yaml from dir (falling back to the working
// directory) and applies MYREADS_* environment overrides
func LoadConfigFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	// Environment variable overrides (MYREADS_SERVER_TOKEN, ...)
	v.SetEnvPrefix("MYREADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.token", cfg.Server.Token)
	v.SetDefault("server.max_results", cfg.Server.MaxResults)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)
	v.SetDefault("server.max_retries", cfg.Server.MaxRetries)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.search_ttl", cfg.Cache.SearchTTL)
	v.SetDefault("sync.timeout", cfg.Sync.Timeout)
	v.SetDefault("search.rank_results", cfg.Search.RankResults)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("metrics.listen", cfg.Metrics.Listen)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(defaultConfigPath(), cfg)
}

// SaveConfigTo writes cfg to dir/config.yaml
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("server.max_results", cfg.Server.MaxResults)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("server.requests_per_second", cfg.Server.RequestsPerSecond)
	v.Set("server.max_retries", cfg.Server.MaxRetries)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.search_ttl", cfg.Cache.SearchTTL.String())

	v.Set("sync.timeout", cfg.Sync.Timeout.String())
	v.Set("search.rank_results", cfg.Search.RankResults)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("metrics.listen", cfg.Metrics.Listen)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EnsureToken generates a token on first run. The Books API keys shelves by
// token, so it must stay stable once saved. Returns true if one was generated.
func (c *Config) EnsureToken() bool {
	if c.Server.Token != "" {
		return false
	}
	c.Server.Token = uuid.NewString()
	return true
}

// IsConfigured returns true if the server URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != ""
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
