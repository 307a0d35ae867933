// Package config loads and hot-reloads tablefuse configuration.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the full configuration surface. Every engine tunable is
// externally configurable with a sensible default.
type Config struct {
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	Retry  RetryConfig  `mapstructure:"retry" yaml:"retry"`
}

// EngineConfig holds the reconciliation engine tunables.
type EngineConfig struct {
	BufferCapacity       int           `mapstructure:"buffer_capacity" yaml:"buffer_capacity"`
	EstimatedCellSize    int           `mapstructure:"estimated_cell_size" yaml:"estimated_cell_size"`
	MaxTablesPerPage     int           `mapstructure:"max_tables_per_page" yaml:"max_tables_per_page"`
	MaxTotalCells        int           `mapstructure:"max_total_cells" yaml:"max_total_cells"`
	SimilarityThreshold  float64       `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	DuplicateThreshold   int           `mapstructure:"duplicate_threshold" yaml:"duplicate_threshold"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	CacheSweepInterval   time.Duration `mapstructure:"cache_sweep_interval" yaml:"cache_sweep_interval"`
	CacheMaxEntries      int           `mapstructure:"cache_max_entries" yaml:"cache_max_entries"`
	FingerprintPrefixLen int           `mapstructure:"fingerprint_prefix_len" yaml:"fingerprint_prefix_len"`
	VectorDimension      int           `mapstructure:"vector_dimension" yaml:"vector_dimension"`
	EnqueueTimeout       time.Duration `mapstructure:"enqueue_timeout" yaml:"enqueue_timeout"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RetryConfig controls the retrying consumer decorator.
type RetryConfig struct {
	Attempts uint          `mapstructure:"attempts" yaml:"attempts"`
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("engine", defaults.Engine)
	viper.SetDefault("retry", defaults.Retry)

	// Environment variables with TABLEFUSE_ prefix
	viper.SetEnvPrefix("TABLEFUSE")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.tablefuse")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
