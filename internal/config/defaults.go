package config

import (
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultConfig returns the default configuration. Values mirror the
// engine's built-in defaults so an empty config file behaves the same
// as no config file.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			BufferCapacity:       50,
			EstimatedCellSize:    50,
			MaxTablesPerPage:     10,
			MaxTotalCells:        1000,
			SimilarityThreshold:  0.85,
			DuplicateThreshold:   5,
			CacheTTL:             5 * time.Minute,
			CacheSweepInterval:   time.Minute,
			CacheMaxEntries:      1000,
			FingerprintPrefixLen: 10,
			VectorDimension:      16,
			EnqueueTimeout:       100 * time.Millisecond,
			ShutdownTimeout:      30 * time.Second,
		},
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    time.Second,
		},
	}
}

// RenderDefault serializes the default configuration as YAML, used by
// "tablefuse config init" to seed a config file.
func RenderDefault() ([]byte, error) {
	return yaml.Marshal(DefaultConfig())
}
