package redis

import "time"

// Config holds Redis connection and cache settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for cached dictionary results
	ValidityTTL   time.Duration
	DefinitionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		ValidityTTL:   7 * 24 * time.Hour,
		DefinitionTTL: 7 * 24 * time.Hour,
	}
}
