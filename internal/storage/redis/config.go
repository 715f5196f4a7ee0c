package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `env:"COUP_REDIS_URL" envDefault:"redis://localhost:6379"`

	// Pool settings
	PoolSize     int `env:"COUP_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"COUP_REDIS_MIN_IDLE_CONNS" envDefault:"2"`

	// TTL settings for different entity types
	GuestPlayerTTL time.Duration `env:"COUP_GUEST_PLAYER_TTL" envDefault:"24h"`
	SessionTTL     time.Duration `env:"COUP_SESSION_TTL" envDefault:"24h"`
	RoomTTL        time.Duration `env:"COUP_ROOM_TTL" envDefault:"24h"`
	GameTTL        time.Duration `env:"COUP_GAME_TTL" envDefault:"24h"`

	// MaxTxRetries bounds optimistic transaction attempts per update
	MaxTxRetries int `env:"COUP_REDIS_MAX_TX_RETRIES" envDefault:"10"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 24 * time.Hour,
		SessionTTL:     24 * time.Hour,
		RoomTTL:        24 * time.Hour,
		GameTTL:        24 * time.Hour,
		MaxTxRetries:   10,
	}
}
