package labelkit

import (
	"errors"
	"time"
)

// Config defines a public type used by labelkit APIs.
//
// Config instances are intended to be configured during initialization
// and then treated as immutable.
type Config struct {
	API           APIConfig
	Store         StoreConfig
	Notifications NotificationsConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the remote platform API.
type APIConfig struct {
	// BaseURL is the API root, e.g. "https://api.labelreader.io/api".
	// Endpoint paths ("/auth/login", "/notifications", ...) are appended
	// to it.
	BaseURL string
	// Timeout bounds each outbound request when no base client was
	// provided through the builder.
	Timeout time.Duration
	// DisableRequestID turns off X-Request-ID stamping.
	DisableRequestID bool
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the durable credential store.
type StoreConfig struct {
	// RedisPrefix namespaces the credential hash when the store is built
	// from a Redis client.
	RedisPrefix string
	// LoadTimeout bounds the boot-time read that seeds session state.
	LoadTimeout time.Duration
}

/*
====================================
NOTIFICATIONS CONFIG
====================================
*/

// NotificationsConfig controls the unread-count poll loop.
type NotificationsConfig struct {
	// PollInterval is the fixed tick of the background fetch.
	PollInterval time.Duration
	// PageSize is the default page size for notification listing.
	PageSize int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async session-event audit trail.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the emitter when the
	// buffer is saturated. Dropped events are counted.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 15 * time.Second,
		},
		Store: StoreConfig{
			RedisPrefix: "labelkit",
			LoadTimeout: 5 * time.Second,
		},
		Notifications: NotificationsConfig{
			PollInterval: 30 * time.Second,
			PageSize:     20,
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.API.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if cfg.API.Timeout <= 0 {
		return errors.New("api timeout must be positive")
	}
	if cfg.Store.LoadTimeout <= 0 {
		return errors.New("store load timeout must be positive")
	}
	if cfg.Notifications.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if cfg.Notifications.PageSize <= 0 {
		return errors.New("notification page size must be positive")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive")
	}
	return nil
}
