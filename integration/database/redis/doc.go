// Package redis provides Redis client initialization with retry logic and a
// Redis-backed implementation of session.Storage.
//
// Connect validates the connection URL, establishes the client, and verifies
// connectivity with a ping before returning. Transient failures are retried
// with exponential backoff within ConnectTimeout.
//
// Configuration is environment-driven:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Session storage
//
// SessionStorage keeps the serialized session under a single key, so stores
// built on it behave exactly like file-backed ones but survive across hosts:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := session.NewStore(redis.NewSessionStorage(client,
//		redis.WithKey("shelter:session"),
//		redis.WithTTL(7*24*time.Hour),
//	))
//
// # Health checking
//
// Healthcheck returns a ping-based probe for readiness endpoints:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// report unhealthy
//	}
package redis
