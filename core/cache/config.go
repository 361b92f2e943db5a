package cache

// Config holds configuration for the shared result cache and run lock.
type Config struct {
	// Address is the Redis address (host:port). Empty selects the in-process cache.
	Address string `mapstructure:"address" default:""`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database index.
	DB int `mapstructure:"db" default:"0"`
	// KeyPrefix namespaces every key written by the application.
	KeyPrefix string `mapstructure:"key_prefix" default:"reconciler:"`
}
