package config

import (
	"reflect"
	"strings"

	"order-reconciler/core/cache"
	"order-reconciler/core/database"
	"order-reconciler/core/logger"
	"order-reconciler/core/reconcile"
	"order-reconciler/core/server"
	"order-reconciler/core/storage"
	"order-reconciler/core/warehouse"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Warehouse holds configuration for the BigQuery data warehouse.
	Warehouse warehouse.Config `mapstructure:"warehouse"`
	// Reconcile holds run settings (platforms, thresholds, execution options).
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Storage holds configuration for the report archive (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the report history database.
	Database database.Config `mapstructure:"database"`
	// Cache holds configuration for the result cache and run lock.
	Cache cache.Config `mapstructure:"cache"`
}

// legacyEnv maps keys to the bare variable names older deployments set.
var legacyEnv = map[string]string{
	"server.port":          "PORT",
	"warehouse.project_id": "PROJECT_ID",
	"warehouse.dataset_id": "DATASET_ID",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnv {
		// The sectioned name wins over the legacy one.
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), name); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
