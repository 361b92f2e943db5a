// Package config loads the settings of the order reconciler.
//
// Values come from the environment, optionally seeded from a .env file.
// Each section's defaults are the `default` struct tags of its Config type,
// registered with Viper by reflection, so a bare environment yields a
// working local setup (SQLite history, in-process cache, archive off).
//
// Sections and their environment prefixes:
//
//	server     SERVER_     port, api key, CORS origins, timeouts
//	warehouse  WAREHOUSE_  BigQuery project, dataset, credentials, shop id
//	reconcile  RECONCILE_  platforms, thresholds, parallelism, cache, archive
//	database   DATABASE_   history database (mysql or sqlite)
//	storage    STORAGE_    MinIO/S3 archive bucket
//	cache      CACHE_      Redis address, empty for in-process
//	log        LOG_        level and format
//
// PORT, PROJECT_ID and DATASET_ID are read when the sectioned names are unset.
package config
