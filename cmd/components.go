package cmd

import (
	"context"
	"fmt"

	"order-reconciler/core/cache"
	"order-reconciler/core/config"
	"order-reconciler/core/database"
	"order-reconciler/core/storage"
	"order-reconciler/core/warehouse"
	"order-reconciler/feature/fulfillment"
	"order-reconciler/feature/fulfillment/plan"
	"order-reconciler/feature/fulfillment/rules"
	"order-reconciler/feature/health"
	"order-reconciler/feature/history"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// components are the backends and services shared by the server and the
// one-shot commands.
type components struct {
	warehouse  *warehouse.Client
	db         *gorm.DB
	store      storage.Client
	cache      cache.Backend
	reconciler *fulfillment.Service
	history    *history.Service
}

// setup connects every backend. The warehouse is required. The database and
// the archive bucket are optional and disable their features when missing.
func setup(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*components, error) {
	c := &components{}

	wh, err := warehouse.NewClient(ctx, cfg.Warehouse, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse client: %w", err)
	}
	c.warehouse = wh

	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, history disabled", zap.Error(err))
	} else {
		c.db = conn
		repo := history.NewRepository(conn)
		if err := repo.Migrate(); err != nil {
			logg.Warn("Failed to migrate history table, history disabled", zap.Error(err))
		} else {
			c.history = history.NewService(repo, logg)
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}
	}

	c.cache = cache.New(cfg.Cache)
	logg.Info("Cache backend ready", zap.String("backend", c.cache.Name()))

	opts, err := fulfillment.OptionsFromConfig(cfg.Reconcile, cfg.Warehouse)
	if err != nil {
		c.Close(logg)
		return nil, err
	}

	planner := plan.NewPlanner(rules.Default(), plan.Sources{
		Shipments: cfg.Warehouse.ShipmentsTable,
		EndOfDay:  cfg.Warehouse.EndOfDayTable,
		ShopID:    cfg.Warehouse.ShopID,
	})
	c.reconciler = fulfillment.NewService(planner, wh, c.cache, opts, logg)

	if cfg.Reconcile.Archive {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			c.Close(logg)
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket); err != nil {
			logg.Warn("Archive bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		c.store = store
		c.reconciler.WithArchiver(fulfillment.NewArchiver(store, cfg.Storage.Bucket, logg))
	}

	return c, nil
}

// recorder returns the history service as a fulfillment.Recorder, or nil when
// history is disabled.
func (c *components) recorder() fulfillment.Recorder {
	if c.history == nil {
		return nil
	}
	return c.history
}

func (c *components) healthDeps(bucket string) health.Deps {
	deps := health.Deps{
		Warehouse: c.warehouse,
		Storage:   c.store,
		Bucket:    bucket,
		Cache:     c.cache,
	}
	if c.db != nil {
		deps.DB = c.db
		deps.Model = history.SavedReport{}
	}
	return deps
}

// Close releases every backend.
func (c *components) Close(logg *zap.Logger) {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			logg.Warn("Failed to close cache", zap.Error(err))
		}
	}
	if c.warehouse != nil {
		if err := c.warehouse.Close(); err != nil {
			logg.Warn("Failed to close warehouse client", zap.Error(err))
		}
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
