package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"order-reconciler/core/config"
	"order-reconciler/core/loader"
	"order-reconciler/core/logger"
	"order-reconciler/core/middleware/auth"
	"order-reconciler/core/middleware/rayid"
	"order-reconciler/feature/fulfillment"
	"order-reconciler/feature/health"
	"order-reconciler/feature/history"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "order-reconciler/docs/swagger"
)

// @title Order Reconciler API
// @version 1.0
// @description Daily reconciliation of declared shipments and returns against the end-of-day feed.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := context.Background()
		comps, err := setup(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize backends", zap.Error(err))
		}
		defer comps.Close(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:          time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(health.NewFeature(health.NewService(comps.healthDeps(cfg.Storage.Bucket), logg)))
		mgr.Register(fulfillment.NewFeature(comps.reconciler, comps.recorder()))
		mgr.Register(history.NewFeature(comps.history))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request finished",
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		})

		app.Use(cors.New(cors.Config{
			AllowOrigins:  strings.Join(cfg.Server.Origins(), ","),
			AllowHeaders:  strings.Join([]string{"Origin", "Content-Type", "Accept", auth.Header, rayid.Header}, ","),
			ExposeHeaders: strings.Join([]string{rayid.Header, "X-Report-ID"}, ","),
		}))

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Public: []string{"/health", "/swagger"},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(30 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
