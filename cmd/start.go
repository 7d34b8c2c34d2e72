package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-service/core/config"
	"catalog-service/core/database"
	"catalog-service/core/loader"
	"catalog-service/core/logger"
	"catalog-service/core/middleware/jwtauth"
	"catalog-service/core/middleware/rayid"
	"catalog-service/core/storage"
	"catalog-service/core/token"

	"catalog-service/feature/auth"
	"catalog-service/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-service/docs/swagger"
)

// @title Catalog Service API
// @version 1.0
// @description Multi-tenant store and product catalog with batch reconciliation.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (required: every feature persists)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("name", cfg.Database.Name))

		// 4. Initialize Storage (optional: image endpoints degrade without it)
		var store storage.Client
		if cfg.Storage.Endpoint != "" {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(cmd.Context(), client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Fatal("Failed to ensure storage bucket", zap.Error(err))
			}
			store = client
			logg.Info("Connected to object storage", zap.String("bucket", cfg.Storage.Bucket))
		} else {
			logg.Warn("No storage endpoint configured, image endpoints disabled")
		}

		// 5. Token service and guard
		if cfg.Token.Secret == "" {
			logg.Fatal("token secret is not configured")
		}
		tokens := token.NewService(cfg.Token)
		guard := jwtauth.New(jwtauth.Config{Tokens: tokens})

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware Registration
		// RayID first so every later log line can be traced.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Health probe (Public)
		api := app.Group("/api")
		api.Get("/test", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 7. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(auth.NewFeature(db, tokens, guard, logg))
		mgr.Register(catalog.NewFeature(db, store, cfg.Storage.Bucket, cfg.Server, guard, logg))

		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
