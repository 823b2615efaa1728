package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/preppal-io/prep-pal/modules/api"
	"github.com/preppal-io/prep-pal/modules/hoststore"
	"github.com/preppal-io/prep-pal/modules/inventory"
	"github.com/preppal-io/prep-pal/modules/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := loadConfig()

	log.Println("=== PrepPal - Household Stock ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("NATS Port: %d", cfg.NATSPort)
	log.Printf("Storage Path: %s", cfg.StoragePath)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.StoragePath),
		mono.WithNATSPort(cfg.NATSPort),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// The backend is chosen here, once. The host bridge gets the object
	// store behind the hoststore module; everything else gets a kv bucket.
	if cfg.Privileged {
		hostPlugin, err := fsjetstream.New(fsjetstream.Config{
			Buckets: []fsjetstream.BucketConfig{
				{
					Name:        hoststore.BucketName,
					Description: "Host file store for the stock records",
					Storage:     fsjetstream.FileStorage,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create host storage plugin: %v", err)
		}
		if err := app.RegisterPlugin(hostPlugin, "storage"); err != nil {
			log.Fatalf("Failed to register host storage plugin: %v", err)
		}
		app.Register(hoststore.NewModule(app.Logger()))
	} else {
		localPlugin, err := kvjetstream.New(kvjetstream.Config{
			Buckets: []kvjetstream.BucketConfig{
				{
					Name:        inventory.LocalBucketName,
					Description: "Local key-value store for the stock records",
					Storage:     kvjetstream.FileStorage,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create local storage plugin: %v", err)
		}
		if err := app.RegisterPlugin(localPlugin, "kv"); err != nil {
			log.Fatalf("Failed to register local storage plugin: %v", err)
		}
	}

	app.Register(inventory.NewModule(inventory.Config{
		Privileged:     cfg.Privileged,
		Locale:         cfg.Locale,
		RequestTimeout: cfg.RequestTimeout,
	}, app.Logger()))
	app.Register(api.NewModule(cfg.HTTPPort, app.Logger()))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg Config) {
	backend := storage.BackendLocal
	if cfg.Privileged {
		backend = storage.BackendHost
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  - Storage Backend: %s", backend)
	log.Printf("  - Locale: %s", cfg.Locale)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /api/v1/state               - Dataset and state")
	log.Println("  POST   /api/v1/load                - Reload from storage")
	log.Println("  POST   /api/v1/initialize          - Write a fresh dataset")
	log.Println("  POST   /api/v1/reset               - Delete both records")
	log.Println("  PUT    /api/v1/locale              - Change the locale")
	log.Println("  POST   /api/v1/categories          - Add a category")
	log.Println("  PUT    /api/v1/categories          - Replace all categories")
	log.Println("  PATCH  /api/v1/categories/:id      - Update a category")
	log.Println("  DELETE /api/v1/categories/:id      - Delete a category and its stock")
	log.Println("  PUT    /api/v1/stock               - Replace the stock")
	log.Println("  POST   /api/v1/stock/items         - Add a stock item")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
