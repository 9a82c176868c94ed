package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-control/internal/auth"
	"github.com/ukydev/fleet-control/internal/config"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/handlers"
	"github.com/ukydev/fleet-control/internal/notify"
	"github.com/ukydev/fleet-control/internal/server"
	"github.com/ukydev/fleet-control/internal/storage"
)

func main() {
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	cfg.ConfigureLogging()

	if err := run(context.Background(), cfg); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()
	log.WithField("database", cfg.Mongo.Database).Info("Connected to MongoDB")

	store := db.NewStore(client, cfg.Mongo.Database)
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	var objects storage.ObjectStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to configure object storage: %w", err)
		}
		objects = s3Store
		log.WithField("bucket", cfg.S3.Bucket).Info("Attachment storage enabled")
	} else {
		log.Warn("S3_BUCKET not set, attachment uploads are disabled")
	}

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.MQTT.Enabled() {
		p, err := notify.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("failed to connect to MQTT broker: %w", err)
		}
		publisher = p
	}
	defer publisher.Close()

	authService, err := auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return err
	}

	api := server.NewWebAPI(server.Config{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		TrustProxy:     cfg.TrustProxy,
		Auth:           authService,
		Handlers:       buildHandlers(store, objects, notify.NewNotifier(publisher, cfg.MQTT.Topic), cfg.Attachments.MaxBytes),
	})
	log.WithField("port", cfg.Port).Info("HTTP server listening")
	return api.Start(ctx)
}

// buildHandlers wires every REST resource to its collections.
func buildHandlers(store *db.Store, objects storage.ObjectStore, oil handlers.OilChecker, maxAttachmentBytes int64) server.Handlers {
	sources := handlers.ReportSources{
		Vehicles:    store.Vehicles,
		Fuel:        store.FuelEntries,
		Maintenance: store.Maintenance,
		Cities:      store.Cities,
		Technicians: store.Technicians,
		Settings:    store.Settings,
	}
	return server.Handlers{
		Vehicles:    handlers.NewVehicleHandler(store.Vehicles, store.FuelEntries, nil),
		Fuel:        handlers.NewFuelHandler(store.FuelEntries, store.Vehicles, oil, nil),
		Maintenance: handlers.NewMaintenanceHandler(store.Maintenance, nil),
		Technicians: handlers.NewTechnicianHandler(store.Cities, store.Technicians, store.Settings, nil),
		Attachments: handlers.NewAttachmentHandler(store.Attachments, objects, maxAttachmentBytes, nil),
		Reports:     handlers.NewReportHandler(sources, nil),
		Exports:     handlers.NewExportHandler(sources, nil),
		Profile:     handlers.NewProfileHandler(),
	}
}
