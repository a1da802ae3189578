package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akwaba/listing-service/internal/adapter/httpapi"
	"github.com/akwaba/listing-service/internal/adapter/messaging/nats"
	"github.com/akwaba/listing-service/internal/adapter/repository/cache"
	"github.com/akwaba/listing-service/internal/adapter/repository/mongodb"
	"github.com/akwaba/listing-service/internal/adapter/storage/s3"
	"github.com/akwaba/listing-service/internal/config"
	"github.com/akwaba/listing-service/internal/listing/media"
	"github.com/akwaba/listing-service/internal/listing/usecase"
	"github.com/akwaba/listing-service/internal/mailer"
	"github.com/akwaba/listing-service/internal/platform/logger"
	"github.com/akwaba/listing-service/internal/platform/tracer"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx := context.Background()

	tp, err := tracer.Init(ctx, "listing-service")
	if err != nil {
		log.Warn("Tracer disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Error("Tracer shutdown failed", "error", err)
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(db)
	imageRepo := mongodb.NewImageRepository(db)

	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "address", cfg.RedisAddress, "error", err)
	}

	blobStorage, err := s3.NewStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		log.Fatal("Failed to initialize blob storage", "error", err)
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatal("Failed to connect to NATS", "url", cfg.NATSURL, "error", err)
	}
	defer publisher.Close()

	var notifier usecase.Notifier
	if cfg.SMTPEmail != "" {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	listingUC := usecase.NewListingUsecase(listingRepo, imageRepo, listingCache, publisher, notifier, log)
	mediaUC := usecase.NewMediaUsecase(blobStorage, imageRepo, listingCache, publisher, log)
	previews := media.NewTempFilePreviews(cfg.PreviewDir)

	handler := httpapi.NewHandler(listingUC, mediaUC, previews, log)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, log)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
}
