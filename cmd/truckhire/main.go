package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/truckhire/truckhire-server/internal/api/http/handler"
	"github.com/truckhire/truckhire-server/internal/api/http/router"
	"github.com/truckhire/truckhire-server/internal/config"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/mailer"
	"github.com/truckhire/truckhire-server/internal/ocr"
	"github.com/truckhire/truckhire-server/internal/password"
	"github.com/truckhire/truckhire-server/internal/repository/postgres"
	"github.com/truckhire/truckhire-server/internal/server"
	"github.com/truckhire/truckhire-server/internal/service"
	storage "github.com/truckhire/truckhire-server/internal/storage/minio"
	"github.com/truckhire/truckhire-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	truckRepo := postgres.NewTruckRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := password.NewHasher(cfg.Password.Cost)
	smtpMailer := mailer.NewSMTP(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	})

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	textReader := ocr.NewClient(ocr.Config{
		Endpoint:        cfg.OCR.Endpoint,
		SubscriptionKey: cfg.OCR.SubscriptionKey,
	})

	authService := service.NewAuth(userRepo, tokenManager, hasher, smtpMailer, cfg.Reset.Window, cfg.PublicURL, logger.WithComponent("auth"))
	userService := service.NewUser(userRepo, storageClient, logger.WithComponent("user"))
	truckService := service.NewTruck(truckRepo, storageClient, logger.WithComponent("truck"))
	bookingService := service.NewBooking(bookingRepo, truckRepo, logger.WithComponent("booking"))
	licenseService := service.NewLicense(storageClient, textReader, logger.WithComponent("license"))

	handlers := router.Handlers{
		Auth:    handler.NewAuth(authService, logger),
		User:    handler.NewUser(userService, logger),
		Truck:   handler.NewTruck(truckService, logger),
		Booking: handler.NewBooking(bookingService, logger),
		License: handler.NewLicense(licenseService, logger),
	}

	routes := router.New(handlers, authService, logger)

	var opts []server.Option
	if cfg.HTTP.EnableHTTPS {
		opts = append(opts, server.WithTLS(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName))
	}
	httpServer := server.NewHTTPServer(fmt.Sprintf(":%s", cfg.HTTP.Port), routes, opts...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
