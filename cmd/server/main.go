package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/config"
	"github.com/avdeenko/aromashop/internal/db"
	"github.com/avdeenko/aromashop/internal/es"
	"github.com/avdeenko/aromashop/internal/httpserver"
	"github.com/avdeenko/aromashop/internal/logging"
	"github.com/avdeenko/aromashop/internal/mykafka"
	"github.com/avdeenko/aromashop/internal/notify"
	"github.com/avdeenko/aromashop/internal/pricing"
	"github.com/avdeenko/aromashop/internal/repo"
	"github.com/avdeenko/aromashop/internal/search"
	"github.com/avdeenko/aromashop/internal/service"
	"github.com/avdeenko/aromashop/internal/storage"
	"github.com/avdeenko/aromashop/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.ServiceName, cfg.LogLevel)

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		topics := []string{"user_events", "cart_events", "order_events"}
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, topics)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	deps := httpserver.Deps{
		Log:            log,
		DB:             gdb,
		AdminTokenKeys: cfg.AdminTokenKeys,
		Producer:       producer,
		ESIndex:        search.DefaultIndex,
	}

	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
		deps.ES = client
	} else {
		log.Warn("ES_URL not set, product search disabled")
	}

	var photos *storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		photos, err = storage.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
		if err != nil {
			log.Error("object store init failed", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("MINIO_ENDPOINT not set, photo uploads disabled")
	}

	var dispatcher *notify.Dispatcher
	if cfg.SMTPHost != "" {
		mailer := &notify.Mailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}
		dispatcher = notify.NewDispatcher(mailer, log)
	} else {
		log.Warn("SMTP_HOST not set, order emails disabled")
	}

	r := repo.New(gdb)
	tokens := &token.Service{DB: gdb, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}
	fallbackShipping := pricing.ThresholdShipping{FreeOver: cfg.FreeShippingOver, Fee: cfg.ShippingFee}

	deps.Tokens = tokens
	deps.Cart = &service.CartService{Repo: r}
	deps.Checkout = &service.CheckoutService{
		Repo:       r,
		Shipping:   &service.MethodTableResolver{Repo: r, Fallback: fallbackShipping},
		Tax:        pricing.FlatRate{BasisPoints: cfg.TaxRateBP},
		Dispatcher: dispatcher,
		Producer:   producer,
	}
	deps.Orders = &service.OrderService{Repo: r, Dispatcher: dispatcher, Producer: producer}
	deps.Catalog = &service.CatalogService{Repo: r, ES: deps.ES, Index: deps.ESIndex, Photos: photos}
	deps.Address = &service.AddressService{Repo: r}
	deps.Reviews = &service.ReviewService{Repo: r}
	deps.Reports = &service.ReportService{Repo: r}

	e := echo.New()
	e.HideBanner = true
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}

	log.Info("shutdown complete")
}
