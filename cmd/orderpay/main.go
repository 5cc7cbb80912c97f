package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studiomart/orderpay/config"
	"github.com/studiomart/orderpay/internal/auth"
	handler "github.com/studiomart/orderpay/internal/handler/http"
	"github.com/studiomart/orderpay/internal/logger"
	"github.com/studiomart/orderpay/internal/mailer"
	"github.com/studiomart/orderpay/internal/middleware"
	"github.com/studiomart/orderpay/internal/repository"
	"github.com/studiomart/orderpay/internal/repository/postgres"
	"github.com/studiomart/orderpay/internal/service"
	"github.com/studiomart/orderpay/internal/wechatpay"
	"go.uber.org/zap"
)

const defaultAuthTokenKey = "f53ac685bbceebd75043e6be2e06ee07"

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKeyHex := cfg.AuthTokenKey
	if tokenKeyHex == "" {
		tokenKeyHex = defaultAuthTokenKey
	}
	tokenKey, err := hex.DecodeString(tokenKeyHex)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// refund clients are built per batch from the current merchant configuration
	refundClientFactory := func(ctx context.Context) (service.RefundClient, error) {
		return wechatpay.NewClient(ctx, cfg.Wechat)
	}

	// dependency injection
	// auth
	authService := service.NewAuthService(token, cfg.AdminPassHash)
	adminHandler := handler.NewAdminHandler(authService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, smtpMailer, cfg.SiteName)
	batchService := service.NewBatchService(orderRepo, smtpMailer, refundClientFactory, cfg.SiteName)
	orderHandler := handler.NewOrderHandler(orderService, batchService)

	// webhook
	webhookHandler := handler.NewWebhookHandler(orderService, cfg.Wechat)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/wechat/notify", webhookHandler.PaymentNotify())
	router.Post("/api/orders", orderHandler.CreateOrder())
	router.Get("/api/orders/check-status", orderHandler.CheckOrderStatus())
	router.Post("/api/admin/login", adminHandler.Login())

	// routes that require admin authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))
		group.Patch("/api/orders/batch", orderHandler.BatchUpdateOrders())
		group.Delete("/api/orders/batch", orderHandler.BatchDeleteOrders())
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
