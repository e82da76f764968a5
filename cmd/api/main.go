package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/config"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/internal/infrastructure/client"
	"github.com/dokanlab/pos-terminal-api/internal/infrastructure/database"
	"github.com/dokanlab/pos-terminal-api/internal/infrastructure/events"
	infraRepo "github.com/dokanlab/pos-terminal-api/internal/infrastructure/repository"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/handler"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/routes"
	"github.com/dokanlab/pos-terminal-api/pkg/printer"
	"github.com/dokanlab/pos-terminal-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token verifier for host-issued cashier tokens
	verifier := utils.NewTokenVerifier(cfg.Auth.Secret)

	// Upstream clients
	catalogClient := client.NewCatalogClient(cfg.Upstream.CatalogURL, cfg.Branch.ID, cfg.Upstream.RequestTimeout)
	paymentClient := client.NewPaymentMethodClient(cfg.Upstream.PaymentMethodsURL, cfg.Upstream.RequestTimeout)
	customerClient := client.NewCustomerClient(cfg.Upstream.CustomerURL, cfg.Upstream.RequestTimeout)
	orderClient := client.NewOrderClient(cfg.Upstream.OrderURL, cfg.Upstream.RequestTimeout)

	// Local sale journal
	saleRecordRepo := infraRepo.NewSaleRecordRepository(db)

	// Event publishing is optional; an empty AMQP URL disables it
	var publisher repository.SaleEventPublisher
	if cfg.AMQP.URL != "" {
		pool, err := events.NewChannelPool(cfg.AMQP.URL, cfg.AMQP.Queue, cfg.AMQP.PoolSize)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer pool.Close()
		publisher = events.NewPublisher(pool, cfg.AMQP.Queue)
	} else {
		log.Println("AMQP_URL not set, sale event publishing disabled")
	}

	// Receipt printer
	receiptPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: printer unavailable, falling back to null printer: %v", err)
		receiptPrinter = printer.NewNullPrinter()
	}
	defer receiptPrinter.Close()

	// Sessions live in memory for the length of a shift
	sessionManager := service.NewSessionManager(16 * time.Hour)

	// Services
	cartService := service.NewCartService(sessionManager, catalogClient)
	paymentService := service.NewPaymentService(sessionManager, paymentClient)
	customerService := service.NewCustomerService(customerClient)
	checkoutService := service.NewCheckoutService(sessionManager, orderClient, catalogClient, saleRecordRepo, publisher)
	receiptService := service.NewReceiptService(sessionManager, orderClient, receiptPrinter, cfg.Branch, cfg.VAT, cfg.Printer)
	salesService := service.NewSalesService(saleRecordRepo)

	// Handlers
	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionManager, paymentService, checkoutService),
		Cart:     handler.NewCartHandler(cartService, checkoutService, sessionManager),
		Payment:  handler.NewPaymentHandler(paymentService, sessionManager),
		Customer: handler.NewCustomerHandler(customerService, checkoutService, sessionManager),
		Checkout: handler.NewCheckoutHandler(checkoutService, sessionManager),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Sales:    handler.NewSalesHandler(salesService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Verifier: verifier,
		Cfg:      cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s (branch %s)", cfg.App.Name, port, cfg.Branch.ID)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
