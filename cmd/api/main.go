package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/mailer"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	smtpMailer := mailer.NewSMTPMailer(&cfg.SMTP)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shippingRepo := repository.NewShippingRepository(db)
	wishListRepo := repository.NewWishListRepository(db)
	cardConfigRepo := repository.NewCardConfigRepository(db)

	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(
		cartRepo,
		productRepo,
		orderRepo,
		stripeClient,
		cfg.Checkout,
	)
	paymentService := service.NewPaymentService(orderRepo, paymentRepo, stripeClient)
	shippingService := service.NewShippingService(shippingRepo, orderRepo, paymentRepo, userRepo, smtpMailer)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	wishListService := service.NewWishListService(wishListRepo, productRepo)
	layoutService := service.NewLayoutService(cardConfigRepo, productRepo, categoryRepo)

	// nightly layout refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Layout.CronSpec, func() {
		if err := layoutService.RunAutoRefresh(context.Background()); err != nil {
			log.Println("auto layout refresh failed:", err)
		}
	}); err != nil {
		fmt.Printf("Failed to schedule layout refresh: %v\n", err)
		os.Exit(1)
	}
	scheduler.Start()

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		cartService,
		checkoutService,
		paymentService,
		shippingService,
		catalogService,
		wishListService,
		layoutService,
		cfg.JWT.Secret,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	scheduler.Stop()

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
