package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/ezelectronics-api/cache"
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/initializers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/Kariqs/ezelectronics-api/repository"
	"github.com/Kariqs/ezelectronics-api/routes"
	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/Kariqs/ezelectronics-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	webhookTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer initializers.CloseDB(db)

	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}
	if err := initializers.SeedCatalog(db, cfg.SeedFile); err != nil {
		log.Fatal("Failed to seed catalog: ", err)
	}

	var cartCache cache.CartCache = cache.NoopCache{}
	if cfg.RedisAddr != "" {
		client, err := initializers.ConnectToRedis(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		cartCache = cache.NewRedisCache(client, cfg.CartCacheTTL)
	} else {
		log.Println("REDIS_ADDR not set, cart cache disabled")
	}

	productRepo := repository.NewProductRepository(db)
	cartService := services.NewCartService(db, repository.NewCartRepository(db), productRepo, cartCache, checkoutNotifier(cfg))
	reviewService := services.NewReviewService(repository.NewReviewRepository(db), productRepo)
	userService := services.NewUserService(repository.NewUserRepository(db))

	gin.SetMode(cfg.GinMode)
	server := gin.Default()
	server.Use(middlewares.RequestID())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(server, cfg.JWTSecret, userService, routes.Controllers{
		Carts:    controllers.NewCartController(cartService),
		Products: controllers.NewProductController(services.NewProductService(productRepo)),
		Reviews:  controllers.NewReviewController(reviewService),
		Users:    controllers.NewUserController(userService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
}

func checkoutNotifier(cfg *initializers.Config) services.CheckoutNotifier {
	var notifiers services.MultiNotifier
	if cfg.CheckoutWebhookURL != "" {
		notifiers = append(notifiers, services.NewWebhookNotifier(utils.NewWebhookClient(webhookTimeout), cfg.CheckoutWebhookURL))
	}
	if cfg.Mail.Enabled() && cfg.ReceiptEmailTo != "" {
		notifiers = append(notifiers, services.NewEmailNotifier(cfg.Mail, cfg.ReceiptEmailTo, cfg.ReceiptTemplate))
	}
	return notifiers
}
