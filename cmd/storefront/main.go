package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tonpor888/planthubb-sub001/internal/cart"
	"github.com/tonpor888/planthubb-sub001/internal/catalog"
	"github.com/tonpor888/planthubb-sub001/internal/checkout"
	"github.com/tonpor888/planthubb-sub001/internal/coupon"
	"github.com/tonpor888/planthubb-sub001/internal/invoice"
	"github.com/tonpor888/planthubb-sub001/internal/order"
	"github.com/tonpor888/planthubb-sub001/internal/pricing"
	"github.com/tonpor888/planthubb-sub001/internal/publisher"
	"github.com/tonpor888/planthubb-sub001/internal/repository"
	"github.com/tonpor888/planthubb-sub001/internal/seller"

	h "github.com/tonpor888/planthubb-sub001/internal/http"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    string
	DeliveryFee     float64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "planthub"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		DeliveryFee:     getEnvFloat("DELIVERY_FEE", 40),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("invalid float for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// MongoDB backs the coupon and order collections
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Redis carries persisted carts and the realtime product feed
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	var cartAdapter cart.Adapter = cart.NewMemoryAdapter()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Carts degrade to in-memory only; the storefront keeps working.
		log.Printf("Redis unavailable, carts will not survive restarts: %v", err)
	} else {
		cartAdapter = cart.NewRedisAdapter(redisClient)
		log.Printf("Redis ping succeeded")
	}

	products := catalog.New()
	feed := catalog.NewRedisFeed(redisClient, products)
	go feed.Run(ctx)

	carts := cart.NewStore(cartAdapter)
	coupons := coupon.NewResolver(coupon.NewBreakerRepository(coupon.NewMongoRepository(mongoDB)))
	orders := order.NewMongoRepository(mongoDB)

	var events checkout.EventPublisher
	if cfg.KafkaBrokers != "" {
		kp := publisher.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kp.Close()
		events = kp
		log.Printf("Publishing order events to %s", cfg.KafkaBrokers)
	}

	checkoutSvc := checkout.NewService(carts, coupons, orders, events, pricing.Config{DeliveryFee: cfg.DeliveryFee})
	metricsSvc := seller.NewMetricsService(orders)

	cartHandler := h.NewCartHandler(carts, products)
	productHandler := h.NewProductHandler(products)
	checkoutHandler := h.NewCheckoutHandler(checkoutSvc)
	ordersHandler := h.NewOrdersHandler(orders, invoice.TextRenderer{})
	sellerHandler := h.NewSellerHandler(metricsSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.HeaderAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", checkoutHandler.Quote)
			r.Post("/", checkoutHandler.Submit)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
			r.Get("/{order_id}/invoice", ordersHandler.GetInvoice)
			r.Patch("/{order_id}/status", ordersHandler.UpdateStatus)
		})
		r.Get("/seller/metrics", sellerHandler.GetMetrics)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	mongoDB.Client().Disconnect(shutdownCtx)
	log.Println("storefront stopped")
}
