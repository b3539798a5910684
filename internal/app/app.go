package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailadapter "github.com/guitarshop/cart-service/internal/adapter/email"
	mongoadapter "github.com/guitarshop/cart-service/internal/adapter/mongo"
	natsadapter "github.com/guitarshop/cart-service/internal/adapter/nats"
	redisadapter "github.com/guitarshop/cart-service/internal/adapter/redis"
	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/app/config"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	httpport "github.com/guitarshop/cart-service/internal/port/http"
	"github.com/guitarshop/cart-service/internal/repository"
	"github.com/guitarshop/cart-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	redisClient *redis.Client
	mongoClient *mongo.Client
	natsConn    *nats.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	snapshots := redisadapter.NewCartSnapshotRepository(redisClient, cfg.Cart.SnapshotKey)
	productCache := redisadapter.NewProductDetailCacheRepository(redisClient)

	var mongoClient *mongo.Client
	var orderArchive repository.OrderArchiveRepository
	if cfg.MongoDB.URI != "" {
		appLogger.Info("Initializing MongoDB client...")
		mongoClient, err = mongoadapter.NewClient(ctx, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		orderArchive = mongoadapter.NewOrderArchiveRepository(mongoClient, cfg.MongoDB)
		appLogger.Info("Order archive initialized")
	} else {
		appLogger.Info("MongoDB URI not set, order archiving disabled")
	}

	var natsConn *nats.Conn
	var publisher natsadapter.MessagePublisher
	if cfg.NATS.URL != "" {
		appLogger.Info("Connecting to NATS...")
		natsConn, err = natsadapter.NewConnection(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher, err = natsadapter.NewNATSPublisher(natsConn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		appLogger.Info("NATS publisher initialized")
	} else {
		appLogger.Info("NATS URL not set, checkout events disabled")
	}

	var receiptSender emailadapter.EmailSender
	if cfg.SMTP.Host != "" {
		receiptSender, err = emailadapter.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		appLogger.Info("Receipt sender initialized")
	} else {
		appLogger.Info("SMTP host not set, receipt emails disabled")
	}

	shopClient := shopapi.NewClient(cfg.ShopAPI)

	cartSvc, err := service.NewCartService(ctx, snapshots, appLogger, service.CartServiceConfig{
		SnapshotTTL: cfg.Cart.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cart service: %w", err)
	}
	checkoutSvc := service.NewCheckoutService(cartSvc, shopClient, orderArchive, publisher, receiptSender, appLogger)
	catalogSvc := service.NewCatalogService(shopClient, productCache, appLogger, service.CatalogServiceConfig{
		ProductCacheTTL: cfg.ProductCache.TTL,
	})
	reviewSvc := service.NewReviewService(shopClient, productCache, appLogger)

	handler := httpport.NewHandler(cartSvc, checkoutSvc, catalogSvc, reviewSvc, orderArchive, appLogger)
	server := httpport.NewServer(cfg.HTTPServer, httpport.NewRouter(handler), appLogger)

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		redisClient: redisClient,
		mongoClient: mongoClient,
		natsConn:    natsConn,
	}, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	if a.natsConn != nil {
		a.natsConn.Close()
		a.log.Info("NATS connection closed")
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("Error closing Redis client: %v", err)
	} else {
		a.log.Info("Redis client closed successfully")
	}

	a.log.Info("Application shut down successfully")
}
