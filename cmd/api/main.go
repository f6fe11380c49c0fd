package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/config"
	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/event"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/infrastructure/cache"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"github.com/injapanfood/pos-api/internal/infrastructure/feed"
	"github.com/injapanfood/pos-api/internal/infrastructure/mongostore"
	"github.com/injapanfood/pos-api/internal/infrastructure/repository"
	"github.com/injapanfood/pos-api/internal/presentation/http/handler"
	"github.com/injapanfood/pos-api/internal/presentation/http/middleware"
	"github.com/injapanfood/pos-api/internal/presentation/http/routes"
	"github.com/injapanfood/pos-api/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stores bundles the repositories of the selected backend
type stores struct {
	products     domainRepo.ProductRepository
	orders       domainRepo.OrderRepository
	transactions domainRepo.TransactionRepository
	monthly      domainRepo.MonthlyReportRepository
	close        func(ctx context.Context) error
}

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogger(&cfg.App)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Str("env", cfg.App.Env).Msg("invalid configuration")
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()

	st, err := openStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	// Seed default data
	if cfg.Store.SeedCatalog {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.SeedCatalog(seedCtx, st.products); err != nil {
			log.Warn().Err(err).Msg("failed to seed catalog")
		}
		cancel()
	}

	// Live feed and idempotency keys
	var (
		liveFeed        event.Feed
		idempotencyRepo domainRepo.IdempotencyRepository
		redisClient     *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable at startup")
		}
		cancel()
		liveFeed = feed.NewRedisFeed(redisClient, feed.DefaultChannel)
		idempotencyRepo = cache.NewRedisIdempotencyRepository(redisClient)
	} else {
		liveFeed = feed.NewMemoryFeed()
		memIdempotency := cache.NewMemoryIdempotencyRepository()
		defer memIdempotency.Stop()
		idempotencyRepo = memIdempotency
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	shop := entity.StoreInfo{
		StoreName: cfg.Shop.Name,
		Address:   cfg.Shop.Address,
		Phone:     cfg.Shop.Phone,
	}
	sessions := service.NewSessionStore(cfg.POS.SessionTTL)
	checkoutService := service.NewCheckoutService(st.transactions, liveFeed)
	receiptService := service.NewReceiptService(st.transactions, shop, loc)
	posService := service.NewPosService(sessions, st.products, st.transactions, checkoutService, receiptService)
	productService := service.NewProductService(st.products)
	transactionService := service.NewTransactionService(st.transactions)
	orderService := service.NewOrderService(st.orders)
	reportService := service.NewReportService(st.transactions, st.orders, st.monthly, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Pos:         handler.NewPosHandler(posService),
		Product:     handler.NewProductHandler(productService),
		Transaction: handler.NewTransactionHandler(transactionService, loc),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Order:       handler.NewOrderHandler(orderService, loc),
		Dashboard:   handler.NewDashboardHandler(reportService, liveFeed),
		Report:      handler.NewReportHandler(reportService),
	}

	rateLimiter := middleware.NewCashierRateLimiter(middleware.RateLimiterConfigFrom(&cfg.RateLimit))

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Authorizer:      service.NewRoleAuthorizer(cfg.Auth.AdminRoles),
		RateLimiter:     rateLimiter,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("service", cfg.App.Name).
			Str("env", cfg.App.Env).
			Str("port", port).
			Str("store", cfg.Store.Driver).
			Str("timezone", loc.String()).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// live dashboard streams end when the feed closes
	if err := liveFeed.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close live feed")
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	sessions.Stop()
	rateLimiter.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if err := st.close(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to close store")
	}

	log.Info().Msg("server stopped")
}

func setupLogger(app *config.AppConfig) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !app.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func openStores(cfg *config.Config) (*stores, error) {
	gormLevel := logger.Warn
	if cfg.App.LogLevel == "debug" {
		gormLevel = logger.Info
	}

	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, gormLevel)
		if err != nil {
			return nil, err
		}
		return sqlStores(db)
	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.Store.SQLitePath, gormLevel)
		if err != nil {
			return nil, err
		}
		return sqlStores(db)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, err := database.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			log.Warn().Err(err).Msg("failed to create indexes")
		}
		return &stores{
			products:     mongostore.NewProductRepository(db),
			orders:       mongostore.NewOrderRepository(db),
			transactions: mongostore.NewTransactionRepository(db),
			monthly:      mongostore.NewMonthlyReportRepository(db),
			close:        db.Client().Disconnect,
		}, nil
	}
}

func sqlStores(db *gorm.DB) (*stores, error) {
	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &stores{
		products:     repository.NewProductRepository(db),
		orders:       repository.NewOrderRepository(db),
		transactions: repository.NewTransactionRepository(db),
		monthly:      repository.NewMonthlyReportRepository(db),
		close: func(context.Context) error {
			return database.CloseSQL(db)
		},
	}, nil
}
