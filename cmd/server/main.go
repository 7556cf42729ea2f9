package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crop-compass/internal/advisor"
	"crop-compass/internal/bot"
	"crop-compass/internal/cache"
	"crop-compass/internal/config"
	"crop-compass/internal/db"
	"crop-compass/internal/forecast"
	"crop-compass/internal/handler"
	"crop-compass/internal/job"
	"crop-compass/internal/provider"
	"crop-compass/internal/repository"
	"crop-compass/internal/screener"
	"crop-compass/internal/service"
	"crop-compass/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "crop-compass/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newPriceRepoFunc = repository.NewPriceRepository
	newProviderFunc  = func(tracer trace.Tracer, baseURL string) service.PriceProvider {
		return provider.NewAgDataProvider(tracer, baseURL)
	}
	newMockProviderFunc = func(tracer trace.Tracer) service.PriceProvider {
		return provider.NewMockProvider(tracer)
	}
	newPriceServiceFunc     = service.NewPriceService
	newForecastServiceFunc  = forecast.NewService
	newConversationRepoFunc = repository.NewConversationRepository
	newOpenAIClientFunc     = advisor.NewOpenAIClient
	newAdvisorServiceFunc   = advisor.NewAdvisorService
	newPricePollerFunc      = job.NewPricePoller
	startPollerFunc        = func(p *job.PricePoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Crop Compass API
// @version         1.0
// @description     An agricultural commodity price dashboard with forecasting.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repository and run migrations. Without Postgres the service
	// runs straight off the provider.
	var priceRepo service.PriceRepository
	if db.Pool != nil {
		repo := newPriceRepoFunc(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		priceRepo = repo
	}

	// Providers: the upstream API when configured, simulated data otherwise
	mockProvider := newMockProviderFunc(tracer)
	primary := mockProvider
	if cfg.AgDataBaseURL != "" {
		primary = newProviderFunc(tracer, cfg.AgDataBaseURL)
	}

	var marker service.AnomalyMarker
	if cfg.AnomalyScreen {
		marker = screener.New(cfg.AnomalyCutoff)
	}

	priceService := newPriceServiceFunc(tracer, primary, mockProvider, priceRepo, cache.Client, marker)
	forecastService := newForecastServiceFunc(tracer, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Start price poller (background goroutines, stopped by ctx cancel)
	poller := newPricePollerFunc(tracer, priceService, cfg.AgDataPollSecs)
	startPollerFunc(poller, ctx)

	// Advisor (optional)
	var advisorBot bot.Advisor
	if cfg.OpenAIAPIKey != "" {
		var convStore advisor.ConversationStore = advisor.NewMemoryStore()
		if db.Pool != nil {
			convStore = newConversationRepoFunc(db.Pool, tracer)
		}
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		advisorBot = newAdvisorServiceFunc(tracer, llmClient, priceService, forecastService,
			convStore, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
		log.Println("Advisor service enabled")
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(priceService, forecastService, advisorBot)

	// Create handlers and routes
	h := newHandlerFunc(tracer, priceService, forecastService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("crop-compass"))
	r.Use(handler.APIKeyAuth(cfg.APIKey))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
