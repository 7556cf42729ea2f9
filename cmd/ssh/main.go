package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"crop-compass/internal/advisor"
	"crop-compass/internal/cache"
	"crop-compass/internal/config"
	"crop-compass/internal/db"
	"crop-compass/internal/forecast"
	"crop-compass/internal/provider"
	"crop-compass/internal/repository"
	"crop-compass/internal/service"
	"crop-compass/internal/tui"
	"crop-compass/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
	"go.opentelemetry.io/otel/trace"
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
	newWishServerFunc       = wish.NewServer
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

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

	// Create services
	var priceRepo service.PriceRepository
	if db.Pool != nil {
		priceRepo = newPriceRepoFunc(db.Pool, tracer)
	}
	mockProvider := newMockProviderFunc(tracer)
	primary := mockProvider
	if cfg.AgDataBaseURL != "" {
		primary = newProviderFunc(tracer, cfg.AgDataBaseURL)
	}
	priceService := newPriceServiceFunc(tracer, primary, mockProvider, priceRepo, cache.Client, nil)
	forecastService := newForecastServiceFunc(tracer, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Advisor (optional)
	var advisorSvc *advisor.AdvisorService
	if cfg.OpenAIAPIKey != "" {
		var convStore advisor.ConversationStore = advisor.NewMemoryStore()
		if db.Pool != nil {
			convStore = newConversationRepoFunc(db.Pool, tracer)
		}
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		advisorSvc = newAdvisorServiceFunc(tracer, llmClient, priceService, forecastService,
			convStore, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
		log.Println("SSH advisor service enabled")
	}

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			// The dashboard is read-only, any key may view it
			log.Printf("SSH session: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				var advisorQ tui.AdvisorQuerier
				if advisorSvc != nil {
					advisorQ = advisorSvc
				}
				svc := tui.Services{
					Prices:     priceService,
					Forecaster: forecastService,
					Advisor:    advisorQ,
					Username:   s.User(),
				}

				model := tui.NewAppModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
