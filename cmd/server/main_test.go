package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"crop-compass/internal/bot"
	"crop-compass/internal/config"
	"crop-compass/internal/domain"
	"crop-compass/internal/forecast"
	"crop-compass/internal/job"
	"crop-compass/internal/service"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewProvider := newProviderFunc
	origNewMock := newMockProviderFunc
	origNewForecast := newForecastServiceFunc
	origStartPoller := startPollerFunc
	origStartTelegram := startTelegramBotFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{RedisURL: "", DatabaseURL: "", AgDataPollSecs: 1}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newProviderFunc = func(trace.Tracer, string) service.PriceProvider { return stubPriceProvider{} }
	newMockProviderFunc = func(trace.Tracer) service.PriceProvider { return stubPriceProvider{} }
	newForecastServiceFunc = forecast.NewService
	startPollerFunc = func(*job.PricePoller, context.Context) {}
	startTelegramBotFunc = func(*service.PriceService, *forecast.Service, bot.Advisor) {}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newProviderFunc = origNewProvider
		newMockProviderFunc = origNewMock
		newForecastServiceFunc = origNewForecast
		startPollerFunc = origStartPoller
		startTelegramBotFunc = origStartTelegram
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

type stubPriceProvider struct{}

func (stubPriceProvider) FetchLatest(ctx context.Context) (map[string]*domain.PricePoint, error) {
	return map[string]*domain.PricePoint{
		"WHEAT": {Commodity: "WHEAT", Price: 6.2},
	}, nil
}

func (stubPriceProvider) FetchHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	return []domain.PricePoint{}, nil
}
