package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"chatterbot-server/internal/config"
	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/infrastructure/chatstore"
	"chatterbot-server/internal/infrastructure/gemini"
	"chatterbot-server/internal/infrastructure/logger"
	"chatterbot-server/internal/infrastructure/observability"
	"chatterbot-server/internal/interfaces/httpserver"
	"chatterbot-server/internal/interfaces/httpserver/handlers/chathandler"
	"chatterbot-server/internal/interfaces/httpserver/routes/web"
)

type Application struct {
	httpServer  *httpserver.HTTPServer
	metricsPort int
}

func (application *Application) Start() {
	var eg errgroup.Group
	eg.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		return http.ListenAndServe(fmt.Sprintf(":%d", application.metricsPort), mux)
	})
	eg.Go(func() error {
		return application.httpServer.Run()
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func init() {
	bootLog := logger.GetLogger()
	if _, err := config.Load(); err != nil {
		bootLog.Fatal().Err(err).Msg("load config")
	}
}

func main() {
	ctx := context.Background()

	bootLog := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		bootLog.Fatal().Msg("config not loaded")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("initialize logger")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	store := chatstore.NewFileStore(cfg.ChatStorePath, logger.Component("chatstore"))
	chatService := chat.NewService(store, logger.Component("chat"))

	provider, err := gemini.NewClient(ctx, cfg, logger.Component("gemini"))
	if err != nil {
		log.Fatal().Err(err).Msg("create gemini client")
	}

	chatHandler := chathandler.NewChatHandler(chatService, provider, logger.Component("chathandler"))
	webRoute := web.NewWebRoute(chatHandler)
	server := httpserver.NewHTTPServer(webRoute, cfg, log)

	log.Info().
		Str("version", config.Version).
		Int("http_port", cfg.HTTPPort).
		Int("metrics_port", cfg.MetricsPort).
		Str("store", cfg.ChatStorePath).
		Str("model", cfg.GeminiModel).
		Msg("starting chatterbot server")

	application := &Application{httpServer: server, metricsPort: cfg.MetricsPort}
	application.Start()
}
