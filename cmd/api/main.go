// cmd/api/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"talkclass/internal/adapter/events"
	"talkclass/internal/adapter/gemini"
	"talkclass/internal/config"
	"talkclass/internal/domain/feedback"
	"talkclass/internal/server"
	"talkclass/internal/server/handlers"
	assistantService "talkclass/internal/service/assistant"
	"talkclass/internal/service/intent"
	"talkclass/internal/service/keywords"
	"talkclass/internal/service/lexicon"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize event bus
	publisher := events.NewPublisher(nil, cfg.NATS.EventsTopic)
	var feed *handlers.EventStreamHandler
	if cfg.NATS.Enabled() {
		natsConn, err := initNATS(cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsConn.Close()
		publisher = events.NewPublisher(natsConn, cfg.NATS.EventsTopic)
		feed = handlers.NewEventStreamHandler(
			events.NewFeed(natsConn, cfg.NATS.EventsTopic),
			cfg.Server.CorsOrigins,
			logger,
		)
	}

	// Initialize remote model
	var generator *gemini.Client
	if cfg.Gemini.Enabled() {
		generator, err = gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, logger)
		if err != nil {
			// Local heuristics still answer every request
			logger.Warn("gemini unavailable, using local fallback only", "error", err)
			generator = nil
		}
	}

	// Initialize services
	lex := lexicon.Default()
	aggregator := keywords.NewAggregator(lex)

	var batch feedback.BatchGenerator
	if generator != nil && cfg.Gemini.UseKeywords {
		batch = gemini.NewBatchAnalyzer(generator, cfg.Gemini.BatchModel)
	}
	analyzer := keywords.NewAnalyzer(aggregator, batch, logger)

	classifier := intent.NewClassifier()
	synthesizer := assistantService.NewSynthesizer(classifier)

	var remote *assistantService.RemoteProvider
	if generator != nil {
		remote = assistantService.NewRemoteProvider(generator, cfg.Gemini.Timeout, logger)
	}
	assistant := assistantService.NewService(classifier, synthesizer, remote, publisher, logger)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Keywords: handlers.NewKeywordsHandler(aggregator, publisher, handlers.KeywordDefaults{
			Top:          cfg.Keywords.Top,
			MinFrequency: cfg.Keywords.MinFrequency,
		}, logger),
		Assistant: handlers.NewAssistantHandler(assistant, logger),
		Analyze:   handlers.NewAnalyzeHandler(analyzer, logger),
		Events:    feed,
	})

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
			"gemini", generator != nil,
			"nats", cfg.NATS.Enabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger *slog.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("talkclass"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
