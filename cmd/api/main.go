// Package main is the entry point for the honeypot API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/internal/agent"
	"github.com/honeynet-labs/agentic-honeypot/internal/config"
	"github.com/honeynet-labs/agentic-honeypot/internal/detector"
	"github.com/honeynet-labs/agentic-honeypot/internal/events"
	"github.com/honeynet-labs/agentic-honeypot/internal/extractor"
	"github.com/honeynet-labs/agentic-honeypot/internal/handler"
	"github.com/honeynet-labs/agentic-honeypot/internal/llm"
	"github.com/honeynet-labs/agentic-honeypot/internal/middleware"
	"github.com/honeynet-labs/agentic-honeypot/internal/pipeline"
	"github.com/honeynet-labs/agentic-honeypot/internal/store"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
	"github.com/honeynet-labs/agentic-honeypot/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting honeypot API server")

	if cfg.APIKey == "" {
		log.Warn("API_KEY not set, all requests will be rejected")
	}

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "agentic-honeypot", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to the event bus if configured
	var emitter events.Emitter = events.NoopEmitter{}
	if cfg.NATSURL != "" {
		natsEmitter, err := events.Connect(cfg.NATSURL, cfg.NATSToken, log)
		if err != nil {
			log.Warn("failed to connect to event bus, events disabled", zap.Error(err))
		} else {
			emitter = natsEmitter
			defer natsEmitter.Close()
		}
	}

	// Initialize the optional LLM enhancement
	var enhancer llm.Enhancer = llm.NoopEnhancer{}
	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" {
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	} else if cfg.OpenAIAPIKey != "" {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if err != nil {
		log.Warn("failed to create LLM client, enhancement disabled", zap.Error(err))
	} else if llmClient != nil {
		enhancer = llm.NewClientEnhancer(llmClient, cfg.LLMTimeout, log)
		log.Info("LLM enhancement enabled", zap.String("provider", llmClient.Name()))
	}

	// Initialize core components
	conversations := store.New()
	ext := extractor.New()
	det := detector.New(ext, enhancer, log)
	eng := agent.New(enhancer, ext, log)
	pipe := pipeline.New(conversations, det, ext, eng, emitter, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler()
	honeypotHandler := handler.NewHoneypotHandler(pipe, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	// Health endpoint (no auth required)
	r.Get("/health", healthHandler.Health)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.APIKey))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/agentic-honeypot", honeypotHandler.Handle)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
