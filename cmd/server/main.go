package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/trilhasedu/interest-engine/internal/artifact"
	"github.com/trilhasedu/interest-engine/internal/cache"
	"github.com/trilhasedu/interest-engine/internal/catalog"
	"github.com/trilhasedu/interest-engine/internal/database"
	"github.com/trilhasedu/interest-engine/internal/engine"
	"github.com/trilhasedu/interest-engine/internal/monitoring"
	"github.com/trilhasedu/interest-engine/internal/server"
)

func main() {
	appLogger := monitoring.NewLogger()
	slog.SetDefault(appLogger.Logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	artifactPath := getEnvOrDefault("ARTIFACT_PATH", "./data/interest_classifier.json")
	embedderURL := os.Getenv("EMBEDDER_URL")
	embedderName := getEnvOrDefault("EMBEDDER_NAME", "paraphrase-multilingual-mpnet-base-v2")
	fallbackURLs := os.Getenv("EMBEDDER_FALLBACK_URLS")
	cacheTTL := getEnvDuration("EMBEDDING_CACHE_TTL", time.Hour)
	inferenceTimeout := getEnvDuration("INFERENCE_TIMEOUT", 15*time.Second)
	rateRPS := getEnvFloat("RATE_LIMIT_RPS", 5)
	rateBurst := getEnvInt("RATE_LIMIT_BURST", 10)

	// Model artifact and embedding provider. A failure here disables the
	// text channel; questionnaire-only scoring keeps serving.
	art, embedder := loadTextChannel(appLogger, artifactPath, embedderURL, embedderName, fallbackURLs, inferenceTimeout)

	// History store
	var repo *database.Repository
	db, err := database.NewDB(dataDir)
	if err != nil {
		appLogger.Error("Failed to initialize database, history disabled", "error", err)
	} else {
		defer db.Close()
		repo = database.NewRepository(db)
	}

	embCache := cache.NewEmbeddingCache(cacheTTL)
	defer embCache.Close()

	eng := engine.New(engine.DefaultConfig(), art, embedder,
		engine.WithLogger(appLogger.Logger),
		engine.WithEmbeddingCache(embCache),
		engine.WithInferenceTimeout(inferenceTimeout),
	)

	metrics := monitoring.NewMetrics()
	handler := server.NewHandler(eng, catalog.Default(), repo, appLogger, metrics)

	routerCfg := server.DefaultRouterConfig()
	routerCfg.RateRPS = rateRPS
	routerCfg.RateBurst = rateBurst
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		routerCfg.AllowedOrigins = strings.Split(origins, ",")
	}
	router := server.NewRouter(handler, routerCfg, appLogger, metrics)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting interest mapping server",
			"port", port,
			"text_enabled", eng.TextEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", "error", err)
	}
}

// loadTextChannel loads the artifact and resolves a compatible embedding
// provider. Either failing returns nils: the engine then runs
// questionnaire-only.
func loadTextChannel(logger *monitoring.Logger, artifactPath, embedderURL, embedderName, fallbackURLs string, timeout time.Duration) (*artifact.Artifact, artifact.Embedder) {
	art, err := artifact.Load(artifactPath)
	if err != nil {
		logger.Error("Failed to load model artifact, text channel disabled",
			"path", artifactPath,
			"error", err,
		)
		return nil, nil
	}

	var candidates []artifact.Embedder
	if embedderURL != "" {
		candidates = append(candidates, artifact.NewHTTPEmbedder(embedderName, embedderURL, timeout))
	}
	for i, u := range strings.Split(fallbackURLs, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		candidates = append(candidates, artifact.NewHTTPEmbedder("fallback-"+strconv.Itoa(i+1), u, timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	embedder, err := artifact.ResolveEmbedder(ctx, art, candidates, logger.Logger)
	if err != nil {
		logger.Error("No compatible embedding provider, text channel disabled", "error", err)
		return nil, nil
	}
	return art, embedder
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
