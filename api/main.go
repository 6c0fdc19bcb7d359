package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hsuanlee/sentiment-radar/backend/internal/analytics"
	"github.com/hsuanlee/sentiment-radar/backend/internal/config"
	"github.com/hsuanlee/sentiment-radar/backend/internal/cooccurrence"
	"github.com/hsuanlee/sentiment-radar/backend/internal/elasticsearch"
	"github.com/hsuanlee/sentiment-radar/backend/internal/logger"
	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
	"github.com/hsuanlee/sentiment-radar/backend/internal/resultcache"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &server{
		log:   log,
		cfg:   cfg,
		es:    esClient,
		cache: resultcache.New(cfg.CacheTTL),
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/api", srv.handleIndex)
	r.Get("/api/sentiment-data", srv.handleSentimentData)
	r.Get("/api/analytics", srv.handleAnalytics)
	r.Get("/api/cooccurrence", srv.handleCooccurrence)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log   *slog.Logger
	cfg   *config.API
	es    *elasticsearch.Client
	cache *resultcache.Cache
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.es.Health(ctx); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sentiment Analysis API",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /health",
			"GET /api",
			"GET /api/sentiment-data?type=positive|negative|neutral&category=&startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&from=0&size=20",
			"GET /api/analytics",
			"GET /api/cooccurrence?term=暈船&threshold=5",
		},
	})
}

// handleSentimentData serves the canonical document sequence, optionally
// filtered by sentiment label, category and date range, paged via from/size.
// The dashboard computes its own pie/timeline/heatmap groupings from this
// payload.
func (s *server) handleSentimentData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	params, errMsg := s.searchParamsFromQuery(r)
	if errMsg != "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMsg})
		return
	}

	result, err := s.es.SearchDocuments(ctx, params)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	docs := result.Items
	if docs == nil {
		docs = []models.Document{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":  docs,
		"total": result.Total,
		"from":  params.From,
		"size":  params.Size,
	})
}

// searchParamsFromQuery validates the sentiment-data query parameters and
// maps them onto a storage query. A non-empty second return value is the
// client-facing validation error.
func (s *server) searchParamsFromQuery(r *http.Request) (elasticsearch.SearchParams, string) {
	query := r.URL.Query()

	sentimentType := strings.TrimSpace(query.Get("type"))
	switch sentimentType {
	case "", models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		return elasticsearch.SearchParams{}, "Invalid type. Must be positive, negative or neutral."
	}

	start, ok := parseDate(query.Get("startDate"), false)
	if !ok {
		return elasticsearch.SearchParams{}, "Invalid startDate. Use YYYY-MM-DD."
	}
	end, ok := parseDate(query.Get("endDate"), true)
	if !ok {
		return elasticsearch.SearchParams{}, "Invalid endDate. Use YYYY-MM-DD."
	}

	return elasticsearch.SearchParams{
		Sentiment: sentimentType,
		Category:  strings.TrimSpace(query.Get("category")),
		Start:     start,
		End:       end,
		From:      clampInt(query.Get("from"), 0, 10_000),
		Size:      clampInt(query.Get("size"), s.cfg.DefaultPage, s.cfg.MaxPage),
		Sort:      "timestamp:asc",
	}, ""
}

func (s *server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	docs, err := s.fetchCorpus(ctx)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, analytics.Aggregate(docs))
}

// handleCooccurrence validates term and threshold at this boundary; the
// network builder itself assumes a positive integer threshold.
func (s *server) handleCooccurrence(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		term = s.cfg.DefaultTerm
	}

	threshold := s.cfg.DefaultThreshold
	if raw := strings.TrimSpace(r.URL.Query().Get("threshold")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "Invalid threshold. Must be a positive integer.",
			})
			return
		}
		threshold = parsed
	}

	docs, err := s.fetchCorpus(ctx)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if len(docs) == 0 {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "No sentiment data available"})
		return
	}

	network := cooccurrence.BuildNetwork(docs, term, threshold)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"targetTerm": term,
		"threshold":  threshold,
		"nodeCount":  len(network.Nodes),
		"edgeCount":  len(network.Edges),
		"metadata":   network.Metadata,
		"data": map[string]any{
			"nodes": network.Nodes,
			"edges": network.Edges,
		},
	})
}

// fetchCorpus returns the full document set, cached by wall clock so the
// analytics and co-occurrence endpoints do not page through Elasticsearch
// on every request.
func (s *server) fetchCorpus(ctx context.Context) ([]models.Document, error) {
	if cached, ok := s.cache.Get("corpus"); ok {
		if docs, ok := cached.([]models.Document); ok {
			return docs, nil
		}
	}

	docs, err := s.es.FetchAll(ctx, s.cfg.FetchPageSize)
	if err != nil {
		return nil, err
	}

	s.cache.Set("corpus", docs)
	return docs, nil
}

// parseDate accepts an empty value (no filter) or a YYYY-MM-DD date. End
// dates cover the whole day.
func parseDate(raw string, endOfDay bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		ts = ts.Add(24*time.Hour - time.Second)
	}
	return &ts, true
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

// writeJSON encodes the payload; the status line is already on the wire if
// encoding fails, so the failure can only be logged.
func (s *server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response", slog.Any("err", err))
	}
}
