package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Server — админский HTTP API: каталог, промокоды, заказы, пользователи,
// статистика, выгрузки.
type Server struct {
	cfg       config.APIConfig
	repo      domain.Repository
	catalog   domain.CatalogService
	exportDir string
	server    *http.Server
	logger    *zerolog.Logger
}

func NewServer(cfg config.APIConfig, repo domain.Repository, catalog domain.CatalogService, exportDir string, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		repo:      repo,
		catalog:   catalog,
		exportDir: exportDir,
		logger:    logger,
	}

	auth := NewAuth(cfg)

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", cfg.Auth.HeaderAPIKey},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Get("/{id}", s.getCategory)
			r.Put("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.createProduct)
			r.Get("/{id}", s.getProduct)
			r.Put("/{id}", s.updateProduct)
			r.Delete("/{id}", s.deleteProduct)
		})

		r.Route("/promos", func(r chi.Router) {
			r.Get("/", s.listPromos)
			r.Post("/", s.createPromo)
			r.Put("/{id}", s.updatePromo)
			r.Delete("/{id}", s.deletePromo)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Get("/{id}", s.getUser)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Get("/{id}", s.getOrder)
			r.Patch("/{id}/status", s.updateOrderStatus)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/dashboard", s.dashboardStats)
			r.Get("/daily", s.dailyStats)
			r.Get("/popular", s.popularProducts)
		})

		r.Get("/export/orders.xlsx", s.exportOrders)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Admin API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
