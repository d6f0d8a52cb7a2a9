package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/windowquote/internal/cache"
	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/config"
	"github.com/Simplici0/windowquote/internal/db"
	"github.com/Simplici0/windowquote/internal/events"
	"github.com/Simplici0/windowquote/internal/logger"
	"github.com/Simplici0/windowquote/internal/migrations"
	"github.com/Simplici0/windowquote/internal/quotes"
	"github.com/Simplici0/windowquote/internal/seed"
)

type server struct {
	db      *sql.DB
	cache   *cache.Client
	catalog catalog.Catalog
	quotes  *quotes.Store
	events  events.Publisher
	log     *logger.Logger
}

func main() {
	cfg := config.Load()
	log := logger.New(&cfg.Logger)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.WithError(err).Fatal("failed to run database migrations")
	}

	ctx := context.Background()
	stats, err := seed.Run(ctx, database)
	if err != nil {
		log.WithError(err).Fatal("failed to seed catalog")
	}
	log.WithField("inserted", stats.Inserts).Info("default catalog ensured")

	srv := &server{
		db:     database,
		quotes: quotes.NewStore(database),
		events: events.Nop{},
		log:    log,
	}

	store := catalog.NewStore(database)
	srv.catalog = store
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, &cfg.Redis, log)
		if err != nil {
			log.WithError(err).Warn("catalog cache disabled")
		} else {
			srv.cache = client
			srv.catalog = catalog.NewCached(store, client, cfg.CatalogCacheTTL, log)
			defer client.Close()
		}
	}

	if cfg.Kafka.Enabled() {
		producer, err := events.NewProducer(&cfg.Kafka, log)
		if err != nil {
			log.WithError(err).Warn("quotation events disabled")
		} else {
			srv.events = producer
		}
	}
	defer srv.events.Close()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("address", httpServer.Addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Put("/catalog/profiles/{id}", s.handleProfileUpsert)
		r.Put("/catalog/glass/{id}", s.handleGlassUpsert)
		r.Put("/catalog/charges", s.handleChargesUpdate)
		r.Put("/catalog/accessories", s.handleAccessoriesUpdate)
		r.Put("/catalog/settings", s.handleSettingsUpdate)
		r.Put("/catalog/company", s.handleCompanyUpdate)
		r.Post("/catalog/import", s.handleCatalogImport)

		r.Get("/presets", s.handlePresetsList)
		r.Get("/presets/{code}", s.handlePresetDetail)
		r.Put("/presets/{code}", s.handlePresetUpsert)

		r.Post("/quotations/calculate", s.handleQuotationCalculate)
		r.Post("/quotations", s.handleQuotationCreate)
		r.Get("/quotations", s.handleQuotationsList)
		r.Get("/quotations/{ref}", s.handleQuotationDetail)
		r.Get("/quotations/{ref}/text", s.handleQuotationText)
		r.Get("/quotations/{ref}/xlsx", s.handleQuotationExcel)

		r.Post("/catalog-quotes", s.handleCatalogQuote)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Debug("request handled")
	})
}
