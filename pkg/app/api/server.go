// Package api implements app.Runner for the API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/edverify/sheerid-verifier/pkg/app/http"
	"github.com/edverify/sheerid-verifier/pkg/attemptstore"
	"github.com/edverify/sheerid-verifier/pkg/config"
	"github.com/edverify/sheerid-verifier/pkg/document"
	"github.com/edverify/sheerid-verifier/pkg/identity"
	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/pgutil"
	mghelper "github.com/edverify/sheerid-verifier/pkg/pgutil/migrations"
	"github.com/edverify/sheerid-verifier/pkg/sheerid"
	verifyservice "github.com/edverify/sheerid-verifier/pkg/verification/service"
)

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	catalog, err := organization.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load school catalog: %w", err)
	}
	logger.Info("Loaded school catalog",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("schools", catalog.Len()),
	)

	client, err := sheerid.New(&sheerid.Config{
		BaseURL:        cfg.SheerID.BaseURL,
		ProgramID:      cfg.SheerID.ProgramID,
		RequestTimeout: cfg.SheerID.RequestTimeout,
		UploadTimeout:  cfg.SheerID.UploadTimeout,
	}, sheerid.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create verification client: %w", err)
	}

	search, err := s.openSearchClient(logger)
	if err != nil {
		return err
	}

	store, closeStore, err := s.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := verifyservice.NewService(
		client,
		catalog,
		identity.NewGenerator(),
		document.NewPortalRenderer(),
		store,
		logger,
	)

	router := s.setupRouter(verifyservice.NewLog(svc, logger), catalog, search, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) openSearchClient(logger *zap.Logger) (*organization.SearchClient, error) {
	if s.cfg.OrgSearch.URL == "" {
		logger.Info("Organization search disabled, no url configured")
		return nil, nil
	}

	search, err := organization.NewSearchClient(&organization.SearchConfig{
		URL:        s.cfg.OrgSearch.URL,
		Country:    s.cfg.OrgSearch.Country,
		Type:       s.cfg.OrgSearch.Type,
		MaxResults: s.cfg.OrgSearch.MaxResults,
		Timeout:    s.cfg.OrgSearch.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create organization search client: %w", err)
	}
	return search, nil
}

// openStore connects the Postgres attempt store when a database is
// configured and falls back to the in-memory store otherwise.
func (s *Server) openStore(ctx context.Context, logger *zap.Logger) (attemptstore.Store, func(), error) {
	if !s.cfg.Database.Enabled {
		logger.Info("Using in-memory attempt store")
		return attemptstore.NewMemoryStore(), func() {}, nil
	}

	db, err := pgutil.ConnectDB(&s.cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect attempt store: %w", err)
	}

	if err := mghelper.CreateSchema(ctx, db, &attemptstore.AttemptDao{}); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create attempt schema: %w", err)
	}

	logger.Info("Connected to attempt store",
		zap.String("host", s.cfg.Database.Host),
		zap.String("database", s.cfg.Database.Database),
	)
	return attemptstore.NewStore(db), func() { _ = db.Close() }, nil
}

func (s *Server) setupRouter(
	svc verifyservice.Service,
	catalog *organization.Catalog,
	search *organization.SearchClient,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.WriteTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Verification endpoints
	verifyservice.RegisterRoutes(r, svc, logger)

	// Catalog and search endpoints
	organization.RegisterRoutes(r, catalog, search, logger)

	return r
}
