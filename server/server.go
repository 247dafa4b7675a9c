package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/summary"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/users.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/preferences.go -pkg mocks -skip-ensure -fmt goimports . PreferenceStore
//go:generate moq -out mocks/content.go -pkg mocks -skip-ensure -fmt goimports . ContentStore
//go:generate moq -out mocks/summaries.go -pkg mocks -skip-ensure -fmt goimports . SummaryStore
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config      ConfigProvider
	users       UserStore
	preferences PreferenceStore
	content     ContentStore
	summaries   SummaryStore
	generator   Generator
	version     string
	debug       bool
	statsDays   int

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	pageTmpl   *template.Template
}

// UserStore provides user lookup
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// PreferenceStore reads and writes user preferences
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID int64) (*domain.Preferences, error)
	SetPreferences(ctx context.Context, prefs *domain.Preferences) error
}

// ContentStore accepts content pushed by the scraper
type ContentStore interface {
	UpsertWebsite(ctx context.Context, site *domain.Website) error
	CreateContentItem(ctx context.Context, item *domain.ContentItem) error
}

// SummaryStore reads stored digests
type SummaryStore interface {
	GetSummary(ctx context.Context, id string) (*domain.Summary, error)
	ListSummaries(ctx context.Context, userID int64, limit int) ([]domain.Summary, error)
	MarkRead(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time, days int) (*domain.SummaryStats, error)
}

// Generator produces a digest on demand
type Generator interface {
	Generate(ctx context.Context, userID int64, summaryType domain.SummaryType, opts ...summary.Option) (*domain.Summary, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params for New
type Params struct {
	Config      ConfigProvider
	Users       UserStore
	Preferences PreferenceStore
	Content     ContentStore
	Summaries   SummaryStore
	Generator   Generator
	Version     string
	Debug       bool
	StatsDays   int // period of the stats endpoint, 30 if not set
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.StatsDays <= 0 {
		p.StatsDays = 30
	}
	s := &Server{
		config:      p.Config,
		users:       p.Users,
		preferences: p.Preferences,
		content:     p.Content,
		summaries:   p.Summaries,
		generator:   p.Generator,
		version:     p.Version,
		debug:       p.Debug,
		statsDays:   p.StatsDays,
		router:      routegroup.New(http.NewServeMux()),
		pageTmpl:    template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("curator", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(4 * 1024 * 1024)) // articles can be large
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /users/{id}/preferences", s.getPreferencesHandler)
		r.HandleFunc("PUT /users/{id}/preferences", s.setPreferencesHandler)
		r.HandleFunc("GET /users/{id}/summaries", s.listSummariesHandler)
		r.HandleFunc("POST /users/{id}/summaries", s.generateSummaryHandler)

		r.HandleFunc("POST /content", s.createContentHandler)

		r.HandleFunc("GET /summaries/stats", s.statsHandler)
		r.HandleFunc("GET /summaries/{id}", s.getSummaryHandler)
		r.HandleFunc("POST /summaries/{id}/read", s.markReadHandler)
	})

	s.router.HandleFunc("GET /summaries/{id}", s.summaryPageHandler)
}
