// Package server provides the JSON API HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/infrastructure/config"
	"github.com/tastevine/v1/internal/infrastructure/http/handlers"
	"github.com/tastevine/v1/internal/infrastructure/http/middleware"
	"github.com/tastevine/v1/internal/infrastructure/monitoring"
	"github.com/tastevine/v1/internal/infrastructure/persistence/database"
	"github.com/tastevine/v1/internal/infrastructure/security"
	"github.com/tastevine/v1/internal/ports/inbound"
)

// Server is the API HTTP server
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	server     *http.Server
	router     *chi.Mux
	db         *gorm.DB
	jwtService *security.JWTService
	metrics    *monitoring.MetricsCollector

	voteService   inbound.VoteService
	recipeService inbound.RecipeService
	remedyService inbound.RemedyService
	userService   inbound.UserService
	aiService     inbound.AIService
}

// New creates a new API server instance
func New(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	jwtService *security.JWTService,
	metrics *monitoring.MetricsCollector,
	voteService inbound.VoteService,
	recipeService inbound.RecipeService,
	remedyService inbound.RemedyService,
	userService inbound.UserService,
	aiService inbound.AIService,
) *Server {
	s := &Server{
		config:        cfg,
		logger:        log,
		db:            db,
		jwtService:    jwtService,
		metrics:       metrics,
		voteService:   voteService,
		recipeService: recipeService,
		remedyService: remedyService,
		userService:   userService,
		aiService:     aiService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.RateLimit.Enable {
		r.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerMin, s.config.RateLimit.BurstSize))
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	recipeH := handlers.NewRecipeHandlers(s.recipeService, s.logger)
	remedyH := handlers.NewRemedyHandlers(s.remedyService, s.logger)
	voteH := handlers.NewVoteHandlers(s.voteService, s.logger)
	authH := handlers.NewAuthHandlers(s.userService, s.logger)
	aiH := handlers.NewAIHandlers(s.aiService, s.recipeService, s.config.Server.MaxUploadBytes, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.ListRecipes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.jwtService))
				r.Post("/", recipeH.CreateRecipe)
				r.Get("/saved", recipeH.ListSaved)
				r.Post("/{id}/vote", voteH.CastVote(content.KindRecipe))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuthenticate(s.jwtService))
				r.Get("/{id}", recipeH.GetRecipe)
				r.Get("/{id}/vote", voteH.CheckVote(content.KindRecipe))
			})
		})

		r.Route("/remedies", func(r chi.Router) {
			r.Get("/", remedyH.ListRemedies)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.jwtService))
				r.Post("/", remedyH.CreateRemedy)
				r.Post("/generate", remedyH.GenerateRemedy)
				r.Post("/{id}/vote", voteH.CastVote(content.KindRemedy))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuthenticate(s.jwtService))
				r.Get("/{id}/vote", voteH.CheckVote(content.KindRemedy))
			})
		})

		r.Route("/saved-recipes", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.jwtService))
			r.Get("/", recipeH.ListSaved)
			r.Post("/", aiH.SaveGenerated)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/generate-recipe", aiH.GenerateRecipe)
			r.Post("/analyze-ingredients", aiH.AnalyzeIngredients)
			r.Post("/analyze-image", aiH.AnalyzeImage)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.jwtService))
				r.Post("/save-recipe", aiH.SaveGenerated)
			})
		})
	})

	// Legacy routes kept for older clients. Same handlers, flat paths,
	// and the old 200-with-success-flag contract on business failures.
	r.Post("/api/analyze-ingredients", handlers.Legacy(aiH.AnalyzeIngredients))
	r.Post("/api/generate-recipe", handlers.Legacy(aiH.GenerateRecipe))
	r.Post("/api/analyze-image", handlers.Legacy(aiH.AnalyzeImage))

	return r
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if err := database.HealthCheck(r.Context(), s.db); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusOK {
		fmt.Fprintf(w, `{"status":"healthy","version":%q}`, s.config.App.Version)
		return
	}
	fmt.Fprintf(w, `{"status":"unhealthy","checks":{"database":%q}}`, checks["database"])
}
