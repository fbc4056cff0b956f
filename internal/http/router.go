package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/skill-assessment-api/internal/auth"
	"github.com/redmonkez12/skill-assessment-api/internal/config"
	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/metrics"
	"github.com/redmonkez12/skill-assessment-api/internal/profile"
	"github.com/redmonkez12/skill-assessment-api/internal/results"
	"github.com/redmonkez12/skill-assessment-api/internal/storage"
)

// Handlers groups the feature handlers mounted by the router.
type Handlers struct {
	Auth    *auth.Handler
	Profile *profile.Handler
	Results *results.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	h Handlers,
	authMiddleware *auth.Middleware,
	m *metrics.Metrics,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	if cfg.Storage.Driver == config.StorageDriverLocal {
		r.Handle(storage.URLPrefix+"/*", uploadsHandler(cfg.Storage.LocalDir))
	}

	// Public auth routes
	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/submit-details", h.Profile.SubmitDetails)
		r.Get("/user-details", h.Profile.GetUserDetails)
		r.Get("/progress", h.Profile.GetProgress)

		r.Post("/submit-exam", h.Results.SubmitExam)
		r.Post("/save-score", h.Results.SaveScore)
		r.Post("/complete-review", h.Results.CompleteReview)
		r.Get("/test-history", h.Results.TestHistory)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "route not found", httputil.CodeNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "method not allowed", httputil.CodeBadRequest, http.StatusMethodNotAllowed)
	})

	return r
}

// uploadsHandler serves stored photos without directory listings.
func uploadsHandler(dir string) http.Handler {
	files := http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			httputil.RespondError(w, "file not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
