// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"time"

	"bodycomp/internal/app"
	"bodycomp/internal/token"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// requestTimeout bounds every request, including its storage calls.
const requestTimeout = 10 * time.Second

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth        *app.AuthService
	stats       *app.StatsService
	chat        *app.ChatService
	tokens      *token.Issuer
	sso         *SSOConfig
	corsOrigins []string
}

// New creates a Server wired to the given application services. chat and sso
// may be nil, disabling the corresponding routes.
func New(auth *app.AuthService, stats *app.StatsService, chat *app.ChatService,
	tokens *token.Issuer, sso *SSOConfig, corsOrigins []string) *Server {
	return &Server{
		auth:        auth,
		stats:       stats,
		chat:        chat,
		tokens:      tokens,
		sso:         sso,
		corsOrigins: corsOrigins,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "server is running"})
	})

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	if s.sso != nil && s.sso.Enabled {
		r.Get("/auth/sso/login", s.handleSSOLogin)
		r.Get("/auth/sso/callback", s.handleSSOCallback)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/profile", s.handleProfile)
		r.Delete("/users/{id}", s.handleDeleteUser)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/statistics/summary", s.handleStatisticsSummary)
		if s.chat != nil {
			r.Post("/chat", s.handleChat)
		}
	})

	return r
}
