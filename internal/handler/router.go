// Package handler provides the HTTP handlers and routing for the forum.
//
// Routing follows one handler per page, with GET rendering and POST
// mutating, redirect-after-post on success. Middleware order: CORS,
// request id, real ip, request logging, panic recovery, then the
// session extractor that identifies the actor.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/limiter"
	"roomhub/internal/pkg/logx"
)

const (
	// AuthRate limits login and register submissions per IP.
	AuthRate  = 0.2
	AuthBurst = 5

	// PostRate limits message posting per IP.
	PostRate  = 0.5
	PostBurst = 5
)

// Router builds the routing table for the application.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	postLimiter := limiter.NewIPRateLimiter(rate.Limit(PostRate), PostBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(session.Extractor(deps.Config.SessionSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": "RoomHub Server",
		})
	})

	// Public pages
	r.Get("/", HandleHome(deps))
	r.Get("/topics", HandleTopics(deps))
	r.Get("/activity", HandleActivity(deps))
	r.Get("/profile/{id}", HandleProfile(deps))
	r.Get("/room/{id}", HandleRoom(deps))
	r.With(postLimiter.Middleware).Post("/room/{id}", HandleRoom(deps))

	// Auth pages
	r.Get("/login", HandleLogin(deps))
	r.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
	r.Get("/register", HandleRegister(deps))
	r.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))
	r.Get("/logout", HandleLogout(deps))

	// Authenticated pages
	r.Group(func(auth chi.Router) {
		auth.Use(session.RequireAuth)

		auth.Get("/create-room", HandleCreateRoom(deps))
		auth.Post("/create-room", HandleCreateRoom(deps))
		auth.Get("/update-room/{id}", HandleUpdateRoom(deps))
		auth.Post("/update-room/{id}", HandleUpdateRoom(deps))
		auth.Get("/delete-room/{id}", HandleDeleteRoom(deps))
		auth.Post("/delete-room/{id}", HandleDeleteRoom(deps))

		auth.Get("/update-message/{id}", HandleUpdateMessage(deps))
		auth.Post("/update-message/{id}", HandleUpdateMessage(deps))
		auth.Get("/delete-message/{id}", HandleDeleteMessage(deps))
		auth.Post("/delete-message/{id}", HandleDeleteMessage(deps))

		auth.Get("/update-user", HandleUpdateProfile(deps))
		auth.Post("/update-user", HandleUpdateProfile(deps))

		auth.Post("/avatar/presign", HandlePresignAvatar(deps))
	})

	return r
}
