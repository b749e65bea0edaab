/*
Package handler provides the HTTP handlers and routing setup for the Place Rank API.

This file defines the main Router, applying logging, CORS, and IP-based rate
limiting before delegating to the endpoint handlers. Role-gated routes mount
the jwt gating middlewares, which mirror the client-side auth gate.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"placerank/internal/pkg/auth/jwt"
	"placerank/internal/pkg/limiter"
	"placerank/internal/pkg/logx"
	"placerank/internal/pkg/resp"
)

const (
	// Login and registration share one strict per-IP budget.
	AuthRate  = 0.2
	AuthBurst = 5

	// Live feed connections are cheap but long-lived.
	FeedRate  = 0.5
	FeedBurst = 3
)

// Router sets up the main routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	feedLimiter := limiter.NewIPRateLimiter(rate.Limit(FeedRate), FeedBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				// Non-browser clients (the terminal app) send no Origin.
				return true
			}
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("Live feed connection rejected: origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Place Rank API",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimiter.Middleware)
			auth.Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
		})

		api.Route("/account", func(acct chi.Router) {
			acct.Use(jwt.RequireAuthenticated)
			acct.Get("/profile", HandleGetProfile(deps))
			acct.Put("/profile", HandleUpdateProfile(deps))
		})

		api.Route("/places", func(places chi.Router) {
			places.Get("/", HandleListPlaces(deps))
			places.Get("/{id}", HandleGetPlace(deps))

			places.Group(func(gated chi.Router) {
				gated.Use(jwt.RequireOrganization)
				gated.Post("/", HandleCreatePlace(deps))
				gated.Put("/{id}", HandleUpdatePlace(deps))
				gated.Delete("/{id}", HandleDeletePlace(deps))
				gated.Post("/photo/presign", HandlePresignPhotoURL(deps))
			})

			places.Group(func(authed chi.Router) {
				authed.Use(jwt.RequireAuthenticated)
				authed.Post("/{id}/ratings", HandleAddRating(deps))
				authed.Post("/{id}/comments", HandleAddComment(deps))
			})
		})
	})

	r.Get("/ws/live", HandleLiveFeed(wsUpgrader, feedLimiter, deps))

	return r
}
