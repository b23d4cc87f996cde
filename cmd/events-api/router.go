package main

import (
	"eventsApi/internal/config"
	"eventsApi/internal/http-server/handlers/auth/login"
	"eventsApi/internal/http-server/handlers/auth/me"
	"eventsApi/internal/http-server/handlers/auth/register"
	"eventsApi/internal/http-server/handlers/event/createEvent"
	"eventsApi/internal/http-server/handlers/event/getAllEvents"
	"eventsApi/internal/http-server/handlers/event/getEventInfo"
	"eventsApi/internal/http-server/handlers/health"
	"eventsApi/internal/http-server/handlers/rsvp/createRsvp"
	"eventsApi/internal/http-server/handlers/rsvp/getEventRsvps"
	"eventsApi/internal/http-server/handlers/rsvp/getMyRsvps"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/http-server/middleware/mwlogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"log/slog"
	"net/http"
	"time"
)

// Storage is everything the HTTP handlers need from the database layer.
type Storage interface {
	health.Pinger
	register.UserCreator
	login.UserProvider
	me.UserGetter
	createEvent.EventCreator
	getAllEvents.EventsGetter
	getEventInfo.EventGetter
	createRsvp.RSVPCreator
	getEventRsvps.RSVPsGetter
	getMyRsvps.UserRSVPsGetter
}

type Tokens interface {
	login.TokenIssuer
	mwauth.TokenParser
}

func newRouter(log *slog.Logger, cfg *config.Config, storage Storage, tokens Tokens) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(cfg.HTTPServer.MaxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	router.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	router.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))

	fs := http.FileServer(http.Dir("./static/"))
	router.Handle("/static/*", http.StripPrefix("/static/", fs))

	router.Get("/", redirectToDocs)

	requireAuth := mwauth.Required(log, tokens)
	optionalAuth := mwauth.Optional(log, tokens)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(log, storage))
		r.Get("/docs", redirectToDocs)

		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.Auth.RateLimit, time.Minute))

			r.Post("/register", register.New(log, storage))
			r.Post("/login", login.New(log, storage, tokens))
			r.With(requireAuth).Get("/me", me.New(log, storage))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", getAllEvents.New(log, storage))
			r.Get("/{id}", getEventInfo.New(log, storage))
			r.With(requireAuth).Post("/", createEvent.New(log, storage))
		})

		r.Route("/rsvps", func(r chi.Router) {
			r.With(optionalAuth).Post("/event/{id}", createRsvp.New(log, storage))
			r.With(optionalAuth).Get("/event/{id}", getEventRsvps.New(log, storage))
			r.With(requireAuth).Get("/me", getMyRsvps.New(log, storage))
		})
	})

	return router
}

func redirectToDocs(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusFound)
}
