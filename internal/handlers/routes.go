package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lancer-lens/booking-api/internal/auth"
	"github.com/lancer-lens/booking-api/internal/config"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, authHandler *auth.AuthHandler, bookingHandler *BookingHandler, rosterHandler *RosterHandler, adminHandler *AdminHandler, calendarHandler *CalendarHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Lancer Lens Booking API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	withCookie := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/google/login", authHandler.HandleLogin)
	r.Get("/auth/google/callback", authHandler.HandleCallback)
	r.Post("/auth/logout", authHandler.HandleLogout)

	// The schedule is public: the preset catalog, the current roster and
	// the live feed need no session.
	huma.Get(api, "/events", rosterHandler.HandleEvents)
	huma.Get(api, "/roster", rosterHandler.HandleRoster)
	rosterHandler.RegisterFeed(api)

	// Protected routes
	huma.Get(api, "/me", authHandler.HandleMe, withCookie)
	huma.Get(api, "/booking", bookingHandler.HandleGetBooking, withCookie)
	huma.Put(api, "/booking", bookingHandler.HandleSubmit, withCookie)
	huma.Delete(api, "/admin/bookings/{userID}", adminHandler.HandleDeleteBooking, withCookie)

	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Get("/booking/calendar.ics", calendarHandler.HandleDownload)
	})
}
