package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lancer-lens/booking-api/internal/auth"
	"github.com/lancer-lens/booking-api/internal/config"
	"github.com/lancer-lens/booking-api/internal/database"
	"github.com/lancer-lens/booking-api/internal/handlers"
	"github.com/lancer-lens/booking-api/internal/roster"
	"github.com/lancer-lens/booking-api/internal/store"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	hub := roster.New()
	bookingStore := store.New(db, cfg.CapacityLimit, hub)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	bookingHandler := handlers.NewBookingHandler(bookingStore, authHandler)
	rosterHandler := handlers.NewRosterHandler(bookingStore, hub)
	adminHandler := handlers.NewAdminHandler(bookingStore, authHandler)
	calendarHandler := handlers.NewCalendarHandler(db, bookingStore)

	// Prime the feed so the first subscriber sees the current roster.
	if err := bookingStore.Broadcast(context.Background()); err != nil {
		log.Printf("Failed to prime roster feed: %v", err)
	}

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, bookingHandler, rosterHandler, adminHandler, calendarHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
