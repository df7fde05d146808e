package handlers

import (
	"errors"
	"net/http"

	"github.com/lancer-lens/booking-api/internal/auth"
	"github.com/lancer-lens/booking-api/internal/calendar"
	"github.com/lancer-lens/booking-api/internal/models"
	"github.com/lancer-lens/booking-api/internal/store"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	db    *gorm.DB
	store *store.Store
}

func NewCalendarHandler(db *gorm.DB, bookingStore *store.Store) *CalendarHandler {
	return &CalendarHandler{db: db, store: bookingStore}
}

// HandleDownload streams the caller's chosen slot as an .ics file.
// ?choice=backup exports the second choice instead of the first. A slot
// whose date or time cannot be parsed yields an advisory, never a crash;
// the form shows a disabled link for those.
func (h *CalendarHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "Unauthorized: Unknown user", http.StatusUnauthorized)
		return
	}

	booking, err := h.store.Get(r.Context(), user.GoogleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "No booking to export", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load booking. Check your connection.", http.StatusServiceUnavailable)
		return
	}

	event, date, clock := booking.Choice1Event, booking.Choice1Date, booking.Choice1Time
	if r.URL.Query().Get("choice") == "backup" {
		event, date, clock = booking.Choice2Event, booking.Choice2Date, booking.Choice2Time
	}

	ev, ok := calendar.Build("Lens Signing: "+event, date, clock)
	if !ok {
		http.Error(w, "This choice has no calendar-ready date and time", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="lens-signing.ics"`)
	w.Write([]byte(ev.ICS()))
}
