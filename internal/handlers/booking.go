package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lancer-lens/booking-api/internal/auth"
	"github.com/lancer-lens/booking-api/internal/catalog"
	"github.com/lancer-lens/booking-api/internal/models"
	"github.com/lancer-lens/booking-api/internal/store"
)

type BookingHandler struct {
	store *store.Store
	auth  *auth.AuthHandler
}

func NewBookingHandler(bookingStore *store.Store, authHandler *auth.AuthHandler) *BookingHandler {
	return &BookingHandler{store: bookingStore, auth: authHandler}
}

// BookingRecord is the wire shape of one reservation.
type BookingRecord struct {
	UserID       string `json:"userId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Contact      string `json:"contact"`
	Choice1Event string `json:"choice1Event"`
	Choice1Date  string `json:"choice1Date"`
	Choice1Time  string `json:"choice1Time"`
	Choice2Event string `json:"choice2Event"`
	Choice2Date  string `json:"choice2Date"`
	Choice2Time  string `json:"choice2Time"`
	UpdatedAt    string `json:"updatedAt"`
}

func toRecord(b models.Booking) BookingRecord {
	return BookingRecord{
		UserID:       b.UserID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Contact:      b.Contact,
		Choice1Event: b.Choice1Event,
		Choice1Date:  b.Choice1Date,
		Choice1Time:  b.Choice1Time,
		Choice2Event: b.Choice2Event,
		Choice2Date:  b.Choice2Date,
		Choice2Time:  b.Choice2Time,
		UpdatedAt:    b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type GetBookingRequest struct {
	auth.AuthInput
}

type GetBookingResponse struct {
	Body BookingRecord
}

// HandleGetBooking hydrates the caller's own record into the edit form.
func (h *BookingHandler) HandleGetBooking(ctx context.Context, input *GetBookingRequest) (*GetBookingResponse, error) {
	user, err := h.auth.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	booking, err := h.store.Get(ctx, user.GoogleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("No booking yet")
		}
		return nil, huma.Error503ServiceUnavailable("Failed to load booking. Check your connection.")
	}

	return &GetBookingResponse{Body: toRecord(*booking)}, nil
}

type SubmitBookingRequest struct {
	auth.AuthInput
	Body struct {
		FirstName    string `json:"firstName" doc:"Registrant first name"`
		LastName     string `json:"lastName" doc:"Registrant last name"`
		Contact      string `json:"contact" doc:"Email or phone number"`
		Choice1Event string `json:"choice1Event" doc:"Preferred event (capacity limited per event and date)"`
		Choice1Date  string `json:"choice1Date" doc:"Preferred date, YYYY-MM-DD"`
		Choice1Time  string `json:"choice1Time" doc:"Preferred time, HH:MM"`
		Choice2Event string `json:"choice2Event" doc:"Backup event"`
		Choice2Date  string `json:"choice2Date" doc:"Backup date, YYYY-MM-DD"`
		Choice2Time  string `json:"choice2Time" doc:"Backup time, HH:MM"`
	}
}

type SubmitBookingResponse struct {
	Body struct {
		Message string        `json:"message"`
		Booking BookingRecord `json:"booking"`
	}
}

// HandleSubmit validates, admits and upserts the caller's reservation.
// A known preset event pins the submission to the catalog's date and
// time, matching the locked fields on the form.
func (h *BookingHandler) HandleSubmit(ctx context.Context, input *SubmitBookingRequest) (*SubmitBookingResponse, error) {
	user, err := h.auth.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID: user.GoogleID,
		BookingFields: models.BookingFields{
			FirstName:    input.Body.FirstName,
			LastName:     input.Body.LastName,
			Contact:      input.Body.Contact,
			Choice1Event: input.Body.Choice1Event,
			Choice1Date:  input.Body.Choice1Date,
			Choice1Time:  input.Body.Choice1Time,
			Choice2Event: input.Body.Choice2Event,
			Choice2Date:  input.Body.Choice2Date,
			Choice2Time:  input.Body.Choice2Time,
		},
	}

	if p, ok := catalog.Lookup(booking.Choice1Event); ok {
		booking.Choice1Date = p.Date
		booking.Choice1Time = p.Time
	}
	if p, ok := catalog.Lookup(booking.Choice2Event); ok {
		booking.Choice2Date = p.Date
		booking.Choice2Time = p.Time
	}

	// Presets filled in their own date and time above, so this runs
	// after pinning: a bare preset name is a complete first choice.
	required := []struct {
		name  string
		value string
	}{
		{"firstName", booking.FirstName},
		{"lastName", booking.LastName},
		{"contact", booking.Contact},
		{"choice1Event", booking.Choice1Event},
		{"choice1Date", booking.Choice1Date},
		{"choice1Time", booking.Choice1Time},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("Missing required field: %s", f.name))
		}
	}

	if err := h.store.Submit(ctx, booking); err != nil {
		var capErr *store.CapacityError
		if errors.As(err, &capErr) {
			return nil, huma.Error409Conflict(fmt.Sprintf(
				"Choice #1 is full! %q on %s already has %d seniors signed up. Please try a different time or date.",
				capErr.Event, capErr.Date, capErr.Limit))
		}
		return nil, huma.Error503ServiceUnavailable("Failed to save. Check your connection.")
	}

	res := &SubmitBookingResponse{}
	res.Body.Message = "Success! Your lens signing is scheduled."
	res.Body.Booking = toRecord(*booking)
	return res, nil
}
