package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lancer-lens/booking-api/internal/auth"
	"github.com/lancer-lens/booking-api/internal/store"
)

type AdminHandler struct {
	store *store.Store
	auth  *auth.AuthHandler
}

func NewAdminHandler(bookingStore *store.Store, authHandler *auth.AuthHandler) *AdminHandler {
	return &AdminHandler{store: bookingStore, auth: authHandler}
}

type DeleteBookingRequest struct {
	auth.AuthInput
	UserID string `path:"userID" doc:"Registrant identity whose booking to delete"`
}

type DeleteBookingResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleDeleteBooking removes any registrant's record. The allow-list
// check here is the enforcement boundary; UI gating alone is not
// trusted. Deletion is irreversible and the registrant's next submission
// starts a brand-new record.
func (h *AdminHandler) HandleDeleteBooking(ctx context.Context, input *DeleteBookingRequest) (*DeleteBookingResponse, error) {
	caller, err := h.auth.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !h.auth.IsAdmin(caller.Email) {
		return nil, huma.Error403Forbidden("Access denied: admin only")
	}

	if err := h.store.Delete(ctx, input.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Booking not found")
		}
		return nil, huma.Error503ServiceUnavailable("Failed to delete. Check your connection.")
	}

	res := &DeleteBookingResponse{}
	res.Body.Message = fmt.Sprintf("Booking for %s deleted", input.UserID)
	return res, nil
}
