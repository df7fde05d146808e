package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/lancer-lens/booking-api/internal/catalog"
	"github.com/lancer-lens/booking-api/internal/models"
	"github.com/lancer-lens/booking-api/internal/roster"
	"github.com/lancer-lens/booking-api/internal/store"
)

type RosterHandler struct {
	store *store.Store
	hub   *roster.Hub
}

func NewRosterHandler(bookingStore *store.Store, hub *roster.Hub) *RosterHandler {
	return &RosterHandler{store: bookingStore, hub: hub}
}

// RosterSnapshot is the full roster, sorted ascending by first-choice
// date. The feed always replaces the whole list; clients never merge.
type RosterSnapshot struct {
	Count    int             `json:"count"`
	Bookings []BookingRecord `json:"bookings"`
}

func toSnapshot(bookings []models.Booking) RosterSnapshot {
	records := make([]BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, toRecord(b))
	}
	return RosterSnapshot{Count: len(records), Bookings: records}
}

type RosterResponse struct {
	Body RosterSnapshot
}

// HandleRoster serves the current snapshot for non-streaming consumers.
func (h *RosterHandler) HandleRoster(ctx context.Context, input *struct{}) (*RosterResponse, error) {
	bookings, err := h.store.All(ctx)
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("Failed to load schedule. Check your connection.")
	}
	return &RosterResponse{Body: toSnapshot(bookings)}, nil
}

// RegisterFeed attaches the live roster stream. The first event carries
// the current roster; each subsequent write on any client produces a
// fresh one. Disconnecting releases the subscription on every exit path.
func (h *RosterHandler) RegisterFeed(api huma.API) {
	sse.Register(api, huma.Operation{
		OperationID: "roster-feed",
		Method:      http.MethodGet,
		Path:        "/roster/feed",
		Summary:     "Live roster feed",
	}, map[string]any{
		"roster": RosterSnapshot{},
	}, func(ctx context.Context, input *struct{}, send sse.Sender) {
		ch, cancel := h.hub.Subscribe()
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case bookings, ok := <-ch:
				if !ok {
					return
				}
				if err := send.Data(toSnapshot(bookings)); err != nil {
					return
				}
			}
		}
	})
}

type EventsResponse struct {
	Body struct {
		Events []catalog.Preset `json:"events"`
	}
}

// HandleEvents serves the preset catalog that pre-fills the form.
func (h *RosterHandler) HandleEvents(ctx context.Context, input *struct{}) (*EventsResponse, error) {
	res := &EventsResponse{}
	res.Body.Events = catalog.Presets()
	return res, nil
}
