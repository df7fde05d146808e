// Package store implements persistence for booking records and the
// admission check that caps how many registrants may pick the same
// (event, date) slot.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lancer-lens/booking-api/internal/models"
	"github.com/lancer-lens/booking-api/internal/roster"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested booking does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrCapacityExceeded is the sentinel for admission rejections; match it
// with errors.Is, and use errors.As with *CapacityError for the slot.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityError reports which (event, date) slot rejected a submission.
type CapacityError struct {
	Event string
	Date  string
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%q on %s already has %d bookings", e.Event, e.Date, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Store owns all reads and writes of booking records. Each registrant
// (identified by the auth provider's stable subject id) holds at most one
// record; Submit fully overwrites it in place.
type Store struct {
	db    *gorm.DB
	limit int
	hub   *roster.Hub
}

// New wires a Store over db. limit is the maximum number of distinct
// registrants per (event, date) first-choice slot. hub may be nil when no
// live feed is attached.
func New(db *gorm.DB, limit int, hub *roster.Hub) *Store {
	return &Store{db: db, limit: limit, hub: hub}
}

// Get returns the registrant's own record, upgraded from the legacy
// single-name shape if needed, or ErrNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	booking.DecodeLegacy()
	return &booking, nil
}

// Submit admits and upserts a booking in one transaction.
//
// The naive protocol (count the slot's occupants, then write) leaves a
// window where two submissions both see a free seat and both commit,
// overbooking the slot. Running the count and the save inside a single
// transaction closes that window: the connection pool is pinned to one
// connection (database.Connect, and the test setups), so concurrent
// submissions for the same slot queue rather than hitting SQLITE_BUSY,
// and the loser of the race sees the winner's committed row in its count.
//
// The submitter's own existing record is excluded from the count, so
// re-saving an unchanged first choice never trips the limit. An empty
// first-choice event means "no selection yet" and is admitted without any
// check.
func (s *Store) Submit(ctx context.Context, b *models.Booking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.Choice1Event != "" {
			var count int64
			err := tx.Model(&models.Booking{}).
				Where("choice1_event = ? AND choice1_date = ? AND user_id <> ?",
					b.Choice1Event, b.Choice1Date, b.UserID).
				Count(&count).Error
			if err != nil {
				return fmt.Errorf("count slot occupancy: %w", err)
			}
			if count >= int64(s.limit) {
				return &CapacityError{Event: b.Choice1Event, Date: b.Choice1Date, Limit: s.limit}
			}
		}

		var existing models.Booking
		if err := tx.FirstOrInit(&existing, models.Booking{UserID: b.UserID}).Error; err != nil {
			return fmt.Errorf("load existing booking: %w", err)
		}

		existing.BookingFields = b.BookingFields
		existing.LegacyName = ""
		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("save booking: %w", err)
		}

		*b = existing
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcast(ctx)
	return nil
}

// Delete irreversibly removes a registrant's record. A later submission
// by the same registrant starts a brand-new record.
func (s *Store) Delete(ctx context.Context, userID string) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Booking{})
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.broadcast(ctx)
	return nil
}

// QueryByPrimarySelection returns every record whose first choice matches
// the (event, date) slot exactly.
func (s *Store) QueryByPrimarySelection(ctx context.Context, event, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("choice1_event = ? AND choice1_date = ?", event, date).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("query slot: %w", err)
	}
	for i := range bookings {
		bookings[i].DecodeLegacy()
	}
	return bookings, nil
}

// All returns the full roster sorted ascending by first-choice date.
// Records whose date is missing or unparsable sort first via the zero
// time sentinel rather than being dropped.
func (s *Store) All(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for i := range bookings {
		bookings[i].DecodeLegacy()
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return sortKey(bookings[i].Choice1Date).Before(sortKey(bookings[j].Choice1Date))
	})
	return bookings, nil
}

func sortKey(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Broadcast pushes the current roster to the live feed. main calls it
// once at startup so the first subscriber is not stuck waiting for a
// write; the store calls it after every committed mutation.
func (s *Store) Broadcast(ctx context.Context) error {
	if s.hub == nil {
		return nil
	}
	bookings, err := s.All(ctx)
	if err != nil {
		return err
	}
	s.hub.Publish(bookings)
	return nil
}

func (s *Store) broadcast(ctx context.Context) {
	// A feed hiccup must not fail the write that triggered it; the next
	// mutation re-publishes the full roster anyway.
	if err := s.Broadcast(ctx); err != nil {
		log.Printf("Failed to publish roster snapshot: %v", err)
	}
}
