package models

import (
	"strings"

	"gorm.io/gorm"
)

// BookingFields is the editable payload of a booking. Every submission
// overwrites all of it; there is no partial patch.
type BookingFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Contact   string `json:"contact"`

	// Choice 1 is the capacity-limited slot. An empty event name means
	// the registrant has not picked yet and does not occupy a slot.
	Choice1Event string `json:"choice1Event"`
	Choice1Date  string `json:"choice1Date"`
	Choice1Time  string `json:"choice1Time"`

	// Choice 2 is the backup and is never counted against capacity.
	Choice2Event string `json:"choice2Event"`
	Choice2Date  string `json:"choice2Date"`
	Choice2Time  string `json:"choice2Time"`
}

// Booking is one registrant's reservation. UserID is the identity
// provider's stable subject id, so the unique index makes the identity
// itself the upsert key: a registrant can never hold two records.
type Booking struct {
	gorm.Model
	UserID        string `json:"userId" gorm:"uniqueIndex"`
	BookingFields `gorm:"embedded"`

	// LegacyName holds the single combined name field written by the
	// first deployment. It is split into FirstName/LastName on read and
	// cleared on the next save.
	LegacyName string `json:"-"`
}

// DecodeLegacy upgrades a record from the old shape that stored one
// combined name. Applied at the store-read boundary; the result is not
// persisted until the registrant saves again.
func (b *Booking) DecodeLegacy() {
	if b.FirstName != "" || b.LegacyName == "" {
		return
	}
	first, last, _ := strings.Cut(strings.TrimSpace(b.LegacyName), " ")
	b.FirstName = first
	b.LastName = strings.TrimSpace(last)
}
