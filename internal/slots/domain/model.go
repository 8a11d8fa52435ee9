package domain

import (
	"time"

	centersdomain "github.com/lifelink-health/donation-backend/internal/centers/domain"
)

// SlotStatus tracks a slot's lifecycle. Only the capacity logic in the
// repository may set FULL or flip it back; nothing else writes status
// directly, except the closer which retires past slots.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "AVAILABLE"
	StatusFull      SlotStatus = "FULL"
	StatusClosed    SlotStatus = "CLOSED"
)

// DonationSlot is a time-bounded donation window at a center.
// Invariant: 0 <= BookedSlots <= TotalSlots at every observable point.
type DonationSlot struct {
	ID            string                        `json:"id"`
	CenterID      string                        `json:"centerId"`
	StartTime     time.Time                     `json:"startTime"`
	EndTime       time.Time                     `json:"endTime"`
	DonationTypes []centersdomain.DonationType  `json:"donationType"`
	TotalSlots    int                           `json:"totalSlots"`
	BookedSlots   int                           `json:"bookedSlots"`
	Status        SlotStatus                    `json:"status"`
	CreatedAt     time.Time                     `json:"createdAt"`
	UpdatedAt     time.Time                     `json:"updatedAt"`
}

// CreateSlotRequest carries the validated fields for a new slot.
type CreateSlotRequest struct {
	StartTime     time.Time
	EndTime       time.Time
	DonationTypes []centersdomain.DonationType
	TotalSlots    int
}

// SlotPage is one page of slots ordered by start time ascending, plus the
// pagination bookkeeping. LastPage is ceil(total/limit), 0 for no records.
type SlotPage struct {
	Slots    []DonationSlot `json:"slots"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	LastPage int            `json:"lastPage"`
}
