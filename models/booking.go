package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ServiceID   int64     `json:"serviceId" gorm:"index;not null"`
	ClientName  string    `json:"clientName" gorm:"not null"`
	ClientPhone string    `json:"clientPhone" gorm:"index;not null"`
	StartTime   time.Time `json:"startTime" gorm:"not null"`
	EndTime     time.Time `json:"endTime" gorm:"not null"` // derived: startTime + service duration
	ProviderID  *int64    `json:"providerId"`
	Status      string    `json:"status" gorm:"default:'pending'"`
	Extras      JSONB     `json:"extras" gorm:"type:text"`
	TotalPrice  int64     `json:"totalPrice" gorm:"not null"` // in cents, add-ons already folded in
}

// ValidBookingStatus reports whether s is one of the allowed booking
// states. Any listed state is reachable from any other.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
