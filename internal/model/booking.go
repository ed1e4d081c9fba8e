package model

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a consultation request made through the booking form.
type Booking struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	ServiceType string `json:"service_type"`
	// PreferredDate is a calendar date in YYYY-MM-DD form.
	PreferredDate string `json:"preferred_date"`
	// PreferredTime is a wall-clock time in HH:MM form (Asia/Dubai).
	PreferredTime string    `json:"preferred_time"`
	MeetingType   string    `json:"meeting_type"` // "in_person" | "video" | "phone"
	Urgency       string    `json:"urgency"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingListOptions filters the admin booking list. From and To are
// inclusive YYYY-MM-DD bounds on PreferredDate.
type BookingListOptions struct {
	Status string
	From   string
	To     string
	Limit  int
	Offset int
}

// BookingReschedule holds the fields an admin may change on a booking.
type BookingReschedule struct {
	PreferredDate *string
	PreferredTime *string
	MeetingType   *string
}
