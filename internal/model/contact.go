package model

import "time"

// Contact message statuses.
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Company          string    `json:"company,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	Message          string    `json:"message"`
	ServiceType      string    `json:"service_type,omitempty"`
	PreferredContact string    `json:"preferred_contact"` // "email" | "phone" | "whatsapp"
	Urgency          string    `json:"urgency"`           // "low" | "normal" | "high" | "urgent"
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ContactListOptions carries filter and pagination parameters for listing contact messages.
type ContactListOptions struct {
	// Status filters by message status. Empty string and "all" return all messages.
	Status string
	// Query matches name, email, company or subject (case-insensitive substring).
	Query  string
	Limit  int
	Offset int
}
