package model

import "time"

// Client statuses.
const (
	ClientStatusProspect = "prospect"
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client is a firm client managed from the admin dashboard.
type Client struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Company  string   `json:"company,omitempty"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Services []string `json:"services"`
	Status   string   `json:"status"`
	// TRN is the 15-digit UAE tax registration number, when known.
	TRN   string `json:"trn,omitempty"`
	Notes string `json:"notes,omitempty"`
	// SourceContactID links a client converted from a contact message.
	SourceContactID string    `json:"source_contact_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClientListOptions filters the admin client list.
type ClientListOptions struct {
	Status string
	Query  string
	Limit  int
	Offset int
}
