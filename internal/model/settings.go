package model

import "time"

// Settings is the firm-wide configuration edited from the admin dashboard.
type Settings struct {
	FirmName      string `json:"firm_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	WhatsApp      string `json:"whatsapp,omitempty"`
	Address       string `json:"address"`
	BusinessHours string `json:"business_hours"`

	NotifyOnContact   bool   `json:"notify_on_contact"`
	NotifyOnBooking   bool   `json:"notify_on_booking"`
	DailyDigest       bool   `json:"daily_digest"`
	NotificationEmail string `json:"notification_email,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PublicSettings is the subset of Settings the marketing site may read.
type PublicSettings struct {
	FirmName      string `json:"firm_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	WhatsApp      string `json:"whatsapp,omitempty"`
	Address       string `json:"address"`
	BusinessHours string `json:"business_hours"`
}

// Public strips the admin-only fields.
func (s *Settings) Public() PublicSettings {
	return PublicSettings{
		FirmName:      s.FirmName,
		Email:         s.Email,
		Phone:         s.Phone,
		WhatsApp:      s.WhatsApp,
		Address:       s.Address,
		BusinessHours: s.BusinessHours,
	}
}

// DefaultSettings is served until an admin saves settings for the first time.
func DefaultSettings() *Settings {
	return &Settings{
		FirmName:        "Ledgerline Accounting & Auditing",
		Email:           "info@ledgerline.ae",
		Phone:           "+971 4 000 0000",
		Address:         "Business Bay, Dubai, United Arab Emirates",
		BusinessHours:   "Mon-Fri 09:00-18:00",
		NotifyOnContact: true,
		NotifyOnBooking: true,
		DailyDigest:     true,
	}
}
