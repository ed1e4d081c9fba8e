package model

// StatusCounts maps a status value to the number of rows holding it.
type StatusCounts map[string]int

// Total sums every status.
func (c StatusCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// MonthlyCount is the number of submissions in one calendar month ("2026-10").
type MonthlyCount struct {
	Month    string `json:"month"`
	Contacts int    `json:"contacts"`
	Bookings int    `json:"bookings"`
}

// RawStats is what the repositories report; percentages are derived from it.
type RawStats struct {
	Contacts          StatusCounts
	Bookings          StatusCounts
	Clients           StatusCounts
	Posts             StatusCounts
	ContactsByService map[string]int
	BookingsByService map[string]int
	ConvertedContacts int
	Monthly           []MonthlyCount
}

// ServiceShare is one service type's share of submissions.
type ServiceShare struct {
	ServiceType string  `json:"service_type"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
}

// DashboardStats is the analytics dashboard payload.
type DashboardStats struct {
	TotalContacts int          `json:"total_contacts"`
	TotalBookings int          `json:"total_bookings"`
	TotalClients  int          `json:"total_clients"`
	Contacts      StatusCounts `json:"contacts_by_status"`
	Bookings      StatusCounts `json:"bookings_by_status"`
	Clients       StatusCounts `json:"clients_by_status"`
	Posts         StatusCounts `json:"posts_by_status"`

	ContactResponseRate     float64 `json:"contact_response_rate"`
	BookingConfirmationRate float64 `json:"booking_confirmation_rate"`
	BookingCancellationRate float64 `json:"booking_cancellation_rate"`
	ContactConversionRate   float64 `json:"contact_conversion_rate"`

	ContactServices []ServiceShare `json:"contact_services"`
	BookingServices []ServiceShare `json:"booking_services"`
	Monthly         []MonthlyCount `json:"monthly"`
}
