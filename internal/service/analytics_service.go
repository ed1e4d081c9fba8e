package service

import (
	"context"
	"sort"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// dashboardMonths is how many calendar months the monthly chart covers.
const dashboardMonths = 6

// AnalyticsService builds the admin dashboard numbers.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type analyticsServiceImpl struct {
	repo repository.StatsRepository
}

// NewAnalyticsService creates an AnalyticsService backed by the given repository.
func NewAnalyticsService(repo repository.StatsRepository) AnalyticsService {
	return &analyticsServiceImpl{repo: repo}
}

func (s *analyticsServiceImpl) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	raw, err := s.repo.Collect(ctx, dashboardMonths)
	if err != nil {
		return nil, err
	}
	stats := BuildDashboard(raw)
	return &stats, nil
}

// Percent returns part/total as a percentage rounded to one decimal place.
// A zero total yields 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

// BuildDashboard derives totals and rates from raw counts.
func BuildDashboard(raw *model.RawStats) model.DashboardStats {
	contacts := nonNilCounts(raw.Contacts)
	bookings := nonNilCounts(raw.Bookings)
	clients := nonNilCounts(raw.Clients)
	posts := nonNilCounts(raw.Posts)

	totalContacts := contacts.Total()
	totalBookings := bookings.Total()

	monthly := raw.Monthly
	if monthly == nil {
		monthly = []model.MonthlyCount{}
	}

	return model.DashboardStats{
		TotalContacts: totalContacts,
		TotalBookings: totalBookings,
		TotalClients:  clients.Total(),
		Contacts:      contacts,
		Bookings:      bookings,
		Clients:       clients,
		Posts:         posts,

		ContactResponseRate: Percent(contacts[model.ContactStatusReplied], totalContacts),
		BookingConfirmationRate: Percent(
			bookings[model.BookingStatusConfirmed]+bookings[model.BookingStatusCompleted], totalBookings),
		BookingCancellationRate: Percent(bookings[model.BookingStatusCancelled], totalBookings),
		ContactConversionRate:   Percent(raw.ConvertedContacts, totalContacts),

		ContactServices: ServiceShares(raw.ContactsByService),
		BookingServices: ServiceShares(raw.BookingsByService),
		Monthly:         monthly,
	}
}

// ServiceShares lists each service's count and share, largest first.
func ServiceShares(counts map[string]int) []model.ServiceShare {
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]model.ServiceShare, 0, len(counts))
	for svc, n := range counts {
		out = append(out, model.ServiceShare{ServiceType: svc, Count: n, Percent: Percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ServiceType < out[j].ServiceType
	})
	return out
}

func nonNilCounts(c model.StatusCounts) model.StatusCounts {
	if c == nil {
		return model.StatusCounts{}
	}
	return c
}
