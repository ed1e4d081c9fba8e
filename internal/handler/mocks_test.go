package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// testUUID is a well-formed row id for admin {id} routes.
const testUUID = "6f1d2c3b-4a5e-4f60-8a71-9b2c3d4e5f60"

// ---------------------------------------------------------------------------
// Service mocks
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc       func(ctx context.Context, msg *model.ContactMessage) error
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	getFunc          func(ctx context.Context, id string) (*model.ContactMessage, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.ContactMessage{ID: id}, nil
}

func (m *mockContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBookingService struct {
	submitFunc       func(ctx context.Context, b *model.Booking) error
	listFunc         func(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error)
	getFunc          func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id, status string) (*model.Booking, error)
	rescheduleFunc   func(ctx context.Context, id string, change model.BookingReschedule) (*model.Booking, error)
	deleteFunc       func(ctx context.Context, id string) error
	agendaFunc       func(ctx context.Context, date string) ([]*model.Booking, error)
}

func (m *mockBookingService) Submit(ctx context.Context, b *model.Booking) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, b)
	}
	return nil
}

func (m *mockBookingService) List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockBookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &model.Booking{ID: id, Status: status}, nil
}

func (m *mockBookingService) Reschedule(ctx context.Context, id string, change model.BookingReschedule) (*model.Booking, error) {
	if m.rescheduleFunc != nil {
		return m.rescheduleFunc(ctx, id, change)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) Agenda(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.agendaFunc != nil {
		return m.agendaFunc(ctx, date)
	}
	return nil, nil
}

type mockClientService struct {
	createFunc  func(ctx context.Context, c *model.Client) error
	listFunc    func(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error)
	getFunc     func(ctx context.Context, id string) (*model.Client, error)
	updateFunc  func(ctx context.Context, c *model.Client) error
	deleteFunc  func(ctx context.Context, id string) error
	convertFunc func(ctx context.Context, contactID string) (*model.Client, error)
}

func (m *mockClientService) Create(ctx context.Context, c *model.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockClientService) List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Client{ID: id}, nil
}

func (m *mockClientService) Update(ctx context.Context, c *model.Client) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	return nil
}

func (m *mockClientService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockClientService) ConvertContact(ctx context.Context, contactID string) (*model.Client, error) {
	if m.convertFunc != nil {
		return m.convertFunc(ctx, contactID)
	}
	return &model.Client{ID: "c1", SourceContactID: contactID}, nil
}

type mockBlogService struct {
	createFunc       func(ctx context.Context, p *model.BlogPost) error
	updateFunc       func(ctx context.Context, id string, patch model.BlogPostPatch) (*model.BlogPost, error)
	getFunc          func(ctx context.Context, id string) (*model.BlogPost, error)
	getPublishedFunc func(ctx context.Context, slug string) (*model.BlogPost, error)
	listFunc         func(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockBlogService) Create(ctx context.Context, p *model.BlogPost) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockBlogService) Update(ctx context.Context, id string, patch model.BlogPostPatch) (*model.BlogPost, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.BlogPost{ID: id}, nil
}

func (m *mockBlogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.BlogPost{ID: id}, nil
}

func (m *mockBlogService) GetPublished(ctx context.Context, slug string) (*model.BlogPost, error) {
	if m.getPublishedFunc != nil {
		return m.getPublishedFunc(ctx, slug)
	}
	return &model.BlogPost{Slug: slug, Status: model.PostStatusPublished}, nil
}

func (m *mockBlogService) List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockBlogService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockAnalyticsService struct {
	dashboardFunc func(ctx context.Context) (*model.DashboardStats, error)
}

func (m *mockAnalyticsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if m.dashboardFunc != nil {
		return m.dashboardFunc(ctx)
	}
	return &model.DashboardStats{}, nil
}

type mockSettingsService struct {
	getFunc    func(ctx context.Context) (*model.Settings, error)
	updateFunc func(ctx context.Context, s *model.Settings) error
}

func (m *mockSettingsService) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.DefaultSettings(), nil
}

func (m *mockSettingsService) Update(ctx context.Context, s *model.Settings) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// serve routes a single request through a ServeMux so PathValue is populated.
func serve(pattern string, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

var (
	_ service.ContactService   = (*mockContactService)(nil)
	_ service.BookingService   = (*mockBookingService)(nil)
	_ service.ClientService    = (*mockClientService)(nil)
	_ service.BlogService      = (*mockBlogService)(nil)
	_ service.AnalyticsService = (*mockAnalyticsService)(nil)
	_ service.SettingsService  = (*mockSettingsService)(nil)
)
