package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
)

func TestClientService_Create_Normalizes(t *testing.T) {
	var saved *model.Client
	svc := NewClientService(&mockClientRepository{
		createFunc: func(ctx context.Context, c *model.Client) error {
			saved = c
			return nil
		},
	}, &mockContactRepository{})

	c := &model.Client{
		Name:     " Falcon Logistics ",
		Email:    "accounts@falcon.ae",
		TRN:      "100-2345-6789-0123",
		Services: []string{"vat", " audit ", "vat", ""},
	}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Falcon Logistics" {
		t.Errorf("expected trimmed name, got %q", saved.Name)
	}
	if saved.Status != model.ClientStatusProspect {
		t.Errorf("expected default prospect status, got %q", saved.Status)
	}
	if saved.TRN != "100234567890123" {
		t.Errorf("expected normalized TRN, got %q", saved.TRN)
	}
	if !reflect.DeepEqual(saved.Services, []string{"vat", "audit"}) {
		t.Errorf("expected deduplicated services, got %v", saved.Services)
	}
}

func TestClientService_Create_Validation(t *testing.T) {
	svc := NewClientService(&mockClientRepository{}, &mockContactRepository{})

	tests := []struct {
		name   string
		client model.Client
		code   string
	}{
		{"short trn", model.Client{Name: "A", Email: "a@b.ae", TRN: "12345"}, "invalid_trn"},
		{"letters in trn", model.Client{Name: "A", Email: "a@b.ae", TRN: "10023456789012X"}, "invalid_trn"},
		{"missing email", model.Client{Name: "A"}, "email_required"},
		{"missing name", model.Client{Email: "a@b.ae"}, "name_required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.client
			ve, ok := AsValidation(svc.Create(context.Background(), &c))
			if !ok || ve.Code != tt.code {
				t.Errorf("expected %q, got %v", tt.code, ve)
			}
		})
	}

	bad := &model.Client{Name: "A", Email: "a@b.ae", Status: "vip"}
	if err := svc.Create(context.Background(), bad); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestClientService_ConvertContact(t *testing.T) {
	var created *model.Client
	var statusUpdate string
	contacts := &mockContactRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return &model.ContactMessage{
				ID: id, Name: "Priya", Email: "priya@example.com", Company: "Oasis Foods",
				Phone: "+971500000000", ServiceType: "bookkeeping", Status: model.ContactStatusRead,
			}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			statusUpdate = status
			return nil
		},
	}
	clients := &mockClientRepository{
		getBySourceContactFunc: func(ctx context.Context, contactID string) (*model.Client, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, c *model.Client) error {
			created = c
			c.ID = "cl1"
			return nil
		},
	}
	svc := NewClientService(clients, contacts)

	c, err := svc.ConvertContact(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "cl1" || created.SourceContactID != "m1" {
		t.Errorf("expected client linked to contact, got %+v", created)
	}
	if created.Status != model.ClientStatusProspect || created.Company != "Oasis Foods" {
		t.Errorf("unexpected converted client %+v", created)
	}
	if !reflect.DeepEqual(created.Services, []string{"bookkeeping"}) {
		t.Errorf("expected service carried over, got %v", created.Services)
	}
	if statusUpdate != model.ContactStatusReplied {
		t.Errorf("expected contact marked replied, got %q", statusUpdate)
	}
}

func TestClientService_ConvertContact_StatusFailureKeepsClient(t *testing.T) {
	contacts := &mockContactRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return &model.ContactMessage{ID: id, Name: "P", Email: "p@example.com", Status: model.ContactStatusNew}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			return errors.New("connection reset")
		},
	}
	clients := &mockClientRepository{
		getBySourceContactFunc: func(ctx context.Context, contactID string) (*model.Client, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, c *model.Client) error {
			c.ID = "cl2"
			return nil
		},
	}
	svc := NewClientService(clients, contacts)

	c, err := svc.ConvertContact(context.Background(), "m1")
	if err != nil {
		t.Fatalf("a created client must be returned even if the inbox update fails, got %v", err)
	}
	if c == nil || c.ID != "cl2" {
		t.Errorf("unexpected client %+v", c)
	}
}

func TestClientService_ConvertContact_AlreadyConverted(t *testing.T) {
	contacts := &mockContactRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return &model.ContactMessage{ID: id, Name: "P", Email: "p@example.com"}, nil
		},
	}
	clients := &mockClientRepository{
		getBySourceContactFunc: func(ctx context.Context, contactID string) (*model.Client, error) {
			return &model.Client{ID: "existing"}, nil
		},
		createFunc: func(ctx context.Context, c *model.Client) error {
			t.Error("Create must not be called")
			return nil
		},
	}
	svc := NewClientService(clients, contacts)

	if _, err := svc.ConvertContact(context.Background(), "m1"); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("expected ErrAlreadyConverted, got %v", err)
	}
}

func TestClientService_ConvertContact_RaceConflict(t *testing.T) {
	contacts := &mockContactRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return &model.ContactMessage{ID: id, Name: "P", Email: "p@example.com"}, nil
		},
	}
	clients := &mockClientRepository{
		getBySourceContactFunc: func(ctx context.Context, contactID string) (*model.Client, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, c *model.Client) error {
			return repository.ErrConflict
		},
	}
	svc := NewClientService(clients, contacts)

	if _, err := svc.ConvertContact(context.Background(), "m1"); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("expected ErrAlreadyConverted on unique violation, got %v", err)
	}
}

func TestClientService_ConvertContact_MissingContact(t *testing.T) {
	contacts := &mockContactRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewClientService(&mockClientRepository{}, contacts)

	if _, err := svc.ConvertContact(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
