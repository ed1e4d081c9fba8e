package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
)

// ClientService manages firm clients.
type ClientService interface {
	Create(ctx context.Context, c *model.Client) error
	List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id string) error
	// ConvertContact creates a prospect client from a contact message and marks
	// the message as replied. A second conversion returns ErrAlreadyConverted.
	ConvertContact(ctx context.Context, contactID string) (*model.Client, error)
}

var clientStatuses = []string{
	model.ClientStatusProspect,
	model.ClientStatusActive,
	model.ClientStatusInactive,
}

const trnLength = 15

type clientServiceImpl struct {
	repo     repository.ClientRepository
	contacts repository.ContactRepository
}

// NewClientService creates a ClientService.
func NewClientService(repo repository.ClientRepository, contacts repository.ContactRepository) ClientService {
	return &clientServiceImpl{repo: repo, contacts: contacts}
}

// normalizeTRN strips the spaces and dashes people type into tax numbers.
func normalizeTRN(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func validTRN(s string) bool {
	if len(s) != trnLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateClient(c *model.Client) error {
	trimAll(&c.Name, &c.Company, &c.Email, &c.Phone, &c.Status, &c.Notes)
	c.TRN = normalizeTRN(strings.TrimSpace(c.TRN))

	if err := requireName(c.Name); err != nil {
		return err
	}
	if err := requireEmail(c.Email); err != nil {
		return err
	}
	var ok bool
	if c.Status, ok = defaulted(c.Status, model.ClientStatusProspect, clientStatuses); !ok {
		return ErrInvalidStatus
	}
	if c.TRN != "" && !validTRN(c.TRN) {
		return invalid("trn", "invalid_trn")
	}

	services := make([]string, 0, len(c.Services))
	for _, svc := range c.Services {
		svc = strings.TrimSpace(svc)
		if svc != "" && !slices.Contains(services, svc) {
			services = append(services, svc)
		}
	}
	c.Services = services
	return nil
}

func (s *clientServiceImpl) Create(ctx context.Context, c *model.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *clientServiceImpl) List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error) {
	return s.repo.List(ctx, opts)
}

func (s *clientServiceImpl) Get(ctx context.Context, id string) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientServiceImpl) Update(ctx context.Context, c *model.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *clientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *clientServiceImpl) ConvertContact(ctx context.Context, contactID string) (*model.Client, error) {
	msg, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBySourceContact(ctx, contactID); err == nil {
		return nil, ErrAlreadyConverted
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c := &model.Client{
		Name:            msg.Name,
		Company:         msg.Company,
		Email:           msg.Email,
		Phone:           msg.Phone,
		Status:          model.ClientStatusProspect,
		SourceContactID: msg.ID,
	}
	if msg.ServiceType != "" {
		c.Services = []string{msg.ServiceType}
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyConverted
		}
		return nil, err
	}

	if msg.Status == model.ContactStatusNew || msg.Status == model.ContactStatusRead {
		// The client already exists at this point, so it is returned either way.
		if err := s.contacts.UpdateStatus(ctx, msg.ID, model.ContactStatusReplied); err != nil {
			slog.Warn("converted contact left unmarked", "contact_id", msg.ID, "client_id", c.ID, "error", err)
		}
	}
	return c, nil
}
