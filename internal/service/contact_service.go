package service

import (
	"context"

	"github.com/ledgerline/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and stores a new contact message. The msg.ID and
	// timestamps will be populated by the implementation.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	Get(ctx context.Context, id string) (*model.ContactMessage, error)

	// UpdateStatus moves a message between new, read, replied and archived.
	UpdateStatus(ctx context.Context, id, status string) error

	Delete(ctx context.Context, id string) error
}
