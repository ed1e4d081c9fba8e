// Package notify sends the firm's outbound e-mail: new-enquiry alerts and
// the daily bookings digest.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// Notifier delivers staff notifications. An empty to selects the
// implementation's default recipient.
type Notifier interface {
	ContactReceived(ctx context.Context, to string, msg *model.ContactMessage) error
	BookingReceived(ctx context.Context, to string, b *model.Booking) error
	DailyDigest(ctx context.Context, to, date string, bookings []*model.Booking) error
}

// Nop discards every notification. Used when SMTP is not configured.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) ContactReceived(context.Context, string, *model.ContactMessage) error { return nil }
func (Nop) BookingReceived(context.Context, string, *model.Booking) error        { return nil }
func (Nop) DailyDigest(context.Context, string, string, []*model.Booking) error  { return nil }

// asyncTimeout bounds a background send.
const asyncTimeout = 30 * time.Second

// Async sends enquiry alerts in the background so that form submissions never
// wait on SMTP. Failures are logged. The digest is sent synchronously because
// it already runs off the request path.
type Async struct {
	next     Notifier
	inflight sync.WaitGroup
}

// NewAsync wraps next.
func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

var _ Notifier = (*Async)(nil)

func (a *Async) ContactReceived(ctx context.Context, to string, msg *model.ContactMessage) error {
	a.dispatch(ctx, "contact", func(ctx context.Context) error {
		return a.next.ContactReceived(ctx, to, msg)
	})
	return nil
}

func (a *Async) BookingReceived(ctx context.Context, to string, b *model.Booking) error {
	a.dispatch(ctx, "booking", func(ctx context.Context) error {
		return a.next.BookingReceived(ctx, to, b)
	})
	return nil
}

func (a *Async) DailyDigest(ctx context.Context, to, date string, bookings []*model.Booking) error {
	return a.next.DailyDigest(ctx, to, date, bookings)
}

func (a *Async) dispatch(ctx context.Context, kind string, send func(context.Context) error) {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		defer cancel()
		if err := send(bg); err != nil {
			slog.Error("notification failed", "kind", kind, "error", err)
		}
	}()
}

// Drain waits for in-flight sends to finish, or for ctx to end. It reports
// whether every send completed.
func (a *Async) Drain(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
