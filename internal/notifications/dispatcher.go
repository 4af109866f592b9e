// Package notifications sends the transactional emails triggered by quote
// intake, support tickets and admin login. Delivery is best-effort: failures
// are logged and counted, never returned to the HTTP caller.
package notifications

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/metrics"
)

const (
	KindLoginCode         = "login_code"
	KindQuoteConfirmation = "quote_confirmation"
	KindQuoteNotification = "quote_notification"
	KindTicketReceived    = "ticket_received"
	KindTicketReply       = "ticket_reply"
)

// Dispatcher composes and delivers transactional emails.
type Dispatcher struct {
	sender   mailer.Sender
	composer *mailer.Composer
	metrics  *metrics.HTTPMetrics
	logg     *logger.Logger
}

// NewDispatcher wires the sender and templates. m may be nil.
func NewDispatcher(sender mailer.Sender, composer *mailer.Composer, m *metrics.HTTPMetrics, logg *logger.Logger) (*Dispatcher, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail sender required")
	}
	if composer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail composer required")
	}
	return &Dispatcher{sender: sender, composer: composer, metrics: m, logg: logg}, nil
}

// LoginCode emails an admin their one-time code.
func (d *Dispatcher) LoginCode(ctx context.Context, to, name, code string, ttl time.Duration) bool {
	msg, err := d.composer.LoginCode(to, name, code, ttl)
	return d.deliver(ctx, KindLoginCode, msg, err)
}

// QuoteReceived acknowledges the quote to the customer and alerts sales.
func (d *Dispatcher) QuoteReceived(ctx context.Context, q mailer.QuoteSummary) {
	msg, err := d.composer.QuoteConfirmation(q)
	d.deliver(ctx, KindQuoteConfirmation, msg, err)

	if strings.TrimSpace(d.composer.SalesInbox()) == "" {
		return
	}
	msg, err = d.composer.QuoteNotification(q)
	d.deliver(ctx, KindQuoteNotification, msg, err)
}

// TicketOpened alerts the support inbox about a new contact submission.
func (d *Dispatcher) TicketOpened(ctx context.Context, t mailer.TicketSummary) {
	if strings.TrimSpace(d.composer.SalesInbox()) == "" {
		return
	}
	msg, err := d.composer.TicketReceived(t)
	d.deliver(ctx, KindTicketReceived, msg, err)
}

// TicketReply sends an admin answer to the customer.
func (d *Dispatcher) TicketReply(ctx context.Context, t mailer.TicketSummary, reply string) bool {
	msg, err := d.composer.TicketReply(t, reply)
	return d.deliver(ctx, KindTicketReply, msg, err)
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, msg mailer.Message, renderErr error) bool {
	err := renderErr
	if err == nil {
		err = d.sender.Send(ctx, msg)
	}
	d.metrics.ObserveEmail(kind, err)
	if err != nil {
		if d.logg != nil {
			logCtx := d.logg.WithFields(ctx, map[string]any{"email_kind": kind, "email_to": msg.To})
			d.logg.Error(logCtx, "email.delivery_failed", err)
		}
		return false
	}
	return true
}
