// Package support handles the public contact form and the back-office ticket inbox.
package support

import (
	"context"
	"net/url"
	"strings"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/refnum"
)

const maxNumberAttempts = 3

type Service interface {
	Submit(ctx context.Context, input ContactInput) (*SubmitResult, error)
	List(ctx context.Context, values url.Values) (crud.Page[TicketDTO], error)
	Get(ctx context.Context, id int64) (*TicketDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*TicketDTO, error)
	Reply(ctx context.Context, id int64, input ReplyInput) (*ReplyResult, error)
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   *string
	Company *string
	Subject *string
	Message string
}

type UpdateInput struct {
	Status     *string
	Priority   *string
	AdminNotes *string
}

// ReplyInput carries the admin answer. Status defaults to resolved.
type ReplyInput struct {
	Message string
	Status  *string
}

type SubmitResult struct {
	ID           int64  `json:"id"`
	TicketNumber string `json:"ticket_number"`
}

type ReplyResult struct {
	Ticket    *TicketDTO `json:"ticket"`
	EmailSent bool       `json:"email_sent"`
}

type NumberGenerator interface {
	Next(prefix string) (string, error)
}

type Notifier interface {
	TicketOpened(ctx context.Context, t mailer.TicketSummary)
	TicketReply(ctx context.Context, t mailer.TicketSummary, reply string) bool
}

type ServiceParams struct {
	Repo     *Repository
	Numbers  NumberGenerator
	Notifier Notifier
	Logger   *logger.Logger
}

type service struct {
	repo     *Repository
	numbers  NumberGenerator
	notifier Notifier
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "support repository required")
	}
	numbers := params.Numbers
	if numbers == nil {
		numbers = refnum.New()
	}
	return &service{repo: params.Repo, numbers: numbers, notifier: params.Notifier, logg: params.Logger}, nil
}

func (s *service) Submit(ctx context.Context, input ContactInput) (*SubmitResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre, email y mensaje son requeridos")
	}

	now := s.repo.Now()
	ticket := &models.ContactSubmission{
		Name:      name,
		Email:     email,
		Phone:     trimmed(input.Phone),
		Company:   trimmed(input.Company),
		Subject:   trimmed(input.Subject),
		Message:   message,
		Status:    enums.TicketStatusNew,
		Priority:  enums.TicketPriorityNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		ticket.ID = 0
		ticket.TicketNumber, err = s.numbers.Next(refnum.TicketPrefix)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo generar el número de ticket")
		}
		err = s.repo.Create(ctx, ticket)
		if err == nil || !db.IsUniqueViolation(err) {
			break
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "ticket.number_collision")
		}
	}
	if err != nil {
		return nil, db.Classify(err, "no se pudo registrar el mensaje")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithTicket(ctx, ticket.TicketNumber), "ticket.opened")
	}

	if s.notifier != nil {
		s.notifier.TicketOpened(ctx, summaryOf(ticket.TicketNumber, ticket.Name, ticket.Email, ticket.Subject, ticket.Message))
	}
	return &SubmitResult{ID: ticket.ID, TicketNumber: ticket.TicketNumber}, nil
}

func (s *service) List(ctx context.Context, values url.Values) (crud.Page[TicketDTO], error) {
	return s.repo.List(ctx, values)
}

func (s *service) Get(ctx context.Context, id int64) (*TicketDTO, error) {
	ticket, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return ticket, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*TicketDTO, error) {
	patch := crud.NewPatch()
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		patch.Set("status", string(status))
	}
	if input.Priority != nil {
		priority, err := enums.ParseTicketPriority(strings.TrimSpace(*input.Priority))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "prioridad inválida").
				WithDetails(map[string]any{"allowed": priorityValues})
		}
		patch.Set("priority", string(priority))
	}
	crud.SetIf(patch, "admin_notes", input.AdminNotes)

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

// Reply stores the answer and then emails it. A failed delivery keeps the
// stored reply and is reported through EmailSent.
func (s *service) Reply(ctx context.Context, id int64, input ReplyInput) (*ReplyResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la respuesta es requerida")
	}
	status := enums.TicketStatusResolved
	if input.Status != nil {
		parsed, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	patch := crud.NewPatch().
		Set("admin_response", message).
		Set("responded_at", s.repo.Now()).
		Set("status", string(status))
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, translate(err)
	}
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sent := false
	if s.notifier != nil {
		sent = s.notifier.TicketReply(ctx, summaryOf(ticket.TicketNumber, ticket.Name, ticket.Email, ticket.Subject, ticket.Message), message)
	}
	return &ReplyResult{Ticket: ticket, EmailSent: sent}, nil
}

func parseStatus(raw string) (enums.TicketStatus, error) {
	status, err := enums.ParseTicketStatus(strings.TrimSpace(raw))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado inválido").
			WithDetails(map[string]any{"allowed": statusValues})
	}
	return status, nil
}

func summaryOf(number, name, email string, subject *string, message string) mailer.TicketSummary {
	summary := mailer.TicketSummary{Number: number, Name: name, Email: email, Message: message}
	if subject != nil {
		summary.Subject = *subject
	}
	return summary
}

func translate(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ticket no encontrado")
	}
	return err
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil
	}
	return &out
}
