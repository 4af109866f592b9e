package quotes

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/products"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/refnum"
)

// maxNumberAttempts bounds quote number regeneration after a UNIQUE collision.
const maxNumberAttempts = 3

// Service handles quote intake and the back-office quote workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	List(ctx context.Context, values url.Values) (crud.Page[QuoteDTO], error)
	Get(ctx context.Context, id int64) (*QuoteDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*QuoteDTO, error)
	Cancel(ctx context.Context, id int64) error
}

// CreateInput is a storefront quote request.
type CreateInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	CustomerCompany *string
	Message         *string
	Items           []ItemInput
}

type ItemInput struct {
	ProductID int64
	Quantity  int
	Notes     *string
}

// UpdateInput carries the admin-editable quote fields.
type UpdateInput struct {
	Status     *string
	AdminNotes *string
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// NumberGenerator issues human-readable quote numbers.
type NumberGenerator interface {
	Next(prefix string) (string, error)
}

// Notifier receives committed quotes for the customer and sales emails.
type Notifier interface {
	QuoteReceived(ctx context.Context, q mailer.QuoteSummary)
}

type ServiceParams struct {
	Repo     *Repository
	Tx       TxRunner
	Numbers  NumberGenerator
	Notifier Notifier
	Logger   *logger.Logger
}

type service struct {
	repo     *Repository
	tx       TxRunner
	numbers  NumberGenerator
	notifier Notifier
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quote repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	numbers := params.Numbers
	if numbers == nil {
		numbers = refnum.New()
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		numbers:  numbers,
		notifier: params.Notifier,
		logg:     params.Logger,
	}, nil
}

// Create stores the header and every line in one transaction. Each line
// snapshots the product's current name, SKU and price; an unknown product
// keeps a null price instead of failing the quote.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	if input.CustomerName == "" || input.CustomerEmail == "" || len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name, customer_email e items son requeridos")
	}

	var (
		quote *models.Quote
		lines []mailer.QuoteLine
		err   error
	)
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		quote, lines, err = s.insert(ctx, input)
		if err == nil || !db.IsUniqueViolation(err) {
			break
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "quote.number_collision")
		}
	}
	if err != nil {
		return nil, db.Classify(err, "no se pudo registrar la cotización")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithQuote(ctx, quote.QuoteNumber), "quote.created")
	}

	if s.notifier != nil {
		s.notifier.QuoteReceived(ctx, mailer.QuoteSummary{
			Number:          quote.QuoteNumber,
			CustomerName:    quote.CustomerName,
			CustomerEmail:   quote.CustomerEmail,
			CustomerPhone:   deref(quote.CustomerPhone),
			CustomerCompany: deref(quote.CustomerCompany),
			Message:         deref(quote.Message),
			Items:           lines,
		})
	}

	return &CreateResult{ID: quote.ID, QuoteNumber: quote.QuoteNumber}, nil
}

func (s *service) insert(ctx context.Context, input CreateInput) (*models.Quote, []mailer.QuoteLine, error) {
	number, err := s.numbers.Next(refnum.QuotePrefix)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo generar el número de cotización")
	}

	now := s.repo.Now()
	quote := &models.Quote{
		QuoteNumber:     number,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   trimmed(input.CustomerPhone),
		CustomerCompany: trimmed(input.CustomerCompany),
		Message:         trimmed(input.Message),
		Status:          enums.QuoteStatusPending,
		TotalItems:      len(input.Items),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	lines := make([]mailer.QuoteLine, 0, len(input.Items))

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateQuote(ctx, quote); err != nil {
			return err
		}
		for _, item := range input.Items {
			product, found, err := products.FindForSnapshot(ctx, tx, item.ProductID)
			if err != nil {
				return err
			}
			row := &models.QuoteItem{
				QuoteID:   quote.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Notes:     trimmed(item.Notes),
				CreatedAt: now,
			}
			line := mailer.QuoteLine{Name: fmt.Sprintf("Producto #%d", item.ProductID), Quantity: item.Quantity}
			if found {
				row.ProductName = &product.Name
				row.ProductSKU = &product.SKU
				row.UnitPrice = decimal.NewNullDecimal(product.Price)
				line.Name = product.Name
				line.SKU = product.SKU
				line.UnitPrice = product.Price.StringFixed(2)
			}
			if err := txRepo.CreateItem(ctx, row); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return quote, lines, nil
}

func (s *service) List(ctx context.Context, values url.Values) (crud.Page[QuoteDTO], error) {
	return s.repo.List(ctx, values)
}

// Get returns the quote with its lines and the sum of the priced lines.
func (s *service) Get(ctx context.Context, id int64) (*QuoteDTO, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	rows, err := s.repo.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Items = make([]QuoteItemDTO, 0, len(rows))
	for _, row := range rows {
		quote.Items = append(quote.Items, newItemDTO(row))
	}
	quote.EstimatedTotal = estimatedTotal(quote.Items)
	return quote, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*QuoteDTO, error) {
	patch := crud.NewPatch()
	if input.Status != nil {
		status, err := enums.ParseQuoteStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado de cotización inválido").
				WithDetails(map[string]any{"allowed": quoteStatusValues})
		}
		patch.Set("status", string(status))
	}
	crud.SetIf(patch, "admin_notes", input.AdminNotes)

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

// Cancel marks the quote cancelled; the row and its items are kept.
func (s *service) Cancel(ctx context.Context, id int64) error {
	patch := crud.NewPatch().Set("status", string(enums.QuoteStatusCancelled))
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return notFound(err)
	}
	return nil
}

func notFound(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cotización no encontrada")
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

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
