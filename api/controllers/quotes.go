package controllers

import (
	"net/http"

	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/validators"
	quotesvc "github.com/angelmondragon/catalogo-industrial-backend/internal/quotes"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

// CreateQuote accepts a storefront quote request.
func CreateQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		var payload createQuoteRequest
		if err := validators.DecodeIntakeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, result)
	}
}

func ListQuotes(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		page, err := svc.List(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, page.Items, page.Meta)
	}
}

// GetPublicQuote is the storefront confirmation view. Customer contact data
// and back-office notes are never part of it.
func GetPublicQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotesvc.NewPublicQuote(quote))
	}
}

// GetQuote returns a quote with its lines and estimated total.
func GetQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func AdminUpdateQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateQuoteRequest
		if err := validators.DecodePatchBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Update(r.Context(), id, quotesvc.UpdateInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// AdminCancelQuote marks a quote cancelled. Quotes are never removed.
func AdminCancelQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Cancel(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "cotización cancelada", map[string]int64{"id": id})
	}
}

type quoteItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes"`
}

type createQuoteRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   string             `json:"customer_email" validate:"required,max=255"`
	CustomerPhone   *string            `json:"customer_phone"`
	CustomerCompany *string            `json:"customer_company"`
	Message         *string            `json:"message"`
	Items           []quoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r createQuoteRequest) toInput() quotesvc.CreateInput {
	items := make([]quotesvc.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, quotesvc.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     validators.OptionalString(item.Notes),
		})
	}
	return quotesvc.CreateInput{
		CustomerName:    validators.SanitizeString(r.CustomerName, 255),
		CustomerEmail:   validators.SanitizeString(r.CustomerEmail, 255),
		CustomerPhone:   validators.OptionalString(r.CustomerPhone),
		CustomerCompany: validators.OptionalString(r.CustomerCompany),
		Message:         validators.OptionalString(r.Message),
		Items:           items,
	}
}

type updateQuoteRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}
