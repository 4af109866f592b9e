// Package faq serves the help-center entries.
package faq

import (
	"context"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

const faqTable = "faqs"

type FAQDTO struct {
	ID        int64     `json:"id" gorm:"column:id"`
	Question  string    `json:"question" gorm:"column:question"`
	Answer    string    `json:"answer" gorm:"column:answer"`
	Category  *string   `json:"category" gorm:"column:category"`
	SortOrder int       `json:"sort_order" gorm:"column:sort_order"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

var Resource = crud.Resource{
	Table: faqTable,
	Alias: "f",
	Filters: []crud.Filter{
		{Param: "category", Column: "f.category", Kind: crud.Text},
		{Param: "is_active", Column: "f.is_active", Kind: crud.Bool},
	},
	SearchColumns: []string{"f.question", "f.answer"},
	Sorts: map[string]string{
		"order":  "f.sort_order ASC, f.id ASC",
		"newest": "f.created_at DESC",
	},
	DefaultOrder: "f.sort_order ASC, f.id ASC",
}

var activeOnly = crud.Predicate{SQL: "f.is_active = ?", Args: []any{true}}

type Service interface {
	ListPublic(ctx context.Context, values url.Values) (crud.Page[FAQDTO], error)
	ListAdmin(ctx context.Context, values url.Values) (crud.Page[FAQDTO], error)
	Get(ctx context.Context, id int64) (*FAQDTO, error)
	Create(ctx context.Context, input CreateInput) (*FAQDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*FAQDTO, error)
	Delete(ctx context.Context, id int64) error
}

type CreateInput struct {
	Question  string
	Answer    string
	Category  *string
	SortOrder int
	IsActive  *bool
}

type UpdateInput struct {
	Question  *string
	Answer    *string
	Category  *string
	SortOrder *int
	IsActive  *bool
}

type service struct {
	repo.Base
}

func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database required")
	}
	return &service{Base: repo.NewBase(conn)}, nil
}

// ListPublic returns active entries ordered by sort_order then id.
func (s *service) ListPublic(ctx context.Context, values url.Values) (crud.Page[FAQDTO], error) {
	public := url.Values{}
	for _, key := range []string{"category", "search", "page", "limit"} {
		if v, ok := values[key]; ok {
			public[key] = v
		}
	}
	q, err := Resource.ParseQuery(public)
	if err != nil {
		return crud.Page[FAQDTO]{}, err
	}
	q.Add(activeOnly.SQL, activeOnly.Args...)
	return crud.List[FAQDTO](ctx, s.Conn(), Resource, q)
}

func (s *service) ListAdmin(ctx context.Context, values url.Values) (crud.Page[FAQDTO], error) {
	q, err := Resource.ParseQuery(values)
	if err != nil {
		return crud.Page[FAQDTO]{}, err
	}
	return crud.List[FAQDTO](ctx, s.Conn(), Resource, q)
}

func (s *service) Get(ctx context.Context, id int64) (*FAQDTO, error) {
	row, err := crud.Get[FAQDTO](ctx, s.Conn(), Resource, id)
	if err != nil {
		return nil, translate(err)
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*FAQDTO, error) {
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" || answer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pregunta y respuesta son requeridas")
	}
	now := s.Now()
	row := &models.FAQ{
		Question:  question,
		Answer:    answer,
		Category:  input.Category,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive == nil || *input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB(ctx).Create(row).Error; err != nil {
		return nil, db.Classify(err, "no se pudo crear la pregunta")
	}
	return s.Get(ctx, row.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*FAQDTO, error) {
	patch := crud.NewPatch()
	for column, value := range map[string]*string{"question": input.Question, "answer": input.Answer} {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pregunta y respuesta no pueden estar vacías")
		}
		patch.Set(column, trimmed)
	}
	crud.SetIf(patch, "category", input.Category)
	crud.SetIf(patch, "sort_order", input.SortOrder)
	crud.SetIf(patch, "is_active", input.IsActive)

	if err := crud.Update(ctx, s.Conn(), faqTable, id, patch, s.Now()); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return translate(crud.SoftDelete(ctx, s.Conn(), faqTable, id, s.Now()))
}

func translate(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "pregunta no encontrada")
	}
	return err
}
