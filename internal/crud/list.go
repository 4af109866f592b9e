package crud

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/types"
)

// Page is one slice of a list result plus its envelope metadata.
type Page[T any] struct {
	Items []T
	Meta  types.Pagination
}

func (r Resource) scoped(conn *gorm.DB, where []Predicate) *gorm.DB {
	tx := conn.Table(r.from())
	for _, join := range r.Joins {
		tx = tx.Joins(join)
	}
	for _, p := range where {
		tx = tx.Where(p.SQL, p.Args...)
	}
	return tx
}

func (r Resource) searchPredicate(term string) (Predicate, bool) {
	if term == "" || len(r.SearchColumns) == 0 {
		return Predicate{}, false
	}
	like := "%" + term + "%"
	clauses := make([]string, 0, len(r.SearchColumns))
	args := make([]any, 0, len(r.SearchColumns))
	for _, col := range r.SearchColumns {
		clauses = append(clauses, "LOWER("+col+") LIKE LOWER(?)")
		args = append(args, like)
	}
	return Predicate{SQL: "(" + strings.Join(clauses, " OR ") + ")", Args: args}, true
}

// List runs the COUNT and the page query over the same predicate set.
func List[T any](ctx context.Context, conn *gorm.DB, res Resource, q Query) (Page[T], error) {
	where := append([]Predicate{}, q.Where...)
	if search, ok := res.searchPredicate(q.Search); ok {
		where = append(where, search)
	}

	base := res.scoped(conn.WithContext(ctx), where).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page[T]{}, db.Classify(err, "no se pudo contar los registros")
	}

	items := make([]T, 0, q.Page.Normalized().Limit)
	if total > 0 {
		order := res.tieBreaker()
		if q.OrderBy != "" {
			order = q.OrderBy + ", " + order
		}
		err := base.
			Select(res.selectColumns()).
			Order(order).
			Limit(q.Page.Normalized().Limit).
			Offset(q.Page.Offset()).
			Scan(&items).Error
		if err != nil {
			return Page[T]{}, db.Classify(err, "no se pudo listar los registros")
		}
	}

	return Page[T]{Items: items, Meta: q.Page.Meta(total)}, nil
}

// Get loads one row by primary key with the resource joins applied. Extra
// predicates narrow visibility, e.g. active-only for the storefront.
func Get[T any](ctx context.Context, conn *gorm.DB, res Resource, id int64, extra ...Predicate) (*T, error) {
	where := append([]Predicate{{SQL: res.Column("id") + " = ?", Args: []any{id}}}, extra...)

	var row T
	result := res.scoped(conn.WithContext(ctx), where).
		Select(res.selectColumns()).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, db.Classify(result.Error, "no se pudo obtener el registro")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "registro no encontrado")
	}
	return &row, nil
}
