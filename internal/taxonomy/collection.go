package taxonomy

import (
	"context"
	"net/url"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

// Reader is the read and delete surface shared by every taxonomy entity.
type Reader[T any] interface {
	List(ctx context.Context, values url.Values, publicOnly bool) (crud.Page[T], error)
	Get(ctx context.Context, id int64, publicOnly bool) (*T, error)
	Delete(ctx context.Context, id int64, permanent bool) error
}

// Collection binds one taxonomy table to the generic CRUD helpers.
type Collection[T any] struct {
	base       repo.Base
	public     crud.Resource
	admin      crud.Resource
	notFound   string
	hasBelongs string
}

func newCollection[T any](base repo.Base, res crud.Resource, notFound, hasBelongs string) *Collection[T] {
	return &Collection[T]{
		base:       base,
		public:     res,
		admin:      withActiveFilter(res),
		notFound:   notFound,
		hasBelongs: hasBelongs,
	}
}

func (c *Collection[T]) table() string {
	return c.public.Table
}

func (c *Collection[T]) activeOnly() crud.Predicate {
	return crud.Predicate{SQL: c.public.Column("is_active") + " = ?", Args: []any{true}}
}

// List pages through the table. The storefront only sees active rows.
func (c *Collection[T]) List(ctx context.Context, values url.Values, publicOnly bool) (crud.Page[T], error) {
	res := c.admin
	if publicOnly {
		res = c.public
	}
	q, err := res.ParseQuery(values)
	if err != nil {
		return crud.Page[T]{}, err
	}
	if publicOnly {
		active := c.activeOnly()
		q.Add(active.SQL, active.Args...)
	}
	return crud.List[T](ctx, c.base.Conn(), res, q)
}

func (c *Collection[T]) Get(ctx context.Context, id int64, publicOnly bool) (*T, error) {
	var (
		row *T
		err error
	)
	if publicOnly {
		row, err = crud.Get[T](ctx, c.base.Conn(), c.admin, id, c.activeOnly())
	} else {
		row, err = crud.Get[T](ctx, c.base.Conn(), c.admin, id)
	}
	if err != nil {
		return nil, c.translate(err)
	}
	return row, nil
}

// Delete deactivates the row, or removes it when permanent is set. A
// permanent delete of a row that still has children is a conflict.
func (c *Collection[T]) Delete(ctx context.Context, id int64, permanent bool) error {
	var err error
	if permanent {
		err = crud.HardDelete(ctx, c.base.Conn(), c.table(), id)
	} else {
		err = crud.SoftDelete(ctx, c.base.Conn(), c.table(), id, c.base.Now())
	}
	return c.translate(err)
}

func (c *Collection[T]) translate(err error) error {
	typed := pkgerrors.As(err)
	if typed == nil {
		return err
	}
	switch typed.Code() {
	case pkgerrors.CodeNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, c.notFound)
	case pkgerrors.CodeConflict:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, c.hasBelongs)
	}
	return err
}
