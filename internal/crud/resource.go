// Package crud holds the list, get, patch and delete plumbing shared by every
// back-office resource. A Resource declares its table, joins and accepted
// filters; the functions here turn query strings into parameterized SQL.
package crud

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/pagination"
)

// FilterKind decides how a query parameter is parsed and compared.
type FilterKind int

const (
	// Exact compares an integer id for equality.
	Exact FilterKind = iota
	// Text compares a trimmed string for equality.
	Text
	// Bool compares a boolean flag.
	Bool
	// Min is an inclusive decimal lower bound.
	Min
	// Max is an inclusive decimal upper bound.
	Max
	// Positive maps true to column > 0 and false to column <= 0.
	Positive
	// From is an inclusive date lower bound.
	From
	// To is an inclusive date upper bound; a bare date covers the whole day.
	To
)

// Filter binds a query parameter to a column.
type Filter struct {
	Param   string
	Column  string
	Kind    FilterKind
	Allowed []string
}

// Resource describes one listable table.
type Resource struct {
	Table         string
	Alias         string
	Columns       []string
	Joins         []string
	Filters       []Filter
	SearchColumns []string
	// Sorts maps the public sort keys onto ORDER BY expressions; the first
	// entry of DefaultOrder applies when sort is absent.
	Sorts        map[string]string
	DefaultOrder string
}

// Predicate is a parameterized WHERE fragment.
type Predicate struct {
	SQL  string
	Args []any
}

// Query is the parsed form of a list request.
type Query struct {
	Page    pagination.Params
	Where   []Predicate
	Search  string
	OrderBy string
}

// Add appends a caller-supplied predicate, such as the public active-only scope.
func (q *Query) Add(sql string, args ...any) {
	q.Where = append(q.Where, Predicate{SQL: sql, Args: args})
}

func (r Resource) from() string {
	if r.Alias == "" {
		return r.Table
	}
	return r.Table + " " + r.Alias
}

// Column qualifies name with the resource alias.
func (r Resource) Column(name string) string {
	if r.Alias == "" {
		return name
	}
	return r.Alias + "." + name
}

func (r Resource) selectColumns() []string {
	if len(r.Columns) > 0 {
		return r.Columns
	}
	return []string{r.Column("*")}
}

func (r Resource) tieBreaker() string {
	return r.Column("id") + " DESC"
}

// ParseQuery reads page, limit, sort, search and every declared filter from
// values. Only supplied filters produce predicates.
func (r Resource) ParseQuery(values url.Values) (Query, error) {
	page, err := intParam(values, "page")
	if err != nil {
		return Query{}, err
	}
	limit, err := intParam(values, "limit")
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Page:    pagination.Normalize(page, limit),
		Search:  strings.TrimSpace(values.Get("search")),
		OrderBy: r.DefaultOrder,
	}

	if sort := strings.TrimSpace(values.Get("sort")); sort != "" {
		order, ok := r.Sorts[sort]
		if !ok {
			return Query{}, invalidParam("sort", "orden no soportado")
		}
		q.OrderBy = order
	}

	for _, f := range r.Filters {
		raw := strings.TrimSpace(values.Get(f.Param))
		if raw == "" {
			continue
		}
		pred, err := f.predicate(raw)
		if err != nil {
			return Query{}, err
		}
		q.Where = append(q.Where, pred)
	}
	return q, nil
}

func (f Filter) predicate(raw string) (Predicate, error) {
	switch f.Kind {
	case Exact:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Predicate{}, invalidParam(f.Param, "debe ser numérico")
		}
		return Predicate{SQL: f.Column + " = ?", Args: []any{id}}, nil
	case Text:
		if len(f.Allowed) > 0 && !contains(f.Allowed, raw) {
			return Predicate{}, invalidParam(f.Param, "debe ser uno de: "+strings.Join(f.Allowed, ", "))
		}
		return Predicate{SQL: f.Column + " = ?", Args: []any{raw}}, nil
	case Bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return Predicate{}, invalidParam(f.Param, "debe ser booleano")
		}
		return Predicate{SQL: f.Column + " = ?", Args: []any{value}}, nil
	case Min, Max:
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return Predicate{}, invalidParam(f.Param, "debe ser numérico")
		}
		op := " >= ?"
		if f.Kind == Max {
			op = " <= ?"
		}
		return Predicate{SQL: f.Column + op, Args: []any{value.InexactFloat64()}}, nil
	case Positive:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return Predicate{}, invalidParam(f.Param, "debe ser booleano")
		}
		if value {
			return Predicate{SQL: f.Column + " > 0"}, nil
		}
		return Predicate{SQL: f.Column + " <= 0"}, nil
	case From, To:
		ts, dateOnly, err := parseTime(raw)
		if err != nil {
			return Predicate{}, invalidParam(f.Param, "debe ser una fecha (AAAA-MM-DD)")
		}
		if f.Kind == From {
			return Predicate{SQL: f.Column + " >= ?", Args: []any{ts}}, nil
		}
		if dateOnly {
			return Predicate{SQL: f.Column + " < ?", Args: []any{ts.AddDate(0, 0, 1)}}, nil
		}
		return Predicate{SQL: f.Column + " <= ?", Args: []any{ts}}, nil
	}
	return Predicate{}, invalidParam(f.Param, "filtro no soportado")
}

func parseTime(raw string) (time.Time, bool, error) {
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts.UTC(), true, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts.UTC(), false, nil
}

func intParam(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(key, "debe ser numérico")
	}
	return value, nil
}

func invalidParam(param, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "parámetro inválido").WithDetails(map[string]string{param: reason})
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
