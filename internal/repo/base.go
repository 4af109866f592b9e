package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Base provides the connection and clock shared by domain repositories.
type Base struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// WithTx returns a copy bound to tx that keeps the clock.
func (b Base) WithTx(tx *gorm.DB) Base {
	b.db = tx
	return b
}

// WithClock overrides the timestamp source, used by tests.
func (b Base) WithClock(now func() time.Time) Base {
	if now != nil {
		b.now = now
	}
	return b
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Conn returns the unbound connection for helpers that attach the context themselves.
func (b Base) Conn() *gorm.DB {
	return b.db
}

// Now returns the current time in UTC.
func (b Base) Now() time.Time {
	if b.now == nil {
		return time.Now().UTC()
	}
	return b.now()
}
