package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry      = 1062
	mysqlRowIsReferenced     = 1451
	mysqlNoReferencedRow     = 1452
	mysqlRowIsReferenced2    = 1217
	mysqlNoReferencedRow2    = 1216
	mysqlLockWaitTimeout     = 1205
	mysqlQueryTimeout        = 3024
	mysqlTooManyConnections  = 1040
	mysqlServerGone          = 2006
	mysqlServerLost          = 2013
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgQueryCanceled          = "57014"
	pgConnectionClassPrefix  = "08"
	pgTooManyConnections     = "53300"
	sqliteUniqueMessage      = "UNIQUE constraint failed"
	sqliteForeignKeyMessage  = "FOREIGN KEY constraint failed"
	postgresDuplicateMessage = "duplicate key value"
)

// Classify maps a persistence error onto the API error taxonomy. Typed errors pass through
// untouched and nil stays nil; msg becomes the public message of the classified error.
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msg)
	case IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, msg)
	case IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, msg)
	case IsTimeout(err):
		return pkgerrors.Wrap(pkgerrors.CodeTimeout, err, msg)
	case IsConnectionError(err):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
	}
}

// IsUniqueViolation reports whether err is a duplicate-key failure on any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, sqliteUniqueMessage) || strings.Contains(msg, postgresDuplicateMessage)
}

// IsForeignKeyViolation reports whether err comes from a referential-integrity constraint.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
			return true
		}
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), sqliteForeignKeyMessage)
}

// IsTimeout reports deadline expiry either in the caller's context or at the database.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlLockWaitTimeout || myErr.Number == mysqlQueryTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgQueryCanceled
	}
	return false
}

// IsConnectionError reports driver-level connectivity failures.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlTooManyConnections, mysqlServerGone, mysqlServerLost:
			return true
		}
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgConnectionClassPrefix) || pgErr.Code == pgTooManyConnections
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
