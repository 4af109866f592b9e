package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/types"
)

var exposeInternal atomic.Bool

// ExposeInternalErrors toggles whether unclassified failures carry the
// underlying error text. It is enabled outside production only.
func ExposeInternalErrors(enabled bool) {
	exposeInternal.Store(enabled)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusCreated, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Data: data})
}

// WriteSuccessPage writes a list with its pagination envelope. A nil slice is
// rendered as an empty array.
func WriteSuccessPage[T any](w http.ResponseWriter, data []T, page types.Pagination) {
	if data == nil {
		data = []T{}
	}
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Data: data, Pagination: &page})
}

// WriteMessage writes a success envelope carrying a human readable message.
func WriteMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Data: data, Message: message})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeIdempotency,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorEnvelope{
		Code:      string(typed.Code()),
		Message:   msg,
		RequestID: logger.RequestIDFromContext(ctx),
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Details = details
		}
	}
	if meta.HTTPStatus >= http.StatusInternalServerError && exposeInternal.Load() {
		payload.Details = map[string]any{"error": err.Error()}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
			"status":      meta.HTTPStatus,
		}
		if dump.MySQLNumber != 0 {
			fields["mysql_number"] = dump.MySQLNumber
		}
		if dump.SQLState != "" {
			fields["sql_state"] = dump.SQLState
			fields["db_constraint"] = dump.Constraint
			fields["db_table"] = dump.Table
			fields["db_detail"] = dump.Detail
		}
		if dump.DBMessage != "" {
			fields["db_message"] = dump.DBMessage
		}

		ctx = logg.WithFields(ctx, fields)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
