package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

func TestRecovererAnswers500WithRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	r := chi.NewRouter()
	r.Use(RequestID(logg), Recoverer(logg))
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		panic("nil catalogue entry")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products/5", nil)
	req.Header.Set(RequestIDHeader, "req-panic")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "error interno del servidor", body.Message)
	assert.Equal(t, "req-panic", body.RequestID)

	entry := buf.String()
	assert.Contains(t, entry, `"route":"/api/products/{id}"`)
	assert.Contains(t, entry, `"method":"GET"`)
	assert.Contains(t, entry, `"request_id":"req-panic"`)
	assert.Contains(t, entry, "nil catalogue entry")
}

func TestRecovererReraisesAbortHandler(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	})
}
