package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/api/middleware"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminauth"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

type stubAuthService struct {
	check     *adminauth.CheckResult
	verify    *adminauth.VerifyResult
	revoked   string
	meID      int64
	sendEmail string
	err       error
}

func (s *stubAuthService) CheckUser(context.Context, string) (*adminauth.CheckResult, error) {
	return s.check, s.err
}

func (s *stubAuthService) SendCode(_ context.Context, userID int64, email string) (*adminauth.SendCodeResult, error) {
	s.sendEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return &adminauth.SendCodeResult{UserID: userID, Delivered: true}, nil
}

func (s *stubAuthService) VerifyCode(context.Context, int64, string) (*adminauth.VerifyResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.verify, nil
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.revoked = accessID
	return s.err
}

func (s *stubAuthService) Me(_ context.Context, adminID int64) (*adminusers.AdminDTO, error) {
	s.meID = adminID
	return &adminusers.AdminDTO{ID: adminID, Name: "Marta"}, s.err
}

func TestAdminCheckUser(t *testing.T) {
	t.Run("unknown email is not an error", func(t *testing.T) {
		stub := &stubAuthService{check: &adminauth.CheckResult{Exists: false}}
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/check-user", strings.NewReader(`{"email":"nadie@example.com"}`))
		rec := httptest.NewRecorder()

		AdminCheckUser(stub, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"exists":false`)
	})

	t.Run("inactive admin is forbidden", func(t *testing.T) {
		stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeForbidden, "la cuenta de administrador está desactivada")}
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/check-user", strings.NewReader(`{"email":"baja@example.com"}`))
		rec := httptest.NewRecorder()

		AdminCheckUser(stub, testLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/check-user", strings.NewReader(`{"email":"no-es-email"}`))
		rec := httptest.NewRecorder()

		AdminCheckUser(&stubAuthService{}, testLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminSendCode(t *testing.T) {
	stub := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/send-code", strings.NewReader(`{"user_id":3,"email":"marta@example.com"}`))
	rec := httptest.NewRecorder()

	AdminSendCode(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "marta@example.com", stub.sendEmail)
	assert.Contains(t, rec.Body.String(), "código enviado")
}

func TestAdminVerifyCode(t *testing.T) {
	t.Run("sets token header", func(t *testing.T) {
		stub := &stubAuthService{verify: &adminauth.VerifyResult{Token: "tok", Admin: adminusers.AdminDTO{ID: 3}}}
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/verify-code", strings.NewReader(`{"user_id":3,"code":"123456"}`))
		rec := httptest.NewRecorder()

		AdminVerifyCode(stub, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tok", rec.Header().Get(AccessTokenHeader))
	})

	t.Run("invalid code is 401", func(t *testing.T) {
		stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "código inválido o expirado")}
		req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/verify-code", strings.NewReader(`{"user_id":3,"code":"123456"}`))
		rec := httptest.NewRecorder()

		AdminVerifyCode(stub, testLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Header().Get(AccessTokenHeader))
	})
}

func TestAdminLogoutAndMeUseContext(t *testing.T) {
	stub := &stubAuthService{}
	ctx := middleware.WithAdmin(context.Background(), 7, enums.AdminRoleAdmin, "jti-7")

	rec := httptest.NewRecorder()
	AdminLogout(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/auth/logout", nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jti-7", stub.revoked)

	rec = httptest.NewRecorder()
	AdminMe(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), stub.meID)

	rec = httptest.NewRecorder()
	AdminMe(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
