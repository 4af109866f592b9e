package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/api/middleware"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

type stubAdminUserService struct {
	actor   adminusers.Actor
	created *adminusers.CreateInput
	err     error
}

func (s *stubAdminUserService) List(context.Context, url.Values) (crud.Page[adminusers.AdminDTO], error) {
	return crud.Page[adminusers.AdminDTO]{}, s.err
}

func (s *stubAdminUserService) Get(_ context.Context, id int64) (*adminusers.AdminDTO, error) {
	return &adminusers.AdminDTO{ID: id}, s.err
}

func (s *stubAdminUserService) Create(_ context.Context, actor adminusers.Actor, input adminusers.CreateInput) (*adminusers.AdminDTO, error) {
	s.actor = actor
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &adminusers.AdminDTO{ID: 5, Email: input.Email}, nil
}

func (s *stubAdminUserService) Update(_ context.Context, actor adminusers.Actor, id int64, _ adminusers.UpdateInput) (*adminusers.AdminDTO, error) {
	s.actor = actor
	return &adminusers.AdminDTO{ID: id}, s.err
}

func (s *stubAdminUserService) Deactivate(_ context.Context, actor adminusers.Actor, _ int64) error {
	s.actor = actor
	return s.err
}

func TestAdminCreateUserPassesActor(t *testing.T) {
	stub := &stubAdminUserService{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(`{"email":"eva@example.com","name":"Eva","role":"editor"}`))
	req = req.WithContext(middleware.WithAdmin(req.Context(), 1, enums.AdminRoleSuperAdmin, "jti"))
	rec := httptest.NewRecorder()

	AdminCreateUser(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, adminusers.Actor{ID: 1, Role: enums.AdminRoleSuperAdmin}, stub.actor)
	require.NotNil(t, stub.created)
	assert.Equal(t, "editor", stub.created.Role)
}

func TestAdminCreateUserRejectsUnknownRole(t *testing.T) {
	stub := &stubAdminUserService{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(`{"email":"eva@example.com","name":"Eva","role":"owner"}`))
	rec := httptest.NewRecorder()

	AdminCreateUser(stub, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.created)
}

func TestAdminDeactivateUserMapsErrors(t *testing.T) {
	stub := &stubAdminUserService{err: pkgerrors.New(pkgerrors.CodeValidation, "no puedes desactivar tu propia cuenta")}
	req := withIDParam(httptest.NewRequest(http.MethodDelete, "/api/admin/users/2", nil), "2")
	req = req.WithContext(middleware.WithAdmin(req.Context(), 2, enums.AdminRoleAdmin, ""))
	rec := httptest.NewRecorder()

	AdminDeactivateUser(stub, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(2), stub.actor.ID)
}
