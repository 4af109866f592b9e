package adminusers

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

var (
	superAdmin = Actor{ID: 1, Role: enums.AdminRoleSuperAdmin}
	plainAdmin = Actor{ID: 2, Role: enums.AdminRoleAdmin}
)

func newTestService(t *testing.T) Service {
	t.Helper()
	tick := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	repository := NewRepository(dbtest.Open(t))
	repository.Base = repository.Base.WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})
	svc, err := NewService(repository)
	require.NoError(t, err)
	return svc
}

func codeOf(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestCreateNormalizesAndDefaults(t *testing.T) {
	svc := newTestService(t)

	admin, err := svc.Create(context.Background(), superAdmin, CreateInput{Email: "  Ana@Example.com ", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", admin.Email)
	assert.Equal(t, enums.AdminRoleEditor, admin.Role)
	assert.True(t, admin.IsActive)
	assert.False(t, admin.IsEmailVerified)
	assert.Nil(t, admin.LastLogin)
}

func TestCreateRules(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), superAdmin, CreateInput{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), plainAdmin, CreateInput{Email: "otro@example.com", Name: "Otro"})
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(t, err))

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Email: "ANA@example.com", Name: "Duplicada"})
	assert.Equal(t, pkgerrors.CodeConflict, codeOf(t, err))

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Email: "x@example.com", Name: "X", Role: "owner"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Email: "", Name: "X"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))
}

func TestUpdateRoleAndSelfDeactivation(t *testing.T) {
	svc := newTestService(t)
	admin, err := svc.Create(context.Background(), superAdmin, CreateInput{Email: "eva@example.com", Name: "Eva", Role: "editor"})
	require.NoError(t, err)

	promote := string(enums.AdminRoleSuperAdmin)
	_, err = svc.Update(context.Background(), plainAdmin, admin.ID, UpdateInput{Role: &promote})
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(t, err))

	role := string(enums.AdminRoleAdmin)
	name := "Eva María"
	updated, err := svc.Update(context.Background(), plainAdmin, admin.ID, UpdateInput{Role: &role, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, enums.AdminRoleAdmin, updated.Role)
	assert.Equal(t, "Eva María", updated.Name)

	inactive := false
	self := Actor{ID: admin.ID, Role: enums.AdminRoleAdmin}
	_, err = svc.Update(context.Background(), self, admin.ID, UpdateInput{IsActive: &inactive})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, svc.Deactivate(context.Background(), self, admin.ID)))

	_, err = svc.Update(context.Background(), superAdmin, 999, UpdateInput{Name: &name})
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, err))
}

func TestDeactivateKeepsRowAndFilters(t *testing.T) {
	svc := newTestService(t)
	keep, err := svc.Create(context.Background(), superAdmin, CreateInput{Email: "a@example.com", Name: "Alba", Role: "admin"})
	require.NoError(t, err)
	gone, err := svc.Create(context.Background(), superAdmin, CreateInput{Email: "b@example.com", Name: "Beto"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), Actor{ID: keep.ID, Role: enums.AdminRoleAdmin}, gone.ID))
	require.NoError(t, svc.Deactivate(context.Background(), Actor{ID: keep.ID, Role: enums.AdminRoleAdmin}, gone.ID))

	row, err := svc.Get(context.Background(), gone.ID)
	require.NoError(t, err)
	assert.False(t, row.IsActive)

	page, err := svc.List(context.Background(), url.Values{"is_active": {"true"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, keep.ID, page.Items[0].ID)

	page, err = svc.List(context.Background(), url.Values{"role": {"editor"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, gone.ID, page.Items[0].ID)

	page, err = svc.List(context.Background(), url.Values{"search": {"alb"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, err = svc.List(context.Background(), url.Values{"role": {"owner"}})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, svc.Deactivate(context.Background(), superAdmin, 404)))
}
