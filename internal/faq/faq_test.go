package faq

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(dbtest.Open(t))
	require.NoError(t, err)
	return svc
}

func TestPublicListOrderAndVisibility(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	second, err := svc.Create(ctx, CreateInput{Question: "¿Hacen envíos?", Answer: "Sí", SortOrder: 2, Category: ptr("envios")})
	require.NoError(t, err)
	first, err := svc.Create(ctx, CreateInput{Question: "¿Facturan?", Answer: "Sí", SortOrder: 1, Category: ptr("pagos")})
	require.NoError(t, err)
	tie, err := svc.Create(ctx, CreateInput{Question: "¿Aceptan tarjeta?", Answer: "Sí", SortOrder: 2, Category: ptr("pagos")})
	require.NoError(t, err)
	hidden, err := svc.Create(ctx, CreateInput{Question: "Borrador", Answer: "-", IsActive: ptr(false)})
	require.NoError(t, err)

	page, err := svc.ListPublic(ctx, url.Values{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{first.ID, second.ID, tie.ID}, ids)

	page, err = svc.ListPublic(ctx, url.Values{"category": {"pagos"}, "is_active": {"false"}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.ListAdmin(ctx, url.Values{"is_active": {"false"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, hidden.ID, page.Items[0].ID)
}

func TestCreateUpdateDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Question: " ", Answer: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	entry, err := svc.Create(ctx, CreateInput{Question: "¿Horario?", Answer: "9 a 18"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entry.ID, UpdateInput{Answer: ptr(" 8 a 17 "), SortOrder: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, "8 a 17", updated.Answer)
	assert.Equal(t, 4, updated.SortOrder)
	assert.Equal(t, "¿Horario?", updated.Question)

	_, err = svc.Update(ctx, entry.ID, UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, entry.ID))
	require.NoError(t, svc.Delete(ctx, entry.ID))
	page, err := svc.ListPublic(ctx, url.Values{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	err = svc.Delete(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, "pregunta no encontrada", pkgerrors.As(err).Message())
}
