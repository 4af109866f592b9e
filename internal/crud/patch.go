package crud

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

// Patch collects the columns of a partial update. Only columns set through
// its methods reach the UPDATE statement.
type Patch struct {
	values map[string]any
	err    error
}

func NewPatch() *Patch {
	return &Patch{values: map[string]any{}}
}

// Set assigns column unconditionally. A nil value writes NULL.
func (p *Patch) Set(column string, value any) *Patch {
	p.values[column] = value
	return p
}

// SetJSON stores value encoded as a JSON document.
func (p *Patch) SetJSON(column string, value any) *Patch {
	raw, err := json.Marshal(value)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("encode %s: %w", column, err)
		}
		return p
	}
	p.values[column] = string(raw)
	return p
}

// SetIf assigns column only when v was supplied.
func SetIf[V any](p *Patch, column string, v *V) *Patch {
	if v != nil {
		p.values[column] = *v
	}
	return p
}

// Empty reports whether no column was set.
func (p *Patch) Empty() bool {
	return len(p.values) == 0
}

// Has reports whether column is part of the patch.
func (p *Patch) Has(column string) bool {
	_, ok := p.values[column]
	return ok
}

// Update applies patch to the row identified by id and stamps updated_at.
// An empty patch is rejected before touching the database.
func Update(ctx context.Context, conn *gorm.DB, table string, id int64, patch *Patch, now time.Time) error {
	if patch == nil || patch.Empty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "no se enviaron campos para actualizar")
	}
	if patch.err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, patch.err, "datos inválidos")
	}

	updates := make(map[string]any, len(patch.values)+1)
	for k, v := range patch.values {
		updates[k] = v
	}
	updates["updated_at"] = now

	result := conn.WithContext(ctx).Table(table).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return db.Classify(result.Error, "no se pudo actualizar el registro")
	}
	if result.RowsAffected == 0 {
		return ensureExists(ctx, conn, table, id)
	}
	return nil
}

func ensureExists(ctx context.Context, conn *gorm.DB, table string, id int64) error {
	var count int64
	if err := conn.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return db.Classify(err, "no se pudo verificar el registro")
	}
	if count == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "registro no encontrado")
	}
	return nil
}
