package crud

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

// SoftDelete flips is_active to false. Deactivating an inactive row succeeds.
func SoftDelete(ctx context.Context, conn *gorm.DB, table string, id int64, now time.Time) error {
	result := conn.WithContext(ctx).
		Table(table).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": now})
	if result.Error != nil {
		return db.Classify(result.Error, "no se pudo desactivar el registro")
	}
	if result.RowsAffected == 0 {
		return ensureExists(ctx, conn, table, id)
	}
	return nil
}

// HardDelete removes the row. Rows still referenced by children surface as a conflict.
func HardDelete(ctx context.Context, conn *gorm.DB, table string, id int64) error {
	result := conn.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if result.Error != nil {
		if db.IsForeignKeyViolation(result.Error) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, result.Error, "el registro tiene elementos asociados")
		}
		return db.Classify(result.Error, "no se pudo eliminar el registro")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "registro no encontrado")
	}
	return nil
}
