package adminauth

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
)

// SessionRepository stores the single outstanding login code of each admin.
type SessionRepository struct {
	repo.Base
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{Base: repo.NewBase(db)}
}

func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{Base: r.Base.WithTx(tx)}
}

// Upsert replaces any previous code of the admin; the last write wins.
func (r *SessionRepository) Upsert(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	now := r.Now()
	row := models.AdminSession{
		UserID:    userID,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "is_active", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return db.Classify(err, "no se pudo guardar el código")
	}
	return nil
}

// FindUsable returns the active, unexpired session of the admin or nil.
func (r *SessionRepository) FindUsable(ctx context.Context, userID int64, now time.Time) (*models.AdminSession, error) {
	var row models.AdminSession
	result := r.DB(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return nil, db.Classify(result.Error, "no se pudo validar el código")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

// Consume deactivates exactly the session that was verified. It reports false
// when another request consumed or replaced it first.
func (r *SessionRepository) Consume(ctx context.Context, userID int64, codeHash string, now time.Time) (bool, error) {
	result := r.DB(ctx).Model(&models.AdminSession{}).
		Where("user_id = ? AND code_hash = ? AND is_active = ? AND expires_at > ?", userID, codeHash, true, now).
		Updates(map[string]any{"is_active": false, "updated_at": now})
	if result.Error != nil {
		return false, db.Classify(result.Error, "no se pudo validar el código")
	}
	return result.RowsAffected == 1, nil
}
