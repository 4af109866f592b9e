package adminusers

import (
	"context"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

const adminUsersTable = "admin_users"

var roleValues = []string{
	string(enums.AdminRoleSuperAdmin),
	string(enums.AdminRoleAdmin),
	string(enums.AdminRoleEditor),
}

var Resource = crud.Resource{
	Table: adminUsersTable,
	Alias: "a",
	Filters: []crud.Filter{
		{Param: "role", Column: "a.role", Kind: crud.Text, Allowed: roleValues},
		{Param: "is_active", Column: "a.is_active", Kind: crud.Bool},
	},
	SearchColumns: []string{"a.name", "a.email"},
	Sorts: map[string]string{
		"newest": "a.created_at DESC",
		"name":   "a.name ASC",
		"email":  "a.email ASC",
	},
	DefaultOrder: "a.created_at DESC",
}

// Repository persists admin users. Rows are only ever deactivated.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

func (r *Repository) List(ctx context.Context, values url.Values) (crud.Page[AdminDTO], error) {
	q, err := Resource.ParseQuery(values)
	if err != nil {
		return crud.Page[AdminDTO]{}, err
	}
	return crud.List[AdminDTO](ctx, r.Conn(), Resource, q)
}

func (r *Repository) Get(ctx context.Context, id int64) (*AdminDTO, error) {
	return crud.Get[AdminDTO](ctx, r.Conn(), Resource, id)
}

// FindByID returns nil without error when no admin has the id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail matches case-insensitively and returns nil when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.findOne(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*models.AdminUser, error) {
	var admin models.AdminUser
	result := r.DB(ctx).Where(query, args...).Limit(1).Find(&admin)
	if result.Error != nil {
		return nil, db.Classify(result.Error, "no se pudo consultar el administrador")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &admin, nil
}

func (r *Repository) Create(ctx context.Context, admin *models.AdminUser) error {
	return r.DB(ctx).Create(admin).Error
}

func (r *Repository) Update(ctx context.Context, id int64, patch *crud.Patch) error {
	return crud.Update(ctx, r.Conn(), adminUsersTable, id, patch, r.Now())
}

func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return crud.SoftDelete(ctx, r.Conn(), adminUsersTable, id, r.Now())
}

// RecordLogin stamps last_login and marks the email verified.
func (r *Repository) RecordLogin(ctx context.Context, id int64) error {
	now := r.Now()
	err := r.DB(ctx).Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_login": now, "is_email_verified": true, "updated_at": now}).Error
	if err != nil {
		return db.Classify(err, "no se pudo registrar el acceso")
	}
	return nil
}
