package adminusers

import (
	"context"
	"net/url"
	"strings"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

const notFoundMessage = "administrador no encontrado"

// Actor is the authenticated admin performing a change.
type Actor struct {
	ID   int64
	Role enums.AdminRole
}

type Service interface {
	List(ctx context.Context, values url.Values) (crud.Page[AdminDTO], error)
	Get(ctx context.Context, id int64) (*AdminDTO, error)
	Create(ctx context.Context, actor Actor, input CreateInput) (*AdminDTO, error)
	Update(ctx context.Context, actor Actor, id int64, input UpdateInput) (*AdminDTO, error)
	Deactivate(ctx context.Context, actor Actor, id int64) error
}

type CreateInput struct {
	Email    string
	Name     string
	Role     string
	IsActive *bool
}

type UpdateInput struct {
	Name     *string
	Role     *string
	IsActive *bool
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, values url.Values) (crud.Page[AdminDTO], error) {
	return s.repo.List(ctx, values)
}

func (s *service) Get(ctx context.Context, id int64) (*AdminDTO, error) {
	admin, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return admin, nil
}

// Create registers a new admin. Only super admins may add users.
func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*AdminDTO, error) {
	if actor.Role != enums.AdminRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "solo un super administrador puede crear usuarios")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email y nombre son requeridos")
	}
	role := enums.AdminRoleEditor
	if raw := strings.TrimSpace(input.Role); raw != "" {
		parsed, err := parseRole(raw)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	now := s.repo.Now()
	admin := &models.AdminUser{
		Email:     email,
		Name:      name,
		Role:      role,
		IsActive:  input.IsActive == nil || *input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "ya existe un administrador con ese email")
		}
		return nil, db.Classify(err, "no se pudo crear el administrador")
	}
	return s.Get(ctx, admin.ID)
}

func (s *service) Update(ctx context.Context, actor Actor, id int64, input UpdateInput) (*AdminDTO, error) {
	patch := crud.NewPatch()
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el nombre no puede estar vacío")
		}
		patch.Set("name", name)
	}
	if input.Role != nil {
		role, err := parseRole(strings.TrimSpace(*input.Role))
		if err != nil {
			return nil, err
		}
		if role == enums.AdminRoleSuperAdmin && actor.Role != enums.AdminRoleSuperAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "solo un super administrador puede asignar ese rol")
		}
		patch.Set("role", string(role))
	}
	if input.IsActive != nil {
		if !*input.IsActive && actor.ID == id {
			return nil, selfDeactivation()
		}
		patch.Set("is_active", *input.IsActive)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

// Deactivate disables the admin; rows are never removed.
func (s *service) Deactivate(ctx context.Context, actor Actor, id int64) error {
	if actor.ID == id {
		return selfDeactivation()
	}
	return translate(s.repo.Deactivate(ctx, id))
}

func parseRole(raw string) (enums.AdminRole, error) {
	role, err := enums.ParseAdminRole(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "rol inválido").
			WithDetails(map[string]any{"allowed": roleValues})
	}
	return role, nil
}

func selfDeactivation() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "no puedes desactivar tu propia cuenta")
}

func translate(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFoundMessage)
	}
	return err
}
