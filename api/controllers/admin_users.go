package controllers

import (
	"net/http"

	"github.com/angelmondragon/catalogo-industrial-backend/api/middleware"
	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/validators"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

func AdminListUsers(svc adminusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin user service unavailable"))
			return
		}
		page, err := svc.List(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, page.Items, page.Meta)
	}
}

func AdminGetUser(svc adminusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin user service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}

// AdminCreateUser registers a back-office user; the service enforces super_admin.
func AdminCreateUser(svc adminusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin user service unavailable"))
			return
		}
		var payload createAdminRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Create(r.Context(), actorFrom(r), adminusers.CreateInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, admin)
	}
}

func AdminUpdateUser(svc adminusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin user service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateAdminRequest
		if err := validators.DecodePatchBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Update(r.Context(), actorFrom(r), id, adminusers.UpdateInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}

// AdminDeactivateUser disables an admin account. Admins are never deleted.
func AdminDeactivateUser(svc adminusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin user service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Deactivate(r.Context(), actorFrom(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "administrador desactivado", map[string]int64{"id": id})
	}
}

func actorFrom(r *http.Request) adminusers.Actor {
	return adminusers.Actor{
		ID:   middleware.AdminIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
	}
}

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=super_admin admin editor"`
	IsActive *bool  `json:"is_active"`
}

type updateAdminRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}
