package controllers

import (
	"net/http"

	"github.com/angelmondragon/catalogo-industrial-backend/api/middleware"
	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	"github.com/angelmondragon/catalogo-industrial-backend/api/validators"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminauth"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

// AccessTokenHeader mirrors the issued token so clients need not parse the body.
const AccessTokenHeader = "X-Access-Token"

type checkUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sendCodeRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Email  string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Code   string `json:"code" validate:"required"`
}

// AdminCheckUser is the first login step.
func AdminCheckUser(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		var body checkUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.CheckUser(r.Context(), body.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminSendCode(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		var body sendCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.SendCode(r.Context(), body.UserID, body.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "código enviado", result)
	}
}

// AdminVerifyCode exchanges a valid code for an access token.
func AdminVerifyCode(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		var body verifyCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.VerifyCode(r.Context(), body.UserID, body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set(AccessTokenHeader, result.Token)
		responses.WriteSuccess(w, result)
	}
}

func AdminLogout(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		if err := svc.Logout(r.Context(), middleware.AccessIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "sesión cerrada", nil)
	}
}

// AdminMe returns the profile behind the bearer token.
func AdminMe(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		adminID := middleware.AdminIDFromContext(r.Context())
		if adminID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciales requeridas"))
			return
		}
		admin, err := svc.Me(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}
