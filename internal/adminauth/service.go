package adminauth

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/adminusers"
	pkgAuth "github.com/angelmondragon/catalogo-industrial-backend/pkg/auth"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/auth/session"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/security"
)

const (
	invalidCodeMessage = "código inválido o expirado"
	inactiveMessage    = "la cuenta de administrador está desactivada"

	codeMin = 100000
	codeMax = 999999

	defaultCodeTTL = 10 * time.Minute
)

// Service drives the passwordless login: check-user, send-code, verify-code.
type Service interface {
	CheckUser(ctx context.Context, email string) (*CheckResult, error)
	SendCode(ctx context.Context, userID int64, email string) (*SendCodeResult, error)
	VerifyCode(ctx context.Context, userID int64, code string) (*VerifyResult, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, adminID int64) (*adminusers.AdminDTO, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CodeSender delivers the login code; it reports whether delivery succeeded.
type CodeSender interface {
	LoginCode(ctx context.Context, to, name, code string, ttl time.Duration) bool
}

// SessionRegistry tracks issued access tokens so they can be revoked.
type SessionRegistry interface {
	Register(ctx context.Context, accessID string, adminID int64) error
	Revoke(ctx context.Context, accessID string) error
}

type ServiceParams struct {
	Admins   *adminusers.Repository
	Sessions *SessionRepository
	Tx       TxRunner
	Sender   CodeSender
	Registry SessionRegistry
	JWT      config.JWTConfig
	Password config.PasswordConfig
	OTP      config.OTPConfig
	Logger   *logger.Logger
}

type service struct {
	admins   *adminusers.Repository
	sessions *SessionRepository
	tx       TxRunner
	sender   CodeSender
	registry SessionRegistry
	jwtCfg   config.JWTConfig
	argon    config.PasswordConfig
	ttl      time.Duration
	logCode  bool
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Admins == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin repository required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	ttl := params.OTP.TTL
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	return &service{
		admins:   params.Admins,
		sessions: params.Sessions,
		tx:       params.Tx,
		sender:   params.Sender,
		registry: params.Registry,
		jwtCfg:   params.JWT,
		argon:    params.Password,
		ttl:      ttl,
		logCode:  params.OTP.LogCode,
		logg:     params.Logger,
	}, nil
}

// CheckUser reports whether an admin exists. An unknown email is not an error.
func (s *service) CheckUser(ctx context.Context, email string) (*CheckResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el email es requerido")
	}
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return &CheckResult{Exists: false}, nil
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveMessage)
	}
	dto := adminusers.FromModel(admin)
	return &CheckResult{Exists: true, Admin: &dto}, nil
}

// SendCode issues a fresh code and replaces any earlier one. Delivery failures
// are logged and do not fail the request.
func (s *service) SendCode(ctx context.Context, userID int64, email string) (*SendCodeResult, error) {
	admin, err := s.admins.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if admin == nil || !strings.EqualFold(admin.Email, strings.TrimSpace(email)) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "administrador no encontrado")
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveMessage)
	}

	code, err := security.GenerateNumericCode(codeMin, codeMax)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo generar el código")
	}
	hash, err := security.HashSecret(code, s.argon)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo generar el código")
	}
	expiresAt := s.sessions.Now().Add(s.ttl)
	if err := s.sessions.Upsert(ctx, admin.ID, hash, expiresAt); err != nil {
		return nil, err
	}

	if s.logCode && s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"admin_id": admin.ID, "code": code})
		s.logg.Info(logCtx, "admin.login_code.issued")
	}
	delivered := false
	if s.sender != nil {
		delivered = s.sender.LoginCode(ctx, admin.Email, admin.Name, code, s.ttl)
	}

	return &SendCodeResult{UserID: admin.ID, ExpiresAt: expiresAt, Delivered: delivered}, nil
}

// VerifyCode consumes the code and mints an access token. Every failure
// returns the same 401 so callers cannot tell which input was wrong.
func (s *service) VerifyCode(ctx context.Context, userID int64, code string) (*VerifyResult, error) {
	code = strings.TrimSpace(code)
	if userID <= 0 || code == "" {
		return nil, invalidCode()
	}

	now := s.sessions.Now()
	current, err := s.sessions.FindUsable(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, invalidCode()
	}
	ok, err := security.VerifySecret(code, current.CodeHash)
	if err != nil || !ok {
		return nil, invalidCode()
	}

	var admin *adminusers.AdminDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		consumed, err := s.sessions.WithTx(tx).Consume(ctx, userID, current.CodeHash, now)
		if err != nil {
			return err
		}
		if !consumed {
			return invalidCode()
		}
		admins := s.admins.WithTx(tx)
		row, err := admins.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if row == nil || !row.IsActive {
			return invalidCode()
		}
		if err := admins.RecordLogin(ctx, userID); err != nil {
			return err
		}
		admin, err = admins.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		JTI:     accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo emitir el token")
	}
	if s.registry != nil {
		if err := s.registry.Register(ctx, accessID, admin.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "no se pudo registrar la sesión")
		}
	}

	return &VerifyResult{Token: token, ExpiresAt: now.Add(s.jwtCfg.TTL()), Admin: *admin}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if s.registry == nil || strings.TrimSpace(accessID) == "" {
		return nil
	}
	if err := s.registry.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "no se pudo cerrar la sesión")
	}
	return nil
}

func (s *service) Me(ctx context.Context, adminID int64) (*adminusers.AdminDTO, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sesión no disponible")
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveMessage)
	}
	dto := adminusers.FromModel(admin)
	return &dto, nil
}

func invalidCode() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
}
