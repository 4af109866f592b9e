package middleware

import (
	"context"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

type contextKey string

const (
	ctxAdminID  contextKey = "admin_id"
	ctxRole     contextKey = "admin_role"
	ctxAccessID contextKey = "access_id"
)

func AdminIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxAdminID).(int64); ok {
		return v
	}
	return 0
}

func RoleFromContext(ctx context.Context) enums.AdminRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.AdminRole); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithAdmin injects the authenticated admin into the context. Handlers under
// test use it to skip token minting.
func WithAdmin(ctx context.Context, adminID int64, role enums.AdminRole, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAdminID, adminID)
	ctx = context.WithValue(ctx, ctxRole, role)
	if accessID != "" {
		ctx = context.WithValue(ctx, ctxAccessID, accessID)
	}
	return ctx
}
