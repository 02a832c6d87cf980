package httpx

import (
	"context"
	"slices"
)

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyPrincipal ctxKey = "principal"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	SessionID    string
	UserID       string
	Username     string
	Role         string
	Capabilities []string
}

// Can reports whether the principal holds the capability.
func (p Principal) Can(capability string) bool {
	return slices.Contains(p.Capabilities, capability)
}

// WithPrincipal attaches the principal to the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, p.UserID)
	return context.WithValue(ctx, CtxKeyPrincipal, p)
}

// PrincipalFromContext returns the caller, if the request carried a valid session.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(Principal)
	return p, ok
}
