package auth

import "context"

type contextKey struct{}

// AuthContext identifies the authenticated church for a request. Its absence
// from a request context is the unauthenticated case; the auth middleware
// never lets such requests reach protected handlers.
type AuthContext struct {
	ChurchID  int64
	SessionID int64
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// ChurchID returns the authenticated church id, or 0 when unauthenticated.
func ChurchID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.ChurchID
}
