package session

import "context"

type userIDKey struct{}

// WithUserID binds the authenticated user to ctx.
func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the user bound by WithUserID.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok && id != 0
}
