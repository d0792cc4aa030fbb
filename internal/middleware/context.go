package middleware

import "context"

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// RoleAnonymous is the role assigned to requests with no session user.
const RoleAnonymous = "anonymous"

// UserInfo represents the essential user information stored in the request context.
// ID is zero for anonymous requests.
type UserInfo struct {
	ID     int64
	OpenID string
	Role   string
}

// IsAuthenticated reports whether the request carries a signed-in user.
func (u *UserInfo) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Role: RoleAnonymous}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
