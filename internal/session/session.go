// Package session abstracts the cookie session layer behind a small
// interface so handlers and middleware can be tested with a stub instead
// of a real backing store.
package session

import (
	"context"
	"net/http"
)

// Manager is the subset of session operations the application uses. Two
// values live in the session: the signed-in user's openId, written by the
// OAuth callback and read by the authorizer on every request, and the
// short-lived state nonce that protects the login redirect.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}
