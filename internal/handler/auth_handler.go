package handler

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/session"
)

// sessionUserKey is the session entry holding the signed-in user's openId.
// Must match the key the authorizer middleware reads.
const sessionUserKey = "user_open_id"

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	auth     *auth.Authenticator
	sessions session.Manager
	users    *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a *auth.Authenticator, sm session.Manager, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sm, users: users}
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. It exchanges
// the code, verifies the ID token, records the sign-in, and binds the
// identity to the session.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.auth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// Verify the ID Token's signature and claims.
	// The OIDC library internally checks the nonce, issuer, audience, and expiry.
	idToken, err := h.auth.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var claims auth.Claims
	if err := idToken.Claims(&claims); err != nil {
		http.Error(w, "Failed to parse ID Token claims: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Record the sign-in. Storage being down must not block login; the
	// service degrades with a warning.
	signIn := service.SignIn{OpenID: claims.Subject}
	if claims.Name != "" {
		signIn.Name = &claims.Name
	}
	if claims.Email != "" {
		signIn.Email = &claims.Email
	}
	method := "oidc"
	signIn.LoginMethod = &method
	if err := h.users.RecordSignIn(r.Context(), signIn); err != nil {
		http.Error(w, "Failed to record sign-in: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.sessions.Put(r.Context(), sessionUserKey, claims.Subject)

	// Redirect user to the home page after successful login.
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleMe returns the session's user, or null for anonymous callers.
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	openID := h.sessions.GetString(r.Context(), sessionUserKey)
	if openID == "" {
		return writeJSON(w, http.StatusOK, nil)
	}
	user, err := h.users.GetByOpenID(r.Context(), openID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load user", Code: http.StatusInternalServerError}
	}
	return writeJSON(w, http.StatusOK, user)
}

// handleLogout clears the session and reports success.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to destroy session", Code: http.StatusInternalServerError}
	}
	return writeSuccess(w)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
