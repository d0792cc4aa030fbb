package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
)

// UserStore defines the interface for database operations on users.
type UserStore interface {
	Upsert(ctx context.Context, in data.UserUpsert) error
	GetByOpenID(ctx context.Context, openID string) (*data.User, error)
	GetByID(ctx context.Context, id int64) (*data.User, error)
}

// SignIn carries the identity fields supplied by the external provider on
// a successful authentication.
type SignIn struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	LastSignedIn *time.Time
}

// UserService applies the sign-in policy on top of the user store.
type UserService struct {
	repo        UserStore
	ownerOpenID string
	log         logger.Logger
}

// NewUserService creates a new UserService. ownerOpenID identifies the
// site owner, who is promoted to admin on sign-in.
func NewUserService(repo UserStore, ownerOpenID string, log logger.Logger) *UserService {
	return &UserService{repo: repo, ownerOpenID: ownerOpenID, log: log}
}

// RecordSignIn upserts the user row for an external sign-in. A missing
// openId is a caller bug and is reported. Storage being unavailable is
// not: sign-in proceeds in a degraded mode with a warning, so an outage
// never locks visitors out of the site.
func (s *UserService) RecordSignIn(ctx context.Context, in SignIn) error {
	if in.OpenID == "" {
		return errors.New("openId is required for sign-in")
	}

	upsert := data.UserUpsert{
		OpenID:       in.OpenID,
		Name:         in.Name,
		Email:        in.Email,
		LoginMethod:  in.LoginMethod,
		Role:         in.Role,
		LastSignedIn: in.LastSignedIn,
	}

	// The owner's first sign-in creates their account as admin. An
	// explicitly supplied role always wins.
	if in.Role == nil && s.ownerOpenID != "" && in.OpenID == s.ownerOpenID {
		adminRole := "admin"
		upsert.Role = &adminRole
	}

	if err := s.repo.Upsert(ctx, upsert); err != nil {
		s.log.Warn(fmt.Sprintf("Cannot record sign-in for %s: %v", in.OpenID, err))
		return nil
	}
	return nil
}

// GetByOpenID returns the user for a session subject, or nil when the
// user is unknown or storage is unavailable.
func (s *UserService) GetByOpenID(ctx context.Context, openID string) (*data.User, error) {
	user, err := s.repo.GetByOpenID(ctx, openID)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Cannot load user %s: %v", openID, err))
		return nil, nil
	}
	return user, nil
}
