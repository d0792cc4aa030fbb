package auth

import (
	"fmt"

	"go-blog-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before
// adding it, making the operation idempotent and safe to run on every
// application start.
//
// Subjects are roles, not individual users: the authorizer resolves the
// session to a role ("anonymous", "user", "admin") before enforcing.
// "user" inherits everything "anonymous" can do, and "admin" inherits
// from "user".
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	policies := [][]string{
		// Anonymous visitors get the whole public read surface plus the
		// login flow.
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/api/auth/me", "GET"},
		{"anonymous", "/api/auth/logout", "POST"},
		{"anonymous", "/api/articles/recent", "GET"},
		{"anonymous", "/api/articles/*", "GET"},
		{"anonymous", "/api/categories", "GET"},
		{"anonymous", "/api/categories/*", "GET"},
		{"anonymous", "/api/quotes/random", "GET"},
		{"anonymous", "/api/menu", "GET"},
		{"anonymous", "/api/settings", "GET"},
		{"anonymous", "/api/settings/*", "GET"},
		{"anonymous", "/api/comments/*", "GET"},
		{"anonymous", "/api/tags", "GET"},
		{"anonymous", "/api/tags/*", "GET"},
		{"anonymous", "/robots.txt", "GET"},
		{"anonymous", "/sitemap.xml", "GET"},

		// Any signed-in user may submit a comment.
		{"user", "/api/comments", "POST"},

		// Admins own the whole management surface.
		{"admin", "/api/admin/*", "*"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	inherits := [][2]string{
		{"user", "anonymous"},
		{"admin", "user"},
	}
	for _, pair := range inherits {
		if has, _ := e.HasRoleForUser(pair[0], pair[1]); !has {
			if _, err := e.AddRoleForUser(pair[0], pair[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role inheritance %s -> %s", pair[0], pair[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
