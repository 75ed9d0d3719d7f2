package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/internal/pkg/roles"
	"github.com/keysai/keysai/internal/pkg/session"
	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a request-scoped user
// context. It runs first on every request; RequireAuth/RequireAdmin and the
// controllers consume the context instead of touching the session themselves.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth keeps its own fiber session store on the OAuth routes; skip the
	// app session there to avoid cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous(c)
	}

	uid, ok := userID.(uint)
	if !ok {
		return anonymous(c)
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	role := roles.Parse(session.GetSessionValue(c, usercontext.KeyUserRole))

	userCtx := usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		IsLoggedIn: true,
		Role:       role,
	}
	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin())

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{
		IsLoggedIn: false,
		Role:       roles.RoleUser,
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
	return c.Next()
}
