package http

import (
	"context"
	"net/url"

	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/contextkeys"
	"github.com/agniveshadhikari/slinky/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AuthMiddleware builds the per-request context: it reads the session cookie,
// resolves the user and gates capability-protected routes.
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
	}
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// WithUser resolves the session cookie and attaches the user to the request
// context. A missing, unknown or expired token leaves the request anonymous;
// that is never an error here. Every route runs behind this middleware.
func (m *AuthMiddleware) WithUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		user := m.usecase.ResolveSession(c.Context(), token)

		if user != nil {
			ctx := context.WithValue(c.UserContext(), contextkeys.UserKey, user)
			ctx = utils.WithUserID(ctx, user.ID)
			ctx = utils.WithUsername(ctx, user.Username)
			c.SetUserContext(ctx)
		}

		return c.Next()
	}
}

// RequireUser sends anonymous visitors to the login page, carrying the
// originally requested path so login can return them to it.
func (m *AuthMiddleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return redirectToLogin(c)
		}
		return c.Next()
	}
}

// RequireCapability gates a route on the access decision for the resolved
// user: unauthenticated visitors go to login, authenticated users without the
// capability get a 403.
func (m *AuthMiddleware) RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch usecase.Require(CurrentUser(c), capability) {
		case usecase.Allow:
			return c.Next()
		case usecase.DenyUnauthenticated:
			return redirectToLogin(c)
		default:
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}
	}
}

// CurrentUser returns the user attached to the request context, or nil for an
// anonymous request.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.UserContext().Value(contextkeys.UserKey).(*model.User)
	return user
}

func redirectToLogin(c *fiber.Ctx) error {
	target := "/login"
	if path := c.Path(); path != "/" && path != "" {
		target += "?next=" + url.QueryEscape(path)
	}
	return c.Redirect(target, fiber.StatusFound)
}
