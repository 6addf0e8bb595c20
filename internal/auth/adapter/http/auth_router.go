package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles the login, invite and password-reset pages.
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	config  *config.Config
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase: uc,
		config:  cfg,
	}
}

// SetupAuthRoutes registers the authentication routes with their middleware.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware) {
	router.Get("/login", h.LoginPage)
	router.Post("/login", h.Login)

	router.Get("/create-user", middleware.RequireCapability(model.RoleAdmin), h.CreateUserPage)
	router.Post("/create-user", middleware.RequireCapability(model.RoleAdmin), h.CreateUser)

	router.Get("/reset-password", middleware.RequireUser(), h.ResetPasswordPage)
	router.Post("/reset-password", middleware.RequireUser(), h.ResetPassword)
}

// LoginPage renders the login form. When a one-time token arrives in the
// query (the invite flow), the token becomes the session cookie and the
// visitor continues to `next`, defaulting to the password-reset page.
func (h *AuthHTTPHandler) LoginPage(c *fiber.Ctx) error {
	if token := c.Query("token"); token != "" {
		next := c.Query("next", "/reset-password")
		h.setSessionCookie(c, token, time.Time{})
		return c.Redirect(next, fiber.StatusFound)
	}

	return c.Render("authenticate", fiber.Map{
		"Failed": false,
	})
}

// Login authenticates the form credentials and issues a session. A failed
// attempt re-renders the form with a failure flag and never surfaces an error
// to the visitor.
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	persist := c.FormValue("persist_session") != ""

	user, err := h.usecase.Authenticate(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return c.Render("authenticate", fiber.Map{
				"Failed": true,
			})
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	token, expiresAt, err := h.usecase.CreateSession(c.Context(), user.ID, persist)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	// Persistent sessions get a cookie that outlives the browser; otherwise
	// the cookie lives for the browser session only.
	if persist {
		h.setSessionCookie(c, token, expiresAt)
	} else {
		h.setSessionCookie(c, token, time.Time{})
	}

	return c.Redirect(c.Query("next", "/"), fiber.StatusFound)
}

// CreateUserPage renders the invite form (admin only).
func (h *AuthHTTPHandler) CreateUserPage(c *fiber.Ctx) error {
	return c.Render("create_user", fiber.Map{})
}

// CreateUser creates an account and answers with a plaintext login URL
// carrying a one-day session token the invited user can follow.
func (h *AuthHTTPHandler) CreateUser(c *fiber.Ctx) error {
	username := c.FormValue("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Username is required")
	}

	user, err := h.usecase.CreateUser(c.Context(), username, model.RoleUser)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).SendString(fmt.Sprintf("Username %s is taken", username))
		}
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	token, _, err := h.usecase.CreateSession(c.Context(), user.ID, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	return c.SendString(fmt.Sprintf("%s/login?token=%s", h.config.ExternalBaseURL(), token))
}

// ResetPasswordPage renders the reset form for the authenticated user.
func (h *AuthHTTPHandler) ResetPasswordPage(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return c.Render("reset_password", fiber.Map{
		"Username": user.Username,
	})
}

// ResetPassword updates the password, invalidates the current session and
// clears the cookie so the visitor logs in again with the new credentials.
func (h *AuthHTTPHandler) ResetPassword(c *fiber.Ctx) error {
	password := c.FormValue("password")
	if password == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Password invalid")
	}

	user := CurrentUser(c)
	if err := h.usecase.UpdatePassword(c.Context(), user.ID, password); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	if token := c.Cookies(h.config.SessionCookieName()); token != "" {
		if err := h.usecase.InvalidateSession(c.Context(), token); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
		}
	}

	h.clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}

// Helper methods

func (h *AuthHTTPHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	cookie := &fiber.Cookie{
		Name:     h.config.SessionCookieName(),
		Value:    token,
		Path:     h.config.CookiePath,
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
	}
	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt
		cookie.MaxAge = int(time.Until(expiresAt).Seconds())
	}
	c.Cookie(cookie)
}

func (h *AuthHTTPHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.SessionCookieName(),
		Value:    "",
		Path:     h.config.CookiePath,
		MaxAge:   -1,
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
