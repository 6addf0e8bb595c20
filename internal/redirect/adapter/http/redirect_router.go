package http

import (
	"errors"
	"fmt"

	authhttp "github.com/agniveshadhikari/slinky/internal/auth/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/redirect/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// RedirectHTTPHandler serves the management view, the create/delete actions
// and the public catch-all redirect.
type RedirectHTTPHandler struct {
	usecase usecase.RedirectUsecaseInterface
	config  *config.Config
	log     logger.Logger
}

// NewRedirectHTTPHandler creates a new redirect HTTP handler
func NewRedirectHTTPHandler(uc usecase.RedirectUsecaseInterface, cfg *config.Config, log logger.Logger) *RedirectHTTPHandler {
	return &RedirectHTTPHandler{
		usecase: uc,
		config:  cfg,
		log:     log.WithComponent("redirect_handler"),
	}
}

// SetupManagementRoutes registers the authenticated management surface.
func (h *RedirectHTTPHandler) SetupManagementRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	router.Get("/", middleware.RequireUser(), h.ManagePage)
	router.Post("/", middleware.RequireUser(), h.Action)
	router.Get("/favicon.ico", h.Favicon)
}

// SetupCatchAllRoute registers the public redirect route. It matches anything,
// so it must be registered after every other route.
func (h *RedirectHTTPHandler) SetupCatchAllRoute(router fiber.Router) {
	router.Get("/*", h.Follow)
}

// ManagePage renders the management view with the user's redirects.
func (h *RedirectHTTPHandler) ManagePage(c *fiber.Ctx) error {
	return h.renderManagePage(c)
}

// Action dispatches the management form: create and delete share the POST /
// endpoint, discriminated by the action field.
func (h *RedirectHTTPHandler) Action(c *fiber.Ctx) error {
	action := c.FormValue("action")
	switch action {
	case "create":
		return h.create(c)
	case "delete":
		return h.delete(c)
	default:
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("Invalid action %s", action))
	}
}

func (h *RedirectHTTPHandler) create(c *fiber.Ctx) error {
	user := authhttp.CurrentUser(c)

	_, err := h.usecase.Create(c.Context(), c.FormValue("path"), c.FormValue("target"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicatePath):
			return c.Status(fiber.StatusConflict).SendString(fmt.Sprintf("Path %s already exists", c.FormValue("path")))
		case errors.Is(err, usecase.ErrPathRequired), errors.Is(err, usecase.ErrTargetRequired), errors.Is(err, usecase.ErrInvalidTarget):
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		default:
			return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
		}
	}

	return h.renderManagePage(c)
}

func (h *RedirectHTTPHandler) delete(c *fiber.Ctx) error {
	path := c.FormValue("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Can't delete empty path")
	}

	if err := h.usecase.Delete(c.Context(), path); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	return h.renderManagePage(c)
}

// Follow resolves a short path for an anonymous visitor. Storage trouble
// degrades to a redirect to the deployment's own base URL; an unknown or
// inactive path gets a friendly miss body rather than an error page.
func (h *RedirectHTTPHandler) Follow(c *fiber.Ctx) error {
	path := c.Params("*")

	target, err := h.usecase.ResolveActive(c.Context(), path)
	if err != nil {
		h.log.WithContext(c.UserContext()).Errorf("redirect resolution failed: %v", err)
		return c.Redirect(h.config.ExternalBaseURL(), fiber.StatusFound)
	}

	if target == "" {
		return c.SendString("Oops!")
	}

	return c.Redirect(target, fiber.StatusFound)
}

// Favicon answers browsers probing for an icon so the catch-all never sees it.
func (h *RedirectHTTPHandler) Favicon(c *fiber.Ctx) error {
	return c.SendString("")
}

func (h *RedirectHTTPHandler) renderManagePage(c *fiber.Ctx) error {
	user := authhttp.CurrentUser(c)

	redirects, err := h.usecase.ListByOwner(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	return c.Render("manage", fiber.Map{
		"User":      user,
		"Redirects": redirects,
		"BaseURL":   h.config.BaseURL,
	})
}
