// Package ui serves the events page and its single action endpoint. Every
// button on the page posts to the action endpoint; the response is always
// the freshly rendered page.
package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"event-manager/internal/events/adapters/view"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	ctrl   *Controller
	logger *slog.Logger
}

func NewHandler(ctrl *Controller, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ctrl: ctrl, logger: logger}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Page)
	app.Post(view.ActionPath, h.Action)
	app.Get("/healthz", h.Health)
}

// Page reloads events from the API and renders the table.
func (h *Handler) Page(c *fiber.Ctx) error {
	status := http.StatusOK
	if err := h.ctrl.Init(c.UserContext()); err != nil {
		h.logger.Error("page_load_failed", "error", err)
		status = http.StatusBadGateway
	}
	return h.render(c, status)
}

// Action decodes the clicked button and dispatches it.
func (h *Handler) Action(c *fiber.Ctx) error {
	a, err := DecodeAction(c.FormValue(view.ActionField))
	if err != nil {
		h.logger.Warn("action_rejected", "value", c.FormValue(view.ActionField), "error", err)
		return h.render(c, http.StatusBadRequest)
	}

	err = h.ctrl.Dispatch(c.UserContext(), a, formLookup(c))
	status := statusFor(err)
	if err != nil {
		h.logger.Warn("action_failed", "action", a.String(), "status", status, "error", err)
	}
	return h.render(c, status)
}

// formLookup reads the urlencoded body, telling absent fields from empty ones.
func formLookup(c *fiber.Ctx) view.Lookup {
	args := c.Request().PostArgs()
	return func(name string) (string, bool) {
		if !args.Has(name) {
			return "", false
		}
		return string(args.Peek(name)), true
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (h *Handler) render(c *fiber.Ctx, status int) error {
	var buf bytes.Buffer
	if err := h.ctrl.Render(&buf); err != nil {
		h.logger.Error("page_render_failed", "error", err)
		return c.SendStatus(http.StatusInternalServerError)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidAction),
		errors.Is(err, view.ErrWrongMode):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrUnknownRow):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
