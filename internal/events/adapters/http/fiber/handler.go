package fiber

import (
	"context"
	"errors"
	"net/http"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/ports"
	"event-manager/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ManageEventsUseCase interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id domain.EventID) (domain.Event, error)
	CreateEvent(ctx context.Context, in usecase.CreateEventInput) (domain.Event, error)
	PatchEvent(ctx context.Context, in usecase.PatchEventInput) (domain.Event, error)
	DeleteEvent(ctx context.Context, id domain.EventID) (domain.Event, error)
}

type EventHandler struct {
	uc ManageEventsUseCase
}

func NewEventHandler(uc ManageEventsUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// Register mounts the events resource on r.
func (h *EventHandler) Register(r fiber.Router) {
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/:id", h.GetEvent)
	r.Patch("/events/:id", h.PatchEvent)
	r.Delete("/events/:id", h.DeleteEvent)
}

// ListEvents godoc
// @Summary List events
// @Description Returns every stored event ordered by id
// @Tags Events
// @Produce json
// @Success 200 {array} EventResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.uc.ListEvents(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toEventResponses(events))
}

// GetEvent godoc
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	e, err := h.uc.GetEvent(c.UserContext(), domain.EventID(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toEventResponse(e))
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Stores an event and returns it with its assigned id
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	e, err := h.uc.CreateEvent(c.UserContext(), usecase.CreateEventInput{
		EventName: req.EventName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(toEventResponse(e))
}

// PatchEvent godoc
// @Summary Update an event
// @Description Merges the fields present in the body into the stored event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body PatchEventRequest true "Fields to change"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id} [patch]
func (h *EventHandler) PatchEvent(c *fiber.Ctx) error {
	var req PatchEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	e, err := h.uc.PatchEvent(c.UserContext(), usecase.PatchEventInput{
		ID: domain.EventID(c.Params("id")),
		Patch: ports.EventPatch{
			EventName: req.EventName,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toEventResponse(e))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event and returns the removed record
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	e, err := h.uc.DeleteEvent(c.UserContext(), domain.EventID(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toEventResponse(e))
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrEventNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "event_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_date_range",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidEvent):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
