package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/model"
)

// EventServiceInterface defines the event operations the event endpoints need.
type EventServiceInterface interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (string, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	Availability(ctx context.Context, id string) ([]model.LocalityAvailability, error)
}

// EventHandler handles event management and availability reporting.
type EventHandler struct {
	service   EventServiceInterface
	validator *validator.Validate
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc EventServiceInterface, v *validator.Validate) *EventHandler {
	return &EventHandler{service: svc, validator: v}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req model.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	id, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("event_name", req.Name).Msg("failed to create event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("event_id", id).Str("event_name", req.Name).Msg("event created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	event, err := h.service.Get(c.Context(), id)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("event_id", id).Msg("failed to get event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(event)
}

// List handles GET /api/events. City and type filters come from query params
// and are both optional.
func (h *EventHandler) List(c *fiber.Ctx) error {
	filter := model.EventFilter{
		City: c.Query("city"),
		Type: model.EventType(c.Query("type")),
	}
	events, err := h.service.List(c.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(events)
}

// Availability handles GET /api/events/:id/availability.
func (h *EventHandler) Availability(c *fiber.Ctx) error {
	id := c.Params("id")
	report, err := h.service.Availability(c.Context(), id)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("event_id", id).Msg("failed to report availability")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(report)
}
