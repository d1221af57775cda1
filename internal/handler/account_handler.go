package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/model"
)

// AccountServiceInterface defines the account management operations the
// account endpoints need.
type AccountServiceInterface interface {
	GetInfo(ctx context.Context, id string) (*model.AccountInfoResponse, error)
	List(ctx context.Context) ([]model.AccountSummary, error)
	Update(ctx context.Context, id string, req *model.UpdateAccountRequest) error
	Delete(ctx context.Context, id string) error
}

// AccountHandler handles account profile management.
type AccountHandler struct {
	service   AccountServiceInterface
	validator *validator.Validate
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc AccountServiceInterface, v *validator.Validate) *AccountHandler {
	return &AccountHandler{service: svc, validator: v}
}

// Get handles GET /api/accounts/:id.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	info, err := h.service.GetInfo(c.Context(), id)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", id).Msg("failed to get account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(info)
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	summaries, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(summaries)
}

// Update handles PUT /api/accounts/:id.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req model.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.Update(c.Context(), id, &req); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", id).Msg("failed to update account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"id": id})
}

// Delete handles DELETE /api/accounts/:id. Deletion is soft and terminal.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", id).Msg("failed to delete account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"id": id})
}
