package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/model"
)

// CartServiceInterface defines the cart operations the cart endpoints need.
type CartServiceInterface interface {
	AddLine(ctx context.Context, accountID string, req *model.AddCartLineRequest) (*model.CartLine, error)
	EditLine(ctx context.Context, accountID, lineID string, req *model.EditCartLineRequest) (*model.CartUpdateResult, error)
	RemoveLine(ctx context.Context, accountID, lineID string) (*model.CartUpdateResult, error)
	Get(ctx context.Context, accountID string) (*model.Cart, error)
}

// CartHandler handles the cart endpoints nested under an account.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// Get handles GET /api/accounts/:id/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	accountID := c.Params("id")
	cart, err := h.service.Get(c.Context(), accountID)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to get cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(cart)
}

// AddLine handles POST /api/accounts/:id/cart/items.
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	accountID := c.Params("id")
	var req model.AddCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	line, err := h.service.AddLine(c.Context(), accountID, &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to add cart line")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("account_id", accountID).Str("line_id", line.ID).Msg("cart line added")
	return c.Status(fiber.StatusCreated).JSON(line)
}

// EditLine handles PUT /api/accounts/:id/cart/items/:itemID.
func (h *CartHandler) EditLine(c *fiber.Ctx) error {
	accountID := c.Params("id")
	lineID := c.Params("itemID")
	var req model.EditCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	result, err := h.service.EditLine(c.Context(), accountID, lineID, &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", accountID).Str("line_id", lineID).Msg("failed to edit cart line")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	if result.CartEmpty {
		return c.JSON(fiber.Map{"message": "the cart is empty"})
	}
	return c.JSON(fiber.Map{"message": "cart line updated"})
}

// RemoveLine handles DELETE /api/accounts/:id/cart/items/:itemID. Removing
// from an empty cart is an expected action and reported as information.
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	accountID := c.Params("id")
	lineID := c.Params("itemID")

	result, err := h.service.RemoveLine(c.Context(), accountID, lineID)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("account_id", accountID).Str("line_id", lineID).Msg("failed to remove cart line")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	if result.CartEmpty {
		return c.JSON(fiber.Map{"message": "the cart is empty"})
	}
	return c.JSON(fiber.Map{"message": "cart line removed"})
}
