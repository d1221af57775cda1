package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/model"
)

// CouponServiceInterface defines the coupon ledger operations the coupon
// endpoints need.
type CouponServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id string, req *model.UpdateCouponRequest) error
	Revoke(ctx context.Context, id string) error
	Redeem(ctx context.Context, req *model.RedeemCouponRequest) error
	ListAvailable(ctx context.Context) ([]model.CouponItem, error)
	ListAvailableFor(ctx context.Context, accountID string) ([]model.CouponItem, error)
}

// CouponHandler handles coupon management and redemption.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a CouponHandler.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// Create handles POST /api/coupons.
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	coupon, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("coupon_name", req.Name).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("coupon_id", coupon.ID).Str("coupon_code", coupon.Code).Msg("coupon created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": coupon.ID, "code": coupon.Code})
}

// Update handles PUT /api/coupons/:id.
func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req model.UpdateCouponRequest
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
		log.Error().Err(err).Str("coupon_id", id).Msg("failed to update coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"id": id})
}

// Revoke handles DELETE /api/coupons/:id. Revocation is a terminal state
// change, not a row deletion.
func (h *CouponHandler) Revoke(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Revoke(c.Context(), id); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("coupon_id", id).Msg("failed to revoke coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"id": id})
}

// Redeem handles POST /api/coupons/redeem.
func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	var req model.RedeemCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.Redeem(c.Context(), &req); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("coupon_code", req.Code).
			Str("account_id", req.AccountID).
			Msg("failed to redeem coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("coupon_code", req.Code).
		Str("account_id", req.AccountID).
		Msg("coupon redeemed")
	return c.JSON(fiber.Map{"message": "coupon redeemed"})
}

// List handles GET /api/coupons.
func (h *CouponHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListAvailable(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(items)
}

// ListForAccount handles GET /api/coupons/account/:accountID.
func (h *CouponHandler) ListForAccount(c *fiber.Ctx) error {
	accountID := c.Params("accountID")
	items, err := h.service.ListAvailableFor(c.Context(), accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to list coupons for account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(items)
}
