package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/model"
)

// AuthServiceInterface defines the account lifecycle operations the auth
// endpoints need.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterAccountRequest) (string, error)
	Activate(ctx context.Context, req *model.ActivateAccountRequest) error
	RequestPasswordRecovery(ctx context.Context, req *model.RecoveryRequest) error
	ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error
	Authenticate(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
}

// AuthHandler handles registration, activation, login and password recovery.
type AuthHandler struct {
	service   AuthServiceInterface
	validator *validator.Validate
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc AuthServiceInterface, v *validator.Validate) *AuthHandler {
	return &AuthHandler{service: svc, validator: v}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	id, err := h.service.Register(c.Context(), &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("account_id", id).Msg("account registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Activate handles POST /api/auth/activate.
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var req model.ActivateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.Activate(c.Context(), &req); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to activate account")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("email", req.Email).Msg("account activated")
	return c.JSON(fiber.Map{"message": "account activated"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	token, err := h.service.Authenticate(c.Context(), &req)
	if err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to authenticate")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(token)
}

// RequestRecovery handles POST /api/auth/recovery.
func (h *AuthHandler) RequestRecovery(c *fiber.Ctx) error {
	var req model.RecoveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.RequestPasswordRecovery(c.Context(), &req); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to start password recovery")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"message": "a recovery code has been sent"})
}

// ChangePassword handles POST /api/auth/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req model.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.ChangePassword(c.Context(), &req); err != nil {
		if handled, werr := businessError(c, err); handled {
			return werr
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to change password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
