package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

// AuthHandler exposes admin registration and login.
type AuthHandler struct {
	service   service.AuthService
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(service service.AuthService, validator *validator.Validator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.AuthRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			return utils.SendError(c, fiber.StatusConflict, "admin already exists")
		case errors.Is(err, service.ErrRegistrationClosed):
			return utils.SendError(c, fiber.StatusForbidden, "registration disabled")
		}
		return respondError(c, h.validator, h.logger, err, "failed to register admin")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "admin registered", result)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.AuthRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return respondError(c, h.validator, h.logger, err, "failed to log in")
	}

	return utils.SendSuccess(c, "login successful", result)
}
