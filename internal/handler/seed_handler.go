package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

// SeedHandler exposes tooling endpoints for seeding data.
type SeedHandler struct {
	service   service.SeedService
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, validator *validator.Validator, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/quizzes", h.quizzes)
}

// quizzes seeds the request body as a quiz bundle; an empty body seeds the built-in samples.
func (h *SeedHandler) quizzes(c *fiber.Ctx) error {
	result, err := h.service.SeedQuizzes(c.UserContext(), c.Get(middleware.HeaderSeedToken), c.Body())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedDisabled):
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		case errors.Is(err, service.ErrSeedUnauthorized):
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		case errors.Is(err, service.ErrInvalidSeedBundle):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid seed bundle", fiber.Map{"detail": err.Error()})
		}
		return respondError(c, h.validator, h.logger, err, "seed operation failed")
	}

	return utils.SendSuccess(c, "quizzes seeded", result)
}
