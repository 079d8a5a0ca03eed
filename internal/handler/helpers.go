package handler

import (
	"errors"
	"strconv"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/quiz"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(value), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if correlation := middleware.GetCorrelationID(c); correlation != "" {
		logger = base.With().Str("correlation_id", correlation).Logger()
	}
	return &logger
}

// respondError maps service errors onto HTTP responses. Anything unrecognised
// is logged and reported as a 500 carrying fallback.
func respondError(c *fiber.Ctx, v *validator.Validator, logger zerolog.Logger, err error, fallback string) error {
	var quizErr *quiz.ValidationError
	if errors.As(err, &quizErr) {
		return utils.Fail(c, fiber.StatusBadRequest, "quiz validation failed", quizErr.Fields)
	}

	var fieldErrs govalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", v.TranslateErrors(err))
	}

	if errors.Is(err, service.ErrQuizNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	}

	requestLogger(logger, c).Error().Err(err).Msg(fallback)
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}
