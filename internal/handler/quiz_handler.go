package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

// QuizHandler serves the public quiz catalogue and grading routes.
type QuizHandler struct {
	quizzes   service.QuizService
	grading   service.GradingService
	stats     service.QuizStatsService
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewQuizHandler constructs the public quiz handler.
func NewQuizHandler(quizzes service.QuizService, grading service.GradingService, stats service.QuizStatsService, validator *validator.Validator, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes:   quizzes,
		grading:   grading,
		stats:     stats,
		validator: validator,
		logger:    logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register wires read-only catalogue routes.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/stats", h.getStats)
}

// RegisterSubmit wires the submission route, optionally behind extra middleware such as a rate limiter.
func (h *QuizHandler) RegisterSubmit(router fiber.Router, middlewares ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, middlewares...), h.submit)
	router.Post("/:id/submit", handlers...)
}

func (h *QuizHandler) list(c *fiber.Ctx) error {
	req, err := parseQuizListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.quizzes.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to list quizzes")
	}

	meta := fiber.Map{"pagination": result.Pagination, "filters": fiber.Map{"genre": req.Genre, "search": req.Search}}
	return utils.OK(c, result.Items, "quizzes retrieved", meta)
}

func (h *QuizHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	result, err := h.quizzes.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to load quiz")
	}

	return utils.SendSuccess(c, "quiz retrieved", result)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	var payload dto.SubmitAnswersRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.grading.Submit(c.UserContext(), id, payload)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to grade quiz")
	}

	return utils.SendSuccess(c, "quiz graded", result)
}

func (h *QuizHandler) getStats(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	stats, err := h.stats.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to load quiz stats")
	}

	return utils.SendSuccess(c, "quiz stats retrieved", stats)
}

func parseQuizListRequest(c *fiber.Ctx) (dto.QuizListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.QuizListRequest{}, errInvalidQuery("page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return dto.QuizListRequest{}, errInvalidQuery("page_size")
	}

	return dto.QuizListRequest{
		Genre:    c.Query("genre"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return "invalid " + string(e)
}
