package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/quiz"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

// AdminQuizHandler manages quiz authoring routes.
type AdminQuizHandler struct {
	service   service.QuizService
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewAdminQuizHandler constructs the handler.
func NewAdminQuizHandler(service service.QuizService, validator *validator.Validator, logger zerolog.Logger) *AdminQuizHandler {
	return &AdminQuizHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "admin_quiz_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminQuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/validate", h.validate)
	router.Get("/drafts/question", h.newQuestion)
	router.Post("/drafts/transition", h.transition)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminQuizHandler) list(c *fiber.Ctx) error {
	req, err := parseQuizListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to list quizzes")
	}

	return utils.OK(c, result.Items, "quizzes retrieved", fiber.Map{"pagination": result.Pagination})
}

func (h *AdminQuizHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	result, err := h.service.GetForAdmin(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to load quiz")
	}

	return utils.SendSuccess(c, "quiz retrieved", result)
}

func (h *AdminQuizHandler) create(c *fiber.Ctx) error {
	var payload dto.QuizRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(c.UserContext(), payload, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to create quiz")
	}

	requestLogger(h.logger, c).Info().Uint("quiz_id", created.ID).Uint("admin_id", middleware.UserID(c)).Msg("quiz created")
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz created", created)
}

func (h *AdminQuizHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	var payload dto.QuizRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to update quiz")
	}

	return utils.SendSuccess(c, "quiz updated", updated)
}

func (h *AdminQuizHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to delete quiz")
	}

	return utils.SendSuccess(c, "quiz deleted", fiber.Map{"id": id})
}

func (h *AdminQuizHandler) validate(c *fiber.Ctx) error {
	var payload dto.QuizRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.ValidateDraft(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to validate quiz")
	}

	return utils.SendSuccess(c, "quiz draft checked", result)
}

func (h *AdminQuizHandler) newQuestion(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "question draft created", dto.NewQuestionRequest(quiz.NewQuestionDraft()))
}

func (h *AdminQuizHandler) transition(c *fiber.Ctx) error {
	var payload dto.KindTransitionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, h.validator, h.logger, err, "failed to change question type")
	}

	next := quiz.ChangeKind(payload.Question.ToDraft(), quiz.ParseKind(payload.Type))
	return utils.SendSuccess(c, "question type changed", dto.NewQuestionRequest(next))
}
