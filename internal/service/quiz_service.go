package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/models"
	"github.com/noah-isme/quizhub-api/internal/observability"
	"github.com/noah-isme/quizhub-api/internal/quiz"
	"github.com/noah-isme/quizhub-api/internal/repository"
)

const (
	defaultQuizPageSize = 20
	maxQuizPageSize     = 100
)

// ErrQuizNotFound indicates the requested quiz does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

// StatsInvalidator drops cached statistics after a quiz or its attempts change.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, quizID uint)
}

// QuizService exposes the quiz catalogue and the authoring workflow.
type QuizService interface {
	List(ctx context.Context, req dto.QuizListRequest) (dto.QuizListResponse, error)
	Get(ctx context.Context, id uint) (dto.QuizResponse, error)
	GetForAdmin(ctx context.Context, id uint) (dto.AdminQuizResponse, error)
	Create(ctx context.Context, payload dto.QuizRequest, adminID uint) (dto.AdminQuizResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuizRequest) (dto.AdminQuizResponse, error)
	Delete(ctx context.Context, id uint) error
	ValidateDraft(ctx context.Context, payload dto.QuizRequest) (dto.DraftValidationResponse, error)
}

type quizService struct {
	repo      repository.QuizRepository
	stats     StatsInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	newKey    func() string
}

// NewQuizService constructs a quiz service. stats may be nil.
func NewQuizService(repo repository.QuizRepository, stats StatsInvalidator, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		repo:      repo,
		stats:     stats,
		validator: validate,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/quizhub-api/internal/service/quiz"),
		newKey:    uuid.NewString,
	}
}

func (s *quizService) List(ctx context.Context, req dto.QuizListRequest) (dto.QuizListResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultQuizPageSize
	}
	if pageSize > maxQuizPageSize {
		pageSize = maxQuizPageSize
	}

	quizzes, total, err := s.repo.List(ctx, repository.QuizFilter{
		Genre:    req.Genre,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.QuizListResponse{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	return dto.QuizListResponse{
		Items: dto.NewQuizSummaryResponseSlice(quizzes),
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *quizService) Get(ctx context.Context, id uint) (dto.QuizResponse, error) {
	model, err := s.load(ctx, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}
	return dto.NewQuizResponse(model), nil
}

func (s *quizService) GetForAdmin(ctx context.Context, id uint) (dto.AdminQuizResponse, error) {
	model, err := s.load(ctx, id)
	if err != nil {
		return dto.AdminQuizResponse{}, err
	}
	return dto.NewAdminQuizResponse(model), nil
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizRequest, adminID uint) (dto.AdminQuizResponse, error) {
	ctx, span := s.tracer.Start(ctx, "quizzes.create")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload_invalid")
		return dto.AdminQuizResponse{}, err
	}

	draft := payload.ToDraft()
	for i := range draft.Questions {
		draft.Questions[i].ID = s.newKey()
	}

	validated, err := quiz.Validate(draft)
	if err != nil {
		observability.QuizValidationFailures().WithLabelValues("create").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AdminQuizResponse{}, err
	}

	model := models.Quiz{
		Title:       validated.Title,
		Genre:       validated.Genre,
		Description: validated.Description,
		Questions:   models.NewQuizQuestions(validated.Questions),
	}
	if adminID != 0 {
		creator := adminID
		model.CreatedBy = &creator
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_create_failed")
		return dto.AdminQuizResponse{}, err
	}

	span.SetAttributes(
		attribute.Int64("quiz.id", int64(model.ID)),
		attribute.Int("quiz.questions", len(model.Questions)),
	)
	s.logger.Info().Uint("quiz_id", model.ID).Int("questions", len(model.Questions)).Msg("quiz created")

	return dto.NewAdminQuizResponse(model), nil
}

func (s *quizService) Update(ctx context.Context, id uint, payload dto.QuizRequest) (dto.AdminQuizResponse, error) {
	ctx, span := s.tracer.Start(ctx, "quizzes.update")
	span.SetAttributes(attribute.Int64("quiz.id", int64(id)))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload_invalid")
		return dto.AdminQuizResponse{}, err
	}

	existing, err := s.repo.QuestionKeys(ctx, id)
	if err != nil {
		span.RecordError(err)
		return dto.AdminQuizResponse{}, err
	}

	draft := payload.ToDraft()
	s.assignKeys(draft.Questions, existing)

	validated, err := quiz.Validate(draft)
	if err != nil {
		observability.QuizValidationFailures().WithLabelValues("update").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AdminQuizResponse{}, err
	}

	model := models.Quiz{
		ID:          id,
		Title:       validated.Title,
		Genre:       validated.Genre,
		Description: validated.Description,
		Questions:   models.NewQuizQuestions(validated.Questions),
	}

	if err := s.repo.Replace(ctx, &model); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "quiz_not_found")
			return dto.AdminQuizResponse{}, ErrQuizNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_update_failed")
		return dto.AdminQuizResponse{}, err
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx, id)
	}
	s.logger.Info().Uint("quiz_id", id).Int("questions", len(model.Questions)).Msg("quiz updated")

	return dto.NewAdminQuizResponse(model), nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx, id)
	}
	s.logger.Info().Uint("quiz_id", id).Msg("quiz deleted")
	return nil
}

func (s *quizService) ValidateDraft(ctx context.Context, payload dto.QuizRequest) (dto.DraftValidationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DraftValidationResponse{}, err
	}

	_, err := quiz.Validate(payload.ToDraft())
	if err == nil {
		return dto.DraftValidationResponse{Valid: true, Errors: map[string]string{}}, nil
	}

	var validationErr *quiz.ValidationError
	if !errors.As(err, &validationErr) {
		return dto.DraftValidationResponse{}, err
	}

	observability.QuizValidationFailures().WithLabelValues("validate").Inc()
	return dto.DraftValidationResponse{Valid: false, Errors: validationErr.Fields}, nil
}

func (s *quizService) load(ctx context.Context, id uint) (models.Quiz, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, ErrQuizNotFound
		}
		return models.Quiz{}, err
	}
	return model, nil
}

// assignKeys keeps a submitted question id when it already belongs to the quiz
// and is not reused; every other question gets a fresh key.
func (s *quizService) assignKeys(questions []quiz.QuestionDraft, existing map[string]struct{}) {
	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		key := strings.TrimSpace(questions[i].ID)
		_, known := existing[key]
		_, duplicate := seen[key]
		if key == "" || !known || duplicate {
			key = s.newKey()
		}
		seen[key] = struct{}{}
		questions[i].ID = key
	}
}
