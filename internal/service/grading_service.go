package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
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

// EventPublisher delivers graded attempt events. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// GradingService grades submitted answers against the stored quiz.
type GradingService interface {
	Submit(ctx context.Context, quizID uint, payload dto.SubmitAnswersRequest) (dto.GradeResponse, error)
}

type gradingService struct {
	quizzes   repository.QuizRepository
	attempts  repository.QuizAttemptRepository
	publisher EventPublisher
	subject   string
	stats     StatsInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewGradingService constructs the grading service. publisher and stats may be nil.
func NewGradingService(quizzes repository.QuizRepository, attempts repository.QuizAttemptRepository, publisher EventPublisher, subject string, stats StatsInvalidator, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		quizzes:   quizzes,
		attempts:  attempts,
		publisher: publisher,
		subject:   subject,
		stats:     stats,
		validator: validate,
		logger:    logger.With().Str("component", "grading_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/quizhub-api/internal/service/grading"),
		now:       time.Now,
	}
}

func (s *gradingService) Submit(ctx context.Context, quizID uint, payload dto.SubmitAnswersRequest) (dto.GradeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "quizzes.submit")
	span.SetAttributes(attribute.Int64("quiz.id", int64(quizID)))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload_invalid")
		return dto.GradeResponse{}, err
	}

	model, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "quiz_not_found")
			return dto.GradeResponse{}, ErrQuizNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_lookup_failed")
		return dto.GradeResponse{}, err
	}

	result := quiz.Grade(model.ToDomain(), quiz.AnswerSet(payload.Answers))
	response := dto.NewGradeResponse(model.ID, model.Title, result)

	attempt := models.QuizAttempt{
		QuizID:        model.ID,
		Score:         result.Score,
		TotalPossible: result.TotalPossible,
		CorrectCount:  result.CorrectCount(),
		QuestionCount: len(result.PerQuestion),
		CreatedAt:     s.now(),
	}
	if err := s.attempts.Create(ctx, &attempt); err != nil {
		// The grade is still returned; only the history misses this attempt.
		s.logger.Warn().Err(err).Uint("quiz_id", model.ID).Msg("failed to record quiz attempt")
		span.RecordError(err)
	} else {
		attemptID := attempt.ID
		response.AttemptID = &attemptID
		if s.stats != nil {
			s.stats.Invalidate(ctx, model.ID)
		}
	}

	s.publish(attempt)

	observability.QuizSubmissions().WithLabelValues(observability.SubmissionOutcome(result.Score, result.TotalPossible)).Inc()
	if result.TotalPossible > 0 {
		observability.QuizScoreRatio().Observe(float64(result.Score) / float64(result.TotalPossible))
	}

	span.SetAttributes(
		attribute.Int("quiz.score", result.Score),
		attribute.Int("quiz.total_possible", result.TotalPossible),
	)
	s.logger.Debug().Uint("quiz_id", model.ID).Int("score", result.Score).Int("total", result.TotalPossible).Msg("quiz graded")

	return response, nil
}

func (s *gradingService) publish(attempt models.QuizAttempt) {
	if s.publisher == nil || s.subject == "" {
		return
	}

	payload, err := json.Marshal(dto.AttemptGradedEvent{
		QuizID:        attempt.QuizID,
		AttemptID:     attempt.ID,
		Score:         attempt.Score,
		TotalPossible: attempt.TotalPossible,
		CorrectCount:  attempt.CorrectCount,
		QuestionCount: attempt.QuestionCount,
		GradedAt:      attempt.CreatedAt,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode graded attempt event")
		return
	}

	if err := s.publisher.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish graded attempt event")
	}
}
