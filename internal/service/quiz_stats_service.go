package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/quiz"
	"github.com/noah-isme/quizhub-api/internal/repository"
)

// QuizStatsService aggregates attempts per quiz, backed by an optional Redis cache.
type QuizStatsService interface {
	Get(ctx context.Context, quizID uint) (dto.QuizStatsResponse, error)
	Invalidate(ctx context.Context, quizID uint)
}

type quizStatsService struct {
	quizzes  repository.QuizRepository
	attempts repository.QuizAttemptRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewQuizStatsService builds the stats aggregator. cache may be nil.
func NewQuizStatsService(quizzes repository.QuizRepository, attempts repository.QuizAttemptRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) QuizStatsService {
	return &quizStatsService{
		quizzes:  quizzes,
		attempts: attempts,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "quiz_stats_service").Logger(),
	}
}

// Cached stats live under a per-quiz version. Invalidate bumps the version, so
// a Get that read the database before the bump can only write to a retired key.
func statsVersionKey(quizID uint) string {
	return fmt.Sprintf("quiz:stats:%d:version", quizID)
}

func statsCacheKey(quizID uint, version int64) string {
	return fmt.Sprintf("quiz:stats:%d:v%d", quizID, version)
}

func (s *quizStatsService) Get(ctx context.Context, quizID uint) (dto.QuizStatsResponse, error) {
	version, cacheable := s.cacheVersion(ctx, quizID)

	if cacheable {
		if cached, err := s.cache.Get(ctx, statsCacheKey(quizID, version)).Result(); err == nil {
			var response dto.QuizStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("quiz_id", quizID).Msg("quiz stats cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read quiz stats cache")
		}
	}

	model, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizStatsResponse{}, ErrQuizNotFound
		}
		return dto.QuizStatsResponse{}, err
	}

	stats, err := s.attempts.Stats(ctx, quizID)
	if err != nil {
		return dto.QuizStatsResponse{}, err
	}

	// attempts graded before questions were removed may exceed the current maximum
	totalPossible := quiz.PointsPerQuestion * len(model.Questions)
	if stats.TotalPossible > totalPossible {
		totalPossible = stats.TotalPossible
	}

	response := dto.QuizStatsResponse{
		QuizID:        quizID,
		Attempts:      stats.Attempts,
		AverageScore:  math.Round(stats.AverageScore*100) / 100,
		BestScore:     stats.BestScore,
		TotalPossible: totalPossible,
	}

	if cacheable {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, statsCacheKey(quizID, version), payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store quiz stats cache")
			}
		}
	}

	return response, nil
}

func (s *quizStatsService) Invalidate(ctx context.Context, quizID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, statsVersionKey(quizID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("quiz_id", quizID).Msg("failed to invalidate quiz stats cache")
	}
}

// cacheVersion reports the current stats version. The cache is skipped when
// Redis is not configured or the version cannot be read.
func (s *quizStatsService) cacheVersion(ctx context.Context, quizID uint) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Get(ctx, statsVersionKey(quizID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		s.logger.Warn().Err(err).Uint("quiz_id", quizID).Msg("failed to read quiz stats version")
		return 0, false
	}
	return version, true
}
