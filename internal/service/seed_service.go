package service

import (
	"bytes"
	"context"
	"crypto/subtle"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/quiz"
	"github.com/noah-isme/quizhub-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
	// ErrInvalidSeedBundle indicates the seed document does not match its schema.
	ErrInvalidSeedBundle = errors.New("invalid seed bundle")
)

//go:embed seed/quizzes.json
var defaultQuizBundle []byte

//go:embed seed/quizzes.schema.json
var quizBundleSchema string

// SeedService loads quiz bundles into the catalogue.
type SeedService interface {
	SeedQuizzes(ctx context.Context, token string, bundle []byte) (dto.SeedResultResponse, error)
}

type seedService struct {
	quizzes repository.QuizRepository
	service QuizService
	schema  *jsonschema.Schema
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs a seeding service. It fails when the embedded
// bundle schema cannot be compiled.
func NewSeedService(quizzes repository.QuizRepository, service QuizService, enabled bool, token string, logger zerolog.Logger) (SeedService, error) {
	schema, err := jsonschema.CompileString("quizzes.schema.json", quizBundleSchema)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	return &seedService{
		quizzes: quizzes,
		service: service,
		schema:  schema,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}, nil
}

// SeedQuizzes creates every quiz in bundle whose title is not already taken.
// An empty bundle seeds the built-in sample quizzes.
func (s *seedService) SeedQuizzes(ctx context.Context, token string, bundle []byte) (dto.SeedResultResponse, error) {
	if !s.enabled {
		return dto.SeedResultResponse{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return dto.SeedResultResponse{}, ErrSeedUnauthorized
	}

	if len(bytes.TrimSpace(bundle)) == 0 {
		bundle = defaultQuizBundle
	}

	parsed, err := s.parse(bundle)
	if err != nil {
		return dto.SeedResultResponse{}, err
	}

	result := dto.SeedResultResponse{Created: []uint{}, Skipped: []string{}}
	for i, request := range parsed.Quizzes {
		// compare against the title exactly as Create will store it
		title := quiz.NormalizeText(request.Title)
		exists, err := s.quizzes.ExistsByTitle(ctx, title)
		if err != nil {
			return result, err
		}
		if exists {
			result.Skipped = append(result.Skipped, title)
			continue
		}

		created, err := s.service.Create(ctx, request, 0)
		if err != nil {
			return result, fmt.Errorf("seed quiz %d: %w", i, err)
		}
		result.Created = append(result.Created, created.ID)
	}

	s.logger.Info().Int("created", len(result.Created)).Int("skipped", len(result.Skipped)).Msg("quizzes seeded")
	return result, nil
}

func (s *seedService) parse(bundle []byte) (dto.QuizSeedBundle, error) {
	var document interface{}
	if err := json.Unmarshal(bundle, &document); err != nil {
		return dto.QuizSeedBundle{}, fmt.Errorf("%w: %v", ErrInvalidSeedBundle, err)
	}
	if err := s.schema.Validate(document); err != nil {
		return dto.QuizSeedBundle{}, fmt.Errorf("%w: %v", ErrInvalidSeedBundle, err)
	}

	var parsed dto.QuizSeedBundle
	if err := json.Unmarshal(bundle, &parsed); err != nil {
		return dto.QuizSeedBundle{}, fmt.Errorf("%w: %v", ErrInvalidSeedBundle, err)
	}
	return parsed, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}
