package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/dto"
	"github.com/noah-isme/quizhub-api/internal/models"
	"github.com/noah-isme/quizhub-api/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAdminExists indicates the email is already registered.
	ErrAdminExists = errors.New("admin already exists")
	// ErrRegistrationClosed indicates self-service admin registration is disabled.
	ErrRegistrationClosed = errors.New("admin registration is disabled")
)

// AuthService registers admins and issues signed access tokens.
type AuthService interface {
	Register(ctx context.Context, payload dto.AuthRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.AuthRequest) (dto.AuthResponse, error)
}

type authService struct {
	repo              repository.AdminUserRepository
	validator         *validator.Validate
	secret            []byte
	ttl               time.Duration
	allowRegistration bool
	logger            zerolog.Logger
	now               func() time.Time
}

// NewAuthService constructs the admin authentication service.
func NewAuthService(repo repository.AdminUserRepository, validate *validator.Validate, secret string, ttl time.Duration, allowRegistration bool, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		repo:              repo,
		validator:         validate,
		secret:            []byte(secret),
		ttl:               ttl,
		allowRegistration: allowRegistration,
		logger:            logger.With().Str("component", "auth_service").Logger(),
		now:               time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.AuthRequest) (dto.AuthResponse, error) {
	if !s.allowRegistration {
		return dto.AuthResponse{}, ErrRegistrationClosed
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	_, err := s.repo.GetByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		return dto.AuthResponse{}, ErrAdminExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	admin := models.AdminUser{
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AuthResponse{}, ErrAdminExists
		}
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Str("email", maskEmail(admin.Email)).Msg("admin registered")
	return s.issue(admin)
}

func (s *authService) Login(ctx context.Context, payload dto.AuthRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	admin, err := s.repo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Str("email", maskEmail(payload.Email)).Msg("login for unknown admin")
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Debug().Uint("admin_id", admin.ID).Msg("admin login rejected")
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issue(admin)
}

func (s *authService) issue(admin models.AdminUser) (dto.AuthResponse, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	role := strings.ToLower(strings.TrimSpace(admin.Role))
	if role == "" {
		role = models.RoleAdmin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(admin.ID), 10),
		"role":  role,
		"email": admin.Email,
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Admin:     dto.NewAdminResponse(admin),
	}, nil
}
