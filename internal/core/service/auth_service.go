package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

// LoginLimiter abstracts the brute-force damper (Redis). Limiter failures
// are tolerated: login proceeds when the limiter itself is unavailable.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.AuthRepository
	tokens  *TokenService
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, tokens *TokenService, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a new account and returns a freshly issued token for it.
// The role field is validated against the closed role enumeration; an empty
// role defaults to employee. Nothing stops a caller from self-assigning
// manager or admin; registration is the only way accounts are minted.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return "", nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return token, created, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password both come back as ErrInvalidCredentials so the response
// does not reveal whether an account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, proceeding")
		} else if blocked {
			s.log.Warn().Str("email", email).Msg("login blocked by failure limiter")
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		if s.limiter != nil {
			if err := s.limiter.RecordFailure(ctx, email); err != nil {
				s.log.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
