package facade

import (
	"context"
	"errors"
	"strings"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/inbound"
	"go-blog-api/internal/port/outbound"
)

type AuthApplicationService struct {
	users   outbound.UserRepository
	signups inbound.UserUseCase
	tokens  auth.TokenIssuer
	logger  logger.Logger
}

var _ inbound.AuthUseCase = (*AuthApplicationService)(nil)

func NewAuthApplicationService(
	users outbound.UserRepository,
	signups inbound.UserUseCase,
	tokens auth.TokenIssuer,
	log logger.Logger,
) *AuthApplicationService {
	return &AuthApplicationService{
		users:   users,
		signups: signups,
		tokens:  tokens,
		logger:  log.WithField("service", "auth"),
	}
}

// Login checks the password against the stored bcrypt hash. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthApplicationService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", auth.ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.WithField("user_id", user.ID).Info("Login rejected: password mismatch")
		return "", auth.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Identity())
}

// Signup creates a USER account unless a role is given and returns a token
// for it.
func (s *AuthApplicationService) Signup(ctx context.Context, in domain.NewUser) (string, *domain.User, error) {
	if in.Role == "" {
		in.Role = auth.RoleUser
	}

	user, err := s.signups.CreateUser(ctx, in)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
