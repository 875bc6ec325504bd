package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// TokenPrefix starts every demo session token.
const TokenPrefix = "demo-token-"

// UserDirectory looks up demo accounts. *config.Dataset satisfies it.
type UserDirectory interface {
	FindUser(username, password string) (domain.User, bool)
}

// LoginRecorder counts login attempts.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, success bool)
}

// AuthService checks demo credentials. It issues a predictable token and
// keeps no session state.
type AuthService struct {
	users    UserDirectory
	recorder LoginRecorder
	logger   *slog.Logger
}

// NewAuthService creates the demo login service.
func NewAuthService(users UserDirectory, recorder LoginRecorder, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// Login trims both credentials and matches them against the directory.
// Missing credentials are simply invalid.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	user, ok := s.users.FindUser(username, password)
	if !ok || username == "" {
		s.record(ctx, false)
		s.logger.WarnContext(ctx, "login rejected", slog.String("username", username))
		return domain.Session{}, ErrInvalidCredentials
	}

	s.record(ctx, true)
	s.logger.InfoContext(ctx, "login accepted", slog.String("username", username))

	name := user.Name
	if name == "" {
		name = username
	}
	return domain.Session{
		Token: TokenPrefix + username,
		Name:  name,
		Email: user.Email,
	}, nil
}

func (s *AuthService) record(ctx context.Context, success bool) {
	if s.recorder != nil {
		s.recorder.RecordLogin(ctx, success)
	}
}
