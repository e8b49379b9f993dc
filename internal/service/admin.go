package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/auth"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/config"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password; the two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenIssuer signs a bearer token for an authenticated admin.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// AdminService bootstraps administrators and authenticates them.
type AdminService struct {
	admins      repository.AdminStore
	tokens      TokenIssuer
	credentials []config.Credential
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewAdminService constructs an AdminService. credentials are the admins
// Bootstrap makes sure exist.
func NewAdminService(
	admins repository.AdminStore,
	tokens TokenIssuer,
	credentials []config.Credential,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{admins: admins, tokens: tokens, credentials: credentials, metrics: m, logger: logger}
}

// Bootstrap creates every configured admin that does not exist yet. Running
// it again is a no-op.
func (s *AdminService) Bootstrap(ctx context.Context) error {
	if len(s.credentials) == 0 {
		s.logger.WarnContext(ctx, "no admin credentials configured; login is impossible until ADMIN_DEFAULT_PASSWORD is set")
		return nil
	}
	for _, c := range s.credentials {
		username := strings.TrimSpace(c.Username)
		exists, err := s.admins.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("check admin %s: %w", username, err)
		}
		if exists {
			s.logger.InfoContext(ctx, "admin already exists", "username", username)
			continue
		}

		hash, err := auth.HashPassword(c.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		err = s.admins.Create(ctx, &model.Admin{Username: username, PasswordHash: hash})
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			s.logger.InfoContext(ctx, "admin already exists", "username", username)
		case err != nil:
			return fmt.Errorf("create admin %s: %w", username, err)
		default:
			s.logger.InfoContext(ctx, "admin created", "username", username)
		}
	}
	return nil
}

// Login checks the credentials and returns a signed token.
func (s *AdminService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		s.metrics.IncLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.IncLogin("rejected")
			s.logger.WarnContext(ctx, "login for unknown admin", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if err := auth.VerifyPassword(req.Password, admin.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			s.metrics.IncLogin("rejected")
			s.logger.WarnContext(ctx, "login with wrong password", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.Issue(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.metrics.IncLogin("success")
	s.logger.InfoContext(ctx, "admin logged in", "username", admin.Username)
	return &model.AuthResponse{
		Token:    token,
		Message:  "Login successful",
		Username: admin.Username,
	}, nil
}
