package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

// AuthService implements login and logout against the backend.
type AuthService struct {
	api       ports.APIClient
	sessions  ports.SessionStore
	nav       ports.Navigator
	loginPath string
	log       zerolog.Logger
}

func NewAuthService(api ports.APIClient, sessions ports.SessionStore, nav ports.Navigator, loginPath string, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, nav: nav, loginPath: loginPath, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

// Login exchanges credentials for a token and stores the resulting session.
// The session is only stored when the backend returns both token and user.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	resp, err := s.api.Do(ctx, ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		// The login endpoint answers bad credentials with 401.
		if errors.Is(err, domain.ErrAuthenticationExpired) {
			s.log.Info().Err(err).Msg("login rejected")
			return domain.Session{}, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
		}
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	var body loginResponse
	if err := resp.Decode(&body); err != nil {
		return domain.Session{}, fmt.Errorf("login: decode response: %w", err)
	}
	if !body.Success || body.Token == "" || body.User == nil {
		s.log.Warn().Str("message", body.Message).Msg("login response missing token or user")
		return domain.Session{}, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	if err := s.sessions.Set(ctx, body.Token, body.User); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	s.log.Info().
		Str("user_id", body.User.ID).
		Str("role", body.User.Role).
		Msg("operator logged in")

	return domain.Session{Token: body.Token, User: body.User}, nil
}

// Logout drops the session and returns the operator to the login screen.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.nav.Redirect(ctx, s.loginPath)
	s.log.Info().Msg("operator logged out")
	return nil
}

func (s *AuthService) Current(ctx context.Context) domain.Session {
	return s.sessions.Get(ctx)
}
