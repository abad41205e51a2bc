package app

import (
	"context"
	"errors"
	"strings"

	"github.com/CristalT/elico-storefront/internal/auth/domain"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrInvalidInput
	}
	return s.gw.Login(ctx, email, password)
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (domain.User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return domain.User{}, ErrInvalidInput
	}
	if req.Password != req.PasswordConfirmation {
		return domain.User{}, ErrInvalidInput
	}
	return s.gw.Signup(ctx, req)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}
	return s.gw.ForgotPassword(ctx, email)
}

func (s *Service) Me(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrInvalidInput
	}
	return s.gw.Me(ctx, token)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.gw.Logout(ctx, token)
}

func (s *Service) UpdateProfile(ctx context.Context, token string, req domain.ProfileUpdate) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrInvalidInput
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return domain.User{}, ErrInvalidInput
	}
	return s.gw.UpdateProfile(ctx, token, req)
}

func (s *Service) ChangePassword(ctx context.Context, token, current, next string) error {
	if token == "" || current == "" || next == "" {
		return ErrInvalidInput
	}
	return s.gw.ChangePassword(ctx, token, current, next)
}
