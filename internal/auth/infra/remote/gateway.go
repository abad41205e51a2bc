package remote

import (
	"context"

	"github.com/CristalT/elico-storefront/internal/auth/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

type Gateway struct {
	client *commerce.Client
}

func NewGateway(client *commerce.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var sess domain.Session
	if err := g.client.Post(ctx, "/auth/login", body, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (g *Gateway) Signup(ctx context.Context, req domain.SignupRequest) (domain.User, error) {
	var user domain.User
	if err := g.client.Post(ctx, "/auth/signup", req, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (g *Gateway) ForgotPassword(ctx context.Context, email string) error {
	return g.client.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (g *Gateway) Me(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	if err := g.client.WithToken(token).Get(ctx, "/auth/me", nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (g *Gateway) Logout(ctx context.Context, token string) error {
	return g.client.WithToken(token).Post(ctx, "/auth/logout", struct{}{}, nil)
}

func (g *Gateway) UpdateProfile(ctx context.Context, token string, req domain.ProfileUpdate) (domain.User, error) {
	var user domain.User
	if err := g.client.WithToken(token).Put(ctx, "/auth/profile", req, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (g *Gateway) ChangePassword(ctx context.Context, token, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return g.client.WithToken(token).Put(ctx, "/auth/change-password", body, nil)
}
