package app

import (
	"context"

	"github.com/CristalT/elico-storefront/internal/auth/domain"
)

// Gateway is the commerce backend's account surface. Token-requiring calls
// take the bearer token explicitly; the storefront never decodes or issues
// tokens itself.
type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Signup(ctx context.Context, req domain.SignupRequest) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) error

	Me(ctx context.Context, token string) (domain.User, error)
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, req domain.ProfileUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, token, current, next string) error
}
