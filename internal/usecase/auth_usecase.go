package usecase

import (
	"context"
	"fmt"

	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/repo/authapi"
)

// AuthUsecase fronts the hosted auth provider. Provider failures are
// returned as-is so their messages can be shown inline on the sign-in
// form.
type AuthUsecase interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*authapi.Session, error)
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

type authUsecase struct {
	provider authapi.Client
}

func NewAuthUsecase(provider authapi.Client) AuthUsecase {
	return &authUsecase{provider: provider}
}

func (uc *authUsecase) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	return uc.provider.SignUp(ctx, authapi.Credentials{Email: email, Password: password})
}

func (uc *authUsecase) SignIn(ctx context.Context, email, password string) (*authapi.Session, error) {
	return uc.provider.SignIn(ctx, authapi.Credentials{Email: email, Password: password})
}

func (uc *authUsecase) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, models.ErrUnauthorized
	}
	user, err := uc.provider.GetUser(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}
