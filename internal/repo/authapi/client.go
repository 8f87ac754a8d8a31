// Package authapi is the client for the hosted auth provider. Accounts,
// passwords and sessions live entirely on the provider side; we only
// forward credentials and validate access tokens.
package authapi

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/pkg/util"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the provider-issued session for one signed-in user.
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// apiError mirrors the provider's error body; the message is shown to
// the user verbatim.
type apiError struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e apiError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Error != "":
		return e.Error
	}
	return "authentication failed"
}

type Client interface {
	SignUp(ctx context.Context, creds Credentials) (*models.User, error)
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
}

type client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

func NewClient(cfg *config.Config) Client {
	return &client{
		http:    util.NewRestyClient(),
		baseURL: cfg.Auth.BaseURL,
		apiKey:  cfg.Auth.APIKey,
	}
}

func (c *client) SignUp(ctx context.Context, creds Credentials) (*models.User, error) {
	var (
		user   models.User
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetBody(creds).
		SetResult(&user).
		SetError(&apiErr).
		Post(c.baseURL + "/auth/v1/signup")
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s", apiErr.text())
	}
	return &user, nil
}

func (c *client) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	var (
		session Session
		apiErr  apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetQueryParam("grant_type", "password").
		SetBody(creds).
		SetResult(&session).
		SetError(&apiErr).
		Post(c.baseURL + "/auth/v1/token")
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s", apiErr.text())
	}
	return &session, nil
}

func (c *client) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	var (
		user   models.User
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetAuthToken(accessToken).
		SetResult(&user).
		SetError(&apiErr).
		Get(c.baseURL + "/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if resp.IsError() {
		return nil, models.ErrUnauthorized
	}
	return &user, nil
}
