package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/server/middleware"
	"github.com/lamnguyen-ct/storefront/internal/server/views"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

type AuthController interface {
	SignInPage(c echo.Context) error
	SignIn(c echo.Context) error
	SignUp(c echo.Context) error
	SignOut(c echo.Context) error
	Me(c echo.Context) error
	Dashboard(c echo.Context) error
}

type authController struct {
	authUsecase usecase.AuthUsecase
	sealer      crypto.Sealer
	cookieName  string
	signInPath  string
}

func NewAuthController(conf *config.Config, authUsecase usecase.AuthUsecase, sealer crypto.Sealer) AuthController {
	return &authController{
		authUsecase: authUsecase,
		sealer:      sealer,
		cookieName:  conf.Auth.SessionCookie,
		signInPath:  conf.Auth.SignInPath,
	}
}

func (ac *authController) SignInPage(c echo.Context) error {
	page, err := views.SignIn(views.SignInData{
		SignUp: c.QueryParam("mode") == "signup",
		Error:  c.QueryParam("error"),
		Notice: c.QueryParam("notice"),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}

// SignIn handles both the HTML form post and the JSON API. A successful
// sign-in seals the provider's access token into the session cookie.
func (ac *authController) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return ac.fail(c, false, req.Email, "invalid request body", http.StatusBadRequest)
	}
	if err := c.Validate(req); err != nil {
		return ac.fail(c, false, req.Email, err.Error(), http.StatusBadRequest)
	}

	ctx := c.Request().Context()
	session, err := ac.authUsecase.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return ac.fail(c, false, req.Email, err.Error(), http.StatusUnauthorized)
	}

	if err := ac.setSessionCookie(c, session.AccessToken, session.ExpiresIn); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    session.User,
	})
}

func (ac *authController) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return ac.fail(c, true, req.Email, "invalid request body", http.StatusBadRequest)
	}
	if err := c.Validate(req); err != nil {
		return ac.fail(c, true, req.Email, err.Error(), http.StatusBadRequest)
	}

	ctx := c.Request().Context()
	user, err := ac.authUsecase.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return ac.fail(c, true, req.Email, err.Error(), http.StatusBadRequest)
	}

	if wantsHTML(c) {
		page, err := views.SignIn(views.SignInData{
			Email:  req.Email,
			Notice: "Account created. Check your email to confirm, then sign in.",
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.HTML(http.StatusOK, page)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
	})
}

// SignOut drops the session cookie. The provider-side session is left
// to expire on its own.
func (ac *authController) SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     ac.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, ac.signInPath)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (ac *authController) Me(c echo.Context) error {
	user, ok := c.Get(middleware.UserContextKey).(*models.User)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return c.JSON(http.StatusOK, user)
}

func (ac *authController) Dashboard(c echo.Context) error {
	user, ok := c.Get(middleware.UserContextKey).(*models.User)
	if !ok {
		return c.Redirect(http.StatusFound, ac.signInPath)
	}

	page, err := views.Dashboard(views.DashboardData{User: user})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}

func (ac *authController) setSessionCookie(c echo.Context, accessToken string, expiresIn int) error {
	sealed, err := ac.sealer.Seal(accessToken)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     ac.cookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   expiresIn,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// fail answers a sign-in or sign-up failure: form posts get the page
// back with the error inline, API callers get the error status.
func (ac *authController) fail(c echo.Context, signUp bool, email, message string, status int) error {
	if !wantsHTML(c) {
		return echo.NewHTTPError(status, message)
	}

	page, err := views.SignIn(views.SignInData{
		SignUp: signUp,
		Email:  email,
		Error:  message,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(status, page)
}

// wantsHTML tells form submissions apart from API calls.
func wantsHTML(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(contentType, echo.MIMEApplicationForm) ||
		strings.HasPrefix(contentType, echo.MIMEMultipartForm) ||
		c.Request().Method == http.MethodGet
}
