package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dextasynergyservices/myweddingpage/internal/api/metrics"
	"github.com/dextasynergyservices/myweddingpage/internal/api/middleware"
	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	verifier      ports.VerificationService
	resetService  ports.PasswordResetService
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(
	authService ports.AuthService,
	verifier ports.VerificationService,
	resetService ports.PasswordResetService,
	sessionTTL time.Duration,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		verifier:      verifier,
		resetService:  resetService,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

type loginResponse struct {
	Token string         `json:"token"`
	User  domain.Summary `json:"user"`
}

type claimResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Register creates an inactive account and sends the verification pair.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		WhatsApp: req.WhatsApp,
		Password: req.Password,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "verification sent"})
}

// Verify activates an account with the submitted 6-digit code.
//
// @Summary      Verify an account by code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Identifier and code"
// @Success      200   {object}  domain.Summary
// @Failure      400   {object}  errorResponse
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.verifier.VerifyCode(c.Request().Context(), req.Identifier, req.Code)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("code", "rejected").Inc()
		return err
	}

	metrics.VerificationsTotal.WithLabelValues("code", "activated").Inc()
	return c.JSON(http.StatusOK, user.Summary())
}

// VerifyLink activates an account through the opaque link token.
//
// @Summary      Verify an account by link token
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  domain.Summary
// @Failure      400    {object}  errorResponse
// @Router       /auth/verify/{token} [get]
func (h *AuthHandler) VerifyLink(c echo.Context) error {
	user, err := h.verifier.VerifyToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("token", "rejected").Inc()
		return err
	}

	metrics.VerificationsTotal.WithLabelValues("token", "activated").Inc()
	return c.JSON(http.StatusOK, user.Summary())
}

// Resend reissues the verification pair for an inactive account.
//
// @Summary      Resend the verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/resend [post]
func (h *AuthHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verifier.Resend(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "verification sent"})
}

// Login authenticates an active account and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user.Summary()})
}

// Me returns the claim embedded in the presented session credential.
//
// @Summary      Current session claim
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  claimResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claimResponse{ID: userID, Role: role})
}

// ForgotPassword issues a reset token. The response is identical whether or
// not the email belongs to an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "reset instructions sent"})
}

// ResetPassword consumes a reset token and stores the new password.
//
// @Summary      Reset the password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Reset(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

func registerResult(err error) string {
	if err == domain.ErrUserExists {
		return "duplicate"
	}
	return "error"
}

func loginResult(err error) string {
	if err == domain.ErrAccountInactive {
		return "inactive"
	}
	return "rejected"
}
