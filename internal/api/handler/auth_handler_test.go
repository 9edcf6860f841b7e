package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dextasynergyservices/myweddingpage/internal/api/middleware"
	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, identifier, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, identifier, password)
}

type stubVerificationService struct {
	verifyCodeFn  func(ctx context.Context, identifier, code string) (*domain.User, error)
	verifyTokenFn func(ctx context.Context, token string) (*domain.User, error)
	resendFn      func(ctx context.Context, email string) error
}

func (s *stubVerificationService) Issue(context.Context, *domain.User) error { return nil }

func (s *stubVerificationService) VerifyCode(ctx context.Context, identifier, code string) (*domain.User, error) {
	return s.verifyCodeFn(ctx, identifier, code)
}

func (s *stubVerificationService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	return s.verifyTokenFn(ctx, token)
}

func (s *stubVerificationService) Resend(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

type stubResetService struct {
	requestFn func(ctx context.Context, email string) error
	resetFn   func(ctx context.Context, token, password string) error
}

func (s *stubResetService) Request(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubResetService) Reset(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

func newTestHandler(auth ports.AuthService, verifier ports.VerificationService, reset ports.PasswordResetService) *AuthHandler {
	return NewAuthHandler(auth, verifier, reset, 7*24*time.Hour, false)
}

func newJSONContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "a@x.com" || in.Name != "Ada" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "user-1", Email: in.Email, Name: in.Name, Role: domain.RoleUser, Status: domain.StatusInactive}, nil
		},
	}
	h := newTestHandler(auth, &stubVerificationService{}, &stubResetService{})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"a@x.com","password":"Secr3t!pass","confirm_password":"Secr3t!pass"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "verification sent" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}, &stubVerificationService{}, &stubResetService{})

	c, _ := newJSONContext(e, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"a@x.com","password":"Secr3t!pass","confirm_password":"different"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}, &stubVerificationService{}, &stubResetService{})

	c, _ := newJSONContext(e, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"a@x.com","password":"Secr3t!pass","confirm_password":"Secr3t!pass"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Verify_Success(t *testing.T) {
	e := newEcho()
	verifier := &stubVerificationService{
		verifyCodeFn: func(_ context.Context, identifier, code string) (*domain.User, error) {
			if identifier != "a@x.com" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", identifier, code)
			}
			return &domain.User{ID: "user-1", Email: identifier, Role: domain.RoleUser, Status: domain.StatusActive}, nil
		},
	}
	h := newTestHandler(&stubAuthService{}, verifier, &stubResetService{})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/verify",
		`{"identifier":"a@x.com","code":"123456"}`)

	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != string(domain.StatusActive) {
		t.Fatalf("expected active summary, got %+v", resp)
	}
}

func TestAuthHandler_Verify_BadCodeShape(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{}, &stubVerificationService{
		verifyCodeFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}, &stubResetService{})

	c, _ := newJSONContext(e, http.MethodPost, "/auth/verify",
		`{"identifier":"a@x.com","code":"12ab56"}`)

	err := h.Verify(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		loginFn: func(_ context.Context, identifier, password string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "user-1", Email: identifier, Role: domain.RoleUser, Status: domain.StatusActive}, nil
		},
	}
	h := newTestHandler(auth, &stubVerificationService{}, &stubResetService{})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login",
		`{"identifier":"a@x.com","password":"Secr3t!pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "token123" || !session.HttpOnly || session.SameSite != http.SameSiteLaxMode || session.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", session)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] != "token123" {
		t.Fatalf("token missing from body: %+v", resp)
	}
}

func TestAuthHandler_Login_InactiveNoCookie(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrAccountInactive
		},
	}
	h := newTestHandler(auth, &stubVerificationService{}, &stubResetService{})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login",
		`{"identifier":"a@x.com","password":"Secr3t!pass"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive to propagate, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie must be set on failed login")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{}, &stubVerificationService{}, &stubResetService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "user-1")
	c.Set(middleware.CtxRole, string(domain.RoleUser))

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != "user-1" || resp["role"] != string(domain.RoleUser) {
		t.Fatalf("unexpected claim payload: %+v", resp)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{}, &stubVerificationService{}, &stubResetService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	e := newEcho()
	h := newTestHandler(&stubAuthService{}, &stubVerificationService{}, &stubResetService{
		resetFn: func(context.Context, string, string) error {
			return domain.ErrInvalidResetToken
		},
	})

	c, _ := newJSONContext(e, http.MethodPost, "/auth/reset-password",
		`{"token":"nope","password":"NewPassw0rd!","confirm_password":"NewPassw0rd!"}`)

	if err := h.ResetPassword(c); !errors.Is(err, domain.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken to propagate, got %v", err)
	}
}
