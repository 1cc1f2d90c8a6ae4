package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/dto/response"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

type stubAuthService struct {
	signup func(*request.SignupRequest) (*response.SignupResponse, error)
	token  func(*request.TokenRequest) (*response.TokenResponse, error)
}

func (s *stubAuthService) Signup(_ context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	return s.signup(req)
}

func (s *stubAuthService) Token(_ context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	return s.token(req)
}

func TestSignupHandler(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signup: func(req *request.SignupRequest) (*response.SignupResponse, error) {
			return &response.SignupResponse{Username: req.Username, Email: req.Email}, nil
		},
	}, zap.NewNop())

	body := `{"username":"alice","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Signup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Status {
		t.Errorf("status flag = false, want true")
	}
}

func TestSignupHandlerInvalidBody(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSignupHandlerConflict(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signup: func(*request.SignupRequest) (*response.SignupResponse, error) {
			return nil, apperr.Conflict("email already registered")
		},
	}, zap.NewNop())

	body := `{"username":"bob","email":"taken@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Signup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestTokenHandlerValidationError(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		token: func(*request.TokenRequest) (*response.TokenResponse, error) {
			return nil, apperr.Validation("invalid confirmation code", nil)
		},
	}, zap.NewNop())

	body := `{"username":"alice","confirmation_code":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Token(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
