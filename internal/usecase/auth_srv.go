package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/dto/response"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/mailer"
	"github.com/gras5/api-yamdb/pkg/token"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Signup registers a new account or idempotently re-sends the stored
	// confirmation code when the same (username, email) pair signs up again.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// Token exchanges a valid confirmation code for a bearer token, rotating
	// the stored code so it cannot be used twice.
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	mail   mailer.Mailer
	issuer *token.Issuer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Mailer,
	issuer *token.Issuer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mail:   mail,
		issuer: issuer,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// 1. Validate input (also rejects the reserved username "me")
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	// 2. Check whether the email is already bound to an account
	existing, err := s.repo.Account.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if existing != nil {
		// Same username: idempotent retry, re-send the stored code unchanged.
		// Different username: the email belongs to someone else.
		if existing.Username != req.Username {
			return nil, apperr.Conflict(
				fmt.Sprintf("email %s is already registered to a different username", req.Email))
		}

		go s.sendConfirmationCode(existing.Email, existing.ConfirmationCode)

		s.log.Info("Signup retry, confirmation code re-sent",
			zap.String("username", existing.Username))

		return &response.SignupResponse{
			Username: existing.Username,
			Email:    existing.Email,
		}, nil
	}

	// 3. Fresh signup: create the account with a new random confirmation code
	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:         req.Username,
		Email:            req.Email,
		Role:             entity.RoleUser,
		ConfirmationCode: uuid.NewString(),
	}

	// Username uniqueness is the storage layer's constraint; a racing signup
	// with the same username surfaces here as a Conflict.
	if err := s.repo.Account.Create(ctx, account); err != nil {
		return nil, err
	}

	// 4. Deliver the code out-of-band. Fire-and-forget: a delivery failure
	// does not roll back the account, the caller simply signs up again.
	go s.sendConfirmationCode(account.Email, account.ConfirmationCode)

	s.log.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username))

	return &response.SignupResponse{
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	account, err := s.repo.Account.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound(fmt.Sprintf("account %s not found", req.Username))
	}

	if account.ConfirmationCode != req.ConfirmationCode {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, apperr.Validation("invalid confirmation code", nil)
	}

	// One-time-use: rotate the code before issuing the token. The rotation is
	// a compare-and-swap at the storage layer, so of two racing requests with
	// the same code exactly one wins.
	rotated, err := s.repo.Account.RotateConfirmationCode(
		ctx, account.ID, account.ConfirmationCode, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("rotate confirmation code: %w", err)
	}
	if !rotated {
		s.log.Warn("Confirmation code consumed concurrently", zap.String("username", req.Username))
		return nil, apperr.Validation("invalid confirmation code", nil)
	}

	signed, expiresAt, err := s.issuer.Issue(account.ID, account.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Token issued",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username))

	return &response.TokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) sendConfirmationCode(email, code string) {
	if err := s.mail.SendConfirmationCode(email, code); err != nil {
		s.log.Error("Failed to send confirmation code", zap.Error(err), zap.String("email", email))
	}
}
