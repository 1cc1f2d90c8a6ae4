package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/dto/response"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	// Admin endpoints
	List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error)
	Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error)
	GetByUsername(ctx context.Context, username string) (*response.AccountResponse, error)
	UpdateByUsername(ctx context.Context, username string, req *request.UpdateAccountRequest) (*response.AccountResponse, error)
	DeleteByUsername(ctx context.Context, username string) error

	// Self-profile endpoints
	GetSelf(ctx context.Context, caller access.Caller) (*response.AccountResponse, error)
	UpdateSelf(ctx context.Context, caller access.Caller, req *request.UpdateAccountRequest) (*response.AccountResponse, error)
}

type accountService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAccountService(repo *repository.Repository, log *zap.Logger) AccountService {
	return &accountService{
		repo: repo,
		log:  log.With(zap.String("service", "account")),
	}
}

func (s *accountService) List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error) {
	accounts, err := s.repo.Account.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	total, err := s.repo.Account.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	accountResponses := make([]response.AccountResponse, len(accounts))
	for i, account := range accounts {
		accountResponses[i] = response.AccountToResponse(account)
	}

	return response.NewPaginatedResponse(accountResponses, req.Page, req.PerPage, total), nil
}

// Create registers an account on behalf of an administrator. The account gets
// a confirmation code like any other, so its owner can still request a token.
func (s *accountService) Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create account validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	role := entity.RoleUser
	if req.Role != nil {
		role = entity.Role(*req.Role)
	}

	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:         req.Username,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Bio:              req.Bio,
		Role:             role,
		ConfirmationCode: uuid.NewString(),
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("Account created by admin",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username),
		zap.String("role", string(account.Role)))

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) GetByUsername(ctx context.Context, username string) (*response.AccountResponse, error) {
	account, err := s.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) UpdateByUsername(ctx context.Context, username string, req *request.UpdateAccountRequest) (*response.AccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update account validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	account, err := s.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	applyAccountUpdate(account, req, true)

	if err := s.repo.Account.Update(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("Account updated",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username))

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) DeleteByUsername(ctx context.Context, username string) error {
	account, err := s.findAccount(ctx, username)
	if err != nil {
		return err
	}

	// Hard delete; the account's reviews and comments go with it.
	if err := s.repo.Account.Delete(ctx, account.ID); err != nil {
		return err
	}

	return nil
}

func (s *accountService) GetSelf(ctx context.Context, caller access.Caller) (*response.AccountResponse, error) {
	if !caller.Authenticated {
		return nil, apperr.Unauthenticated("authentication required")
	}

	account, err := s.repo.Account.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound("account not found")
	}

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) UpdateSelf(ctx context.Context, caller access.Caller, req *request.UpdateAccountRequest) (*response.AccountResponse, error) {
	if !caller.Authenticated {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update self validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	account, err := s.repo.Account.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound("account not found")
	}

	// A plain user cannot elevate their own role; the field is silently kept.
	allowRoleChange := account.Role != entity.RoleUser
	applyAccountUpdate(account, req, allowRoleChange)

	if err := s.repo.Account.Update(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("account_id", account.ID.String()))

	resp := response.AccountToResponse(account)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *accountService) findAccount(ctx context.Context, username string) (*entity.Account, error) {
	account, err := s.repo.Account.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound(fmt.Sprintf("account %s not found", username))
	}
	return account, nil
}

func applyAccountUpdate(account *entity.Account, req *request.UpdateAccountRequest, allowRoleChange bool) {
	if req.Username != nil {
		account.Username = *req.Username
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.FirstName != nil {
		account.FirstName = req.FirstName
	}
	if req.LastName != nil {
		account.LastName = req.LastName
	}
	if req.Bio != nil {
		account.Bio = req.Bio
	}
	if req.Role != nil && allowRoleChange {
		account.Role = entity.Role(*req.Role)
	}
	account.UpdatedAt = time.Now()
}
