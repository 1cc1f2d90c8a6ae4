package usecase

import (
	"context"
	"fmt"
	"net/http"
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

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Create(ctx context.Context, caller access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	Update(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, caller access.Caller, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp, err := s.buildReviewResponse(ctx, review)
		if err != nil {
			return nil, err
		}
		reviewResponses[i] = *resp
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (s *reviewService) Create(ctx context.Context, caller access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if !caller.Authenticated {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, caller.ID, title.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("you have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	// The unique (author, title) constraint backstops the pre-check above, so
	// two racing creates cannot both land.
	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", title.ID.String()),
		zap.String("author", caller.Username))

	return s.buildReviewResponse(ctx, review)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	return s.buildReviewResponse(ctx, review)
}

func (s *reviewService) Update(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeWrite(caller, http.MethodPatch, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	return s.buildReviewResponse(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, caller access.Caller, titleID, reviewID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := s.authorizeWrite(caller, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	// Comments under the review go with it at the storage layer.
	return s.repo.Review.Delete(ctx, review.ID)
}

// ==================== HELPER METHODS ====================

func (s *reviewService) authorizeWrite(caller access.Caller, method string, authorID uuid.UUID) error {
	if !caller.Authenticated {
		return apperr.Unauthenticated("authentication required")
	}
	if !access.AuthorModAdminOrReadOnly.AllowObject(caller, method, authorID) {
		return apperr.Forbidden("you do not have permission to modify this review")
	}
	return nil
}

func (s *reviewService) findParentTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid title ID %s", titleID), nil)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, apperr.NotFound(fmt.Sprintf("title %s not found", titleID))
	}

	return title, nil
}

// findReview loads a review and checks it actually belongs to the title named
// in the path. A review reached through the wrong title is a 404, not a leak.
func (s *reviewService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid review ID %s", reviewID), nil)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, apperr.NotFound(fmt.Sprintf("review %s not found", reviewID))
	}

	return review, nil
}

func (s *reviewService) buildReviewResponse(ctx context.Context, review *entity.Review) (*response.ReviewResponse, error) {
	author, err := s.repo.Account.FindByID(ctx, review.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	username := ""
	if author != nil {
		username = author.Username
	}

	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}
