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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Create(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	Update(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		resp, err := s.buildCommentResponse(ctx, comment)
		if err != nil {
			return nil, err
		}
		commentResponses[i] = *resp
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.PerPage, total), nil
}

func (s *commentService) Create(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if !caller.Authenticated {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author", caller.Username))

	return s.buildCommentResponse(ctx, comment)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	return s.buildCommentResponse(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeWrite(caller, http.MethodPatch, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))

	return s.buildCommentResponse(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := s.authorizeWrite(caller, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	return s.repo.Comment.Delete(ctx, comment.ID)
}

// ==================== HELPER METHODS ====================

func (s *commentService) authorizeWrite(caller access.Caller, method string, authorID uuid.UUID) error {
	if !caller.Authenticated {
		return apperr.Unauthenticated("authentication required")
	}
	if !access.AuthorModAdminOrReadOnly.AllowObject(caller, method, authorID) {
		return apperr.Forbidden("you do not have permission to modify this comment")
	}
	return nil
}

func (s *commentService) findParentReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tID, err := uuid.Parse(titleID)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid title ID %s", titleID), nil)
	}

	title, err := s.repo.Title.FindByID(ctx, tID)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, apperr.NotFound(fmt.Sprintf("title %s not found", titleID))
	}

	rID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid review ID %s", reviewID), nil)
	}

	review, err := s.repo.Review.FindByID(ctx, rID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, apperr.NotFound(fmt.Sprintf("review %s not found", reviewID))
	}

	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid comment ID %s", commentID), nil)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, apperr.NotFound(fmt.Sprintf("comment %s not found", commentID))
	}

	return comment, nil
}

func (s *commentService) buildCommentResponse(ctx context.Context, comment *entity.Comment) (*response.CommentResponse, error) {
	author, err := s.repo.Account.FindByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	username := ""
	if author != nil {
		username = author.Username
	}

	resp := response.CommentToResponse(comment, username)
	return &resp, nil
}
