package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/dto/response"
	"github.com/gras5/api-yamdb/internal/rating"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	List(ctx context.Context, filter request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Get(ctx context.Context, titleID string) (*response.TitleResponse, error)
	Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, filter request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.PerPage, total), nil
}

func (s *titleService) Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		return nil, err
	}

	if len(genreIDs) > 0 {
		if err := s.repo.TitleGenre.SetForTitle(ctx, title.ID, genreIDs); err != nil {
			return nil, err
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
		zap.Int("year", title.Year))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Get(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genreIDs, err := s.resolveGenres(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.SetForTitle(ctx, title.ID, genreIDs); err != nil {
			return nil, err
		}
	}

	s.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, titleID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	// Cascades through reviews to comments at the storage layer.
	return s.repo.Title.Delete(ctx, title.ID)
}

// ==================== HELPER METHODS ====================

func validateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return apperr.Validation(
			fmt.Sprintf("year %d is in the future", year),
			map[string]string{"year": fmt.Sprintf("Must not be greater than %d", current)},
		)
	}
	return nil
}

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, apperr.Validation(
			fmt.Sprintf("unknown category %q", *slug),
			map[string]string{"category": "Unknown slug"},
		)
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	found := make(map[string]uuid.UUID, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = genre.ID
	}

	genreIDs := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := found[slug]
		if !ok {
			return nil, apperr.Validation(
				fmt.Sprintf("unknown genre %q", slug),
				map[string]string{"genre": "Unknown slug"},
			)
		}
		genreIDs = append(genreIDs, id)
	}

	return genreIDs, nil
}

// buildTitleResponse composes the read shape: nested category and genres plus
// the rating derived from current review scores. Nothing here is cached.
func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	scores, err := s.repo.Review.FindScoresByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}

	genres, err := s.repo.TitleGenre.FindGenresByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	var category *entity.Category
	if title.CategoryID != nil {
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
	}

	resp := response.TitleToResponse(title, rating.Aggregate(scores), genres, category)
	return &resp, nil
}
