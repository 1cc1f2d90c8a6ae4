package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func seedGenre(t *testing.T, repo *repository.Repository, name, slug string) {
	t.Helper()
	now := time.Now()
	genre := &entity.Genre{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Slug: slug,
	}
	if err := repo.Genre.Create(context.Background(), genre); err != nil {
		t.Fatalf("seed genre %s: %v", slug, err)
	}
}

func seedCategory(t *testing.T, repo *repository.Repository, name, slug string) {
	t.Helper()
	now := time.Now()
	category := &entity.Category{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Slug: slug,
	}
	if err := repo.Category.Create(context.Background(), category); err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
}

func strPtr(s string) *string { return &s }

func TestCreateTitleWithCategoryAndGenres(t *testing.T) {
	repo := newTestRepository()
	svc := NewTitleService(repo, zap.NewNop())
	seedCategory(t, repo, "Movies", "movie")
	seedGenre(t, repo, "Drama", "drama")
	seedGenre(t, repo, "Sci-Fi", "sci-fi")

	resp, err := svc.Create(t.Context(), &request.CreateTitleRequest{
		Name:     "The Matrix",
		Year:     1999,
		Category: strPtr("movie"),
		Genre:    []string{"drama", "sci-fi"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Category == nil || resp.Category.Slug != "movie" {
		t.Errorf("category = %+v, want movie", resp.Category)
	}
	if len(resp.Genre) != 2 {
		t.Errorf("genre count = %d, want 2", len(resp.Genre))
	}
	if resp.Rating != nil {
		t.Errorf("rating = %v, want nil for a title without reviews", resp.Rating)
	}
}

func TestCreateTitleFutureYear(t *testing.T) {
	svc := NewTitleService(newTestRepository(), zap.NewNop())

	_, err := svc.Create(t.Context(), &request.CreateTitleRequest{
		Name: "Time Machine",
		Year: time.Now().Year() + 1,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("err = %v, want Validation", err)
	}
}

func TestCreateTitleUnknownGenre(t *testing.T) {
	repo := newTestRepository()
	svc := NewTitleService(repo, zap.NewNop())
	seedGenre(t, repo, "Drama", "drama")

	_, err := svc.Create(t.Context(), &request.CreateTitleRequest{
		Name:  "The Matrix",
		Year:  1999,
		Genre: []string{"drama", "nope"},
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("err = %v, want Validation", err)
	}
}

func TestCreateTitleUnknownCategory(t *testing.T) {
	svc := NewTitleService(newTestRepository(), zap.NewNop())

	_, err := svc.Create(t.Context(), &request.CreateTitleRequest{
		Name:     "The Matrix",
		Year:     1999,
		Category: strPtr("nope"),
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("err = %v, want Validation", err)
	}
}

func TestTitleRatingDerivedFromScores(t *testing.T) {
	repo := newTestRepository()
	titleSvc := NewTitleService(repo, zap.NewNop())
	reviewSvc := NewReviewService(repo, zap.NewNop())
	title := seedTitle(t, repo, "The Matrix")

	alice := seedAccount(t, repo, "alice", entity.RoleUser)
	bob := seedAccount(t, repo, "bob", entity.RoleUser)

	if _, err := reviewSvc.Create(t.Context(), alice, title.ID.String(), &request.CreateReviewRequest{Text: "good", Score: intPtr(7)}); err != nil {
		t.Fatalf("review 1: %v", err)
	}
	if _, err := reviewSvc.Create(t.Context(), bob, title.ID.String(), &request.CreateReviewRequest{Text: "great", Score: intPtr(8)}); err != nil {
		t.Fatalf("review 2: %v", err)
	}

	resp, err := titleSvc.Get(t.Context(), title.ID.String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// mean 7.5 rounds half to even
	if resp.Rating == nil || *resp.Rating != 8 {
		t.Errorf("rating = %v, want 8", resp.Rating)
	}
}

func TestUpdateTitleReplacesGenres(t *testing.T) {
	repo := newTestRepository()
	svc := NewTitleService(repo, zap.NewNop())
	seedGenre(t, repo, "Drama", "drama")
	seedGenre(t, repo, "Comedy", "comedy")

	created, err := svc.Create(t.Context(), &request.CreateTitleRequest{
		Name:  "Something",
		Year:  2001,
		Genre: []string{"drama"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(t.Context(), created.ID, &request.UpdateTitleRequest{
		Genre: []string{"comedy"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Genre) != 1 || updated.Genre[0].Slug != "comedy" {
		t.Errorf("genres = %+v, want only comedy", updated.Genre)
	}
}

func TestDeleteTitle(t *testing.T) {
	repo := newTestRepository()
	svc := NewTitleService(repo, zap.NewNop())
	title := seedTitle(t, repo, "Gone")

	if err := svc.Delete(t.Context(), title.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(t.Context(), title.ID.String()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}
