package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func seedAccount(t *testing.T, repo *repository.Repository, username string, role entity.Role) access.Caller {
	t.Helper()
	now := time.Now()
	account := &entity.Account{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:         username,
		Email:            username + "@example.com",
		Role:             role,
		ConfirmationCode: uuid.NewString(),
	}
	if err := repo.Account.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
	return access.Caller{
		Authenticated: true,
		ID:            account.ID,
		Username:      account.Username,
		Role:          account.Role,
	}
}

func seedTitle(t *testing.T, repo *repository.Repository, name string) *entity.Title {
	t.Helper()
	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Year: 1999,
	}
	if err := repo.Title.Create(context.Background(), title); err != nil {
		t.Fatalf("seed title %s: %v", name, err)
	}
	return title
}

func intPtr(v int) *int { return &v }

func TestCreateReview(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	caller := seedAccount(t, repo, "alice", entity.RoleUser)
	title := seedTitle(t, repo, "The Matrix")

	resp, err := svc.Create(t.Context(), caller, title.ID.String(), &request.CreateReviewRequest{
		Text:  "great",
		Score: intPtr(9),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Author != "alice" {
		t.Errorf("author = %q, want alice", resp.Author)
	}
	if resp.Score == nil || *resp.Score != 9 {
		t.Errorf("score = %v, want 9", resp.Score)
	}
	if resp.PubDate.IsZero() {
		t.Error("publication date was not set")
	}

	stored, err := repo.Review.FindByAuthorAndTitle(t.Context(), caller.ID, title.ID)
	if err != nil {
		t.Fatalf("FindByAuthorAndTitle: %v", err)
	}
	if stored == nil {
		t.Fatal("review was not stored")
	}
	if stored.ID == uuid.Nil || stored.CreatedAt.IsZero() {
		t.Errorf("stored review missing identity fields: %+v", stored.BaseSimple)
	}
}

func TestCreateReviewAnonymous(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	title := seedTitle(t, repo, "The Matrix")

	_, err := svc.Create(t.Context(), access.Anonymous, title.ID.String(), &request.CreateReviewRequest{Text: "hi"})
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("err = %v, want Unauthenticated", err)
	}
}

func TestCreateSecondReviewSameTitle(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	caller := seedAccount(t, repo, "alice", entity.RoleUser)
	title := seedTitle(t, repo, "The Matrix")

	if _, err := svc.Create(t.Context(), caller, title.ID.String(), &request.CreateReviewRequest{Text: "first"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(t.Context(), caller, title.ID.String(), &request.CreateReviewRequest{Text: "second"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("err = %v, want Conflict", err)
	}

	// A different title is fine.
	other := seedTitle(t, repo, "Heat")
	if _, err := svc.Create(t.Context(), caller, other.ID.String(), &request.CreateReviewRequest{Text: "also good"}); err != nil {
		t.Errorf("review on other title: %v", err)
	}
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	caller := seedAccount(t, repo, "alice", entity.RoleUser)

	_, err := svc.Create(t.Context(), caller, uuid.NewString(), &request.CreateReviewRequest{Text: "hi"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestUpdateReviewAuthorization(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	author := seedAccount(t, repo, "alice", entity.RoleUser)
	other := seedAccount(t, repo, "bob", entity.RoleUser)
	moderator := seedAccount(t, repo, "mod", entity.RoleModerator)
	title := seedTitle(t, repo, "The Matrix")

	created, err := svc.Create(t.Context(), author, title.ID.String(), &request.CreateReviewRequest{Text: "ok", Score: intPtr(5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	text := "edited"

	// Another plain user may not edit.
	_, err = svc.Update(t.Context(), other, title.ID.String(), created.ID, &request.UpdateReviewRequest{Text: &text})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other user err = %v, want Forbidden", err)
	}

	// The author may.
	if _, err := svc.Update(t.Context(), author, title.ID.String(), created.ID, &request.UpdateReviewRequest{Text: &text}); err != nil {
		t.Errorf("author update: %v", err)
	}

	// A moderator may too.
	if _, err := svc.Update(t.Context(), moderator, title.ID.String(), created.ID, &request.UpdateReviewRequest{Score: intPtr(3)}); err != nil {
		t.Errorf("moderator update: %v", err)
	}
}

func TestDeleteReviewAuthorization(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	author := seedAccount(t, repo, "alice", entity.RoleUser)
	other := seedAccount(t, repo, "bob", entity.RoleUser)
	title := seedTitle(t, repo, "The Matrix")

	created, err := svc.Create(t.Context(), author, title.ID.String(), &request.CreateReviewRequest{Text: "ok"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(t.Context(), other, title.ID.String(), created.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other user err = %v, want Forbidden", err)
	}

	if err := svc.Delete(t.Context(), author, title.ID.String(), created.ID); err != nil {
		t.Errorf("author delete: %v", err)
	}

	if _, err := svc.Get(t.Context(), title.ID.String(), created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("after delete err = %v, want NotFound", err)
	}
}

func TestGetReviewThroughWrongTitle(t *testing.T) {
	repo := newTestRepository()
	svc := NewReviewService(repo, zap.NewNop())
	caller := seedAccount(t, repo, "alice", entity.RoleUser)
	title := seedTitle(t, repo, "The Matrix")
	other := seedTitle(t, repo, "Heat")

	created, err := svc.Create(t.Context(), caller, title.ID.String(), &request.CreateReviewRequest{Text: "ok"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(t.Context(), other.ID.String(), created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}
