package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/pkg/apperr"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. Each mirrors the
// behavior the Postgres implementation guarantees: nil for a miss, Conflict
// for a uniqueness violation, compare-and-swap for code rotation.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return apperr.Conflict(fmt.Sprintf("username %s is already taken", account.Username))
		}
		if a.Email == account.Email {
			return apperr.Conflict(fmt.Sprintf("email %s is already registered", account.Email))
		}
	}
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	for _, a := range f.accounts {
		if search == "" || a.Username == search {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) CountAll(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; !ok {
		return apperr.NotFound("account not found")
	}
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) RotateConfirmationCode(_ context.Context, id uuid.UUID, oldCode, newCode string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok || a.ConfirmationCode != oldCode {
		return false, nil
	}
	a.ConfirmationCode = newCode
	return true, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return apperr.Conflict(fmt.Sprintf("category slug %s already exists", category.Slug))
		}
	}
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Category
	for _, c := range f.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.categories {
		if c.Slug == slug {
			delete(f.categories, id)
			return nil
		}
	}
	return apperr.NotFound(fmt.Sprintf("category %s not found", slug))
}

type fakeGenreRepo struct {
	mu     sync.Mutex
	genres map[uuid.UUID]*entity.Genre
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[uuid.UUID]*entity.Genre)}
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.genres {
		if g.Slug == genre.Slug {
			return apperr.Conflict(fmt.Sprintf("genre slug %s already exists", genre.Slug))
		}
	}
	cp := *genre
	f.genres[genre.ID] = &cp
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.genres {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Genre
	for _, slug := range slugs {
		for _, g := range f.genres {
			if g.Slug == slug {
				cp := *g
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Genre
	for _, g := range f.genres {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeGenreRepo) CountAll(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, g := range f.genres {
		if g.Slug == slug {
			delete(f.genres, id)
			return nil
		}
	}
	return apperr.NotFound(fmt.Sprintf("genre %s not found", slug))
}

type fakeTitleRepo struct {
	mu     sync.Mutex
	titles map[uuid.UUID]*entity.Title
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[uuid.UUID]*entity.Title)}
}

func (f *fakeTitleRepo) Create(_ context.Context, title *entity.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *title
	f.titles[title.ID] = &cp
	return nil
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.titles[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(_ context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Title
	for _, t := range f.titles {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTitleRepo) CountAll(_ context.Context, filter repository.TitleFilter) (int64, error) {
	all, _ := f.FindAll(context.Background(), filter, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.titles[title.ID]; !ok {
		return apperr.NotFound("title not found")
	}
	cp := *title
	f.titles[title.ID] = &cp
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.titles, id)
	return nil
}

type fakeTitleGenreRepo struct {
	mu      sync.Mutex
	genres  *fakeGenreRepo
	byTitle map[uuid.UUID][]uuid.UUID
}

func newFakeTitleGenreRepo(genres *fakeGenreRepo) *fakeTitleGenreRepo {
	return &fakeTitleGenreRepo{
		genres:  genres,
		byTitle: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeTitleGenreRepo) SetForTitle(_ context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byTitle[titleID] = append([]uuid.UUID(nil), genreIDs...)
	return nil
}

func (f *fakeTitleGenreRepo) FindGenresByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	f.mu.Lock()
	ids := append([]uuid.UUID(nil), f.byTitle[titleID]...)
	f.mu.Unlock()

	var out []*entity.Genre
	for _, id := range ids {
		f.genres.mu.Lock()
		if g, ok := f.genres.genres[id]; ok {
			cp := *g
			out = append(out, &cp)
		}
		f.genres.mu.Unlock()
	}
	return out, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return apperr.Conflict("you have already reviewed this title")
		}
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	all, _ := f.FindByTitleID(context.Background(), titleID, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeReviewRepo) FindScoresByTitleID(_ context.Context, titleID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var scores []int
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.Score != nil {
			scores = append(scores, *r.Score)
		}
	}
	return scores, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[review.ID]; !ok {
		return apperr.NotFound("review not found")
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	all, _ := f.FindByReviewID(context.Background(), reviewID, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[comment.ID]; !ok {
		return apperr.NotFound("comment not found")
	}
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.comments, id)
	return nil
}

// fakeMailer records deliveries without touching the network.
type fakeMailer struct {
	mu    sync.Mutex
	sends []string
}

func (f *fakeMailer) SendConfirmationCode(recipient, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, recipient+":"+code)
	return nil
}

func newTestRepository() *repository.Repository {
	genres := newFakeGenreRepo()
	return &repository.Repository{
		Account:    newFakeAccountRepo(),
		Category:   newFakeCategoryRepo(),
		Genre:      genres,
		Title:      newFakeTitleRepo(),
		TitleGenre: newFakeTitleGenreRepo(genres),
		Review:     newFakeReviewRepo(),
		Comment:    newFakeCommentRepo(),
	}
}
