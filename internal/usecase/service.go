package usecase

import (
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/pkg/mailer"
	"github.com/gras5/api-yamdb/pkg/token"
	"github.com/gras5/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Account  AccountService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	issuer *token.Issuer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, mail, issuer, log),
		Account:  NewAccountService(repo, log),
		Category: NewCategoryService(repo, log),
		Genre:    NewGenreService(repo, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}
