package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	// SetForTitle replaces the title's genre set in a single transaction.
	SetForTitle(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error
	FindGenresByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log,
	}
}

func (tgr *titleGenreRepository) SetForTitle(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	tx, err := tgr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set title genres: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		tgr.log.Error("Failed to clear title genres",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("clear title genres for %s: %w", titleID.String(), err)
	}

	insert := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	now := time.Now()
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx, insert, uuid.New(), titleID, genreID, now); err != nil {
			tgr.log.Error("Failed to insert title genre",
				zap.Error(err),
				zap.String("title_id", titleID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("insert title genre: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set title genres: %w", err)
	}

	return nil
}

func (tgr *titleGenreRepository) FindGenresByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at, g.updated_at
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		WHERE tg.title_id = $1
		ORDER BY g.name
	`

	rows, err := tgr.db.Query(ctx, query, titleID)
	if err != nil {
		tgr.log.Error("Failed to get genres for title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find genres for title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
			&genre.UpdatedAt,
		)
		if err != nil {
			tgr.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		tgr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate title genres rows: %w", err)
	}

	return genres, nil
}
