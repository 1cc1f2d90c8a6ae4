package repository

import (
	"context"
	"fmt"

	"github.com/gras5/api-yamdb/internal/data/entity"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Account, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RotateConfirmationCode atomically replaces the stored code, but only if
	// the current stored value still equals oldCode. Returns false when the
	// compare failed, so a stale or wrong code can never consume the token.
	RotateConfirmationCode(ctx context.Context, id uuid.UUID, oldCode, newCode string) (bool, error)
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log,
	}
}

const accountColumns = `id, username, email, first_name, last_name, bio, role,
	       confirmation_code, is_superuser, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.Bio,
		&account.Role,
		&account.ConfirmationCode,
		&account.IsSuperuser,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account record into the database
func (ar *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, username, email, first_name, last_name, bio,
		                      role, confirmation_code, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ar.db.Exec(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.FirstName,
		account.LastName,
		account.Bio,
		account.Role,
		account.ConfirmationCode,
		account.IsSuperuser,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err, "unique_account_username") {
			return apperr.Conflict("username already taken")
		}
		if database.IsUniqueViolation(err, "unique_account_email") {
			return apperr.Conflict("email already registered")
		}
		ar.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("email", account.Email),
			zap.String("username", account.Username),
		)
		return fmt.Errorf("create account %s: %w", account.Email, err)
	}

	return nil
}

func (ar *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(ar.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ar.log.Error("Failed to find account by ID",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return nil, fmt.Errorf("find account by ID %s: %w", id.String(), err)
	}

	return account, nil
}

func (ar *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(ar.db.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ar.log.Error("Failed to find account by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find account by username %s: %w", username, err)
	}

	return account, nil
}

func (ar *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(ar.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ar.log.Error("Failed to find account by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find account by email %s: %w", email, err)
	}

	return account, nil
}

// FindAll retrieves a paginated page of accounts, ordered by username. A
// non-empty search matches the username exactly.
func (ar *accountRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1 = '' OR username = $1)
		ORDER BY username
		LIMIT $2 OFFSET $3
	`

	rows, err := ar.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		ar.log.Error("Failed to get all accounts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all accounts limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			ar.log.Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		ar.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate accounts rows: %w", err)
	}

	return accounts, nil
}

func (ar *accountRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE ($1 = '' OR username = $1)`

	var count int64
	err := ar.db.QueryRow(ctx, query, search).Scan(&count)
	if err != nil {
		ar.log.Error("Database error counting accounts", zap.Error(err))
		return 0, fmt.Errorf("count all accounts: %w", err)
	}

	return count, nil
}

func (ar *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	query := `
		UPDATE accounts
		SET username = $2, email = $3, first_name = $4, last_name = $5,
		    bio = $6, role = $7, is_superuser = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := ar.db.Exec(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.FirstName,
		account.LastName,
		account.Bio,
		account.Role,
		account.IsSuperuser,
		account.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err, "unique_account_username") {
			return apperr.Conflict("username already taken")
		}
		if database.IsUniqueViolation(err, "unique_account_email") {
			return apperr.Conflict("email already registered")
		}
		ar.log.Error("Failed to update account",
			zap.Error(err),
			zap.String("account_id", account.ID.String()),
		)
		return fmt.Errorf("update account %s: %w", account.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("account %s not found", account.ID.String()))
	}

	return nil
}

func (ar *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete: the schema cascades to the account's reviews and comments.
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := ar.db.Exec(ctx, query, id)
	if err != nil {
		ar.log.Error("Failed to delete account",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("account %s not found", id.String()))
	}

	ar.log.Info("Account deleted", zap.String("id", id.String()))
	return nil
}

func (ar *accountRepository) RotateConfirmationCode(ctx context.Context, id uuid.UUID, oldCode, newCode string) (bool, error) {
	query := `
		UPDATE accounts
		SET confirmation_code = $3, updated_at = NOW()
		WHERE id = $1 AND confirmation_code = $2
	`

	result, err := ar.db.Exec(ctx, query, id, oldCode, newCode)
	if err != nil {
		ar.log.Error("Failed to rotate confirmation code",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return false, fmt.Errorf("rotate confirmation code for %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
