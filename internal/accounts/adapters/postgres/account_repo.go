package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/repositories"
	"signupflow/pkg/logger"
)

const accountColumns = `id, email, password_hash, first_name, last_name, gender, date_of_birth, is_active, created_at, updated_at`

// AccountRepository реализует repositories.AccountRepository для Postgres.
type AccountRepository struct {
	pool PgxPoolInterface
}

// NewAccountRepository создает новый экземпляр репозитория учетных записей.
func NewAccountRepository(pool PgxPoolInterface) repositories.AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create сохраняет учетную запись и возвращает ее с присвоенным id.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "Create"))

	query := `
        INSERT INTO accounts (email, password_hash, first_name, last_name, gender, date_of_birth)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + accountColumns

	created, err := scanAccount(r.pool.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Gender,
		account.DateOfBirth,
	))
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			log.Debug(ctx, "email already registered")
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating account", zap.Error(err))
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	log.Debug(ctx, "account created", zap.String("accountID", created.ID))
	return created, nil
}

// FindByID находит учетную запись по id.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "FindByID"))

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if missingRow(err) {
			log.Debug(ctx, "account not found", zap.String("id", id))
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account by id", zap.Error(err))
		return nil, fmt.Errorf("error querying account by id: %w", err)
	}

	return account, nil
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "FindByEmail"))

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "account not found", zap.String("email", email))
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account by email", zap.Error(err))
		return nil, fmt.Errorf("error querying account by email: %w", err)
	}

	return account, nil
}

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var a entities.Account
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.Gender,
		&a.DateOfBirth,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
