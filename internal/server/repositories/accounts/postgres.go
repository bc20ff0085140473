package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/dbx"
	"github.com/innoclinic/authsvc/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, email, password_hash, phone_number, is_email_verified, photo_id,
	failed_attempts, locked_until, created_by, created_at, updated_by, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	acc := &models.Account{}
	var lockedUntil sql.NullTime

	err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.PhoneNumber,
		&acc.IsEmailVerified, &acc.PhotoID, &acc.FailedAttempts, &lockedUntil,
		&acc.CreatedBy, &acc.CreatedAt, &acc.UpdatedBy, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockedUntil.Valid {
		acc.LockedUntil = lockedUntil.Time
	}

	return acc, nil
}

// nullableTime maps a zero time to SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = $1
		 `

	return scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + ` FROM accounts
		 WHERE id = $1
		 `

	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// Insert persists a new account. A unique-index violation on email is
// reported as common.ErrorDuplicateAccount so a sign-up race that slips past
// the pre-check still fails with the right outcome.
func (r *PostgresRepository) Insert(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (` + accountColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.PhoneNumber,
		account.IsEmailVerified, account.PhotoID, account.FailedAttempts,
		nullableTime(account.LockedUntil), account.CreatedBy, account.CreatedAt,
		account.UpdatedBy, account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) Update(ctx context.Context, account *models.Account) error {
	query :=
		`UPDATE accounts
		 SET phone_number = $2, is_email_verified = $3, photo_id = $4,
		     failed_attempts = $5, locked_until = $6, updated_by = $7, updated_at = $8
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		account.ID, account.PhoneNumber, account.IsEmailVerified, account.PhotoID,
		account.FailedAttempts, nullableTime(account.LockedUntil),
		account.UpdatedBy, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// IncrementFailedAttempts lets the database do the arithmetic: a single
// UPDATE with failed_attempts = failed_attempts + 1 cannot lose an increment
// to a concurrent sign-in failure, which a read-modify-write would.
func (r *PostgresRepository) IncrementFailedAttempts(ctx context.Context, id string) (int, error) {
	query :=
		`UPDATE accounts
		 SET failed_attempts = failed_attempts + 1, updated_at = $2
		 WHERE id = $1
		 RETURNING failed_attempts
		 `

	var attempts int
	if err := r.db.QueryRowContext(ctx, query, id, time.Now()).Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return attempts, nil
}

func (r *PostgresRepository) Lock(ctx context.Context, id string, until time.Time) error {
	query :=
		`UPDATE accounts
		 SET failed_attempts = 0, locked_until = $2, updated_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, until, time.Now())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}
