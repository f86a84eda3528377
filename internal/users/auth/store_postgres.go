// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sixcent/internal/platform/apperr"
	"github.com/taibuivan/sixcent/internal/platform/dberr"
	"github.com/taibuivan/sixcent/internal/platform/sec"
	"github.com/taibuivan/sixcent/pkg/uuid"
)

// maxKeyAttempts bounds the retry loop for random-key collisions.
const maxKeyAttempts = 3

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = "id, username, email, passwordhash, isactive, usertype, status, facebookid, lineid, createdat, updatedat"

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.UserType,
		&user.Status,
		&user.FacebookID,
		&user.LineID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are
initialized if not provided. A duplicate email surfaces as apperr.Conflict
through the unique constraint.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict, constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, isactive, usertype, status, facebookid, lineid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.UserType,
		user.Status,
		user.FacebookID,
		user.LineID,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A user with this email already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users.account
		WHERE email = $1`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users.account
		WHERE id = $1`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindOrCreateByFacebookID resolves the account owning a Facebook identity,
creating a fresh active account on first sight.

Description: Single round-trip upsert. The unique index on facebookid
guarantees two concurrent first logins converge on one row; the no-op
DO UPDATE lets RETURNING hydrate the surviving row either way.

Parameters:
  - context: context.Context
  - facebookID: string
  - displayName: string

Returns:
  - *User: Existing or freshly created entity
  - error: Execution errors
*/
func (repository *PostgresUserRepository) FindOrCreateByFacebookID(context context.Context, facebookID, displayName string) (*User, error) {
	return repository.findOrCreateExternal(context, "facebookid", facebookID, displayName)
}

// FindOrCreateByLineID is the LINE twin of FindOrCreateByFacebookID.
func (repository *PostgresUserRepository) FindOrCreateByLineID(context context.Context, lineID, displayName string) (*User, error) {
	return repository.findOrCreateExternal(context, "lineid", lineID, displayName)
}

func (repository *PostgresUserRepository) findOrCreateExternal(context context.Context, column, externalID, displayName string) (*User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users.account (
			id, username, %s, isactive, usertype, status, createdat, updatedat
		) VALUES ($1, $2, $3, TRUE, $4, $5, $6, $6)
		ON CONFLICT (%s) DO UPDATE SET updatedat = users.account.updatedat
		RETURNING %s`, column, column, userColumns)

	now := time.Now()
	user, err := scanUser(repository.pool.QueryRow(context, query,
		uuid.Must(),
		displayName,
		externalID,
		UserTypeFree,
		StatusConfirmed,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_or_create_%s_failed: %w", column, err)
	}

	return user, nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
MarkConfirmed activates the account after a successful email confirmation.

Description: Flips isactive on and moves status to confirmed in one write.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) MarkConfirmed(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET isactive = TRUE, status = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, StatusConfirmed, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_confirmed_failed: %w", err)
	}

	return nil
}

// # Token Repositories
//
// The three credential tables share one shape (key, userid, createdat), so
// the insert and lookup plumbing is factored into tokenTable. Key minting
// happens here: each Create draws fresh random bytes and retries on the
// unique violation so collisions never leave the storage layer.

type tokenTable struct {
	pool     *pgxpool.Pool
	table    string
	keyBytes int
}

func (store *tokenTable) insert(context context.Context, userID string) (key string, createdAt time.Time, err error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (key, userid, createdat) VALUES ($1, $2, $3)", store.table)

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key, err = sec.GenerateSecureToken(store.keyBytes)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("token_key_generation_failed: %w", err)
		}

		createdAt = time.Now()
		_, err = store.pool.Exec(context, query, key, userID, createdAt)
		if err == nil {
			return key, createdAt, nil
		}
		if !dberr.IsUniqueViolation(err) {
			return "", time.Time{}, fmt.Errorf("token_insert_failed[%s]: %w", store.table, err)
		}
	}

	return "", time.Time{}, fmt.Errorf("token_key_collision_exhausted[%s]: %w", store.table, err)
}

func (store *tokenTable) lookup(context context.Context, key string) (userID string, createdAt time.Time, err error) {
	query := fmt.Sprintf(
		"SELECT userid, createdat FROM %s WHERE key = $1", store.table)

	err = store.pool.QueryRow(context, query, key).Scan(&userID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperr.NotFound("Token not found")
		}
		return "", time.Time{}, fmt.Errorf("token_lookup_failed[%s]: %w", store.table, err)
	}

	return userID, createdAt, nil
}

func (store *tokenTable) remove(context context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", store.table)

	_, err := store.pool.Exec(context, query, key)
	if err != nil {
		return fmt.Errorf("token_delete_failed[%s]: %w", store.table, err)
	}

	return nil
}

// PostgresBearerTokenRepository implements BearerTokenRepository using pgx.
type PostgresBearerTokenRepository struct {
	store tokenTable
}

// NewBearerTokenRepository creates a new PostgreSQL implementation of BearerTokenRepository.
func NewBearerTokenRepository(pool *pgxpool.Pool) *PostgresBearerTokenRepository {
	return &PostgresBearerTokenRepository{
		store: tokenTable{pool: pool, table: "users.bearertoken", keyBytes: BearerKeyBytes},
	}
}

// Create mints and persists a fresh bearer token for the user.
func (repository *PostgresBearerTokenRepository) Create(context context.Context, userID string) (*BearerToken, error) {
	key, createdAt, err := repository.store.insert(context, userID)
	if err != nil {
		return nil, err
	}
	return &BearerToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// FindByKey resolves a presented bearer key into its token row.
func (repository *PostgresBearerTokenRepository) FindByKey(context context.Context, key string) (*BearerToken, error) {
	userID, createdAt, err := repository.store.lookup(context, key)
	if err != nil {
		return nil, err
	}
	return &BearerToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// Delete revokes the bearer token. Idempotent.
func (repository *PostgresBearerTokenRepository) Delete(context context.Context, key string) error {
	return repository.store.remove(context, key)
}

// PostgresResetTokenRepository implements ResetTokenRepository using pgx.
type PostgresResetTokenRepository struct {
	store tokenTable
}

// NewResetTokenRepository creates a new PostgreSQL implementation of ResetTokenRepository.
func NewResetTokenRepository(pool *pgxpool.Pool) *PostgresResetTokenRepository {
	return &PostgresResetTokenRepository{
		store: tokenTable{pool: pool, table: "users.resettoken", keyBytes: ResetKeyBytes},
	}
}

// Create mints and persists a fresh reset token for the user.
func (repository *PostgresResetTokenRepository) Create(context context.Context, userID string) (*ResetToken, error) {
	key, createdAt, err := repository.store.insert(context, userID)
	if err != nil {
		return nil, err
	}
	return &ResetToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// FindByKey resolves a presented reset key into its token row.
func (repository *PostgresResetTokenRepository) FindByKey(context context.Context, key string) (*ResetToken, error) {
	userID, createdAt, err := repository.store.lookup(context, key)
	if err != nil {
		return nil, err
	}
	return &ResetToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// Delete consumes the reset token. Idempotent.
func (repository *PostgresResetTokenRepository) Delete(context context.Context, key string) error {
	return repository.store.remove(context, key)
}

// PostgresConfirmationTokenRepository implements ConfirmationTokenRepository using pgx.
type PostgresConfirmationTokenRepository struct {
	store tokenTable
}

// NewConfirmationTokenRepository creates a new PostgreSQL implementation of ConfirmationTokenRepository.
func NewConfirmationTokenRepository(pool *pgxpool.Pool) *PostgresConfirmationTokenRepository {
	return &PostgresConfirmationTokenRepository{
		store: tokenTable{pool: pool, table: "users.confirmtoken", keyBytes: ConfirmKeyBytes},
	}
}

// Create mints and persists a fresh confirmation token for the user.
func (repository *PostgresConfirmationTokenRepository) Create(context context.Context, userID string) (*ConfirmationToken, error) {
	key, createdAt, err := repository.store.insert(context, userID)
	if err != nil {
		return nil, err
	}
	return &ConfirmationToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// FindByKey resolves a presented confirmation key into its token row.
func (repository *PostgresConfirmationTokenRepository) FindByKey(context context.Context, key string) (*ConfirmationToken, error) {
	userID, createdAt, err := repository.store.lookup(context, key)
	if err != nil {
		return nil, err
	}
	return &ConfirmationToken{Key: key, UserID: userID, CreatedAt: createdAt}, nil
}

// Delete consumes the confirmation token. Idempotent.
func (repository *PostgresConfirmationTokenRepository) Delete(context context.Context, key string) error {
	return repository.store.remove(context, key)
}
