package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxRefreshTokenRepository implements domain.RefreshTokenRepository.
type sqlxRefreshTokenRepository struct {
	db *sqlx.DB
}

// NewSQLXRefreshTokenRepository creates a new refresh token repository.
func NewSQLXRefreshTokenRepository(db *sqlx.DB) domain.RefreshTokenRepository {
	return &sqlxRefreshTokenRepository{db: db}
}

func toDomainRefreshToken(m *models.RefreshToken) *domain.RefreshToken {
	if m == nil {
		return nil
	}
	return &domain.RefreshToken{
		ID:          m.ID,
		UserID:      m.UserID,
		Token:       m.Token,
		Blocklisted: m.Blocklisted,
		CreatedAt:   m.CreatedAt,
	}
}

// CreateRefreshToken persists a freshly issued refresh token row.
func (r *sqlxRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token, blocklisted, created_at)
	          VALUES (:id, :user_id, :token, :blocklisted, :created_at)`

	row := models.RefreshToken{
		ID:          token.ID,
		UserID:      token.UserID,
		Token:       token.Token,
		Blocklisted: token.Blocklisted,
		CreatedAt:   token.CreatedAt,
	}
	_, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, &row)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewError(domain.CodeConflict, "refresh token already exists", err)
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetActiveByUserID returns the user's non-blocklisted tokens, oldest first.
func (r *sqlxRefreshTokenRepository) GetActiveByUserID(ctx context.Context, userID string) ([]domain.RefreshToken, error) {
	query := `SELECT id, user_id, token, blocklisted, created_at
	          FROM refresh_tokens
	          WHERE user_id = $1 AND blocklisted = FALSE
	          ORDER BY created_at ASC`

	var rows []models.RefreshToken
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get active refresh tokens: %w", err)
	}

	tokens := make([]domain.RefreshToken, 0, len(rows))
	for i := range rows {
		tokens = append(tokens, *toDomainRefreshToken(&rows[i]))
	}
	return tokens, nil
}

// Blocklist marks one refresh token row as revoked. The row is kept as an
// audit trail.
func (r *sqlxRefreshTokenRepository) Blocklist(ctx context.Context, tokenID string) error {
	query := `UPDATE refresh_tokens SET blocklisted = TRUE WHERE id = $1`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("failed to blocklist refresh token: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// sqlxBlocklistRepository implements domain.AccessTokenBlocklistRepository.
type sqlxBlocklistRepository struct {
	db *sqlx.DB
}

// NewSQLXBlocklistRepository creates a new access token blocklist repository.
func NewSQLXBlocklistRepository(db *sqlx.DB) domain.AccessTokenBlocklistRepository {
	return &sqlxBlocklistRepository{db: db}
}

// Insert records a revoked access token jti. Inserting the same jti twice is
// tolerated; revocation is idempotent.
func (r *sqlxBlocklistRepository) Insert(ctx context.Context, jti string) error {
	query := `INSERT INTO access_token_blocklist (jti, created_at) VALUES ($1, NOW())
	          ON CONFLICT (jti) DO NOTHING`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, jti); err != nil {
		return fmt.Errorf("failed to insert blocklist entry: %w", err)
	}
	return nil
}

// Exists reports whether the jti has been revoked.
func (r *sqlxBlocklistRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var found string
	query := `SELECT jti FROM access_token_blocklist WHERE jti = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &found, query, jti)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blocklist entry: %w", err)
	}
	return true, nil
}
