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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Verified:     m.Verified,
		CreatedAt:    m.CreatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Verified:     u.Verified,
		CreatedAt:    u.CreatedAt,
	}
}

// CreateUser inserts a new user. A duplicate email or username surfaces the
// unique-constraint violation from storage.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, verified, created_at)
	          VALUES (:id, :username, :email, :password_hash, :verified, :created_at)`

	_, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user))
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewError(domain.CodeConflict, "user already exists", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, verified, created_at FROM users WHERE id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found, services decide how to report it
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, verified, created_at FROM users WHERE email = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&user), nil
}

// MarkVerified flips the verified flag. Re-verifying is a harmless no-op at
// the storage level.
func (r *sqlxUserRepository) MarkVerified(ctx context.Context, userID string) error {
	query := `UPDATE users SET verified = TRUE WHERE id = $1`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
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

// ListUsers returns one page of users plus the total count. The sort column
// arrives pre-validated against domain.UserSortFields; it is never taken
// from raw user input here.
func (r *sqlxUserRepository) ListUsers(ctx context.Context, params domain.ListUsersParams) ([]domain.User, int64, error) {
	exec := GetExecutor(ctx, r.db)

	var total int64
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	direction := "ASC"
	if params.SortOrder == "DESC" {
		direction = "DESC"
	}
	offset := (params.Page - 1) * params.Limit

	query := fmt.Sprintf(
		`SELECT id, username, email, password_hash, verified, created_at
		 FROM users ORDER BY %s %s LIMIT $1 OFFSET $2`,
		params.SortBy, direction,
	)

	var rows []models.User
	if err := exec.SelectContext(ctx, &rows, query, params.Limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *toDomainUser(&rows[i]))
	}
	return users, total, nil
}
