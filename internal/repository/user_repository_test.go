package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

var userColumns = []string{"id", "username", "email", "password_hash", "verified", "created_at"}

func userRow(m *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(m.ID, m.Username, m.Email, m.PasswordHash, m.Verified, m.CreatedAt)
}

func TestUserConverters_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	u := &domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hash",
		Verified:     true,
		CreatedAt:    now,
	}

	assert.Equal(t, u, toDomainUser(fromDomainUser(u)))
	assert.Nil(t, toDomainUser(nil))
	assert.Nil(t, fromDomainUser(nil))
}

func TestSQLXUserRepository_CreateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateUser(context.Background(), &domain.User{
		ID: "u1", Username: "alice", Email: "alice@x.com", PasswordHash: "h", CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_CreateUser_UniqueViolation(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.CreateUser(context.Background(), &domain.User{ID: "u1", Email: "alice@x.com"})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeConflict, domainErr.Code)
}

func TestSQLXUserRepository_GetUserByEmail_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email =`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSQLXUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id =`).
		WithArgs("u1").
		WillReturnRows(userRow(&models.User{
			ID: "u1", Username: "alice", Email: "alice@x.com", PasswordHash: "h", Verified: true, CreatedAt: now,
		}))

	user, err := repo.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.Verified)
}

func TestSQLXUserRepository_MarkVerified_NoRows(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`UPDATE users SET verified = TRUE`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkVerified(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLXUserRepository_ListUsers(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow("u1", "alice", "alice@x.com", "h1", true, now).
		AddRow("u2", "bob", "bob@x.com", "h2", false, now)
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY email DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(rows)

	users, total, err := repo.ListUsers(context.Background(), domain.ListUsersParams{
		Page: 2, Limit: 5, SortBy: "email", SortOrder: "DESC",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
