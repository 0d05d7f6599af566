package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/database"
	"go-blog-api/internal/infrastructure/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig(logger.NewNop()))
	require.NoError(t, err)
	return db, mock
}

func q(sql string) string { return regexp.QuoteMeta(sql) }

var userColumns = []string{"id", "name", "email", "password", "avatar", "role", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(q(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", Role: auth.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(q(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

	err := repo.Create(context.Background(), &domain.User{Email: "dup@example.com", Role: auth.RoleUser})
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	avatar := "https://cdn.example.com/a.jpg"

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "Ada", "ada@example.com", "hash", avatar, "ADMIN", now, now))

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatar, *user.Avatar)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "  nobody@example.com ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(q(`UPDATE "users" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &domain.User{ID: 1, Name: "Ada", Role: auth.RoleUser}))

	mock.ExpectExec(q(`UPDATE "users" SET`)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &domain.User{ID: 99}), domain.ErrNotFound)

	mock.ExpectExec(q(`UPDATE "users" SET`)).WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.Update(context.Background(), &domain.User{ID: 1}), domain.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteRemovesPosts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "posts" WHERE user_id = $1`)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q(`DELETE FROM "users" WHERE id = $1`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "posts"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`DELETE FROM "users"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

var postColumns = []string{"id", "title", "content", "user_id", "created_at", "updated_at"}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(q(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	post := &domain.Post{Title: "t", Content: "c", UserID: 1}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, int64(11), post.ID)

	mock.ExpectQuery(q(`SELECT * FROM "posts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(11, "t", "c", 1, now, now))
	got, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)

	mock.ExpectQuery(q(`SELECT * FROM "posts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(postColumns))
	_, err = repo.GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(q(`UPDATE "posts" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &domain.Post{ID: 1, Title: "new", Content: "c"}))

	mock.ExpectExec(q(`DELETE FROM "posts" WHERE id = $1`)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), domain.ErrNotFound)

	mock.ExpectExec(q(`DELETE FROM "posts" WHERE id = $1`)).WillReturnError(errors.New("connection reset"))
	err := repo.Delete(context.Background(), 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(q(`SELECT * FROM "posts" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(2, "b", "c", 5, now, now).
			AddRow(1, "a", "c", 5, now.Add(-time.Hour), now))

	posts, err := repo.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
