package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"skillswap/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepositoryGetByIDDatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCountDatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE "users"."deleted_at" IS NULL`)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Count(context.Background())
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "Ada", "ada@example.com")

	user, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	// Absent email is not an error; callers use nil to detect availability
	user, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "Ada", "ada@example.com")

	err := repo.Create(ctx, &models.User{Name: "Imposter", Email: "ada@example.com", Password: "x"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepositorySearchBySkill(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []models.User{
		{Name: "Low", Email: "low@example.com", Password: "x", IsPublic: true,
			SkillsOffered: []string{"Guitar"}, AverageRating: 3.5},
		{Name: "High", Email: "high@example.com", Password: "x", IsPublic: true,
			SkillsWanted: []string{"Guitar"}, AverageRating: 4.8},
		{Name: "Hidden", Email: "hidden@example.com", Password: "x", IsPublic: false,
			SkillsOffered: []string{"Guitar"}},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	found, err := repo.SearchBySkill(ctx, "Guitar", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)

	// Ordered by average rating, best first; hidden profiles excluded
	assert.Equal(t, "High", found[0].Name)
	assert.Equal(t, "Low", found[1].Name)
}

func TestUserRepositorySetBanned(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Ada", "ada@example.com")

	require.NoError(t, repo.SetBanned(ctx, user.ID, true))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.IsBanned)

	err := repo.SetBanned(ctx, 9999, true)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
