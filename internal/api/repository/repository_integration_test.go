//go:build integration
// +build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"filmlog/internal/api/models"
	"filmlog/internal/api/repository"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB starts a throwaway postgres container and returns a migrated
// GORM handle. TranslateError is on, same as the production connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("filmlog_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Franchise{},
		&models.Film{},
		&models.Genre{},
		&models.FilmGenre{},
		&models.FilmList{},
		&models.ListFilm{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func seedFilm(t *testing.T, db *gorm.DB, name string) *models.Film {
	t.Helper()
	film := &models.Film{Name: name}
	require.NoError(t, db.Create(film).Error)
	return film
}

func listOfType(t *testing.T, lists []models.FilmList, listType models.ListType) *models.FilmList {
	t.Helper()
	for i := range lists {
		if lists[i].Type == listType {
			return &lists[i]
		}
	}
	t.Fatalf("no %s list", listType)
	return nil
}

// edgeCount counts membership edges for a film across every list the user
// owns. The lists feature guarantees this never exceeds one.
func edgeCount(t *testing.T, db *gorm.DB, userID string, filmID int64) int64 {
	t.Helper()
	var count int64
	err := db.Model(&models.ListFilm{}).
		Joins("JOIN film_lists ON film_lists.id = list_films.film_list_id").
		Where("film_lists.user_id = ? AND list_films.film_id = ?", userID, filmID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestUserRepositoryCreateSeedsDefaultLists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	require.NotEmpty(t, user.ID)

	lists, err := repository.NewListRepository(db).GetByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lists, 3)

	seen := map[models.ListType]bool{}
	for _, list := range lists {
		require.True(t, list.Private, "%s list starts private", list.Type)
		require.Equal(t, user.ID, list.UserID)
		seen[list.Type] = true
	}
	require.True(t, seen[models.ListTypePlanned])
	require.True(t, seen[models.ListTypeWatched])
	require.True(t, seen[models.ListTypeDropped])
}

func TestListRepositoryAddFilm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewListRepository(db)

	user := seedUser(t, db, "bob")
	film := seedFilm(t, db, "Alien")

	lists, err := repo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	watched := listOfType(t, lists, models.ListTypeWatched)
	planned := listOfType(t, lists, models.ListTypePlanned)

	t.Run("MoveBetweenListsLeavesOneEdge", func(t *testing.T) {
		require.NoError(t, repo.AddFilm(ctx, watched, film.ID))
		require.NoError(t, repo.AddFilm(ctx, planned, film.ID))

		inPlanned, err := repo.ContainsFilm(ctx, planned.ID, film.ID)
		require.NoError(t, err)
		require.True(t, inPlanned)

		inWatched, err := repo.ContainsFilm(ctx, watched.ID, film.ID)
		require.NoError(t, err)
		require.False(t, inWatched, "move must sweep the old list")

		require.EqualValues(t, 1, edgeCount(t, db, user.ID, film.ID))
	})

	t.Run("ReAddToSameListIsANoOp", func(t *testing.T) {
		require.NoError(t, repo.AddFilm(ctx, planned, film.ID))
		require.EqualValues(t, 1, edgeCount(t, db, user.ID, film.ID))
	})

	t.Run("OtherUsersListsAreUntouched", func(t *testing.T) {
		other := seedUser(t, db, "carol")
		otherLists, err := repo.GetByUser(ctx, other.ID)
		require.NoError(t, err)
		otherWatched := listOfType(t, otherLists, models.ListTypeWatched)

		require.NoError(t, repo.AddFilm(ctx, otherWatched, film.ID))

		// bob's membership survives carol's add
		require.EqualValues(t, 1, edgeCount(t, db, user.ID, film.ID))
		require.EqualValues(t, 1, edgeCount(t, db, other.ID, film.ID))
	})
}

func TestListRepositoryRemoveFilm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewListRepository(db)

	user := seedUser(t, db, "dave")
	film := seedFilm(t, db, "Aliens")

	lists, err := repo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	watched := listOfType(t, lists, models.ListTypeWatched)
	planned := listOfType(t, lists, models.ListTypePlanned)

	require.NoError(t, repo.AddFilm(ctx, watched, film.ID))

	t.Run("NonMemberReportsFalseAndChangesNothing", func(t *testing.T) {
		removed, err := repo.RemoveFilm(ctx, planned.ID, film.ID)
		require.NoError(t, err)
		require.False(t, removed)
		require.EqualValues(t, 1, edgeCount(t, db, user.ID, film.ID))
	})

	t.Run("MemberReportsTrue", func(t *testing.T) {
		removed, err := repo.RemoveFilm(ctx, watched.ID, film.ID)
		require.NoError(t, err)
		require.True(t, removed)
		require.EqualValues(t, 0, edgeCount(t, db, user.ID, film.ID))
	})
}
