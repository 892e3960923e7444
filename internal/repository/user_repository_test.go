package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"wenje/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestUserRepositoryDuplicateEmailConflicts(t *testing.T) {
	repo := NewUserRepository(testDB)
	user := createTestUser(t, "Avery Stone")

	err := repo.Create(context.Background(), &models.User{
		Name:         "Avery Clone",
		Email:        user.Email,
		PasswordHash: "x",
	})
	requireAppErrorCode(t, err, models.CodeConflict)
}

func TestUserRepositoryGetByEmailAbsentReturnsNil(t *testing.T) {
	repo := NewUserRepository(testDB)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryGetByIDMissing(t *testing.T) {
	repo := NewUserRepository(testDB)

	_, err := repo.GetByID(context.Background(), 999999)
	requireAppErrorCode(t, err, models.CodeNotFound)
}

func TestUserRepositoryResetTokenLookup(t *testing.T) {
	repo := NewUserRepository(testDB)
	user := createTestUser(t, "Harper Quinn")

	expires := time.Now().Add(10 * time.Minute)
	user.ResetTokenHash = "token-hash-valid"
	user.ResetTokenExpiresAt = &expires
	require.NoError(t, repo.Update(context.Background(), user))

	found, err := repo.GetByResetTokenHash(context.Background(), "token-hash-valid", time.Now())
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Expired hash is treated the same as a bad one.
	_, err = repo.GetByResetTokenHash(context.Background(), "token-hash-valid", expires.Add(time.Minute))
	requireAppErrorCode(t, err, models.CodeNotFound)
}

func TestUserRepositorySearchByNameIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(testDB)
	user := createTestUser(t, "Zephyrine Vale")

	results, err := repo.SearchByName(context.Background(), "zephyrine")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.ID == user.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUserRepositoryListExcluding(t *testing.T) {
	repo := NewUserRepository(testDB)
	excluded := createTestUser(t, "Sasha Winters")
	included := createTestUser(t, "Robin Winters")

	results, err := repo.ListExcluding(context.Background(), []uint{excluded.ID}, 1000)
	require.NoError(t, err)

	ids := make(map[uint]bool, len(results))
	for _, r := range results {
		ids[r.ID] = true
	}
	assert.False(t, ids[excluded.ID])
	assert.True(t, ids[included.ID])
}
