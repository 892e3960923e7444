package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSymmetry(t *testing.T) {
	repo := NewFollowRepository(testDB)
	alice := createTestUser(t, "Alice Carter")
	bob := createTestUser(t, "Bobby Fields")

	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))

	following, err := repo.Following(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	followers, err := repo.Followers(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	repo := NewFollowRepository(testDB)
	alice := createTestUser(t, "Alicia Moore")
	bob := createTestUser(t, "Robert Dune")

	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))
	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))

	following, err := repo.Following(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, following, 1)
}

func TestFollowDeleteRestoresSymmetry(t *testing.T) {
	repo := NewFollowRepository(testDB)
	alice := createTestUser(t, "Amelia Frost")
	bob := createTestUser(t, "Brandon Hale")

	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))
	require.NoError(t, repo.Delete(context.Background(), alice.ID, bob.ID))
	// Deleting an absent edge is a no-op.
	require.NoError(t, repo.Delete(context.Background(), alice.ID, bob.ID))

	following, err := repo.Following(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err := repo.Followers(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowingIDs(t *testing.T) {
	repo := NewFollowRepository(testDB)
	alice := createTestUser(t, "Astrid Lane")
	bob := createTestUser(t, "Bennett Cole")
	cara := createTestUser(t, "Carmen Diaz")

	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))
	require.NoError(t, repo.Create(context.Background(), alice.ID, cara.ID))

	ids, err := repo.FollowingIDs(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, cara.ID}, ids)
}

func TestRemoveAllForUserClearsBothDirections(t *testing.T) {
	repo := NewFollowRepository(testDB)
	alice := createTestUser(t, "Adriana Wolfe")
	bob := createTestUser(t, "Byron Marsh")
	cara := createTestUser(t, "Celine Hart")

	// alice follows bob, cara follows alice
	require.NoError(t, repo.Create(context.Background(), alice.ID, bob.ID))
	require.NoError(t, repo.Create(context.Background(), cara.ID, alice.ID))

	require.NoError(t, repo.RemoveAllForUser(context.Background(), alice.ID))

	following, err := repo.Following(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err := repo.Followers(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	caraFollowing, err := repo.Following(context.Background(), cara.ID)
	require.NoError(t, err)
	assert.Empty(t, caraFollowing)
}
