package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/testhelpers"
	"github.com/forkfeed/backend/internal/types"
)

func socialFixture(t *testing.T) (*service.SocialService, *gorm.DB, *models.User, *models.User) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	ada := testhelpers.CreateTestUser(t, db, "ada")
	basil := testhelpers.CreateTestUser(t, db, "basil")
	return service.NewSocialService(db), db, ada, basil
}

func TestFollowAndUnfollow(t *testing.T) {
	svc, _, ada, basil := socialFixture(t)
	ctx := context.Background()

	profile, err := svc.Follow(ctx, ada.ID, "basil")
	require.NoError(t, err)
	assert.Contains(t, profile.Followers, ada.ID)
	assert.Empty(t, profile.Following)

	// Both directions come from the same edge.
	adaProfile, err := svc.GetProfile(ctx, "ada")
	require.NoError(t, err)
	assert.Contains(t, adaProfile.Following, basil.ID)
	assert.Empty(t, adaProfile.Followers)

	profile, err = svc.Unfollow(ctx, ada.ID, "basil")
	require.NoError(t, err)
	assert.Empty(t, profile.Followers)
}

func TestFollowErrors(t *testing.T) {
	svc, _, ada, _ := socialFixture(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, ada.ID, "ada")
	assert.ErrorIs(t, err, service.ErrSelfFollow)

	_, err = svc.Follow(ctx, ada.ID, "nobody")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = svc.Follow(ctx, ada.ID, "basil")
	require.NoError(t, err)
	_, err = svc.Follow(ctx, ada.ID, "basil")
	assert.ErrorIs(t, err, service.ErrAlreadyFollowing)

	_, err = svc.Unfollow(ctx, ada.ID, "basil")
	require.NoError(t, err)
	_, err = svc.Unfollow(ctx, ada.ID, "basil")
	assert.ErrorIs(t, err, service.ErrNotFollowing)
}

func TestGetProfileCaseInsensitive(t *testing.T) {
	svc, _, ada, _ := socialFixture(t)

	profile, err := svc.GetProfile(context.Background(), "ADA")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, profile.ID)
}

func TestListUsers(t *testing.T) {
	svc, _, _, _ := socialFixture(t)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, ada, _ := socialFixture(t)
	ctx := context.Background()

	bio := "Weeknight cook."
	profile, err := svc.UpdateProfile(ctx, ada.ID, &types.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, profile.Bio)

	// Omitted fields stay put.
	avatar := "https://example.com/a.png"
	profile, err = svc.UpdateProfile(ctx, ada.ID, &types.UpdateProfileRequest{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, bio, profile.Bio)
	assert.Equal(t, avatar, profile.AvatarURL)
}
