package services

import (
	"strikeup/domain"
	"strikeup/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	profile, err := env.profiles.GetProfile(3)
	req.NoError(err)
	req.Equal("Alex K.", profile.Name)
	req.Equal(domain.Advanced, profile.SkillLevel)

	_, err = env.profiles.GetProfile(42)
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestProfileService_UpdateLocation(t *testing.T) {
	t.Run("should store the trimmed location and refresh the current user", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)
		_, err := env.auth.Login("sarah@example.com", "password123")
		req.NoError(err)

		profile, err := env.profiles.UpdateLocation(1, "  Jersey City, NJ ")
		req.NoError(err)
		req.Equal("Jersey City, NJ", profile.Location)

		current, ok := env.auth.Current()
		req.True(ok)
		req.Equal("Jersey City, NJ", current.Location)
	})

	t.Run("should reject a blank location", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		_, err := env.profiles.UpdateLocation(1, "   ")
		req.ErrorIs(err, errors.ErrInvalidInput)
		profile, _ := env.profiles.GetProfile(1)
		req.Equal("New York, NY", profile.Location)
	})

	t.Run("should fail on unknown user", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		_, err := env.profiles.UpdateLocation(42, "Queens, NY")
		req.ErrorIs(err, errors.ErrUserNotFound)
	})
}

func TestProfileService_RecentMatches(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	_, err := env.matches.Connect(1, 2)
	req.NoError(err)
	env.clock.Advance(time.Hour)
	_, err = env.matches.Connect(3, 1)
	req.NoError(err)

	connections, err := env.profiles.RecentMatches(1, 0)
	req.NoError(err)
	req.Len(connections, 2)
	req.Equal("Alex K.", connections[0].With.Name)
	req.Equal("Mike T.", connections[1].With.Name)

	connections, err = env.profiles.RecentMatches(1, 1)
	req.NoError(err)
	req.Len(connections, 1)
	req.Equal(domain.MatchID(2), connections[0].Match.ID)

	connections, err = env.profiles.RecentMatches(2, 0)
	req.NoError(err)
	req.Len(connections, 1)
	req.Equal("Sarah M.", connections[0].With.Name)

	_, err = env.profiles.RecentMatches(42, 0)
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestProfileService_Badges(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	sarah, err := env.profiles.Badges(1)
	req.NoError(err)
	mike, err := env.profiles.Badges(2)
	req.NoError(err)

	profile, _ := env.profiles.GetProfile(1)
	req.Equal(profile.Badges(), sarah)
	req.Contains(sarah, domain.SocialButterfly)
	req.Contains(mike, domain.SocialButterfly)

	_, err = env.profiles.Badges(42)
	req.ErrorIs(err, errors.ErrUserNotFound)
}
