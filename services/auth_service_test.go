package services

import (
	"strikeup/auth"
	"strikeup/domain"
	"strikeup/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func signupRequest() auth.SignupRequest {
	return auth.SignupRequest{
		Name:            "jamie lee",
		Email:           "jamie@example.com",
		Password:        "spare-me-42",
		ConfirmPassword: "spare-me-42",
		Location:        "Hoboken, NJ",
		SkillLevel:      domain.Beginner,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should login with the exact email and password", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		profile, err := env.auth.Login("sarah@example.com", "password123")
		req.NoError(err)
		req.Equal(domain.UserID(1), profile.ID)
		req.Equal("Sarah M.", profile.Name)

		current, ok := env.auth.Current()
		req.True(ok)
		req.Equal(profile, current)
	})

	t.Run("should reject wrong credentials", func(t *testing.T) {
		env := newTestEnv(t)
		for _, tt := range []struct {
			description     string
			email, password string
		}{
			{"wrong password", "sarah@example.com", "password124"},
			{"unknown email", "nobody@example.com", "password123"},
			{"email differs by case", "Sarah@example.com", "password123"},
			{"empty password", "sarah@example.com", ""},
			{"empty email", "", "password123"},
		} {
			t.Run(tt.description, func(t *testing.T) {
				req := require.New(t)
				_, err := env.auth.Login(tt.email, tt.password)
				req.ErrorIs(err, errors.ErrInvalidCredentials)
				req.ErrorIs(err, errors.ErrAuth)
				_, ok := env.auth.Current()
				req.False(ok)
			})
		}
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("should create a zeroed account and log it in", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		profile, err := env.auth.Signup(signupRequest())
		req.NoError(err)
		req.Equal(domain.Profile{
			ID:           4,
			Name:         "jamie lee",
			Email:        "jamie@example.com",
			Location:     "Hoboken, NJ",
			SkillLevel:   domain.Beginner,
			BowlingStyle: domain.DefaultBowlingStyle,
			Avatar:       "JL",
		}, profile)

		current, ok := env.auth.Current()
		req.True(ok)
		req.Equal(profile, current)

		stored, ok := env.store.Users.FindByID(4)
		req.True(ok)
		req.NotEqual("spare-me-42", stored.Credential)
	})

	t.Run("signup then login yields the same profile", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		created, err := env.auth.Signup(signupRequest())
		req.NoError(err)
		req.NoError(env.auth.Logout())

		logged, err := env.auth.Login("jamie@example.com", "spare-me-42")
		req.NoError(err)
		req.Equal(created, logged)
	})

	t.Run("should reject mismatching passwords", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)
		r := signupRequest()
		r.ConfirmPassword = "something-else"

		_, err := env.auth.Signup(r)
		req.ErrorIs(err, errors.ErrPasswordMismatch)
		req.Equal(3, env.store.Users.Len())
	})

	t.Run("should reject a registered email", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)
		r := signupRequest()
		r.Email = "mike@example.com"

		_, err := env.auth.Signup(r)
		req.ErrorIs(err, errors.ErrEmailTaken)
		req.Equal(3, env.store.Users.Len())
		_, ok := env.auth.Current()
		req.False(ok)
	})

	t.Run("email uniqueness is case-sensitive", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)
		r := signupRequest()
		r.Email = "Mike@example.com"

		_, err := env.auth.Signup(r)
		req.NoError(err)
	})

	t.Run("should reject invalid fields", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)
		r := signupRequest()
		r.SkillLevel = "pro"

		_, err := env.auth.Signup(r)
		req.ErrorIs(err, errors.ErrInvalidInput)
		req.Equal(3, env.store.Users.Len())
	})
}

func TestAuthService_Logout(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	_, err := env.auth.Login("mike@example.com", "password123")
	req.NoError(err)

	req.NoError(env.auth.Logout())
	_, ok := env.auth.Current()
	req.False(ok)

	// Idempotent
	req.NoError(env.auth.Logout())
}

func TestAuthService_UpgradeCredentials(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	// Written by the web client, which keeps passwords in plain text
	_, err := env.store.Users.Insert(domain.User{
		Name:       "Dana K.",
		Email:      "dana@example.com",
		Credential: "strike-4-life",
		Location:   "Bronx, NY",
		SkillLevel: domain.Advanced,
	})
	req.NoError(err)

	upgraded, err := env.auth.UpgradeCredentials()
	req.NoError(err)
	req.Equal(1, upgraded)

	dana, ok := env.store.Users.FindByID(4)
	req.True(ok)
	req.True(auth.IsEncoded(dana.Credential))
	req.NotContains(dana.Credential, "strike-4-life")

	profile, err := env.auth.Login("dana@example.com", "strike-4-life")
	req.NoError(err)
	req.Equal(domain.UserID(4), profile.ID)

	// Already hashed credentials are left alone
	sarah, ok := env.store.Users.FindByID(1)
	req.True(ok)
	upgraded, err = env.auth.UpgradeCredentials()
	req.NoError(err)
	req.Zero(upgraded)
	again, _ := env.store.Users.FindByID(1)
	req.Equal(sarah.Credential, again.Credential)
}
