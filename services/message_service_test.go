package services

import (
	"log/slog"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/moderation"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func contents(messages []domain.Message) []string {
	return lo.Map(messages, func(m domain.Message, _ int) string { return m.Content })
}

func TestMessageService_SendMessage(t *testing.T) {
	t.Run("should store an unread message stamped with the clock", func(t *testing.T) {
		req := require.New(t)
		env := newTestEnv(t)

		message, err := env.messages.SendMessage(1, 2, "Practice tonight?")
		req.NoError(err)
		req.Equal(domain.Message{
			ID:         1,
			FromUserID: 1,
			ToUserID:   2,
			Content:    "Practice tonight?",
			Timestamp:  time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC),
			Read:       false,
		}, message)
	})

	tests := []struct {
		description string
		from, to    domain.UserID
		content     string
		wantErr     error
	}{
		{"Should reject empty content", 1, 2, "", errors.ErrEmptyContent},
		{"Should reject blank content", 1, 2, "  \n\t ", errors.ErrEmptyContent},
		{"Should reject content that is too long", 1, 2, strings.Repeat("a", 501), errors.ErrInvalidInput},
		{"Should reject an unknown sender", 42, 2, "hi", errors.ErrUserNotFound},
		{"Should reject an unknown recipient", 1, 42, "hi", errors.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			env := newTestEnv(t)

			_, err := env.messages.SendMessage(tt.from, tt.to, tt.content)
			req.ErrorIs(err, tt.wantErr)
			req.ErrorIs(err, errors.ErrValidation)
			req.Zero(env.store.Messages.Len())
		})
	}
}

func TestMessageService_ListConversation(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	send := func(from, to domain.UserID, content string) {
		_, err := env.messages.SendMessage(from, to, content)
		req.NoError(err)
	}
	send(1, 2, "first")
	env.clock.Advance(time.Minute)
	send(2, 1, "second")
	send(3, 1, "same minute")
	env.clock.Advance(time.Minute)
	send(2, 3, "not for Sarah")

	// Ties on timestamp fall back to the highest id
	req.Equal([]string{"same minute", "second", "first"}, contents(env.messages.ListConversation(1)))
	req.Equal([]string{"not for Sarah", "second", "first"}, contents(env.messages.ListConversation(2)))
	req.Equal([]string{"second", "first"}, contents(env.messages.ListThread(1, 2)))
	req.Equal([]string{"second", "first"}, contents(env.messages.ListThread(2, 1)))
	req.Empty(env.messages.ListConversation(42))
}

func TestMessageService_ListRecentActivity(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	for i := range 7 {
		_, err := env.messages.SendMessage(2, 1, strings.Repeat("x", i+1))
		req.NoError(err)
		env.clock.Advance(time.Second)
	}

	recent := env.messages.ListRecentActivity(1, 3)
	req.Equal([]string{"xxxxxxx", "xxxxxx", "xxxxx"}, contents(recent))

	// Non-positive limits use the configured default
	req.Len(env.messages.ListRecentActivity(1, 0), 5)
	req.Len(env.messages.ListRecentActivity(1, 100), 7)
}

func TestMessageService_ModeratesContent(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	moderator, err := moderation.NewModerator([]string{"gutter"}, '*')
	req.NoError(err)
	service := NewMessageService(logs.GetLoggerFromLevel(slog.LevelError), env.store, env.clock, moderator, 500, 5)

	message, err := service.SendMessage(2, 1, "Nice gutter ball")
	req.NoError(err)
	req.Equal("Nice ****** ball", message.Content)

	stored, ok := env.store.Messages.FindByID(int(message.ID))
	req.True(ok)
	req.Equal("Nice ****** ball", stored.Content)
}
