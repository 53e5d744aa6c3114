package services

import (
	"fmt"
	"log/slog"
	"slices"
	"strikeup/clock"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/moderation"
	"strikeup/repositories"
	"strings"
	"unicode/utf8"
)

type IMessageService interface {
	SendMessage(fromUserID, toUserID domain.UserID, content string) (domain.Message, error)
	ListConversation(userID domain.UserID) []domain.Message
	ListRecentActivity(userID domain.UserID, limit int) []domain.Message
	ListThread(userID, otherUserID domain.UserID) []domain.Message
}

// ContentModerator masks banned words and reports which ones it found.
type ContentModerator interface {
	Censor(content string) (string, []string)
}

type MessageService struct {
	log           *slog.Logger
	store         *repositories.Store
	clock         clock.Clock
	moderator     ContentModerator
	maxContentLen int
	activityLimit int
}

// NewMessageService builds the messaging service. maxContentLen bounds a
// message in runes (0 disables the bound); activityLimit is used by
// ListRecentActivity when the caller passes no positive limit.
// moderator may be nil, content is then stored as sent.
func NewMessageService(log *slog.Logger, store *repositories.Store, clock clock.Clock, moderator ContentModerator, maxContentLen, activityLimit int) IMessageService {
	return &MessageService{
		log:           log,
		store:         store,
		clock:         clock,
		moderator:     moderator,
		maxContentLen: maxContentLen,
		activityLimit: activityLimit,
	}
}

func (s *MessageService) SendMessage(fromUserID, toUserID domain.UserID, content string) (domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, errors.ErrEmptyContent
	}
	if s.maxContentLen > 0 && utf8.RuneCountInString(content) > s.maxContentLen {
		return domain.Message{}, fmt.Errorf("%w: content exceeds %d characters", errors.ErrInvalidInput, s.maxContentLen)
	}
	for _, id := range []domain.UserID{fromUserID, toUserID} {
		if _, ok := s.store.Users.FindByID(int(id)); !ok {
			return domain.Message{}, fmt.Errorf("%w: user %d", errors.ErrUserNotFound, id)
		}
	}

	if s.moderator != nil {
		var censored []string
		if content, censored = s.moderator.Censor(content); len(censored) > 0 {
			s.log.Warn("Message moderated",
				"from", fromUserID,
				"censored_words", len(censored),
				"lang", moderation.Language(content))
		}
	}

	message, err := s.store.Messages.Insert(domain.Message{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Content:    content,
		Timestamp:  s.clock.Now().UTC(),
		Read:       false,
	})
	if err != nil {
		return domain.Message{}, err
	}
	s.log.Debug("Message sent", "message_id", message.ID, "from", fromUserID, "to", toUserID)
	return message, nil
}

// ListConversation returns every message sent or received by userID, newest first.
func (s *MessageService) ListConversation(userID domain.UserID) []domain.Message {
	return s.newestFirst(func(m domain.Message) bool { return m.Involves(userID) })
}

// ListRecentActivity is ListConversation truncated to limit.
func (s *MessageService) ListRecentActivity(userID domain.UserID, limit int) []domain.Message {
	if limit <= 0 {
		limit = s.activityLimit
	}
	messages := s.ListConversation(userID)
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages
}

// ListThread returns the messages exchanged between two users, newest first.
func (s *MessageService) ListThread(userID, otherUserID domain.UserID) []domain.Message {
	return s.newestFirst(func(m domain.Message) bool { return m.Between(userID, otherUserID) })
}

func (s *MessageService) newestFirst(predicate func(domain.Message) bool) []domain.Message {
	messages := s.store.Messages.FindBy(predicate)
	slices.SortStableFunc(messages, domain.NewestFirst)
	return messages
}
