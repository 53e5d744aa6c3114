package services

import (
	"fmt"
	"log/slog"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/repositories"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ISessionService interface {
	CreateSession(cmd domain.CreateSessionCommand) (domain.Session, error)
	JoinSession(sessionID domain.SessionID, userID domain.UserID) (domain.Session, error)
	LeaveSession(sessionID domain.SessionID, userID domain.UserID) (domain.Session, error)
	GetSession(sessionID domain.SessionID) (domain.Session, error)
	ListSessions() []domain.Session
}

var validate = validator.New()

type SessionService struct {
	log   *slog.Logger
	store *repositories.Store
}

func NewSessionService(log *slog.Logger, store *repositories.Store) ISessionService {
	return &SessionService{log: log, store: store}
}

// CreateSession opens a session with its organizer as first attendee.
func (s *SessionService) CreateSession(cmd domain.CreateSessionCommand) (domain.Session, error) {
	cmd.Location = strings.TrimSpace(cmd.Location)
	cmd.Details = strings.TrimSpace(cmd.Details)
	if err := validate.Struct(cmd); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}
	if _, ok := s.store.Users.FindByID(int(cmd.OrganizerID)); !ok {
		return domain.Session{}, fmt.Errorf("%w: organizer %d", errors.ErrUserNotFound, cmd.OrganizerID)
	}
	at, err := time.Parse(domain.DateTimeLayout, cmd.DateTime)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}

	session := domain.NewSession(
		cmd.OrganizerID,
		cmd.Location,
		at,
		cmd.SkillLevel,
		cmd.MaxParticipants,
		cmd.Details,
	)
	created, err := s.store.Sessions.Insert(session)
	if err != nil {
		return domain.Session{}, err
	}
	s.log.Info("Session created", "session_id", created.ID, "organizer", created.Organizer)
	return created, nil
}

// JoinSession adds userID to the attendees. Joining twice fails with
// ErrAlreadyJoined and joining a full session with ErrSessionFull,
// both leaving the session unchanged. An unknown session is reported
// before an unknown user.
func (s *SessionService) JoinSession(sessionID domain.SessionID, userID domain.UserID) (domain.Session, error) {
	if _, ok := s.store.Sessions.FindByID(int(sessionID)); !ok {
		return domain.Session{}, fmt.Errorf("%w: session %d", errors.ErrSessionNotFound, sessionID)
	}
	if _, ok := s.store.Users.FindByID(int(userID)); !ok {
		return domain.Session{}, fmt.Errorf("%w: user %d", errors.ErrUserNotFound, userID)
	}
	session, err := s.store.Sessions.Update(int(sessionID), func(session *domain.Session) error {
		if session.HasAttendee(userID) {
			return errors.ErrAlreadyJoined
		}
		if session.IsFull() {
			return errors.ErrSessionFull
		}
		session.Join(userID)
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.log.Debug("Session joined", "session_id", sessionID, "user_id", userID)
	return session, nil
}

// LeaveSession removes userID from the attendees; leaving a session one
// never joined is not an error.
func (s *SessionService) LeaveSession(sessionID domain.SessionID, userID domain.UserID) (domain.Session, error) {
	session, err := s.store.Sessions.Update(int(sessionID), func(session *domain.Session) error {
		session.Leave(userID)
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.log.Debug("Session left", "session_id", sessionID, "user_id", userID)
	return session, nil
}

func (s *SessionService) GetSession(sessionID domain.SessionID) (domain.Session, error) {
	session, ok := s.store.Sessions.FindByID(int(sessionID))
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session %d", errors.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *SessionService) ListSessions() []domain.Session {
	return s.store.Sessions.All()
}
