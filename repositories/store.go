package repositories

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/storage"
)

// Store owns the users, sessions, matches and messages of the application
// together with the current-session marker.
// Every mutation persists the full snapshot before returning; if the write
// fails, the in-memory state is restored and the call returns an error
// wrapping errors.ErrWriteFailed.
// Store is not safe for concurrent use.
type Store struct {
	adapter storage.Adapter
	log     *slog.Logger

	Users    *Collection[domain.User]
	Sessions *Collection[domain.Session]
	Matches  *Collection[domain.Match]
	Messages *Collection[domain.Message]

	current       *domain.UserID
	inTransaction bool
}

func newStore(adapter storage.Adapter, log *slog.Logger) *Store {
	s := &Store{adapter: adapter, log: log}
	s.Users = newCollection[domain.User](s, "user", errors.ErrUserNotFound)
	s.Sessions = newCollection[domain.Session](s, "session", errors.ErrSessionNotFound)
	s.Matches = newCollection[domain.Match](s, "match", errors.ErrInvalidInput)
	s.Messages = newCollection[domain.Message](s, "message", errors.ErrInvalidInput)
	return s
}

// Open loads the store from adapter. On first run (no initialized flag)
// it adopts seed when given, writes it and marks the store initialized.
func Open(adapter storage.Adapter, log *slog.Logger, seed *storage.Snapshot) (*Store, error) {
	s := newStore(adapter, log)

	initialized, err := storage.IsInitialized(adapter)
	if err != nil {
		return nil, err
	}
	if !initialized {
		if seed != nil {
			s.restore(*seed)
		}
		if err = s.persist(); err != nil {
			return nil, err
		}
		if err = storage.MarkInitialized(adapter); err != nil {
			return nil, err
		}
		log.Info("Store initialized", "users", s.Users.Len(), "sessions", s.Sessions.Len())
		return s, nil
	}

	snapshot, err := storage.LoadSnapshot(adapter)
	if err != nil {
		return nil, err
	}
	s.restore(snapshot)

	if s.current != nil {
		if _, ok := s.Users.FindByID(int(*s.current)); !ok {
			log.Warn("Dropping current session of unknown user", "user_id", *s.current)
			s.current = nil
			if err = adapter.Delete(storage.CurrentUserKey); err != nil {
				return nil, err
			}
		}
	}
	log.Debug("Store loaded",
		"users", s.Users.Len(),
		"sessions", s.Sessions.Len(),
		"matches", s.Matches.Len(),
		"messages", s.Messages.Len())
	return s, nil
}

// Transaction runs fn and persists once at the end. If fn or the write
// fails, every collection and the current marker are restored.
// Nested calls join the outer transaction.
func (s *Store) Transaction(fn func() error) error {
	if s.inTransaction {
		return fn()
	}
	backup := s.Snapshot()
	s.inTransaction = true
	err := fn()
	s.inTransaction = false
	if err == nil {
		err = s.persist()
	}
	if err != nil {
		s.restore(backup)
		return err
	}
	return nil
}

func (s *Store) mutate(apply func() error) error {
	return s.Transaction(apply)
}

// Current returns the live projection of the logged-in user.
func (s *Store) Current() (domain.Profile, bool) {
	if s.current == nil {
		return domain.Profile{}, false
	}
	user, ok := s.Users.FindByID(int(*s.current))
	if !ok {
		return domain.Profile{}, false
	}
	return user.Profile(), true
}

// SetCurrent marks id as the logged-in user. The marker is written with the
// rest of the snapshot, so it can share a transaction with other mutations.
func (s *Store) SetCurrent(id domain.UserID) (domain.Profile, error) {
	var profile domain.Profile
	err := s.mutate(func() error {
		user, ok := s.Users.FindByID(int(id))
		if !ok {
			return fmt.Errorf("%w: user %d", errors.ErrUserNotFound, id)
		}
		s.current = &id
		profile = user.Profile()
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// ClearCurrent logs out. Calling it while nobody is logged in only
// deletes an already absent key.
func (s *Store) ClearCurrent() error {
	if err := s.adapter.Delete(storage.CurrentUserKey); err != nil {
		return asWriteFailure(err)
	}
	s.current = nil
	return nil
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() storage.Snapshot {
	snapshot := storage.Snapshot{
		Users:    s.Users.snapshot(),
		Sessions: s.Sessions.snapshot(),
		Matches:  s.Matches.snapshot(),
		Messages: s.Messages.snapshot(),
	}
	if profile, ok := s.Current(); ok {
		snapshot.Current = &profile
	}
	return snapshot
}

func (s *Store) restore(snapshot storage.Snapshot) {
	s.Users.reset(snapshot.Users)
	s.Sessions.reset(snapshot.Sessions)
	s.Matches.reset(snapshot.Matches)
	s.Messages.reset(snapshot.Messages)
	s.current = nil
	if snapshot.Current != nil {
		id := snapshot.Current.ID
		s.current = &id
	}
}

func (s *Store) persist() error {
	blobs, err := s.Snapshot().Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrWriteFailed, err)
	}
	if err = s.adapter.SaveAll(blobs); err != nil {
		return asWriteFailure(err)
	}
	return nil
}

func asWriteFailure(err error) error {
	if stderrors.Is(err, errors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrWriteFailed, err)
}
