package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strikeup/domain"
	"strikeup/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	UsersKey       = "strikeup_users"
	SessionsKey    = "strikeup_sessions"
	MatchesKey     = "strikeup_matches"
	MessagesKey    = "strikeup_messages"
	CurrentUserKey = "strikeup_current_user"
	InitializedKey = "strikeup_initialized"
)

// Keys lists every key the store writes, in a stable order.
var Keys = []string{UsersKey, SessionsKey, MatchesKey, MessagesKey, CurrentUserKey, InitializedKey}

var validate = validator.New()

// Snapshot is the full persisted state of the entity store.
type Snapshot struct {
	Users    []domain.User
	Sessions []domain.Session
	Matches  []domain.Match
	Messages []domain.Message
	Current  *domain.Profile
}

// Encode serializes every collection. The current-session marker is only
// included when someone is logged in.
func (s Snapshot) Encode() (map[string][]byte, error) {
	blobs := make(map[string][]byte, 5)
	var err error
	if blobs[UsersKey], err = json.Marshal(lo.Map(s.Users, func(u domain.User, _ int) DiskUser { return fromUser(u) })); err != nil {
		return nil, err
	}
	if blobs[SessionsKey], err = json.Marshal(lo.Map(s.Sessions, func(v domain.Session, _ int) DiskSession { return fromSession(v) })); err != nil {
		return nil, err
	}
	if blobs[MatchesKey], err = json.Marshal(lo.Map(s.Matches, func(m domain.Match, _ int) DiskMatch { return fromMatch(m) })); err != nil {
		return nil, err
	}
	if blobs[MessagesKey], err = json.Marshal(lo.Map(s.Messages, func(m domain.Message, _ int) DiskMessage { return fromMessage(m) })); err != nil {
		return nil, err
	}
	if s.Current != nil {
		if blobs[CurrentUserKey], err = EncodeProfile(*s.Current); err != nil {
			return nil, err
		}
	}
	return blobs, nil
}

func EncodeProfile(p domain.Profile) ([]byte, error) {
	return json.Marshal(fromProfile(p))
}

// LoadSnapshot reads every collection through the adapter.
// Missing keys are read as empty collections; malformed or invalid
// records fail with errors.ErrCorruptSnapshot.
func LoadSnapshot(adapter Adapter) (Snapshot, error) {
	users, err := loadRecords[DiskUser](adapter, UsersKey)
	if err != nil {
		return Snapshot{}, err
	}
	sessions, err := loadRecords[DiskSession](adapter, SessionsKey)
	if err != nil {
		return Snapshot{}, err
	}
	matches, err := loadRecords[DiskMatch](adapter, MatchesKey)
	if err != nil {
		return Snapshot{}, err
	}
	messages, err := loadRecords[DiskMessage](adapter, MessagesKey)
	if err != nil {
		return Snapshot{}, err
	}

	if err = uniqueIDs(UsersKey, users, func(u DiskUser) int { return u.ID }); err != nil {
		return Snapshot{}, err
	}
	if err = uniqueIDs(SessionsKey, sessions, func(s DiskSession) int { return s.ID }); err != nil {
		return Snapshot{}, err
	}
	if err = uniqueIDs(MatchesKey, matches, func(m DiskMatch) int { return m.ID }); err != nil {
		return Snapshot{}, err
	}
	if err = uniqueIDs(MessagesKey, messages, func(m DiskMessage) int { return m.ID }); err != nil {
		return Snapshot{}, err
	}
	if over, ok := lo.Find(sessions, func(d DiskSession) bool { return len(d.Attendees) > d.MaxParticipants }); ok {
		return Snapshot{}, fmt.Errorf("%w: %s: session %d has %d attendees for %d places",
			errors.ErrCorruptSnapshot, SessionsKey, over.ID, len(over.Attendees), over.MaxParticipants)
	}
	if duplicates := lo.FindDuplicatesBy(matches, pairOf); len(duplicates) > 0 {
		pair := pairOf(duplicates[0])
		return Snapshot{}, fmt.Errorf("%w: %s: users %d and %d matched twice",
			errors.ErrCorruptSnapshot, MatchesKey, pair[0], pair[1])
	}

	snapshot := Snapshot{
		Users:    lo.Map(users, func(d DiskUser, _ int) domain.User { return toUser(d) }),
		Sessions: make([]domain.Session, 0, len(sessions)),
		Matches:  lo.Map(matches, func(d DiskMatch, _ int) domain.Match { return toMatch(d) }),
		Messages: lo.Map(messages, func(d DiskMessage, _ int) domain.Message { return toMessage(d) }),
	}
	for _, d := range sessions {
		session, err := toSession(d)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: session %d: %w", errors.ErrCorruptSnapshot, d.ID, err)
		}
		snapshot.Sessions = append(snapshot.Sessions, session)
	}

	current, err := LoadProfile(adapter)
	switch {
	case stderrors.Is(err, errors.ErrKeyNotFound):
	case err != nil:
		return Snapshot{}, err
	default:
		snapshot.Current = &current
	}
	return snapshot, nil
}

// LoadProfile reads the current-session marker.
func LoadProfile(adapter Adapter) (domain.Profile, error) {
	blob, err := adapter.Load(CurrentUserKey)
	if err != nil {
		return domain.Profile{}, err
	}
	var d DiskProfile
	if err = json.Unmarshal(blob, &d); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %s: %w", errors.ErrCorruptSnapshot, CurrentUserKey, err)
	}
	if err = validate.Struct(d); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %s: %w", errors.ErrCorruptSnapshot, CurrentUserKey, err)
	}
	return toProfile(d), nil
}

func IsInitialized(adapter Adapter) (bool, error) {
	_, err := adapter.Load(InitializedKey)
	switch {
	case stderrors.Is(err, errors.ErrKeyNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func MarkInitialized(adapter Adapter) error {
	return adapter.Save(InitializedKey, []byte("true"))
}

func loadRecords[T any](adapter Adapter, key string) ([]T, error) {
	blob, err := adapter.Load(key)
	if stderrors.Is(err, errors.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var records []T
	if err = json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrCorruptSnapshot, key, err)
	}
	for i, record := range records {
		if err = validate.Struct(record); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", errors.ErrCorruptSnapshot, key, i, err)
		}
	}
	return records, nil
}

// pairOf is the unordered pair of users in a match.
func pairOf(d DiskMatch) [2]int {
	return [2]int{min(d.User1, d.User2), max(d.User1, d.User2)}
}

func uniqueIDs[T any](key string, records []T, id func(T) int) error {
	if duplicates := lo.FindDuplicatesBy(records, id); len(duplicates) > 0 {
		return fmt.Errorf("%w: %s: duplicate id %d", errors.ErrCorruptSnapshot, key, id(duplicates[0]))
	}
	return nil
}
