package services

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/repositories"
	"strings"

	"github.com/samber/lo"
)

type IProfileService interface {
	GetProfile(userID domain.UserID) (domain.Profile, error)
	UpdateLocation(userID domain.UserID, location string) (domain.Profile, error)
	RecentMatches(userID domain.UserID, limit int) ([]Connection, error)
	Badges(userID domain.UserID) ([]domain.Badge, error)
}

// Connection is a match seen from one side: who the other bowler is and when
// the connection happened.
type Connection struct {
	Match domain.Match
	With  domain.Profile
}

type ProfileService struct {
	log   *slog.Logger
	store *repositories.Store
}

func NewProfileService(log *slog.Logger, store *repositories.Store) IProfileService {
	return &ProfileService{log: log, store: store}
}

func (s *ProfileService) GetProfile(userID domain.UserID) (domain.Profile, error) {
	user, ok := s.store.Users.FindByID(int(userID))
	if !ok {
		return domain.Profile{}, fmt.Errorf("%w: user %d", errors.ErrUserNotFound, userID)
	}
	return user.Profile(), nil
}

// UpdateLocation stores the trimmed location. The current-session
// projection follows automatically since it is resolved by id.
func (s *ProfileService) UpdateLocation(userID domain.UserID, location string) (domain.Profile, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Profile{}, fmt.Errorf("%w: location is empty", errors.ErrInvalidInput)
	}
	user, err := s.store.Users.Update(int(userID), func(u *domain.User) error {
		u.Location = location
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	s.log.Info("Location updated", "user_id", userID)
	return user.Profile(), nil
}

// RecentMatches lists the connections of userID, newest first, at most limit
// of them when limit is positive.
func (s *ProfileService) RecentMatches(userID domain.UserID, limit int) ([]Connection, error) {
	if _, ok := s.store.Users.FindByID(int(userID)); !ok {
		return nil, fmt.Errorf("%w: user %d", errors.ErrUserNotFound, userID)
	}
	matches := s.store.Matches.FindBy(func(m domain.Match) bool { return m.Involves(userID) })
	slices.SortStableFunc(matches, func(a, b domain.Match) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	connections := lo.FilterMap(matches, func(m domain.Match, _ int) (Connection, bool) {
		other, ok := s.store.Users.FindByID(int(m.Other(userID)))
		if !ok {
			s.log.Warn("Match references unknown user", "match_id", m.ID, "user_id", m.Other(userID))
			return Connection{}, false
		}
		return Connection{Match: m, With: other.Profile()}, true
	})
	if limit > 0 && len(connections) > limit {
		connections = connections[:limit]
	}
	return connections, nil
}

func (s *ProfileService) Badges(userID domain.UserID) ([]domain.Badge, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return profile.Badges(), nil
}
