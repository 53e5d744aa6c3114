package services

import (
	"fmt"
	"log/slog"
	"strikeup/clock"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/repositories"
	"strings"
)

type IMatchService interface {
	ListCandidateUsers(excludeID domain.UserID) []domain.Profile
	FilterCandidateUsers(excludeID domain.UserID, filter domain.CandidateFilter) []domain.Profile
	Connect(userID, otherUserID domain.UserID) (domain.Match, error)
}

type MatchService struct {
	log   *slog.Logger
	store *repositories.Store
	clock clock.Clock
}

func NewMatchService(log *slog.Logger, store *repositories.Store, clock clock.Clock) IMatchService {
	return &MatchService{log: log, store: store, clock: clock}
}

// ListCandidateUsers returns every bowler except excludeID, in store order.
func (s *MatchService) ListCandidateUsers(excludeID domain.UserID) []domain.Profile {
	return s.FilterCandidateUsers(excludeID, domain.CandidateFilter{SkillLevel: domain.AnySkill})
}

// FilterCandidateUsers keeps the candidates whose location contains
// filter.Location (case-insensitive) and whose level is accepted by
// filter.SkillLevel.
func (s *MatchService) FilterCandidateUsers(excludeID domain.UserID, filter domain.CandidateFilter) []domain.Profile {
	location := strings.ToLower(filter.Location)
	level := filter.SkillLevel
	if level == "" {
		level = domain.AnySkill
	}
	users := s.store.Users.FindBy(func(u domain.User) bool {
		return u.ID != excludeID &&
			strings.Contains(strings.ToLower(u.Location), location) &&
			level.Accepts(u.SkillLevel)
	})
	return profiles(users)
}

// Connect records a connection between two bowlers. The pair is unordered:
// once A is connected to B, connecting B to A fails with ErrAlreadyConnected.
// Both users' match counters are bumped with the match, atomically.
func (s *MatchService) Connect(userID, otherUserID domain.UserID) (domain.Match, error) {
	if userID == otherUserID {
		return domain.Match{}, errors.ErrSelfConnection
	}
	for _, id := range []domain.UserID{userID, otherUserID} {
		if _, ok := s.store.Users.FindByID(int(id)); !ok {
			return domain.Match{}, fmt.Errorf("%w: user %d", errors.ErrUserNotFound, id)
		}
	}
	existing := s.store.Matches.FindBy(func(m domain.Match) bool { return m.Pairs(userID, otherUserID) })
	if len(existing) > 0 {
		return domain.Match{}, errors.ErrAlreadyConnected
	}

	var match domain.Match
	err := s.store.Transaction(func() error {
		var err error
		match, err = s.store.Matches.Insert(domain.Match{
			User1:     userID,
			User2:     otherUserID,
			Timestamp: s.clock.Now().UTC(),
			Status:    domain.Connected,
		})
		if err != nil {
			return err
		}
		for _, id := range []domain.UserID{userID, otherUserID} {
			if _, err = s.store.Users.Update(int(id), incrementMatches); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Match{}, err
	}
	s.log.Info("Users connected", "match_id", match.ID, "user1", userID, "user2", otherUserID)
	return match, nil
}

func incrementMatches(u *domain.User) error {
	u.Matches++
	return nil
}

func profiles(users []domain.User) []domain.Profile {
	result := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		result = append(result, u.Profile())
	}
	return result
}
