package repositories

import (
	"strikeup/domain"
	"strikeup/storage"
	"time"
)

const samplePassword = "password123"

// SampleSnapshot is the demo community written on first run:
// three bowlers and two practice sessions.
// hash turns the shared sample password into a stored credential.
func SampleSnapshot(hash func(password string) (string, error)) (storage.Snapshot, error) {
	credential, err := hash(samplePassword)
	if err != nil {
		return storage.Snapshot{}, err
	}
	users := []domain.User{
		{
			ID: 1, Name: "Sarah M.", Email: "sarah@example.com", Credential: credential,
			Average: 165, HighScore: 234, Location: "New York, NY", SkillLevel: domain.Intermediate,
			BowlingStyle: "Competitive", Avatar: "SM", GamesPlayed: 45, Matches: 12,
		},
		{
			ID: 2, Name: "Mike T.", Email: "mike@example.com", Credential: credential,
			Average: 142, HighScore: 198, Location: "Brooklyn, NY", SkillLevel: domain.Intermediate,
			BowlingStyle: "Casual", Avatar: "MT", GamesPlayed: 32, Matches: 8,
		},
		{
			ID: 3, Name: "Alex K.", Email: "alex@example.com", Credential: credential,
			Average: 189, HighScore: 278, Location: "Queens, NY", SkillLevel: domain.Advanced,
			BowlingStyle: "League Player", Avatar: "AK", GamesPlayed: 67, Matches: 25,
		},
	}
	sessions := []domain.Session{
		{
			ID:              1,
			Location:        "Bowlero Downtown",
			DateTime:        time.Date(2024, time.January, 15, 19, 0, 0, 0, time.UTC),
			Participants:    2,
			MaxParticipants: 6,
			SkillLevel:      domain.AnySkill,
			Details:         "Casual practice session, all welcome!",
			Organizer:       1,
			Attendees:       []domain.UserID{1, 2},
		},
		{
			ID:              2,
			Location:        "AMF Lanes",
			DateTime:        time.Date(2024, time.January, 16, 14, 0, 0, 0, time.UTC),
			Participants:    1,
			MaxParticipants: 4,
			SkillLevel:      domain.Intermediate,
			Details:         "Looking for serious practice partners",
			Organizer:       3,
			Attendees:       []domain.UserID{3},
		},
	}
	return storage.Snapshot{
		Users:    users,
		Sessions: sessions,
		Matches:  []domain.Match{},
		Messages: []domain.Message{},
	}, nil
}
