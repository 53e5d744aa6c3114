package storage

import (
	"strikeup/domain"
	"time"

	"github.com/samber/lo"
)

// DiskUser is the persisted shape of a domain.User.
// JSON names match the records written by the web client.
type DiskUser struct {
	ID           int    `json:"id" validate:"gt=0"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Average      int    `json:"average" validate:"gte=0"`
	HighScore    int    `json:"highScore" validate:"gte=0"`
	Location     string `json:"location"`
	SkillLevel   string `json:"skillLevel" validate:"oneof=beginner intermediate advanced"`
	BowlingStyle string `json:"bowlingStyle"`
	Avatar       string `json:"avatar"`
	GamesPlayed  int    `json:"gamesPlayed" validate:"gte=0"`
	Matches      int    `json:"matches" validate:"gte=0"`
}

// DiskProfile is the current-session marker: a DiskUser without password.
type DiskProfile struct {
	ID           int    `json:"id" validate:"gt=0"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Average      int    `json:"average" validate:"gte=0"`
	HighScore    int    `json:"highScore" validate:"gte=0"`
	Location     string `json:"location"`
	SkillLevel   string `json:"skillLevel" validate:"oneof=beginner intermediate advanced"`
	BowlingStyle string `json:"bowlingStyle"`
	Avatar       string `json:"avatar"`
	GamesPlayed  int    `json:"gamesPlayed" validate:"gte=0"`
	Matches      int    `json:"matches" validate:"gte=0"`
}

type DiskSession struct {
	ID              int    `json:"id" validate:"gt=0"`
	Location        string `json:"location" validate:"required"`
	DateTime        string `json:"datetime" validate:"datetime=2006-01-02T15:04"`
	Participants    int    `json:"participants" validate:"gte=0"`
	MaxParticipants int    `json:"maxParticipants" validate:"gt=0"`
	SkillLevel      string `json:"skillLevel" validate:"oneof=all beginner intermediate advanced"`
	Details         string `json:"details"`
	Organizer       int    `json:"organizer" validate:"gt=0"`
	Attendees       []int  `json:"attendees" validate:"unique,dive,gt=0"`
}

type DiskMatch struct {
	ID        int       `json:"id" validate:"gt=0"`
	User1     int       `json:"user1" validate:"gt=0"`
	User2     int       `json:"user2" validate:"gt=0,nefield=User1"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Status    string    `json:"status" validate:"oneof=connected"`
}

type DiskMessage struct {
	ID         int       `json:"id" validate:"gt=0"`
	FromUserID int       `json:"fromUserId" validate:"gt=0"`
	ToUserID   int       `json:"toUserId" validate:"gt=0"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp" validate:"required"`
	Read       bool      `json:"read"`
}

func fromUser(u domain.User) DiskUser {
	return DiskUser{
		ID:           int(u.ID),
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.Credential,
		Average:      u.Average,
		HighScore:    u.HighScore,
		Location:     u.Location,
		SkillLevel:   string(u.SkillLevel),
		BowlingStyle: u.BowlingStyle,
		Avatar:       u.Avatar,
		GamesPlayed:  u.GamesPlayed,
		Matches:      u.Matches,
	}
}

func toUser(d DiskUser) domain.User {
	return domain.User{
		ID:           domain.UserID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		Credential:   d.Password,
		Average:      d.Average,
		HighScore:    d.HighScore,
		Location:     d.Location,
		SkillLevel:   domain.SkillLevel(d.SkillLevel),
		BowlingStyle: d.BowlingStyle,
		Avatar:       d.Avatar,
		GamesPlayed:  d.GamesPlayed,
		Matches:      d.Matches,
	}
}

func fromProfile(p domain.Profile) DiskProfile {
	return DiskProfile{
		ID:           int(p.ID),
		Name:         p.Name,
		Email:        p.Email,
		Average:      p.Average,
		HighScore:    p.HighScore,
		Location:     p.Location,
		SkillLevel:   string(p.SkillLevel),
		BowlingStyle: p.BowlingStyle,
		Avatar:       p.Avatar,
		GamesPlayed:  p.GamesPlayed,
		Matches:      p.Matches,
	}
}

func toProfile(d DiskProfile) domain.Profile {
	return domain.Profile{
		ID:           domain.UserID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		Average:      d.Average,
		HighScore:    d.HighScore,
		Location:     d.Location,
		SkillLevel:   domain.SkillLevel(d.SkillLevel),
		BowlingStyle: d.BowlingStyle,
		Avatar:       d.Avatar,
		GamesPlayed:  d.GamesPlayed,
		Matches:      d.Matches,
	}
}

// fromSession writes Participants from the attendees so a stored session
// can never disagree with itself.
func fromSession(s domain.Session) DiskSession {
	return DiskSession{
		ID:              int(s.ID),
		Location:        s.Location,
		DateTime:        s.DateTime.Format(domain.DateTimeLayout),
		Participants:    len(s.Attendees),
		MaxParticipants: s.MaxParticipants,
		SkillLevel:      string(s.SkillLevel),
		Details:         s.Details,
		Organizer:       int(s.Organizer),
		Attendees:       lo.Map(s.Attendees, func(id domain.UserID, _ int) int { return int(id) }),
	}
}

func toSession(d DiskSession) (domain.Session, error) {
	at, err := time.Parse(domain.DateTimeLayout, d.DateTime)
	if err != nil {
		return domain.Session{}, err
	}
	attendees := lo.Map(d.Attendees, func(id int, _ int) domain.UserID { return domain.UserID(id) })
	return domain.Session{
		ID:              domain.SessionID(d.ID),
		Location:        d.Location,
		DateTime:        at,
		Participants:    len(attendees),
		MaxParticipants: d.MaxParticipants,
		SkillLevel:      domain.SkillLevel(d.SkillLevel),
		Details:         d.Details,
		Organizer:       domain.UserID(d.Organizer),
		Attendees:       attendees,
	}, nil
}

func fromMatch(m domain.Match) DiskMatch {
	return DiskMatch{
		ID:        int(m.ID),
		User1:     int(m.User1),
		User2:     int(m.User2),
		Timestamp: m.Timestamp,
		Status:    string(m.Status),
	}
}

func toMatch(d DiskMatch) domain.Match {
	return domain.Match{
		ID:        domain.MatchID(d.ID),
		User1:     domain.UserID(d.User1),
		User2:     domain.UserID(d.User2),
		Timestamp: d.Timestamp,
		Status:    domain.MatchStatus(d.Status),
	}
}

func fromMessage(m domain.Message) DiskMessage {
	return DiskMessage{
		ID:         int(m.ID),
		FromUserID: int(m.FromUserID),
		ToUserID:   int(m.ToUserID),
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		Read:       m.Read,
	}
}

func toMessage(d DiskMessage) domain.Message {
	return domain.Message{
		ID:         domain.MessageID(d.ID),
		FromUserID: domain.UserID(d.FromUserID),
		ToUserID:   domain.UserID(d.ToUserID),
		Content:    d.Content,
		Timestamp:  d.Timestamp,
		Read:       d.Read,
	}
}
