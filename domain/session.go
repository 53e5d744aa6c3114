package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

type SessionID int

// DateTimeLayout is the minute-precision local layout used for session dates.
const DateTimeLayout = "2006-01-02T15:04"

const DefaultSessionDetails = "No additional details"

// Session is a scheduled practice meetup.
// Participants always equals len(Attendees) and never exceeds MaxParticipants
// for sessions created through the core.
type Session struct {
	ID              SessionID
	Location        string
	DateTime        time.Time
	Participants    int
	MaxParticipants int
	SkillLevel      SkillLevel
	Details         string
	Organizer       UserID
	Attendees       []UserID
}

// NewSession opens a session with the organizer as its only attendee.
func NewSession(organizer UserID, location string, at time.Time, level SkillLevel, maxParticipants int, details string) Session {
	if details == "" {
		details = DefaultSessionDetails
	}
	return Session{
		Location:        location,
		DateTime:        at,
		Participants:    1,
		MaxParticipants: maxParticipants,
		SkillLevel:      level,
		Details:         details,
		Organizer:       organizer,
		Attendees:       []UserID{organizer},
	}
}

func (s Session) Identity() int { return int(s.ID) }

func (s Session) WithID(id int) Session {
	s.ID = SessionID(id)
	return s
}

func (s Session) Clone() Session {
	s.Attendees = slices.Clone(s.Attendees)
	return s
}

func (s Session) HasAttendee(id UserID) bool {
	return slices.Contains(s.Attendees, id)
}

func (s Session) IsFull() bool {
	return len(s.Attendees) >= s.MaxParticipants
}

// Join appends id to the attendees. The caller checks HasAttendee and IsFull first.
func (s *Session) Join(id UserID) {
	s.Attendees = append(s.Attendees, id)
	s.Participants = len(s.Attendees)
}

// Leave removes id from the attendees, doing nothing when absent.
// The organizer field is kept even when the organizer leaves.
func (s *Session) Leave(id UserID) {
	s.Attendees = lo.Without(s.Attendees, id)
	s.Participants = len(s.Attendees)
}
