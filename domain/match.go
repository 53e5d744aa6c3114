package domain

import "time"

type MatchID int

type MatchStatus string

const Connected MatchStatus = "connected"

// Match is a symmetric connection between two bowlers.
type Match struct {
	ID        MatchID
	User1     UserID
	User2     UserID
	Timestamp time.Time
	Status    MatchStatus
}

func (m Match) Identity() int { return int(m.ID) }

func (m Match) WithID(id int) Match {
	m.ID = MatchID(id)
	return m
}

func (m Match) Clone() Match { return m }

// Involves reports whether id is one side of the pair.
func (m Match) Involves(id UserID) bool {
	return m.User1 == id || m.User2 == id
}

// Pairs reports whether the match links a and b, in either order.
func (m Match) Pairs(a, b UserID) bool {
	return (m.User1 == a && m.User2 == b) || (m.User1 == b && m.User2 == a)
}

// Other returns the side of the pair that is not id.
func (m Match) Other(id UserID) UserID {
	if m.User1 == id {
		return m.User2
	}
	return m.User1
}
