package domain

import (
	"cmp"
	"time"
)

type MessageID int

// Message represents an immutable direct message between two bowlers.
// Read is stored but nothing marks a message as read yet.
type Message struct {
	ID         MessageID
	FromUserID UserID
	ToUserID   UserID
	Content    string
	Timestamp  time.Time
	Read       bool
}

func (m Message) Identity() int { return int(m.ID) }

func (m Message) WithID(id int) Message {
	m.ID = MessageID(id)
	return m
}

func (m Message) Clone() Message { return m }

func (m Message) Involves(id UserID) bool {
	return m.FromUserID == id || m.ToUserID == id
}

func (m Message) Between(a, b UserID) bool {
	return (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a)
}

// NewestFirst orders messages by timestamp descending, higher id first on ties.
func NewestFirst(a, b Message) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
