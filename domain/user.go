// Package domain contains the core concepts of the bowling community:
// bowlers, practice sessions, connections and direct messages.
// No storage, network or presentation logic should be added here.
package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type UserID int

const DefaultBowlingStyle = "Casual"

// User is a registered bowler. Credential holds an opaque password hash
// and must never leave the core, use Profile for anything that is shown.
type User struct {
	ID           UserID
	Name         string
	Email        string
	Credential   string
	Average      int
	HighScore    int
	Location     string
	SkillLevel   SkillLevel
	BowlingStyle string
	Avatar       string
	GamesPlayed  int
	Matches      int
}

// Profile is the credential-free projection of a User.
type Profile struct {
	ID           UserID
	Name         string
	Email        string
	Average      int
	HighScore    int
	Location     string
	SkillLevel   SkillLevel
	BowlingStyle string
	Avatar       string
	GamesPlayed  int
	Matches      int
}

func (u User) Identity() int { return int(u.ID) }

func (u User) WithID(id int) User {
	u.ID = UserID(id)
	return u
}

func (u User) Clone() User { return u }

func (u User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Average:      u.Average,
		HighScore:    u.HighScore,
		Location:     u.Location,
		SkillLevel:   u.SkillLevel,
		BowlingStyle: u.BowlingStyle,
		Avatar:       u.Avatar,
		GamesPlayed:  u.GamesPlayed,
		Matches:      u.Matches,
	}
}

// Initials builds an avatar from the first letter of every
// whitespace-separated token of name, upper-cased.
// "sarah m." gives "SM".
func Initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
