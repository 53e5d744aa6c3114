package e2e

import (
	"strikeup/auth"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/internal"
	"testing"

	"github.com/stretchr/testify/suite"
)

type testCommunitySuite struct {
	BaseSuite
}

func TestCommunitySuite(t *testing.T) {
	suite.Run(t, &testCommunitySuite{})
}

// TestNewcomerFlow follows a new bowler across several runs of the
// application sharing one database directory (E2E_BADGER_DIR must be empty).
func (s *testCommunitySuite) TestNewcomerFlow() {
	var jamie domain.Profile
	var sessionID domain.SessionID

	// --- STEP 1: SIGNUP ON A FRESH DATABASE ---
	s.Run("Step 1: Signup seeds the community and logs the newcomer in", func() {
		s.WithApp("Signup", func(app *internal.App) {
			s.Require().Len(app.Matches.ListCandidateUsers(0), 3, "Sample community was not seeded")

			var err error
			jamie, err = app.Auth.Signup(auth.SignupRequest{
				Name:            "Jamie Lee",
				Email:           "jamie@example.com",
				Password:        "spare-me-42",
				ConfirmPassword: "spare-me-42",
				Location:        "Queens, NY",
				SkillLevel:      domain.Beginner,
			})
			s.Require().NoError(err)
			s.Require().Equal("JL", jamie.Avatar)
		})
	})

	// --- STEP 2: THE SESSION SURVIVES A RESTART ---
	s.Run("Step 2: The newcomer is still logged in and meets Alex", func() {
		s.WithApp("Connect", func(app *internal.App) {
			current, ok := app.Auth.Current()
			s.Require().True(ok, "Current session was not persisted")
			s.Require().Equal(jamie, current)

			neighbours := app.Matches.FilterCandidateUsers(current.ID, domain.CandidateFilter{Location: "queens", SkillLevel: domain.AnySkill})
			s.Require().Len(neighbours, 1)
			s.Require().Equal("Alex K.", neighbours[0].Name)

			_, err := app.Matches.Connect(current.ID, neighbours[0].ID)
			s.Require().NoError(err)
			_, err = app.Messages.SendMessage(current.ID, neighbours[0].ID, "Up for a game this week?")
			s.Require().NoError(err)
		})
	})

	// --- STEP 3: ALEX ANSWERS ---
	s.Run("Step 3: Alex answers and organizes a session", func() {
		s.WithApp("Reply", func(app *internal.App) {
			s.Require().NoError(app.Auth.Logout())
			alex, err := app.Auth.Login("alex@example.com", "password123")
			s.Require().NoError(err)
			s.Require().Equal(26, alex.Matches)

			_, err = app.Matches.Connect(alex.ID, jamie.ID)
			s.Require().ErrorIs(err, errors.ErrAlreadyConnected)

			_, err = app.Messages.SendMessage(alex.ID, jamie.ID, "Sure, Thursday at AMF?")
			s.Require().NoError(err)

			session, err := app.Sessions.CreateSession(domain.CreateSessionCommand{
				OrganizerID:     alex.ID,
				Location:        "AMF Lanes",
				DateTime:        "2024-01-18T19:00",
				SkillLevel:      domain.AnySkill,
				MaxParticipants: 2,
			})
			s.Require().NoError(err)
			sessionID = session.ID
		})
	})

	// --- STEP 4: THE NEWCOMER FILLS THE LAST SPOT ---
	s.Run("Step 4: Jamie joins and the session is full", func() {
		s.WithApp("Join", func(app *internal.App) {
			s.Require().NoError(app.Auth.Logout())
			me, err := app.Auth.Login("jamie@example.com", "spare-me-42")
			s.Require().NoError(err)
			s.Require().Equal(1, me.Matches)

			thread := app.Messages.ListThread(me.ID, 3)
			s.Require().Len(thread, 2)

			session, err := app.Sessions.JoinSession(sessionID, me.ID)
			s.Require().NoError(err)
			s.Require().Equal([]domain.UserID{3, me.ID}, session.Attendees)

			_, err = app.Sessions.JoinSession(sessionID, 1)
			s.Require().ErrorIs(err, errors.ErrSessionFull)
		})
	})
}
