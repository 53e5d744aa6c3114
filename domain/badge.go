package domain

type Badge string

const (
	FirstTwoHundredGame Badge = "First 200 Game"
	SocialButterfly     Badge = "Social Butterfly"
	ConsistentBowler    Badge = "Consistent Bowler"
)

// Badges lists the achievements a profile has unlocked, in display order.
func (p Profile) Badges() []Badge {
	var badges []Badge
	if p.HighScore >= 200 {
		badges = append(badges, FirstTwoHundredGame)
	}
	if p.Matches >= 5 {
		badges = append(badges, SocialButterfly)
	}
	if p.Average >= 150 {
		badges = append(badges, ConsistentBowler)
	}
	return badges
}
