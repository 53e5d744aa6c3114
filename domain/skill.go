package domain

type SkillLevel string

const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Advanced     SkillLevel = "advanced"
	// AnySkill is only meaningful for sessions and filters.
	AnySkill SkillLevel = "all"
)

// Valid reports whether s is one of the three bowler levels.
func (s SkillLevel) Valid() bool {
	switch s {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Accepts reports whether a filter or session level admits a bowler of level other.
func (s SkillLevel) Accepts(other SkillLevel) bool {
	return s == AnySkill || s == other
}
