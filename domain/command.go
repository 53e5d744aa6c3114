package domain

// CreateSessionCommand carries the fields of the session form.
// DateTime uses DateTimeLayout.
type CreateSessionCommand struct {
	OrganizerID     UserID     `validate:"gt=0"`
	Location        string     `validate:"required,max=200"`
	DateTime        string     `validate:"required,datetime=2006-01-02T15:04"`
	SkillLevel      SkillLevel `validate:"required,oneof=all beginner intermediate advanced"`
	MaxParticipants int        `validate:"gte=1,lte=100"`
	Details         string     `validate:"max=1000"`
}

// CandidateFilter narrows the list of bowlers one can connect with.
// An empty SkillLevel behaves like AnySkill. Distance is accepted for
// form compatibility and ignored: there is no geolocation.
type CandidateFilter struct {
	Location   string
	SkillLevel SkillLevel
	Distance   string
}
