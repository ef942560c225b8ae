package model

// DefaultOfficialActionType is the matchlagledaretypid sent with every
// official action; the store derives the kind from the flags.
const DefaultOfficialActionType = 1

// OfficialAction is a caution or dismissal of a team official such as a
// coach or physio. It is stored apart from the event timeline.
type OfficialAction struct {
	MatchID         int  `json:"matchid"`
	OfficialID      int  `json:"matchlagledareid"`
	TeamID          int  `json:"matchlagid"`
	ActionTypeID    int  `json:"matchlagledaretypid"`
	Minute          int  `json:"matchminut"`
	RoleID          int  `json:"lagrollid"`
	DismissalMinute int  `json:"avvisadmatchminut"`
	MinorDismissal  bool `json:"avvisadlindrig"`
	SevereDismissal bool `json:"avvisadgrov"`
	Cautioned       bool `json:"varnad"`
	Responsible     bool `json:"ansvarig"`
}

// Dismissed reports whether the official was sent off.
func (a OfficialAction) Dismissed() bool { return a.MinorDismissal || a.SevereDismissal }
