package model

// Match is the store's description of a match assigned to the referee.
type Match struct {
	ID                int    `json:"matchid"`
	Label             string `json:"label"`
	Team1Name         string `json:"lag1namn"`
	Team2Name         string `json:"lag2namn"`
	Team1ID           int    `json:"matchlag1id"`
	Team2ID           int    `json:"matchlag2id"`
	PeriodCount       int    `json:"antalhalvlekar"`
	PeriodLength      int    `json:"tidperhalvlek"`
	ExtraPeriodCount  int    `json:"antalforlangningsperioder"`
	ExtraPeriodLength int    `json:"tidperforlangningsperiod"`
}

// Player is a roster entry for one team in a match.
type Player struct {
	PlayerID      int    `json:"spelareid"`
	ParticipantID int    `json:"matchdeltagareid"`
	Jersey        int    `json:"trojnummer"`
	Name          string `json:"namn,omitempty"`
	FirstName     string `json:"fornamn,omitempty"`
	LastName      string `json:"efternamn,omitempty"`
}

// DisplayName returns the best available name for the player.
func (p Player) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	default:
		return "Unknown"
	}
}

// Roster is a team's list of players.
type Roster []Player

// ByJersey looks a player up by shirt number.
func (r Roster) ByJersey(jersey int) (Player, bool) {
	for _, p := range r {
		if p.Jersey == jersey {
			return p, true
		}
	}
	return Player{}, false
}
