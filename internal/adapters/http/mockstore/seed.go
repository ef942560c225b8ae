package mockstore

import "github.com/timmybird/fogis-reporter/internal/domain/model"

// Demo match fixture used by the development server and tests.
const (
	DemoMatchID = 6169105
	DemoTeam1ID = 60001
	DemoTeam2ID = 60002
)

// SeedDemo registers a 2x45 match with two small rosters.
func SeedDemo(m *Memory) model.Match {
	match := model.Match{
		ID:           DemoMatchID,
		Label:        "Division 4, round 7",
		Team1Name:    "IK Hemma",
		Team2Name:    "FK Borta",
		Team1ID:      DemoTeam1ID,
		Team2ID:      DemoTeam2ID,
		PeriodCount:  2,
		PeriodLength: 45,
	}
	m.AddMatch(match,
		model.Roster{
			{PlayerID: 1101, ParticipantID: 5101, Jersey: 1, FirstName: "Erik", LastName: "Lind"},
			{PlayerID: 1109, ParticipantID: 5109, Jersey: 9, FirstName: "Anna", LastName: "Berg"},
			{PlayerID: 1110, ParticipantID: 5110, Jersey: 10, FirstName: "Maja", LastName: "Holm"},
		},
		model.Roster{
			{PlayerID: 2101, ParticipantID: 6101, Jersey: 1, FirstName: "Olle", LastName: "Sand"},
			{PlayerID: 2107, ParticipantID: 6107, Jersey: 7, FirstName: "Sara", LastName: "Ek"},
		},
	)
	return match
}
