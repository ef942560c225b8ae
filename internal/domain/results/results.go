// Package results builds result reports and checks them against what the
// store recorded.
package results

import (
	"fmt"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
)

// Scores is the pair of score lines a result report consists of.
type Scores = types.Scores

// BuildPayload returns the fulltime and halftime records for a match.
func BuildPayload(matchID int, fulltime, halftime types.Score) model.ResultPayload {
	return model.ResultPayload{Results: []model.ResultRecord{
		{MatchID: matchID, TypeID: model.ResultFulltime, Team1Goals: fulltime.Home, Team2Goals: fulltime.Away},
		{MatchID: matchID, TypeID: model.ResultHalftime, Team1Goals: halftime.Home, Team2Goals: halftime.Away},
	}}
}

// FromRecords reads fulltime and halftime scores out of store records. The
// second value is false unless both kinds were present.
func FromRecords(records []model.ResultRecord) (Scores, bool) {
	var s Scores
	var gotFull, gotHalf bool
	for _, r := range records {
		switch r.TypeID {
		case model.ResultFulltime:
			s.RegularTime = types.Score{Home: r.Team1Goals, Away: r.Team2Goals}
			gotFull = true
		case model.ResultHalftime:
			s.Halftime = types.Score{Home: r.Team1Goals, Away: r.Team2Goals}
			gotHalf = true
		}
	}
	return s, gotFull && gotHalf
}

// Verify compares submitted scores with the records fetched after reporting.
// It returns ErrResultsIncomplete when a record is missing and a
// *MismatchError when any value differs.
func Verify(submitted Scores, fetched []model.ResultRecord) error {
	got, ok := FromRecords(fetched)
	if !ok {
		return fmt.Errorf("%w: got %d record(s)", ErrResultsIncomplete, len(fetched))
	}
	if got != submitted {
		return &MismatchError{Reported: submitted, Fetched: got}
	}
	return nil
}
