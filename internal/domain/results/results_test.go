package results_test

import (
	"errors"
	"testing"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/results"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestBuildPayload(t *testing.T) {
	convey.Convey("Given a final and halftime score", t, func() {
		p := results.BuildPayload(42, types.Score{Home: 3, Away: 1}, types.Score{Home: 1, Away: 0})

		convey.Convey("Then fulltime and halftime records are built", func() {
			convey.So(p.Results, convey.ShouldHaveLength, 2)
			convey.So(p.Results[0], convey.ShouldResemble, model.ResultRecord{
				MatchID: 42, TypeID: model.ResultFulltime, Team1Goals: 3, Team2Goals: 1,
			})
			convey.So(p.Results[1], convey.ShouldResemble, model.ResultRecord{
				MatchID: 42, TypeID: model.ResultHalftime, Team1Goals: 1, Team2Goals: 0,
			})
		})
	})
}

func TestVerify(t *testing.T) {
	convey.Convey("Given submitted scores", t, func() {
		submitted := types.Scores{
			RegularTime: types.Score{Home: 2, Away: 2},
			Halftime:    types.Score{Home: 0, Away: 1},
		}
		stored := results.BuildPayload(42, submitted.RegularTime, submitted.Halftime).Results

		convey.Convey("When the store holds the same values", func() {
			convey.Convey("Then verification passes", func() {
				convey.So(results.Verify(submitted, stored), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the halftime record is missing", func() {
			err := results.Verify(submitted, stored[:1])

			convey.Convey("Then the result is incomplete", func() {
				convey.So(errors.Is(err, results.ErrResultsIncomplete), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the store has nothing", func() {
			err := results.Verify(submitted, nil)

			convey.Convey("Then the result is incomplete", func() {
				convey.So(errors.Is(err, results.ErrResultsIncomplete), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value differs", func() {
			stored[1].Team2Goals = 2
			err := results.Verify(submitted, stored)

			convey.Convey("Then a mismatch carrying both sides is returned", func() {
				convey.So(errors.Is(err, results.ErrVerificationMismatch), convey.ShouldBeTrue)
				var mm *results.MismatchError
				convey.So(errors.As(err, &mm), convey.ShouldBeTrue)
				convey.So(mm.Fetched.Halftime, convey.ShouldResemble, types.Score{Home: 0, Away: 2})
				convey.So(mm.Reported, convey.ShouldResemble, submitted)
				convey.So(err.Error(), convey.ShouldContainSubstring, "halftime 0-1")
			})
		})
	})
}
