package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/timmybird/fogis-reporter/internal/adapters/http/mockstore"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given a running mock store", t, func() {
		mem := mockstore.NewMemory()
		mockstore.SeedDemo(mem)
		srv := httptest.NewServer(mockstore.NewServer(mem).Handler())
		defer srv.Close()

		t.Setenv("FOGIS_BASE_URL", srv.URL)
		t.Setenv("FOGIS_FETCH_RETRIES", "0")
		t.Setenv("FOGIS_USERNAME", "referee")
		t.Setenv("FOGIS_PASSWORD", "secret")

		ctx := context.Background()
		var stdout, stderr bytes.Buffer
		match := strconv.Itoa(mockstore.DemoMatchID)

		convey.Convey("When a goal and the game end are reported", func() {
			code1 := run(ctx, []string{"-match", match, "event", "2", "penalty", "7", "88"}, &stdout, &stderr)
			code2 := run(ctx, []string{"-match", match, "game-end", "90+5"}, &stdout, &stderr)

			convey.Convey("Then both succeed and the store holds the chain", func() {
				convey.So(code1, convey.ShouldEqual, exitOK)
				convey.So(code2, convey.ShouldEqual, exitOK)
				tl, err := mem.Events(mockstore.DemoMatchID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(tl.Count(model.PenaltyGoal, 2), convey.ShouldEqual, 1)
				convey.So(tl.Count(model.PeriodEnd, 2), convey.ShouldEqual, 1)
				convey.So(tl.Count(model.GameEnd, 2), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a team official is cautioned", func() {
			code := run(ctx, []string{"-match", match, "staff", "1", "7001", "2", "caution"}, &stdout, &stderr)

			convey.Convey("Then the store holds the caution", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				actions, err := mem.OfficialActions(mockstore.DemoMatchID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(actions, convey.ShouldHaveLength, 1)
				convey.So(actions[0].RoleID, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When listing matches without a match id", func() {
			code := run(ctx, []string{"matches"}, &stdout, &stderr)

			convey.Convey("Then it succeeds", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, match)
			})
		})

		convey.Convey("When the match id is missing", func() {
			code := run(ctx, []string{"events"}, &stdout, &stderr)

			convey.Convey("Then it is a usage error", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "-match is required")
			})
		})

		convey.Convey("When the match does not exist", func() {
			code := run(ctx, []string{"-match", "1", "events"}, &stdout, &stderr)

			convey.Convey("Then the initial fetch fails the process", func() {
				convey.So(code, convey.ShouldEqual, exitFailure)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "failed to load match 1")
			})
		})

		convey.Convey("When credentials are missing", func() {
			t.Setenv("FOGIS_PASSWORD", "")
			code := run(ctx, []string{"-match", match, "events"}, &stdout, &stderr)

			convey.Convey("Then nothing is contacted", func() {
				convey.So(code, convey.ShouldEqual, exitFailure)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "FOGIS_PASSWORD")
			})
		})

		convey.Convey("When the password is wrong", func() {
			t.Setenv("FOGIS_PASSWORD", "wrong")
			code := run(ctx, []string{"-match", match, "events"}, &stdout, &stderr)

			convey.Convey("Then login fails the process", func() {
				convey.So(code, convey.ShouldEqual, exitFailure)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "login failed")
			})
		})

		convey.Convey("When the command is unknown", func() {
			code := run(ctx, []string{"-match", match, "dance"}, &stdout, &stderr)

			convey.Convey("Then it is a usage error", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
			})
		})

		convey.Convey("When help is requested", func() {
			code := run(ctx, []string{"-help"}, &stdout, &stderr)

			convey.Convey("Then usage is printed", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "Usage:")
			})
		})
	})
}
