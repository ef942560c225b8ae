package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	service "github.com/timmybird/fogis-reporter/internal/app"
	"github.com/timmybird/fogis-reporter/internal/adapters/http/mockstore"
	"github.com/timmybird/fogis-reporter/internal/adapters/store"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given an opened demo match behind the mock store", t, func() {
		mem := mockstore.NewMemory()
		mockstore.SeedDemo(mem)
		srv := httptest.NewServer(mockstore.NewServer(mem).Handler())
		defer srv.Close()

		ctx := context.Background()
		client, err := store.New(srv.URL, store.WithCredentials("referee", "secret"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(client.Login(ctx), convey.ShouldBeNil)
		svc := service.New(client)
		_, err = svc.OpenMatch(ctx, mockstore.DemoMatchID)
		convey.So(err, convey.ShouldBeNil)

		var out bytes.Buffer
		run := func(args ...string) error {
			out.Reset()
			return Run(ctx, svc, mockstore.DemoMatchID, args, &out)
		}

		convey.Convey("When listing matches", func() {
			err := run("matches")

			convey.Convey("Then the demo match is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "6169105")
				convey.So(out.String(), convey.ShouldContainSubstring, "IK Hemma - FK Borta")
			})
		})

		convey.Convey("When a goal is recorded by alias", func() {
			err := run("event", "1", "goal", "9", "23")

			convey.Convey("Then it is stored and the score follows", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "recorded Regular Goal")

				convey.So(run("events"), convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "score 1-0 (halftime 1-0)")
			})
		})

		convey.Convey("When a substitution is recorded by numeric type", func() {
			err := run("event", "2", "17", "7", "60", "1")

			convey.Convey("Then both players are on the stored event", func() {
				convey.So(err, convey.ShouldBeNil)
				tl, err := mem.Events(mockstore.DemoMatchID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(tl, convey.ShouldHaveLength, 1)
				convey.So(tl[0].TypeID, convey.ShouldEqual, model.Substitution)
			})
		})

		convey.Convey("When a boundary is reported in stoppage time", func() {
			err := run("boundary", "45+2")

			convey.Convey("Then the period start is synthesized before the end", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "synthesized")
				convey.So(out.String(), convey.ShouldContainSubstring, "Period End")
				convey.So(out.String(), convey.ShouldContainSubstring, "created")

				tl, _ := mem.Events(mockstore.DemoMatchID)
				convey.So(tl.Count(model.PeriodStart, 1), convey.ShouldEqual, 1)
				convey.So(tl.Count(model.PeriodEnd, 1), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the game end is reported twice", func() {
			convey.So(run("game-end", "90+3"), convey.ShouldBeNil)
			err := run("game-end", "90+3")

			convey.Convey("Then the second run finds everything in place", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "found_existing")
				convey.So(out.String(), convey.ShouldNotContainSubstring, "created")
				tl, _ := mem.Events(mockstore.DemoMatchID)
				convey.So(tl.Count(model.GameEnd, 2), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When results are submitted", func() {
			err := run("results", "0", "0", "1", "0")

			convey.Convey("Then they are verified", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "submitted fulltime 1-0, halftime 0-0")
				convey.So(out.String(), convey.ShouldContainSubstring, "verified")
			})
		})

		convey.Convey("When the match is cleared", func() {
			convey.So(run("event", "1", "yellow", "10", "12"), convey.ShouldBeNil)
			err := run("clear")

			convey.Convey("Then the store is empty", func() {
				convey.So(err, convey.ShouldBeNil)
				tl, _ := mem.Events(mockstore.DemoMatchID)
				convey.So(tl, convey.ShouldBeEmpty)
				convey.So(run("refresh"), convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "no events")
			})
		})

		convey.Convey("When a team official is cautioned and dismissed", func() {
			err := run("staff", "2", "7002", "1", "caution,minor", "63")

			convey.Convey("Then the action is stored with its minute", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "official 7002")
				actions, err := mem.OfficialActions(mockstore.DemoMatchID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(actions, convey.ShouldHaveLength, 1)
				convey.So(actions[0].TeamID, convey.ShouldEqual, mockstore.DemoTeam2ID)
				convey.So(actions[0].Cautioned, convey.ShouldBeTrue)
				convey.So(actions[0].MinorDismissal, convey.ShouldBeTrue)
				convey.So(actions[0].DismissalMinute, convey.ShouldEqual, 63)
			})
		})

		convey.Convey("When a staff dismissal has no minute", func() {
			err := run("staff", "1", "7001", "1", "severe")

			convey.Convey("Then the service refuses it", func() {
				convey.So(errors.Is(err, service.ErrDismissalMinute), convey.ShouldBeTrue)
				actions, _ := mem.OfficialActions(mockstore.DemoMatchID)
				convey.So(actions, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When arguments are wrong", func() {
			convey.Convey("Then usage errors are returned without writes", func() {
				convey.So(errors.Is(run(), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("boundary"), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("event", "1", "goal", "nine", "10"), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("event", "1", "bicycle", "9", "10"), ErrUnknownType), convey.ShouldBeTrue)
				convey.So(errors.Is(run("results", "1", "-1", "2", "0"), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("staff", "1", "7001", "1", "shout"), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("staff", "1", "7001"), ErrUsage), convey.ShouldBeTrue)
				convey.So(errors.Is(run("dance"), ErrUnknownCommand), convey.ShouldBeTrue)

				tl, _ := mem.Events(mockstore.DemoMatchID)
				convey.So(tl, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the service rejects the event", func() {
			err := run("event", "3", "goal", "9", "10")

			convey.Convey("Then its error is passed through", func() {
				convey.So(errors.Is(err, service.ErrInvalidTeam), convey.ShouldBeTrue)
			})
		})
	})
}

func TestHelpers(t *testing.T) {
	convey.Convey("Given the argument helpers", t, func() {
		convey.Convey("Then aliases and ids both parse", func() {
			typ, err := parseEventType("Second-Yellow")
			convey.So(err, convey.ShouldBeNil)
			convey.So(typ, convey.ShouldEqual, model.SecondYellow)

			typ, err = parseEventType("39")
			convey.So(err, convey.ShouldBeNil)
			convey.So(typ, convey.ShouldEqual, model.HeaderGoal)
		})

		convey.Convey("Then only matches works without a match", func() {
			convey.So(NeedsMatch("matches"), convey.ShouldBeFalse)
			convey.So(NeedsMatch("events"), convey.ShouldBeTrue)
		})

		convey.Convey("Then help lists every command", func() {
			var buf bytes.Buffer
			ShowHelp(&buf)
			for _, c := range []string{"matches", "events", "refresh", "boundary", "period-end", "game-end", "event", "staff", "results", "clear"} {
				convey.So(buf.String(), convey.ShouldContainSubstring, c)
			}
		})
	})
}

func TestSetupLogging(t *testing.T) {
	convey.Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "reporter.log")

		convey.Convey("When logging is set up", func() {
			closeFn, err := SetupLogging(path, true)
			convey.So(err, convey.ShouldBeNil)
			logger.Get().Info(context.Background(), "hello file")
			convey.So(closeFn(), convey.ShouldBeNil)

			convey.Convey("Then entries reach the file", func() {
				data, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "hello file")
			})
		})

		convey.Convey("When the directory does not exist", func() {
			_, err := SetupLogging(filepath.Join(path, "nope", "x.log"), false)

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
