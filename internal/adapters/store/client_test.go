package store_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/timmybird/fogis-reporter/internal/adapters/http/mockstore"
	"github.com/timmybird/fogis-reporter/internal/adapters/store"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newClient(url string, opts ...store.Option) *store.Client {
	opts = append([]store.Option{
		store.WithCredentials("ref", "pw"),
		store.WithReadRetries(2, time.Millisecond),
	}, opts...)
	c, err := store.New(url, opts...)
	So(err, ShouldBeNil)
	return c
}

func TestClientAgainstMockStore(t *testing.T) {
	Convey("Given a client and a mock store", t, func() {
		mem := mockstore.NewMemory()
		mockstore.SeedDemo(mem)
		srv := httptest.NewServer(mockstore.NewServer(mem, mockstore.WithCredentials("ref", "pw")).Handler())
		defer srv.Close()
		ctx := context.Background()
		c := newClient(srv.URL)

		Convey("When not logged in", func() {
			_, err := c.FetchMatches(ctx)

			Convey("Then reads are unauthorized and not retried", func() {
				So(errors.Is(err, store.ErrUnauthorized), ShouldBeTrue)
				So(errors.Is(err, store.ErrUnexpectedStatus), ShouldBeFalse)
			})
		})

		Convey("When logging in with bad credentials", func() {
			bad := newClient(srv.URL, store.WithCredentials("ref", "wrong"))
			err := bad.Login(ctx)

			Convey("Then login fails", func() {
				So(errors.Is(err, store.ErrUnauthorized), ShouldBeTrue)
			})
		})

		Convey("When logged in", func() {
			So(c.Login(ctx), ShouldBeNil)

			Convey("Then matches and rosters are read", func() {
				matches, err := c.FetchMatches(ctx)
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 1)

				m, err := c.FetchMatch(ctx, mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(m.Team2Name, ShouldEqual, "FK Borta")

				roster, err := c.FetchRoster(ctx, mockstore.DemoMatchID, mockstore.DemoTeam1ID)
				So(err, ShouldBeNil)
				p, ok := roster.ByJersey(9)
				So(ok, ShouldBeTrue)
				So(p.ParticipantID, ShouldEqual, 5109)
			})

			Convey("Then upserts return the full timeline", func() {
				tl, err := c.UpsertEvent(ctx, model.NewControlEvent(mockstore.DemoMatchID, model.PeriodStart, 1, 1, 0, 0))
				So(err, ShouldBeNil)
				So(tl, ShouldHaveLength, 1)

				end := model.NewControlEvent(mockstore.DemoMatchID, model.PeriodEnd, 1, 45, 0, 0)
				tl, err = c.UpsertEvent(ctx, end)
				So(err, ShouldBeNil)
				So(tl, ShouldHaveLength, 2)

				fetched, err := c.FetchEvents(ctx, mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(fetched, ShouldResemble, tl)
			})

			Convey("Then a failed write surfaces and is not retried", func() {
				mem.FailNextWrites(1)
				_, err := c.UpsertEvent(ctx, model.NewControlEvent(mockstore.DemoMatchID, model.PeriodStart, 1, 1, 0, 0))
				So(errors.Is(err, store.ErrUnexpectedStatus), ShouldBeTrue)

				tl, err := c.FetchEvents(ctx, mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(tl, ShouldBeEmpty)
			})

			Convey("Then results round trip and events can be cleared", func() {
				So(c.UpsertResults(ctx, model.ResultPayload{Results: []model.ResultRecord{
					{MatchID: mockstore.DemoMatchID, TypeID: model.ResultFulltime, Team1Goals: 2, Team2Goals: 1},
				}}), ShouldBeNil)
				records, err := c.FetchResults(ctx, mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Team1Goals, ShouldEqual, 2)

				_, err = c.UpsertEvent(ctx, model.NewControlEvent(mockstore.DemoMatchID, model.PeriodStart, 1, 1, 0, 0))
				So(err, ShouldBeNil)
				So(c.ClearEvents(ctx, mockstore.DemoMatchID), ShouldBeNil)
				tl, err := c.FetchEvents(ctx, mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(tl, ShouldBeEmpty)
			})

			Convey("Then team official actions are recorded", func() {
				err := c.UpsertTeamOfficialAction(ctx, model.OfficialAction{
					MatchID: mockstore.DemoMatchID, OfficialID: 7001, TeamID: mockstore.DemoTeam2ID,
					ActionTypeID: model.DefaultOfficialActionType, Minute: 30, Cautioned: true,
				})
				So(err, ShouldBeNil)
				actions, err := mem.OfficialActions(mockstore.DemoMatchID)
				So(err, ShouldBeNil)
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Cautioned, ShouldBeTrue)

				err = c.UpsertTeamOfficialAction(ctx, model.OfficialAction{
					MatchID: mockstore.DemoMatchID, OfficialID: 7001, TeamID: 1, Cautioned: true,
				})
				So(errors.Is(err, store.ErrUnexpectedStatus), ShouldBeTrue)
			})

			Convey("Then an unknown match is reported", func() {
				_, err := c.FetchMatch(ctx, 1)
				So(errors.Is(err, store.ErrUnexpectedStatus), ShouldBeTrue)
			})
		})
	})
}

func TestClientRetries(t *testing.T) {
	Convey("Given a store that fails twice before answering", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[{"matchhandelseid":1,"matchid":5,"matchhandelsetypid":31,"period":1}]`))
		}))
		defer srv.Close()

		Convey("When reading with two retries", func() {
			c := newClient(srv.URL)
			tl, err := c.FetchEvents(context.Background(), 5)

			Convey("Then the third attempt succeeds", func() {
				So(err, ShouldBeNil)
				So(calls.Load(), ShouldEqual, 3)
				So(tl[0].TypeID, ShouldEqual, model.PeriodStart)
			})
		})

		Convey("When reading without retries", func() {
			c := newClient(srv.URL, store.WithReadRetries(0, time.Millisecond))
			_, err := c.FetchEvents(context.Background(), 5)

			Convey("Then the first failure is returned", func() {
				So(errors.Is(err, store.ErrUnexpectedStatus), ShouldBeTrue)
				So(calls.Load(), ShouldEqual, 1)
			})
		})

		Convey("When a write gets an empty list back", func() {
			empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			}))
			defer empty.Close()
			c := newClient(empty.URL)
			_, err := c.UpsertEvent(context.Background(), model.MatchEvent{MatchID: 5})

			Convey("Then it is an empty snapshot error", func() {
				So(errors.Is(err, store.ErrEmptySnapshot), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store that answers success with a broken body", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		Convey("When reading with two retries", func() {
			c := newClient(srv.URL)
			_, err := c.FetchEvents(context.Background(), 5)

			Convey("Then the decode failure is final", func() {
				So(errors.Is(err, store.ErrDecodeResponse), ShouldBeTrue)
				So(calls.Load(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given no base url", t, func() {
		_, err := store.New("  ")

		Convey("Then the client is not created", func() {
			So(errors.Is(err, store.ErrMissingBaseURL), ShouldBeTrue)
		})
	})
}
