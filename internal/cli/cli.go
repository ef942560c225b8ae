// Package cli turns command-line arguments into reporter operations and
// prints their outcome.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	service "github.com/timmybird/fogis-reporter/internal/app"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/reconcile"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
)

// Reporter is the part of the reporting service the commands drive.
type Reporter interface {
	ListMatches(ctx context.Context) ([]model.Match, error)
	Refresh(ctx context.Context, matchID int) (model.Timeline, error)
	Timeline(matchID int) (model.Timeline, error)
	Scores(ctx context.Context, matchID int) (types.Scores, error)
	ReportBoundary(ctx context.Context, matchID int, token string) (reconcile.Outcome, error)
	ReportControl(ctx context.Context, matchID int, typeID model.EventType, token string) (reconcile.Outcome, error)
	ReportPlayerEvent(ctx context.Context, pe service.PlayerEvent) (model.Timeline, error)
	ReportTeamOfficialAction(ctx context.Context, r service.OfficialActionReport) (model.Timeline, error)
	ReportResults(ctx context.Context, matchID int, fulltime, halftime types.Score) (service.ResultReport, error)
	ClearEvents(ctx context.Context, matchID int) error
}

var eventTypeAliases = map[string]model.EventType{
	"goal":          model.RegularGoal,
	"header":        model.HeaderGoal,
	"corner":        model.CornerGoal,
	"free-kick":     model.FreeKickGoal,
	"own-goal":      model.OwnGoal,
	"penalty":       model.PenaltyGoal,
	"yellow":        model.YellowCard,
	"second-yellow": model.SecondYellow,
	"red-denying":   model.RedCardDenyingGoal,
	"red":           model.RedCardOther,
	"substitution":  model.Substitution,
}

// NeedsMatch reports whether the command operates on an opened match.
func NeedsMatch(command string) bool {
	return command != "matches"
}

// Run executes one command for matchID and writes a human readable result
// to out. The match must already be opened on r unless the command is
// "matches".
func Run(ctx context.Context, r Reporter, matchID int, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "matches":
		return listMatches(ctx, r, out)
	case "events":
		return printTimeline(ctx, r, matchID, out)
	case "refresh":
		if _, err := r.Refresh(ctx, matchID); err != nil {
			return err
		}
		return printTimeline(ctx, r, matchID, out)
	case "boundary":
		if len(rest) != 1 {
			return fmt.Errorf("%w: boundary <minute>", ErrUsage)
		}
		o, err := r.ReportBoundary(ctx, matchID, rest[0])
		printOutcome(out, o)
		return err
	case "period-end", "game-end":
		if len(rest) != 1 {
			return fmt.Errorf("%w: %s <minute>", ErrUsage, cmd)
		}
		typeID := model.PeriodEnd
		if cmd == "game-end" {
			typeID = model.GameEnd
		}
		o, err := r.ReportControl(ctx, matchID, typeID, rest[0])
		printOutcome(out, o)
		return err
	case "event":
		return reportEvent(ctx, r, matchID, rest, out)
	case "staff":
		return reportStaff(ctx, r, matchID, rest, out)
	case "results":
		return reportResults(ctx, r, matchID, rest, out)
	case "clear":
		if err := r.ClearEvents(ctx, matchID); err != nil {
			return err
		}
		fmt.Fprintf(out, "cleared all events of match %d\n", matchID)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

func listMatches(ctx context.Context, r Reporter, out io.Writer) error {
	matches, err := r.ListMatches(ctx)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "no matches assigned")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%d\t%s - %s\t%s\n", m.ID, m.Team1Name, m.Team2Name, m.Label)
	}
	return nil
}

func printTimeline(ctx context.Context, r Reporter, matchID int, out io.Writer) error {
	tl, err := r.Timeline(matchID)
	if err != nil {
		return err
	}
	scores, err := r.Scores(ctx, matchID)
	if err != nil {
		return err
	}
	writeTimeline(out, tl)
	fmt.Fprintf(out, "score %s (halftime %s)\n", scores.RegularTime, scores.Halftime)
	return nil
}

func writeTimeline(out io.Writer, tl model.Timeline) {
	if len(tl) == 0 {
		fmt.Fprintln(out, "no events")
		return
	}
	for _, e := range tl {
		fmt.Fprintf(out, "%6d  P%d %3d'  %-36s", e.ID, e.Period, e.Minute, e.TypeID)
		if e.TeamID != 0 {
			fmt.Fprintf(out, "  team %d player %d", e.TeamID, e.PlayerID)
		}
		fmt.Fprintf(out, "  %d-%d\n", e.HomeGoals, e.AwayGoals)
	}
}

func printOutcome(out io.Writer, o reconcile.Outcome) {
	for _, s := range o.Steps {
		status := s.Action.String()
		if s.Err != nil {
			status = "failed: " + s.Err.Error()
		}
		fmt.Fprintf(out, "%-12s P%d %-11s %s\n", s.Step.Type, s.Step.Period, s.Step.Origin, status)
	}
}

func reportEvent(ctx context.Context, r Reporter, matchID int, args []string, out io.Writer) error {
	if len(args) != 4 && len(args) != 5 {
		return fmt.Errorf("%w: event <team> <type> <jersey> <minute> [jersey-out]", ErrUsage)
	}
	team, err := atoi("team", args[0])
	if err != nil {
		return err
	}
	typeID, err := parseEventType(args[1])
	if err != nil {
		return err
	}
	jersey, err := atoi("jersey", args[2])
	if err != nil {
		return err
	}
	pe := service.PlayerEvent{
		MatchID: matchID,
		Team:    team,
		TypeID:  typeID,
		Jersey:  jersey,
		Minute:  args[3],
	}
	if len(args) == 5 {
		if pe.JerseyOut, err = atoi("jersey-out", args[4]); err != nil {
			return err
		}
	}

	tl, err := r.ReportPlayerEvent(ctx, pe)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "recorded %s for team %d, jersey %d at %s\n", typeID, team, jersey, args[3])
	writeTimeline(out, tl)
	return nil
}

func reportStaff(ctx context.Context, r Reporter, matchID int, args []string, out io.Writer) error {
	if len(args) != 4 && len(args) != 5 {
		return fmt.Errorf("%w: staff <team> <official-id> <role-id> <caution|minor|severe[,...]> [minute]", ErrUsage)
	}
	team, err := atoi("team", args[0])
	if err != nil {
		return err
	}
	official, err := atoi("official-id", args[1])
	if err != nil {
		return err
	}
	role, err := atoi("role-id", args[2])
	if err != nil {
		return err
	}
	report := service.OfficialActionReport{
		MatchID:    matchID,
		Team:       team,
		OfficialID: official,
		RoleID:     role,
	}
	for _, action := range strings.Split(strings.ToLower(args[3]), ",") {
		switch strings.TrimSpace(action) {
		case "caution":
			report.Cautioned = true
		case "minor":
			report.MinorDismissal = true
		case "severe":
			report.SevereDismissal = true
		default:
			return fmt.Errorf("%w: staff action %q", ErrUsage, action)
		}
	}
	if len(args) == 5 {
		report.Minute = args[4]
	}

	tl, err := r.ReportTeamOfficialAction(ctx, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "recorded %s for official %d of team %d\n", args[3], official, team)
	writeTimeline(out, tl)
	return nil
}

func reportResults(ctx context.Context, r Reporter, matchID int, args []string, out io.Writer) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: results <ht-home> <ht-away> <ft-home> <ft-away>", ErrUsage)
	}
	goals := make([]int, 0, len(args))
	for i, a := range args {
		n, err := atoi("goals", a)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: argument %d is negative", ErrUsage, i+1)
		}
		goals = append(goals, n)
	}
	halftime := types.Score{Home: goals[0], Away: goals[1]}
	fulltime := types.Score{Home: goals[2], Away: goals[3]}

	report, err := r.ReportResults(ctx, matchID, fulltime, halftime)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "submitted fulltime %s, halftime %s\n", fulltime, halftime)
	if report.Verification != nil {
		fmt.Fprintf(out, "WARNING: verification failed, check the store manually: %v\n", report.Verification)
		return nil
	}
	fmt.Fprintln(out, "verified")
	return nil
}

func parseEventType(s string) (model.EventType, error) {
	if t, ok := eventTypeAliases[strings.ToLower(s)]; ok {
		return t, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return model.EventType(n), nil
}

func atoi(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrUsage, name, s)
	}
	return n, nil
}
