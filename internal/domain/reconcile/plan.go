package reconcile

import (
	"fmt"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
)

// Origin tells whether a step carries the caller's event or a prerequisite
// built on its behalf.
type Origin int

const (
	// Requested steps update an existing record in place, or create one.
	Requested Origin = iota
	// Synthesized steps only create when nothing matches; an existing
	// record is left untouched.
	Synthesized
)

func (o Origin) String() string {
	if o == Synthesized {
		return "synthesized"
	}
	return "requested"
}

// Step is one upsert in a reconciliation, keyed by (Type, Period).
type Step struct {
	Type   model.EventType
	Period int
	Origin Origin
	Event  model.MatchEvent
}

// Plan lists, in execution order, the writes needed to record req together
// with the boundaries it implies:
//
//	PeriodStart(p): PeriodStart(p)
//	PeriodEnd(p):   PeriodStart(p), PeriodEnd(p)
//	GameEnd(p):     PeriodEnd(p), PeriodStart(p), GameEnd(p)
//
// Prerequisites copy the match, period and score snapshot from req. A
// synthesized PeriodEnd reuses the requested minute; a synthesized
// PeriodStart uses the first minute of the period's window.
func Plan(req model.MatchEvent, cfg clock.MatchConfig) ([]Step, error) {
	if !req.TypeID.IsControl() {
		return nil, fmt.Errorf("%w: %s", ErrNotControlEvent, req.TypeID)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, ok := cfg.Window(req.Period)
	if !ok {
		return nil, fmt.Errorf("%w: %d of %d", ErrUnknownPeriod, req.Period, cfg.TotalPeriods())
	}

	requested := Step{Type: req.TypeID, Period: req.Period, Origin: Requested, Event: req}
	start := synthesize(req, model.PeriodStart, w.Start)

	switch req.TypeID {
	case model.PeriodEnd:
		return []Step{start, requested}, nil
	case model.GameEnd:
		end := synthesize(req, model.PeriodEnd, req.Minute)
		return []Step{end, start, requested}, nil
	default:
		return []Step{requested}, nil
	}
}

func synthesize(req model.MatchEvent, typeID model.EventType, minute int) Step {
	e := model.NewControlEvent(req.MatchID, typeID, req.Period, minute, req.HomeGoals, req.AwayGoals)
	return Step{Type: typeID, Period: req.Period, Origin: Synthesized, Event: e}
}
