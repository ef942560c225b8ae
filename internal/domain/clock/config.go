package clock

import (
	"fmt"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
)

// MatchConfig describes the period structure of a match.
type MatchConfig struct {
	PeriodCount       int
	PeriodLength      int
	ExtraPeriodCount  int
	ExtraPeriodLength int
}

// Window is the inclusive minute range of one period.
type Window struct {
	Period int
	Start  int
	End    int
}

// Validate checks the structural constraints of the config.
func (c MatchConfig) Validate() error {
	switch {
	case c.PeriodCount < 1:
		return fmt.Errorf("%w: period count %d", ErrInvalidConfig, c.PeriodCount)
	case c.PeriodLength <= 0:
		return fmt.Errorf("%w: period length %d", ErrInvalidConfig, c.PeriodLength)
	case c.ExtraPeriodCount < 0:
		return fmt.Errorf("%w: extra period count %d", ErrInvalidConfig, c.ExtraPeriodCount)
	case c.ExtraPeriodLength < 0:
		return fmt.Errorf("%w: extra period length %d", ErrInvalidConfig, c.ExtraPeriodLength)
	case c.ExtraPeriodCount > 0 && c.ExtraPeriodLength == 0:
		return fmt.Errorf("%w: extra periods without length", ErrInvalidConfig)
	}
	return nil
}

// RegularTimeMinutes is the length of regular time.
func (c MatchConfig) RegularTimeMinutes() int { return c.PeriodCount * c.PeriodLength }

// ExtraTimeMinutes is the combined length of all extra periods.
func (c MatchConfig) ExtraTimeMinutes() int { return c.ExtraPeriodCount * c.ExtraPeriodLength }

// TotalPeriods counts regular and extra periods.
func (c MatchConfig) TotalPeriods() int { return c.PeriodCount + c.ExtraPeriodCount }

// IsLastPeriod reports whether the period ends the match.
func (c MatchConfig) IsLastPeriod(period int) bool { return period == c.TotalPeriods() }

// Windows returns the minute window of every period, regular periods first.
func (c MatchConfig) Windows() []Window {
	out := make([]Window, 0, c.TotalPeriods())
	for i := 1; i <= c.PeriodCount; i++ {
		out = append(out, Window{
			Period: i,
			Start:  1 + (i-1)*c.PeriodLength,
			End:    i * c.PeriodLength,
		})
	}
	regular := c.RegularTimeMinutes()
	for i := 1; i <= c.ExtraPeriodCount; i++ {
		out = append(out, Window{
			Period: c.PeriodCount + i,
			Start:  regular + 1 + (i-1)*c.ExtraPeriodLength,
			End:    regular + i*c.ExtraPeriodLength,
		})
	}
	return out
}

// Window returns the window of a single period.
func (c MatchConfig) Window(period int) (Window, bool) {
	for _, w := range c.Windows() {
		if w.Period == period {
			return w, true
		}
	}
	return Window{}, false
}

// FromMatch reads the period structure of a store match record.
func FromMatch(m model.Match) MatchConfig {
	return MatchConfig{
		PeriodCount:       m.PeriodCount,
		PeriodLength:      m.PeriodLength,
		ExtraPeriodCount:  m.ExtraPeriodCount,
		ExtraPeriodLength: m.ExtraPeriodLength,
	}
}
