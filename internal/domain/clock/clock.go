// Package clock maps referee-entered minute tokens onto match minutes and
// periods.
//
// A token is either a plain minute ("67") or a regular-time minute with
// stoppage appended ("45+2"). Stoppage may only follow a minute inside
// regular time; extra-time periods are addressed by plain minutes only.
package clock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
)

type token struct {
	base        int
	stoppage    int
	hasStoppage bool
}

func parse(raw string) (token, error) {
	raw = strings.TrimSpace(raw)
	baseStr, stopStr, found := strings.Cut(raw, "+")
	base, err := strconv.Atoi(strings.TrimSpace(baseStr))
	if err != nil {
		return token{}, fmt.Errorf("%w: %q", ErrInvalidMinuteFormat, raw)
	}
	t := token{base: base, hasStoppage: found}
	if found {
		// A stoppage segment that is not a plain digit string counts as zero.
		stopStr = strings.TrimSpace(stopStr)
		if isDigits(stopStr) {
			if n, err := strconv.Atoi(stopStr); err == nil {
				t.stoppage = n
			}
		}
	}
	return t, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve converts a minute token into the absolute match minute and the
// 1-based period it falls in.
func Resolve(raw string, cfg MatchConfig) (minute, period int, err error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	t, err := parse(raw)
	if err != nil {
		return 0, 0, err
	}

	regular := cfg.RegularTimeMinutes()
	if t.hasStoppage {
		if t.base > regular {
			return 0, 0, fmt.Errorf("%w: %q", ErrStoppageOutsideRegularTime, raw)
		}
		if t.base <= 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrMinuteOutOfRange, raw)
		}
		return t.base + t.stoppage, (t.base-1)/cfg.PeriodLength + 1, nil
	}

	m := t.base
	if m <= 0 || m > regular+cfg.ExtraTimeMinutes() {
		return 0, 0, fmt.Errorf("%w: %d not in 1..%d", ErrMinuteOutOfRange, m, regular+cfg.ExtraTimeMinutes())
	}
	if m <= regular {
		return m, (m-1)/cfg.PeriodLength + 1, nil
	}
	return m, cfg.PeriodCount + (m-regular-1)/cfg.ExtraPeriodLength + 1, nil
}

// ResolveBoundary decides which control event a minute token denotes: the
// start of a period, the end of a period, or the end of the game when the
// period is the last one. Only the token's base is compared with the period
// windows, so "45+2" ends the first half while "60+2" denotes no boundary.
func ResolveBoundary(raw string, cfg MatchConfig) (model.EventType, int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	t, err := parse(raw)
	if err != nil {
		return 0, 0, err
	}

	for _, w := range cfg.Windows() {
		if t.base == w.Start {
			return model.PeriodStart, w.Period, nil
		}
		if t.base == w.End {
			return endType(cfg, w.Period), w.Period, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrNoBoundaryMatch, raw)
}

func endType(cfg MatchConfig, period int) model.EventType {
	if cfg.IsLastPeriod(period) {
		return model.GameEnd
	}
	return model.PeriodEnd
}
