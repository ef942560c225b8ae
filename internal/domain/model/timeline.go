package model

// Timeline is the complete event list of one match as last returned by the
// store. It is replaced wholesale after every confirmed write.
type Timeline []MatchEvent

// Find returns the first event with the given type and period.
func (t Timeline) Find(typeID EventType, period int) (MatchEvent, bool) {
	for _, e := range t {
		if e.TypeID == typeID && e.Period == period {
			return e, true
		}
	}
	return MatchEvent{}, false
}

// Count returns how many events share the given type and period.
func (t Timeline) Count(typeID EventType, period int) int {
	n := 0
	for _, e := range t {
		if e.TypeID == typeID && e.Period == period {
			n++
		}
	}
	return n
}

// Clone returns a copy whose backing array is not shared with t.
func (t Timeline) Clone() Timeline {
	if t == nil {
		return nil
	}
	out := make(Timeline, len(t))
	copy(out, t)
	return out
}
