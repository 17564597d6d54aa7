package recurrence

import "iter"

// Expand materializes a rule into its ordered occurrence intervals.
// The rule is validated first; invalid or oversized rules are rejected
// before any occurrence is generated.
func Expand(base Interval, rule Rule) ([]Interval, error) {
	if err := rule.Validate(base); err != nil {
		return nil, err
	}
	n, err := Count(base, rule)
	if err != nil {
		return nil, err
	}
	out := make([]Interval, 0, n)
	for iv := range Seq(base, rule) {
		out = append(out, iv)
	}
	return out, nil
}

// Seq yields the occurrences of a validated rule lazily, in order.
// Every occurrence preserves the base interval's duration. The sequence
// is finite and restartable; ranging over it again replays the same
// occurrences. Callers must validate the rule first; Seq itself never
// yields more than MaxOccurrences intervals as a hard stop.
func Seq(base Interval, rule Rule) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if rule.Freq == None {
			yield(base)
			return
		}
		dur := base.Duration()
		for i := 0; i < MaxOccurrences; i++ {
			start := nthStart(base.Start, rule.Freq, i)
			if start.After(rule.Until) {
				return
			}
			if !yield(Interval{Start: start, End: start.Add(dur)}) {
				return
			}
		}
	}
}
