package recurrence

import (
	"errors"
	"testing"
	"time"
)

func mustInterval(start, end string) Interval {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	return Interval{Start: s, End: e}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand_None_SingleOccurrence(t *testing.T) {
	base := mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z")
	got, err := Expand(base, NoRepeat)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 || !got[0].Start.Equal(base.Start) || !got[0].End.Equal(base.End) {
		t.Errorf("Expand(none) = %v, want single base interval", got)
	}
}

func TestExpand_Weekly_Example(t *testing.T) {
	// Base 2024-01-01 10:00-11:00, weekly until 2024-01-22 → Jan 1, 8, 15, 22.
	base := mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z")
	rule := Rule{Freq: Weekly, Until: date(2024, 1, 22).Add(12 * time.Hour)}

	got, err := Expand(base, rule)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	wantDays := []int{1, 8, 15, 22}
	if len(got) != len(wantDays) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(wantDays))
	}
	for i, iv := range got {
		if iv.Start.Day() != wantDays[i] {
			t.Errorf("occurrence %d on day %d, want %d", i, iv.Start.Day(), wantDays[i])
		}
		if iv.Duration() != time.Hour {
			t.Errorf("occurrence %d duration = %v, want 1h", i, iv.Duration())
		}
	}
}

func TestExpand_Daily_Properties(t *testing.T) {
	base := mustInterval("2024-03-01T09:00:00Z", "2024-03-01T09:45:00Z")
	rule := Rule{Freq: Daily, Until: date(2024, 3, 10).Add(10 * time.Hour)}

	got, err := Expand(base, rule)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d occurrences, want 10", len(got))
	}
	for i, iv := range got {
		if iv.Duration() != base.Duration() {
			t.Errorf("occurrence %d duration = %v, want %v", i, iv.Duration(), base.Duration())
		}
		if i > 0 && !got[i-1].Start.Before(iv.Start) {
			t.Errorf("starts not strictly increasing at %d", i)
		}
	}
	last := got[len(got)-1].Start
	if last.After(rule.Until) {
		t.Error("last start exceeds recurrence end")
	}
	if !rule.Until.Before(last.AddDate(0, 0, 1)) {
		t.Error("recurrence end should precede last start + one unit")
	}
}

func TestExpand_Monthly_EndOfMonthClamp(t *testing.T) {
	// Jan 31 anchors at end of month: Feb 29 (leap year), then Mar 31.
	base := mustInterval("2024-01-31T18:00:00Z", "2024-01-31T19:00:00Z")
	rule := Rule{Freq: Monthly, Until: date(2024, 4, 30).Add(23 * time.Hour)}

	got, err := Expand(base, rule)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []time.Time{
		time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 30, 18, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i, iv := range got {
		if !iv.Start.Equal(want[i]) {
			t.Errorf("occurrence %d start = %v, want %v", i, iv.Start, want[i])
		}
	}
}

func TestExpand_Monthly_NonLeapFebruary(t *testing.T) {
	base := mustInterval("2023-01-31T08:00:00Z", "2023-01-31T09:00:00Z")
	rule := Rule{Freq: Monthly, Until: date(2023, 2, 28).Add(23 * time.Hour)}

	got, err := Expand(base, rule)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(got))
	}
	if got[1].Start.Month() != time.February || got[1].Start.Day() != 28 {
		t.Errorf("second occurrence = %v, want Feb 28", got[1].Start)
	}
}

func TestExpand_RejectsTooManyOccurrences(t *testing.T) {
	base := mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z")
	rule := Rule{Freq: Daily, Until: date(2024, 6, 1)} // >100 days

	_, err := Expand(base, rule)
	if !errors.Is(err, ErrTooManyOccurrences) {
		t.Errorf("err = %v, want ErrTooManyOccurrences", err)
	}
}

func TestExpand_RejectsUntilBeforeStart(t *testing.T) {
	base := mustInterval("2024-01-10T10:00:00Z", "2024-01-10T11:00:00Z")
	rule := Rule{Freq: Weekly, Until: date(2024, 1, 1)}

	_, err := Expand(base, rule)
	if !errors.Is(err, ErrUntilBeforeStart) {
		t.Errorf("err = %v, want ErrUntilBeforeStart", err)
	}
}

func TestExpand_RejectsInvertedInterval(t *testing.T) {
	base := mustInterval("2024-01-10T11:00:00Z", "2024-01-10T10:00:00Z")
	_, err := Expand(base, NoRepeat)
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("err = %v, want ErrEndBeforeStart", err)
	}
}

func TestCount_MatchesExpansion(t *testing.T) {
	tests := []struct {
		name string
		base Interval
		rule Rule
	}{
		{"daily", mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z"), Rule{Freq: Daily, Until: date(2024, 2, 15)}},
		{"weekly", mustInterval("2024-01-03T10:00:00Z", "2024-01-03T11:00:00Z"), Rule{Freq: Weekly, Until: date(2024, 6, 1)}},
		{"monthly", mustInterval("2024-01-31T10:00:00Z", "2024-01-31T11:00:00Z"), Rule{Freq: Monthly, Until: date(2024, 12, 15)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Count(tt.base, tt.rule)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			got, err := Expand(tt.base, tt.rule)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if n != len(got) {
				t.Errorf("Count = %d, expansion produced %d", n, len(got))
			}
		})
	}
}

func TestSeq_Restartable(t *testing.T) {
	base := mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z")
	rule := Rule{Freq: Weekly, Until: date(2024, 1, 22).Add(time.Hour)}

	seq := Seq(base, rule)
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != second || first != 4 {
		t.Errorf("restarted sequence yielded %d then %d, want 4 both times", first, second)
	}
}

func TestSeq_EarlyBreak(t *testing.T) {
	base := mustInterval("2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z")
	rule := Rule{Freq: Daily, Until: date(2024, 3, 1)}

	count := 0
	for range Seq(base, rule) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("early break consumed %d, want 3", count)
	}
}
