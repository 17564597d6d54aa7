package mastery

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 4, 15, 14, 0, 0, 0, time.UTC)

func TestRecordOutcome_FirstSession(t *testing.T) {
	got := RecordOutcome(nil, "algebra", true, testNow)

	if got.TotalSessions != 1 || got.SuccessfulSessions != 1 {
		t.Errorf("counters = %d/%d, want 1/1", got.SuccessfulSessions, got.TotalSessions)
	}
	if got.Tier != TierBeginner {
		t.Errorf("tier = %q, want beginner", got.Tier)
	}
	// Beginner → next review tomorrow.
	wantNext := time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC)
	if !got.NextReviewDate.Equal(wantNext) {
		t.Errorf("next review = %v, want %v", got.NextReviewDate, wantNext)
	}
}

func TestRecordOutcome_DoesNotMutatePrev(t *testing.T) {
	prev := TopicProgress{TopicID: "algebra", TotalSessions: 4, SuccessfulSessions: 4, Tier: TierIntermediate}
	_ = RecordOutcome(&prev, "algebra", false, testNow)
	if prev.TotalSessions != 4 || prev.SuccessfulSessions != 4 {
		t.Error("prev record was mutated")
	}
}

func TestRecordOutcome_FailureKeepsSuccessCount(t *testing.T) {
	prev := RecordOutcome(nil, "algebra", true, testNow)
	got := RecordOutcome(&prev, "algebra", false, testNow)
	if got.TotalSessions != 2 || got.SuccessfulSessions != 1 {
		t.Errorf("counters = %d/%d, want 1/2", got.SuccessfulSessions, got.TotalSessions)
	}
}

func TestTierFor_DecisionTable(t *testing.T) {
	tests := []struct {
		rate  float64
		total int
		want  Tier
	}{
		{0, 0, TierNotStarted},
		{100, 1, TierBeginner},
		{100, 2, TierBeginner},
		{100, 8, TierMastery},
		{90, 8, TierMastery},
		{95, 7, TierAdvanced}, // high rate but too few sessions for mastery
		{80, 5, TierAdvanced},
		{85, 4, TierIntermediate}, // not enough sessions for advanced
		{60, 3, TierIntermediate},
		{59, 10, TierBeginner},
		{0, 5, TierBeginner},
	}
	for _, tt := range tests {
		if got := TierFor(tt.rate, tt.total); got != tt.want {
			t.Errorf("TierFor(%.0f, %d) = %q, want %q", tt.rate, tt.total, got, tt.want)
		}
	}
}

func TestTier_NeverMasteryUnderEightSessions(t *testing.T) {
	for total := 0; total < 8; total++ {
		if got := TierFor(100, total); got == TierMastery {
			t.Errorf("TierFor(100, %d) = mastery, should not be reachable", total)
		}
	}
}

func TestTier_MonotonicInSuccessRate(t *testing.T) {
	rank := map[Tier]int{
		TierNotStarted:   0,
		TierBeginner:     1,
		TierIntermediate: 2,
		TierAdvanced:     3,
		TierMastery:      4,
	}
	for total := 1; total <= 12; total++ {
		last := -1
		for rate := 0.0; rate <= 100; rate += 5 {
			r := rank[TierFor(rate, total)]
			if r < last {
				t.Fatalf("tier decreased at rate=%.0f total=%d", rate, total)
			}
			last = r
		}
	}
}

func TestReviewOffsets(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{TierNotStarted, 0},
		{TierBeginner, 1},
		{TierIntermediate, 3},
		{TierAdvanced, 7},
		{TierMastery, 14},
	}
	for _, tt := range tests {
		if got := tt.tier.ReviewOffsetDays(); got != tt.want {
			t.Errorf("%s offset = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestIsDue_MasteryNeverDue(t *testing.T) {
	p := TopicProgress{Tier: TierMastery, NextReviewDate: testNow.AddDate(0, 0, -30)}
	if p.IsDue(testNow) {
		t.Error("mastered topic should never be due for review")
	}
}

func TestIsDue_OnDueDate(t *testing.T) {
	p := TopicProgress{Tier: TierIntermediate, NextReviewDate: testNow.Add(-2 * time.Hour)}
	if !p.IsDue(testNow) {
		t.Error("topic should be due on its review date")
	}
}

func TestIsDue_BeforeDueDate(t *testing.T) {
	p := TopicProgress{Tier: TierIntermediate, NextReviewDate: testNow.AddDate(0, 0, 2)}
	if p.IsDue(testNow) {
		t.Error("topic should not be due before its review date")
	}
}

func TestDue_SortedMostOverdueFirst(t *testing.T) {
	records := []TopicProgress{
		{TopicID: "b", Tier: TierBeginner, NextReviewDate: testNow.AddDate(0, 0, -1)},
		{TopicID: "a", Tier: TierBeginner, NextReviewDate: testNow.AddDate(0, 0, -5)},
		{TopicID: "c", Tier: TierMastery, NextReviewDate: testNow.AddDate(0, 0, -10)},
		{TopicID: "d", Tier: TierAdvanced, NextReviewDate: testNow.AddDate(0, 0, 3)},
	}
	due := Due(records, testNow)
	if len(due) != 2 {
		t.Fatalf("got %d due topics, want 2", len(due))
	}
	if due[0].TopicID != "a" || due[1].TopicID != "b" {
		t.Errorf("due order = %s, %s; want a, b", due[0].TopicID, due[1].TopicID)
	}
}

func TestProgression_ToMastery(t *testing.T) {
	var rec TopicProgress
	p := &rec
	var cur TopicProgress
	for i := 0; i < 8; i++ {
		if i == 0 {
			cur = RecordOutcome(nil, "fractions", true, testNow)
		} else {
			cur = RecordOutcome(p, "fractions", true, testNow.AddDate(0, 0, i))
		}
		rec = cur
	}
	if cur.Tier != TierMastery {
		t.Errorf("after 8 perfect sessions tier = %q, want mastery", cur.Tier)
	}
	// Mastery → next review 14 days out.
	want := time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 14)
	if !cur.NextReviewDate.Equal(want) {
		t.Errorf("next review = %v, want %v", cur.NextReviewDate, want)
	}
}
