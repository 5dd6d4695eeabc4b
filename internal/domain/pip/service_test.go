package pip

import (
	"testing"
	"time"

	"hrops/internal/domain/urgency"
)

func TestMilestoneCompletionRate(t *testing.T) {
	if _, ok := MilestoneCompletionRate(0, 0); ok {
		t.Fatal("expected undefined rate for a plan with no milestones")
	}

	rate, ok := MilestoneCompletionRate(1, 4)
	if !ok || rate != 0.25 {
		t.Fatalf("expected 0.25, got %v (ok=%v)", rate, ok)
	}
}

func TestDecorate(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	p := Plan{Status: StatusActive, EndDate: now.AddDate(0, 0, 5), MilestonesTotal: 2, MilestonesCompleted: 1}
	decorate(&p, now)
	if p.Urgency != urgency.StatusDueSoon {
		t.Fatalf("expected due_soon within 7-day window, got %s", p.Urgency)
	}
	if p.CompletionRate == nil || *p.CompletionRate != 0.5 {
		t.Fatalf("expected completion rate 0.5, got %v", p.CompletionRate)
	}

	p = Plan{Status: StatusTerminated, EndDate: now.AddDate(0, 0, -30)}
	decorate(&p, now)
	if p.Urgency != urgency.StatusOnTrack {
		t.Fatalf("terminated plan must stay on_track, got %s", p.Urgency)
	}
	if p.CompletionRate != nil {
		t.Fatalf("expected undefined completion rate, got %v", *p.CompletionRate)
	}
}
