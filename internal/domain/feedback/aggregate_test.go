package feedback

import (
	"math"
	"testing"
	"time"

	"hrops/internal/domain/urgency"
)

func TestCompletionRateUndefinedWithoutProviders(t *testing.T) {
	if _, ok := CompletionRate(0, 0); ok {
		t.Fatal("expected undefined rate for zero providers")
	}
}

func TestCompletionRatePartial(t *testing.T) {
	rate, ok := CompletionRate(2, 3)
	if !ok {
		t.Fatal("expected defined rate")
	}
	if math.Abs(rate-2.0/3.0) > 1e-9 {
		t.Fatalf("expected 2/3, got %v", rate)
	}
}

func TestCompletionRateBounds(t *testing.T) {
	rate, ok := CompletionRate(0, 4)
	if !ok || rate != 0 {
		t.Fatalf("expected 0, got %v (ok=%v)", rate, ok)
	}
	rate, ok = CompletionRate(4, 4)
	if !ok || rate != 1 {
		t.Fatalf("expected 1, got %v (ok=%v)", rate, ok)
	}
}

func TestDecorateSetsRateAndUrgency(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	req := Request{
		Status:             RequestStatusActive,
		Deadline:           now.AddDate(0, 0, 2),
		TotalProviders:     3,
		CompletedProviders: 2,
	}
	decorate(&req, now)

	if req.CompletionRate == nil || math.Abs(*req.CompletionRate-2.0/3.0) > 1e-9 {
		t.Fatalf("expected completion rate 2/3, got %v", req.CompletionRate)
	}
	if req.Urgency != urgency.StatusDueSoon {
		t.Fatalf("expected due_soon with 3-day window, got %s", req.Urgency)
	}
	if req.DaysRemaining != 2 {
		t.Fatalf("expected 2 days remaining, got %d", req.DaysRemaining)
	}
}

func TestDecorateEmptyRequest(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	req := Request{Status: RequestStatusActive, Deadline: now.AddDate(0, 0, -1)}
	decorate(&req, now)

	if req.CompletionRate != nil {
		t.Fatalf("expected undefined completion rate, got %v", *req.CompletionRate)
	}
	if req.Urgency != urgency.StatusOverdue {
		t.Fatalf("expected overdue, got %s", req.Urgency)
	}
}

func TestDecorateCancelledRequest(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	req := Request{Status: RequestStatusCancelled, Deadline: now.AddDate(0, 0, -10)}
	decorate(&req, now)
	if req.Urgency != urgency.StatusOnTrack {
		t.Fatalf("cancelled request must stay on_track, got %s", req.Urgency)
	}
}
