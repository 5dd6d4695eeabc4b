package urgency

import (
	"testing"
	"time"
)

var now = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestClassifyOverdue(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	if got := Classify(yesterday, now, false, WindowReview); got != StatusOverdue {
		t.Fatalf("expected overdue, got %s", got)
	}
}

func TestClassifyDueSoonWithinWindow(t *testing.T) {
	inTwoDays := now.AddDate(0, 0, 2)
	if got := Classify(inTwoDays, now, false, WindowReview); got != StatusDueSoon {
		t.Fatalf("expected due_soon, got %s", got)
	}
}

func TestClassifyOnTrackOutsideWindow(t *testing.T) {
	inTenDays := now.AddDate(0, 0, 10)
	if got := Classify(inTenDays, now, false, WindowReview); got != StatusOnTrack {
		t.Fatalf("expected on_track, got %s", got)
	}
}

func TestClassifyWindowVariesByEntity(t *testing.T) {
	inFiveDays := now.AddDate(0, 0, 5)
	if got := Classify(inFiveDays, now, false, WindowReview); got != StatusOnTrack {
		t.Fatalf("expected on_track with 3-day window, got %s", got)
	}
	if got := Classify(inFiveDays, now, false, WindowGoal); got != StatusDueSoon {
		t.Fatalf("expected due_soon with 7-day window, got %s", got)
	}
}

func TestClassifyTerminalIsAlwaysOnTrack(t *testing.T) {
	lastWeek := now.AddDate(0, 0, -7)
	if got := Classify(lastWeek, now, true, WindowGoal); got != StatusOnTrack {
		t.Fatalf("expected terminal record to be on_track, got %s", got)
	}
}

func TestDaysRemainingIsSigned(t *testing.T) {
	if got := DaysRemaining(now.AddDate(0, 0, -3), now); got != -3 {
		t.Fatalf("expected -3, got %d", got)
	}
	if got := DaysRemaining(now.AddDate(0, 0, 4), now); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := DaysRemaining(now, now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	lateTonight := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	if got := DaysRemaining(lateTonight, now); got != 0 {
		t.Fatalf("expected same-day deadline to count as 0, got %d", got)
	}
}

func TestDaysRemainingIgnoresServerZone(t *testing.T) {
	// 00:30 on March 16th in UTC+2 is still 22:30 on March 15th UTC. The
	// deadline is a date column, UTC midnight, so the count must use the
	// UTC calendar regardless of the zone "now" arrives in.
	localNow := time.Date(2024, 3, 16, 0, 30, 0, 0, time.FixedZone("EET", 2*3600))
	deadline := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	if got := DaysRemaining(deadline, localNow); got != 1 {
		t.Fatalf("expected 1 day remaining on the UTC calendar, got %d", got)
	}
	if got := Classify(deadline, localNow, false, WindowReview); got != StatusDueSoon {
		t.Fatalf("expected due_soon, got %s", got)
	}
}
