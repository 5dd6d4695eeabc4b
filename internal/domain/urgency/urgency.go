// Package urgency classifies deadline-bearing records as on-track, due-soon
// or overdue. Every entity shares this policy; only the look-ahead window
// differs (reviews and 360 requests use 3 days, goals, cycles and
// improvement plans use 7).
package urgency

import "time"

const (
	StatusOnTrack = "on_track"
	StatusDueSoon = "due_soon"
	StatusOverdue = "overdue"
)

const (
	WindowReview = 3
	WindowGoal   = 7
)

// DaysRemaining returns the signed whole-day distance from now to the
// deadline. Negative means overdue by that many days. Both instants are
// truncated to calendar dates so time-of-day never shifts the count.
func DaysRemaining(deadline, now time.Time) int {
	d := dateOf(deadline)
	n := dateOf(now)
	return int(d.Sub(n).Hours() / 24)
}

// Classify derives the urgency status. Terminal records (completed,
// cancelled, reviewed and so on) are always on track regardless of the
// deadline. The result must be recomputed on every read; "now" moves
// independently of any write to the record.
func Classify(deadline, now time.Time, terminal bool, windowDays int) string {
	if terminal {
		return StatusOnTrack
	}
	remaining := DaysRemaining(deadline, now)
	if remaining < 0 {
		return StatusOverdue
	}
	if remaining <= windowDays {
		return StatusDueSoon
	}
	return StatusOnTrack
}

// dateOf truncates to a UTC calendar date. Deadlines come out of DATE
// columns as UTC midnight, so "now" must be read on the UTC calendar too or
// the count shifts by one near local midnight.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
