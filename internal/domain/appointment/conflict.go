package appointment

import "github.com/bellagenda/salon-scheduler/internal/models"

// Interval is a half-open [Start, End) range in minutes since midnight on
// one calendar date for one professional.
type Interval struct {
	Start int
	End   int
}

// Overlaps is the single conflict predicate used by slot generation and by
// create/reschedule validation: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && s2 < e1.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// IntervalOf builds the occupied interval of a booked appointment from its
// start clock and stamped duration.
func IntervalOf(scheduledTime string, durationMin int) (Interval, error) {
	start, err := ParseClock(scheduledTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: start + durationMin}, nil
}

// BusyIntervals maps non-terminal appointments to occupied intervals.
// Appointments whose stored clock does not parse are skipped rather than
// treated as obstacles.
func BusyIntervals(appointments []models.Appointment) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, ap := range appointments {
		if Status(ap.Status).Terminal() {
			continue
		}
		iv, err := IntervalOf(ap.ScheduledTime, ap.DurationMin)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}
	return busy
}

// ConflictsWith reports whether candidate overlaps any busy interval.
func ConflictsWith(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}
