package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellagenda/salon-scheduler/internal/models"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", Interval{600, 630}, Interval{600, 630}, true},
		{"contained", Interval{600, 660}, Interval{615, 630}, true},
		{"partial left", Interval{600, 640}, Interval{630, 700}, true},
		{"partial right", Interval{630, 700}, Interval{600, 640}, true},
		{"touching end-to-start", Interval{600, 630}, Interval{630, 660}, false},
		{"touching start-to-end", Interval{630, 660}, Interval{600, 630}, false},
		{"disjoint", Interval{540, 570}, Interval{600, 630}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// The predicate is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	min, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	for _, bad := range []string{"9h30", "25:00", "12:60", "-1:00", "12", "ab:cd", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "18:30", FormatClock(1110))
	assert.Equal(t, "00:05", FormatClock(5))
}

func TestWeekday(t *testing.T) {
	// 2026-08-30 is a Sunday.
	dow, err := Weekday("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, dow)

	dow, err = Weekday("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 1, dow)

	_, err = Weekday("31/08/2026")
	assert.Error(t, err)
}

func TestBusyIntervals(t *testing.T) {
	aps := []models.Appointment{
		{ScheduledTime: "10:00", DurationMin: 40, Status: "scheduled"},
		{ScheduledTime: "11:00", DurationMin: 30, Status: "in_progress"},
		{ScheduledTime: "12:00", DurationMin: 30, Status: "cancelled"},
		{ScheduledTime: "13:00", DurationMin: 30, Status: "completed"},
		{ScheduledTime: "14:00", DurationMin: 30, Status: "no_show"},
		{ScheduledTime: "garbage", DurationMin: 30, Status: "scheduled"},
	}

	busy := BusyIntervals(aps)
	require.Len(t, busy, 2)
	assert.Equal(t, Interval{600, 640}, busy[0])
	assert.Equal(t, Interval{660, 690}, busy[1])
}

func TestConflictsWith(t *testing.T) {
	busy := []Interval{{600, 640}}

	assert.True(t, ConflictsWith(Interval{630, 660}, busy))
	assert.False(t, ConflictsWith(Interval{640, 670}, busy))
	assert.False(t, ConflictsWith(Interval{540, 600}, busy))
	assert.False(t, ConflictsWith(Interval{700, 730}, nil))
}
