package appointment

// SlotStepMinutes is the fixed candidate step: a new slot may start every
// half hour regardless of service duration.
const SlotStepMinutes = 30

// DefaultServiceDuration applies when availability is requested without a
// service.
const DefaultServiceDuration = 30

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// BuildSlots generates the bookable slots between dayStart and dayEnd
// (minutes since midnight). Candidates advance in SlotStepMinutes steps and
// the last one must fit entirely before dayEnd. Taken candidates are kept in
// the output with Available=false so callers can render them.
func BuildSlots(dayStart, dayEnd, durationMin int, busy []Interval) []Slot {
	slots := []Slot{}
	for cur := dayStart; cur+durationMin <= dayEnd; cur += SlotStepMinutes {
		candidate := Interval{Start: cur, End: cur + durationMin}
		slots = append(slots, Slot{
			Time:      FormatClock(cur),
			Available: !ConflictsWith(candidate, busy),
		})
	}
	return slots
}
