package schedule

import "time"

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Slots enumerates free starts of length d inside the working blocks of day,
// stepping on the schedule grid and skipping anything overlapping busy.
func Slots(w Weekly, busy []Interval, day time.Time, d time.Duration, loc *time.Location) []Interval {
	if d <= 0 {
		return nil
	}
	var out []Interval
	for _, block := range w.Intervals(day, loc) {
		for cur := block.Start; !cur.Add(d).After(block.End); cur = cur.Add(Granularity) {
			slot := Interval{Start: cur, End: cur.Add(d)}
			free := true
			for _, b := range busy {
				if slot.Overlaps(b) {
					free = false
					break
				}
			}
			if free {
				out = append(out, slot)
			}
		}
	}
	return out
}
