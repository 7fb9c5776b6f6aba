// Package schedule models weekly working hours: per weekday an enabled flag
// and a list of HH:MM blocks on a 30-minute grid.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Granularity is the grid every block boundary must sit on.
const Granularity = 30 * time.Minute

type Block struct {
	Start string `json:"start" binding:"hhmm"`
	End   string `json:"end" binding:"hhmm"`
}

type Day struct {
	Enabled bool    `json:"enabled"`
	Blocks  []Block `json:"blocks" binding:"dive"`
}

// Weekly is indexed by time.Weekday (Sunday = 0).
type Weekly [7]Day

// Default is Monday to Friday, 09:00-18:00.
func Default() Weekly {
	var w Weekly
	for d := time.Monday; d <= time.Friday; d++ {
		w[d] = Day{Enabled: true, Blocks: []Block{{Start: "09:00", End: "18:00"}}}
	}
	for _, d := range []time.Weekday{time.Sunday, time.Saturday} {
		w[d] = Day{Enabled: false, Blocks: []Block{}}
	}
	return w
}

// ParseClock converts "HH:MM" into minutes after midnight. "24:00" is
// accepted as the end of the day.
func ParseClock(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if hm[i] < '0' || hm[i] > '9' {
			return 0, fmt.Errorf("invalid clock %q", hm)
		}
	}
	h := int(hm[0]-'0')*10 + int(hm[1]-'0')
	m := int(hm[3]-'0')*10 + int(hm[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return h*60 + m, nil
}

// Validate checks clock format, grid alignment, ordering and overlap.
func (w Weekly) Validate() error {
	for wd, day := range w {
		type span struct{ start, end int }
		spans := make([]span, 0, len(day.Blocks))
		for _, b := range day.Blocks {
			start, err := ParseClock(b.Start)
			if err != nil {
				return err
			}
			end, err := ParseClock(b.End)
			if err != nil {
				return err
			}
			grid := int(Granularity / time.Minute)
			if start%grid != 0 || end%grid != 0 {
				return fmt.Errorf("%s: block %s-%s is not on a %d-minute grid", time.Weekday(wd), b.Start, b.End, grid)
			}
			if end <= start {
				return fmt.Errorf("%s: block %s-%s ends before it starts", time.Weekday(wd), b.Start, b.End)
			}
			spans = append(spans, span{start, end})
		}
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return fmt.Errorf("%s: overlapping blocks", time.Weekday(wd))
			}
		}
	}
	return nil
}

// Intervals returns the concrete working intervals of the calendar day that
// contains day (interpreted in loc).
func (w Weekly) Intervals(day time.Time, loc *time.Location) []Interval {
	day = day.In(loc)
	d := w[day.Weekday()]
	if !d.Enabled {
		return nil
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	out := make([]Interval, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		start, err1 := ParseClock(b.Start)
		end, err2 := ParseClock(b.End)
		if err1 != nil || err2 != nil || end <= start {
			continue
		}
		out = append(out, Interval{
			Start: midnight.Add(time.Duration(start) * time.Minute),
			End:   midnight.Add(time.Duration(end) * time.Minute),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Contains reports whether [start, end) fits entirely inside one working block.
func (w Weekly) Contains(start, end time.Time, loc *time.Location) bool {
	for _, iv := range w.Intervals(start, loc) {
		if !start.Before(iv.Start) && !end.After(iv.End) {
			return true
		}
	}
	return false
}
