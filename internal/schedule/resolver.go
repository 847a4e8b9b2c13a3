package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"orderfront/internal/domain"
)

const dateLayout = "2006-01-02"

// ISOWeekday translates Go's native week numbering (Sunday=0) to the
// 1=Monday..7=Sunday convention TimeWindow uses. Every weekday comparison
// in this package goes through it.
func ISOWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

// DateKey renders the calendar date used to match closures.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// AvailableDates returns the bookable calendar dates for the method within
// the rolling horizon starting at from: dates whose weekday has at least
// one enabled window and which are not exceptionally closed. The result is
// recomputed fresh on every call.
func AvailableDates(method domain.MethodType, windows []domain.TimeWindow, closures []domain.Closure, from time.Time, horizonDays int) []time.Time {
	weekdays := make(map[int]bool)
	for _, w := range windows {
		if w.Enabled && w.Method == method {
			weekdays[w.Weekday] = true
		}
	}
	closed := make(map[string]bool, len(closures))
	for _, c := range closures {
		closed[DateKey(c.Date)] = true
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	var dates []time.Time
	for i := 0; i < horizonDays; i++ {
		day := start.AddDate(0, 0, i)
		if !weekdays[ISOWeekday(day)] {
			continue
		}
		if closed[DateKey(day)] {
			continue
		}
		dates = append(dates, day)
	}
	return dates
}

// Slot is one discrete bookable time point on a date.
type Slot struct {
	Time        string `json:"time"`
	FullyBooked bool   `json:"fullyBooked"`
}

// SlotsForDate expands the method's enabled windows matching the date's
// weekday into discrete times at the window's interval. bookedCounts maps
// "HH:MM" to the number of orders already taken for that slot; a slot is
// fully booked when the window caps orders and the count has reached the
// cap. Malformed windows (bad times, start after end, non-positive
// interval) contribute nothing rather than failing.
func SlotsForDate(method domain.MethodType, windows []domain.TimeWindow, date time.Time, bookedCounts map[string]int) []Slot {
	weekday := ISOWeekday(date)
	var slots []Slot
	for _, w := range windows {
		if !w.Enabled || w.Method != method || w.Weekday != weekday {
			continue
		}
		start, err := parseMinutes(w.Start)
		if err != nil {
			continue
		}
		end, err := parseMinutes(w.End)
		if err != nil || end < start || w.IntervalMinutes <= 0 {
			continue
		}
		for m := start; m <= end; m += w.IntervalMinutes {
			at := fmt.Sprintf("%02d:%02d", m/60, m%60)
			full := false
			if w.MaxOrders != nil && bookedCounts[at] >= *w.MaxOrders {
				full = true
			}
			slots = append(slots, Slot{Time: at, FullyBooked: full})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	return slots
}

func parseMinutes(v string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", v)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", v)
	}
	return hour*60 + minute, nil
}
