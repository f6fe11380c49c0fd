package aggregate

import (
	"fmt"
	"time"
)

// Bucketer maps a timestamp to a bucket index within a range.
type Bucketer struct {
	Name string
	// size returns the number of buckets for a range starting at start
	size  func(start time.Time) int
	key   func(t time.Time) int
	label func(i int) string
}

// Size returns the number of buckets for a range starting at start
func (b Bucketer) Size(start time.Time) int {
	return b.size(start)
}

// Key returns the bucket index of t
func (b Bucketer) Key(t time.Time) int {
	return b.key(t)
}

// Label returns the display label of bucket i
func (b Bucketer) Label(i int) string {
	return b.label(i)
}

var (
	HourOfDay = Bucketer{
		Name:  "hour_of_day",
		size:  func(time.Time) int { return 24 },
		key:   func(t time.Time) int { return t.Hour() },
		label: func(i int) string { return fmt.Sprintf("%02d:00", i) },
	}

	DayOfWeek = Bucketer{
		Name:  "day_of_week",
		size:  func(time.Time) int { return 7 },
		key:   func(t time.Time) int { return int(t.Weekday()) },
		label: func(i int) string { return time.Weekday(i).String()[:3] },
	}

	DayOfMonth = Bucketer{
		Name: "day_of_month",
		size: func(start time.Time) int {
			return time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, start.Location()).Day()
		},
		key:   func(t time.Time) int { return t.Day() - 1 },
		label: func(i int) string { return fmt.Sprintf("%d", i+1) },
	}

	MonthOfYear = Bucketer{
		Name:  "month_of_year",
		size:  func(time.Time) int { return 12 },
		key:   func(t time.Time) int { return int(t.Month()) - 1 },
		label: func(i int) string { return time.Month(i + 1).String()[:3] },
	}
)

// ForPeriod returns the bucketing used to break a period down
func ForPeriod(p Period) Bucketer {
	switch p {
	case PeriodWeek:
		return DayOfWeek
	case PeriodMonth:
		return DayOfMonth
	case PeriodYear:
		return MonthOfYear
	default:
		return HourOfDay
	}
}
