package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sale struct {
	at     time.Time
	amount int64
}

func saleAt(s sale) time.Time { return s.at }
func saleAmount(s sale) int64 { return s.amount }

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodDay, p)

	p, err = ParsePeriod(" Month ")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("decade")
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	loc := tokyo(t)
	date := time.Date(2024, time.March, 14, 15, 30, 0, 0, loc) // Thursday

	start, end := Range(PeriodDay, date, loc)
	assert.Equal(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, loc), end)

	start, end = Range(PeriodWeek, date, loc)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 17, 0, 0, 0, 0, loc), end)

	start, end = Range(PeriodMonth, date, loc)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, loc), end)

	start, end = Range(PeriodYear, date, loc)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), end)
}

func TestRange_UsesLocationNotUTC(t *testing.T) {
	loc := tokyo(t)
	// 2024-03-14 20:00 UTC is already the 15th in Tokyo
	date := time.Date(2024, time.March, 14, 20, 0, 0, 0, time.UTC)

	start, _ := Range(PeriodDay, date, loc)
	assert.Equal(t, 15, start.Day())
}

func TestBucketSizes(t *testing.T) {
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, HourOfDay.Size(feb))
	assert.Equal(t, 7, DayOfWeek.Size(feb))
	assert.Equal(t, 29, DayOfMonth.Size(feb))
	assert.Equal(t, 12, MonthOfYear.Size(feb))

	assert.Equal(t, "Sun", DayOfWeek.Label(0))
	assert.Equal(t, "Dec", MonthOfYear.Label(11))
	assert.Equal(t, "09:00", HourOfDay.Label(9))
}

func TestAggregate_HourOfDay(t *testing.T) {
	loc := tokyo(t)
	start, end := Range(PeriodDay, time.Date(2024, time.May, 1, 0, 0, 0, 0, loc), loc)

	records := []sale{
		{at: time.Date(2024, time.May, 1, 9, 15, 0, 0, loc), amount: 800},
		{at: time.Date(2024, time.May, 1, 9, 45, 0, 0, loc), amount: 1200},
		{at: time.Date(2024, time.May, 1, 18, 0, 0, 0, loc), amount: 500},
		{at: end, amount: 9999},                     // exclusive end
		{at: start.Add(-time.Second), amount: 9999}, // before start
	}

	res := Aggregate(records, start, end, HourOfDay, saleAt, saleAmount)

	assert.Equal(t, int64(3), res.Count)
	assert.Equal(t, int64(2500), res.Sum)
	require.Len(t, res.Buckets, 24)
	assert.Equal(t, int64(2), res.Buckets[9].Count)
	assert.Equal(t, int64(2000), res.Buckets[9].Sum)
	assert.Equal(t, int64(500), res.Buckets[18].Sum)
	assert.False(t, res.IsEmpty())
}

func TestAggregate_StartIsInclusive(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	res := Aggregate([]sale{{at: start, amount: 100}}, start, end, MonthOfYear, saleAt, saleAmount)
	assert.Equal(t, int64(1), res.Buckets[0].Count)
}

func TestAggregate_BucketsInRangeLocation(t *testing.T) {
	loc := tokyo(t)
	start, end := Range(PeriodYear, time.Date(2024, time.June, 1, 0, 0, 0, 0, loc), loc)

	// 2024-01-31 16:00 UTC is February 1st in Tokyo
	res := Aggregate([]sale{{at: time.Date(2024, time.January, 31, 16, 0, 0, 0, time.UTC), amount: 300}},
		start, end, MonthOfYear, saleAt, saleAmount)

	assert.Equal(t, int64(0), res.Buckets[0].Count)
	assert.Equal(t, int64(1), res.Buckets[1].Count)
}

func TestAggregate_Empty(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	res := Aggregate[sale](nil, start, start.AddDate(0, 0, 7), DayOfWeek, saleAt, saleAmount)

	assert.True(t, res.IsEmpty())
	assert.Len(t, res.Buckets, 7)
}

func TestSynthetic_Deterministic(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	a := Synthetic(start, end, MonthOfYear)
	b := Synthetic(start, end, MonthOfYear)

	assert.Equal(t, a, b)
	assert.Len(t, a.Buckets, 12)
	assert.False(t, a.IsEmpty())

	var sum int64
	for _, bucket := range a.Buckets {
		sum += bucket.Sum
	}
	assert.Equal(t, a.Sum, sum)
}
