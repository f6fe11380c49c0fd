// Package aggregate groups timestamped amounts into calendar buckets.
// Every sales view is one Aggregate call with a different period and bucketing.
package aggregate

import (
	"time"
)

// Bucket is the count and sum of the records that fell into one slot
type Bucket struct {
	Key   int    `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
	Sum   int64  `json:"sum"`
}

// Result is an aggregation over [Start, End)
type Result struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Bucketer string    `json:"bucketing"`
	Count    int64     `json:"count"`
	Sum      int64     `json:"sum"`
	Buckets  []Bucket  `json:"buckets"`
}

// IsEmpty reports whether no record contributed to the result
func (r Result) IsEmpty() bool {
	return r.Count == 0
}

// Aggregate counts and sums records into the buckets of b.
// Records outside [start, end) are skipped. Timestamps are bucketed in start's location.
func Aggregate[T any](records []T, start, end time.Time, b Bucketer, at func(T) time.Time, amount func(T) int64) Result {
	res := newResult(start, end, b)
	loc := start.Location()

	for _, rec := range records {
		t := at(rec)
		if t.Before(start) || !t.Before(end) {
			continue
		}
		k := b.Key(t.In(loc))
		if k < 0 || k >= len(res.Buckets) {
			continue
		}
		v := amount(rec)
		res.Buckets[k].Count++
		res.Buckets[k].Sum += v
		res.Count++
		res.Sum += v
	}

	return res
}

func newResult(start, end time.Time, b Bucketer) Result {
	n := b.Size(start)
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i] = Bucket{Key: i, Label: b.Label(i)}
	}
	return Result{
		Start:    start,
		End:      end,
		Bucketer: b.Name,
		Buckets:  buckets,
	}
}
