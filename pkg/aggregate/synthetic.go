package aggregate

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Synthetic returns placeholder figures for [start, end) shaped like a live result.
// The same range and bucketing always produce the same numbers.
func Synthetic(start, end time.Time, b Bucketer) Result {
	res := newResult(start, end, b)

	h := fnv.New64a()
	h.Write([]byte(b.Name))
	rng := rand.New(rand.NewPCG(uint64(start.Unix()), h.Sum64()))

	for i := range res.Buckets {
		count := int64(rng.IntN(20) + 1)
		sum := count * int64(500+rng.IntN(2500))
		res.Buckets[i].Count = count
		res.Buckets[i].Sum = sum
		res.Count += count
		res.Sum += sum
	}
	return res
}
