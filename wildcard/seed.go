package wildcard

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// NormalizeSeed 负数取绝对值，再保证不小于 minValue
func NormalizeSeed(seed int64, minValue uint64) uint64 {
	var s uint64
	if seed < 0 {
		if seed == math.MinInt64 {
			s = uint64(math.MaxInt64) + 1
		} else {
			s = uint64(-seed)
		}
	} else {
		s = uint64(seed)
	}
	return max(s, minValue)
}

// RandomSeed 没有给种子时使用，结果不小于 1
func RandomSeed() uint64 {
	r := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	return r.Uint64()>>1 + 1
}
