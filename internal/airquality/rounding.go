package airquality

import (
	"math"
	"sort"
)

// PercentCorrection turns category counts into integer percentages summing to 100.
// Counts are aligned to table order; a zero total yields all zeros.
type PercentCorrection func(counts []int) []int

// CorrectToLargest rounds every share half-up and then adds the signed
// remainder to the category with the largest raw share (first wins ties).
// The rose uses it per sector.
func CorrectToLargest(counts []int) []int {
	out := make([]int, len(counts))
	total := sumInts(counts)
	if total == 0 {
		return out
	}
	sum := 0
	maxIdx := 0
	maxRaw := math.Inf(-1)
	for i, c := range counts {
		raw := float64(c) / float64(total) * 100
		out[i] = int(math.Floor(raw + 0.5))
		sum += out[i]
		if raw > maxRaw {
			maxRaw = raw
			maxIdx = i
		}
	}
	if sum != 100 {
		out[maxIdx] += 100 - sum
	}
	return out
}

// DistributeByRank floors every share and hands out the missing points one at
// a time, largest count first (table order on ties). The legend uses it.
func DistributeByRank(counts []int) []int {
	out := make([]int, len(counts))
	total := sumInts(counts)
	if total == 0 {
		return out
	}
	sum := 0
	for i, c := range counts {
		out[i] = int(math.Floor(float64(c) / float64(total) * 100))
		sum += out[i]
	}
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	for rem := 100 - sum; rem > 0; {
		for _, idx := range order {
			if rem == 0 {
				break
			}
			out[idx]++
			rem--
		}
	}
	return out
}

func sumInts(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
