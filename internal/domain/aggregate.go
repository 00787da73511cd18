package domain

import "sort"

// YearCount is one timeline bucket.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CategoryBucket is one category chart bucket.
type CategoryBucket struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// CountByYear groups records by year. Only years that occur in hs are
// returned, sorted ascending; there are no zero buckets.
func CountByYear(hs []Hurricane) []YearCount {
	counts := make(map[int]int)
	for i := range hs {
		counts[hs[i].Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MaxDenseYears caps the number of buckets CountByYearDense will build.
const MaxDenseYears = 10000

// CountByYearDense returns one bucket for every year in r, including zero
// counts. An inverted range, or one wider than MaxDenseYears, yields no
// buckets; callers narrow r to the dataset's years first.
func CountByYearDense(hs []Hurricane, r YearRange) []YearCount {
	if r.End < r.Start {
		return []YearCount{}
	}
	// Unsigned subtraction is exact for End >= Start, even across the int range.
	if span := uint(r.End) - uint(r.Start); span >= MaxDenseYears {
		return []YearCount{}
	}
	out := make([]YearCount, r.End-r.Start+1)
	for i := range out {
		out[i].Year = r.Start + i
	}
	for i := range hs {
		if r.Contains(hs[i].Year) {
			out[hs[i].Year-r.Start].Count++
		}
	}
	return out
}

// CountByCategory always returns exactly seven buckets in severity order.
func CountByCategory(hs []Hurricane) []CategoryBucket {
	out := make([]CategoryBucket, CategoryCount)
	for i, c := range Categories() {
		out[i].Category = c
	}
	for i := range hs {
		if c := hs[i].Category; c.Valid() {
			out[c].Count++
		}
	}
	return out
}

// SampleTracks thins hs to at most limit records by positional stride: when
// len(hs) > limit every ceil(N/limit)-th record is kept, starting at index 0.
// limit <= 0 disables sampling.
func SampleTracks(hs []Hurricane, limit int) []Hurricane {
	n := len(hs)
	if limit <= 0 || n <= limit {
		return hs
	}
	stride := (n + limit - 1) / limit
	out := make([]Hurricane, 0, (n+stride-1)/stride)
	for i := 0; i < n; i += stride {
		out = append(out, hs[i])
	}
	return out
}
