package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownMetric is returned for a metric name other than "total" or "major".
var ErrUnknownMetric = errors.New("unknown metric")

// YearRange is an inclusive [Start, End] interval of years. Start <= End is
// not enforced; an inverted range simply matches nothing.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether year lies inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Intersect returns the years common to r and o. ok is false when they share none.
func (r YearRange) Intersect(o YearRange) (YearRange, bool) {
	out := YearRange{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	return out, out.Start <= out.End
}

// CategorySet is a membership set over the seven categories.
type CategorySet struct {
	members [CategoryCount]bool
}

// AllCategories returns a set containing every category.
func AllCategories() CategorySet {
	var s CategorySet
	for i := range s.members {
		s.members[i] = true
	}
	return s
}

// NewCategorySet returns a set containing exactly cs.
func NewCategorySet(cs ...Category) CategorySet {
	var s CategorySet
	for _, c := range cs {
		s.Set(c, true)
	}
	return s
}

// Has reports membership. Unknown categories are never members.
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s.members[c]
}

// Set adds or removes c. Unknown categories are ignored.
func (s *CategorySet) Set(c Category, on bool) {
	if !c.Valid() {
		return
	}
	s.members[c] = on
}

// Toggle flips membership of c and returns the new membership.
func (s *CategorySet) Toggle(c Category) bool {
	if !c.Valid() {
		return false
	}
	s.members[c] = !s.members[c]
	return s.members[c]
}

// Len returns the number of member categories.
func (s CategorySet) Len() int {
	n := 0
	for _, on := range s.members {
		if on {
			n++
		}
	}
	return n
}

// Members returns the member categories in severity order.
func (s CategorySet) Members() []Category {
	out := make([]Category, 0, CategoryCount)
	for i, on := range s.members {
		if on {
			out = append(out, Category(i))
		}
	}
	return out
}

// Labels returns the member labels in severity order.
func (s CategorySet) Labels() []string {
	members := s.Members()
	out := make([]string, len(members))
	for i, c := range members {
		out[i] = c.String()
	}
	return out
}

// Metric selects which records a timeline aggregates.
type Metric string

const (
	MetricTotal Metric = "total"
	MetricMajor Metric = "major"
)

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricTotal, MetricMajor:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// FilterState is the shared cross-filter selection read by every chart.
type FilterState struct {
	Years      YearRange
	Categories CategorySet
	Metric     Metric
}

// DefaultFilterState selects [start, end], every category and the total metric.
func DefaultFilterState(start, end int) FilterState {
	return FilterState{
		Years:      YearRange{Start: start, End: end},
		Categories: AllCategories(),
		Metric:     MetricTotal,
	}
}

// Reset restores the defaults in place.
func (f *FilterState) Reset(start, end int) {
	*f = DefaultFilterState(start, end)
}

// Matches reports whether h passes both the year and the category filter.
func (f FilterState) Matches(h Hurricane) bool {
	return f.Years.Contains(h.Year) && f.Categories.Has(h.Category)
}

// Apply returns the records matching both dimensions, in original order.
func (f FilterState) Apply(hs []Hurricane) []Hurricane {
	out := make([]Hurricane, 0, len(hs))
	for i := range hs {
		if f.Matches(hs[i]) {
			out = append(out, hs[i])
		}
	}
	return out
}

// Key returns a compact stable encoding of the year and category dimensions,
// e.g. "1950-2015|TD,TS,Cat1".
func (f FilterState) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(f.Years.Start))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(f.Years.End))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.Categories.Labels(), ","))
	return b.String()
}

// FilterByYears returns the records whose year lies in r.
func FilterByYears(hs []Hurricane, r YearRange) []Hurricane {
	out := make([]Hurricane, 0, len(hs))
	for i := range hs {
		if r.Contains(hs[i].Year) {
			out = append(out, hs[i])
		}
	}
	return out
}

// FilterByCategories returns the records whose category is in s.
func FilterByCategories(hs []Hurricane, s CategorySet) []Hurricane {
	out := make([]Hurricane, 0, len(hs))
	for i := range hs {
		if s.Has(hs[i].Category) {
			out = append(out, hs[i])
		}
	}
	return out
}

// FilterByMetric keeps every record for MetricTotal and only major
// hurricanes for MetricMajor.
func FilterByMetric(hs []Hurricane, m Metric) []Hurricane {
	if m != MetricMajor {
		return hs
	}
	out := make([]Hurricane, 0, len(hs))
	for i := range hs {
		if hs[i].Category.IsMajor() {
			out = append(out, hs[i])
		}
	}
	return out
}
