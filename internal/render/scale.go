package render

import "math"

// Margin is the space reserved around a chart's plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

var chartMargin = Margin{Top: 10, Right: 20, Bottom: 40, Left: 50}

// bandScale maps n ordinal positions onto [start, stop] with equal inner and
// outer padding expressed as a fraction of the step, centred in the range.
type bandScale struct {
	start     float64
	step      float64
	bandwidth float64
}

func newBandScale(n int, start, stop, padding float64) bandScale {
	if n <= 0 {
		return bandScale{start: start}
	}
	step := (stop - start) / math.Max(1, float64(n)-padding+padding*2)
	offset := (stop - start - step*(float64(n)-padding)) * 0.5
	return bandScale{
		start:     start + offset,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// x returns the left edge of band i.
func (b bandScale) x(i int) float64 {
	return b.start + b.step*float64(i)
}

// center returns the midpoint of band i.
func (b bandScale) center(i int) float64 {
	return b.x(i) + b.bandwidth/2
}

// linearScale maps [0, max] onto [bottom, top] in pixel space.
type linearScale struct {
	max    float64
	bottom float64
	top    float64
}

// newNiceLinearScale extends maxCount to a round tick value so the top tick lands
// on the domain edge. A zero maxCount becomes 1 to keep heights finite.
func newNiceLinearScale(maxCount int, bottom, top float64) linearScale {
	m := float64(maxCount)
	if m <= 0 {
		m = 1
	}
	step := tickStep(0, m, 10)
	m = math.Ceil(m/step) * step
	return linearScale{max: m, bottom: bottom, top: top}
}

func (l linearScale) y(v float64) float64 {
	return l.bottom - (v/l.max)*(l.bottom-l.top)
}

// ticks returns round values from 0 to max inclusive.
func (l linearScale) ticks(count int) []float64 {
	step := tickStep(0, l.max, count)
	var out []float64
	for v := 0.0; v <= l.max+step/2; v += step {
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

// tickStep picks a 1, 2, 5 or 10 multiple of a power of ten so that roughly
// count ticks span [lo, hi].
func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / math.Max(1, float64(count))
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	errRatio := raw / base
	switch {
	case errRatio >= math.Sqrt(50):
		base *= 10
	case errRatio >= math.Sqrt(10):
		base *= 5
	case errRatio >= math.Sqrt(2):
		base *= 2
	}
	if base < 1 {
		return 1
	}
	return base
}
