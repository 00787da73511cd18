// Package domain models the Atlantic hurricane dataset and the cross-filter
// rules shared by the dashboard charts.
//
// # Data Source
//
// Records come from the NOAA Atlantic hurricane database (HURDAT), reduced by
// the prepare command to one record per storm: name, season year, peak wind
// and the ordered list of observed positions. Only storms from 1950 onward are
// kept by default.
//
// # Categories
//
// Storm intensity uses the Saffir-Simpson scale on peak sustained wind in knots:
//
//	TD   tropical depression   < 34 kt
//	TS   tropical storm        < 64 kt
//	Cat1                       < 83 kt
//	Cat2                       < 96 kt
//	Cat3                       < 113 kt
//	Cat4                       < 137 kt
//	Cat5                       >= 137 kt
//
// [Category] values are ordered by severity, so "major hurricane" is simply
// Cat3 and above (see [Category.IsMajor]).
//
// # Cross-filter
//
// A [FilterState] holds an inclusive [YearRange], a [CategorySet] and a
// [Metric]. Charts never cache filtered slices; each render derives its working
// set from the full record list:
//
//	map       years AND categories, then stride-sampled by [SampleTracks]
//	timeline  categories (brush mode) or years AND categories (slider mode), then metric
//	category  years only, always seven buckets
package domain
