// Package timeutil implements the half-open interval overlap predicates the
// rest of the engine builds on (spec §4.1): plain overlap, and overlap
// inflated by a travel buffer for cross-room comparisons.
package timeutil

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsWithTravel reports whether [aStart, aEnd) overlaps [bStart, bEnd)
// once b is inflated by travel on each side. Used when comparing two
// occupied spaces in different, known rooms.
func OverlapsWithTravel(aStart, aEnd, bStart, bEnd time.Time, travel time.Duration) bool {
	return aStart.Before(bEnd.Add(travel)) && bStart.Add(-travel).Before(aEnd)
}
