package availability

import (
	"sort"
	"time"
)

// workInterval is a plain (start, end) pair used internally by the break
// checker; room is irrelevant once the caller has already filtered to
// interview-only intervals.
type workInterval struct {
	Start time.Time
	End   time.Time
}

// BreaksSatisfied implements C3: given an interviewer's recorded
// interview-only intervals plus a candidate interval, decides whether the
// augmented set respects "no stretch of interviews separated by gaps
// smaller than breakLength cumulatively exceeds maxContinuousWork" (spec
// §4.3).
func BreaksSatisfied(recorded []InterviewerInterval, candidateStart, candidateEnd time.Time, maxContinuousWork, breakLength time.Duration) bool {
	lower := candidateStart.Add(-maxContinuousWork)
	upper := candidateEnd.Add(maxContinuousWork)

	var work []workInterval
	for _, r := range recorded {
		if !r.HasRoom() {
			continue
		}
		if r.End.After(lower) && r.Begin.Before(upper) {
			work = append(work, workInterval{Start: r.Begin, End: r.End})
		}
	}
	work = append(work, workInterval{Start: candidateStart, End: candidateEnd})

	sort.Slice(work, func(i, j int) bool { return work[i].Start.Before(work[j].Start) })

	return sufficientBreaksExist(work, maxContinuousWork, breakLength)
}

// sufficientBreaksExist walks a start-sorted list of work intervals and
// rejects the set if any contiguous stretch (intervals separated by less
// than breakLength) exceeds maxContinuousWork. prevEnd starts at the zero
// time, which is always before any real work interval, so the first
// interval always begins a fresh stretch.
func sufficientBreaksExist(sorted []workInterval, maxContinuousWork, breakLength time.Duration) bool {
	var prevEnd time.Time
	var stretch time.Duration

	for _, w := range sorted {
		if w.Start.Before(prevEnd.Add(breakLength)) {
			stretch += w.End.Sub(prevEnd)
		} else {
			stretch = w.End.Sub(w.Start)
		}
		if stretch > maxContinuousWork {
			return false
		}
		prevEnd = w.End
	}
	return true
}
