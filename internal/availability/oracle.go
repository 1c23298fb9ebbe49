package availability

import (
	"time"

	"github.com/bjornarhem/bips/internal/domain"
	"github.com/bjornarhem/bips/internal/timeutil"
)

// Oracle composes the busy index and break checker into the two
// availability predicates the rest of the engine consults (spec §4.4).
type Oracle struct {
	index             *Index
	travelTime        time.Duration
	maxContinuousWork time.Duration
	breakLength       time.Duration
}

// NewOracle builds an oracle over the given index and tunables.
func NewOracle(index *Index, travelTime, maxContinuousWork, breakLength time.Duration) *Oracle {
	return &Oracle{
		index:             index,
		travelTime:        travelTime,
		maxContinuousWork: maxContinuousWork,
		breakLength:       breakLength,
	}
}

// ApplicantAvailable reports whether the applicant has no declared busy
// interval overlapping the given slot.
func (o *Oracle) ApplicantAvailable(id domain.ApplicantID, start, end time.Time) bool {
	for _, busy := range o.index.ApplicantBusyTimes(id) {
		if busy.Begin.Before(end) && busy.End.After(start) {
			return false
		}
	}
	return true
}

// InterviewerAvailable reports whether the interviewer is free for the
// given slot: no conflicting busy interval (room-aware, travel-inflated for
// different known rooms), and the break rule holds once the candidate
// interval is folded in.
func (o *Oracle) InterviewerAvailable(id domain.InterviewerID, slotRoom domain.RoomID, start, end time.Time) bool {
	busy := o.index.InterviewerBusyTimes(id)
	for _, b := range busy {
		if b.Room == nil || *b.Room == slotRoom {
			if timeutil.Overlaps(start, end, b.Begin, b.End) {
				return false
			}
			continue
		}
		// Different known room: inflate by travel time on each side.
		if timeutil.OverlapsWithTravel(start, end, b.Begin, b.End, o.travelTime) {
			return false
		}
	}
	return BreaksSatisfied(busy, start, end, o.maxContinuousWork, o.breakLength)
}
