// Package availability implements the busy index (C2), the break checker
// (C3), and the availability oracle (C4) that compose them.
package availability

import (
	"sort"
	"time"

	"github.com/bjornarhem/bips/internal/domain"
)

// Interval is a plain (begin, end) pair, used for applicant busy times.
type Interval struct {
	Begin time.Time
	End   time.Time
}

// InterviewerInterval additionally carries a room: nil means opaque
// unavailability (a declared busy time with no room), non-nil means a prior
// interview occupying that room.
type InterviewerInterval struct {
	Begin time.Time
	End   time.Time
	Room  *domain.RoomID
}

// HasRoom reports whether this interval is room-bound (i.e. a prior
// interview, not an opaque busy declaration).
func (iv InterviewerInterval) HasRoom() bool {
	return iv.Room != nil
}

// Index holds the two keyed busy maps described in spec §4.2: applicant id
// to a set of busy intervals, interviewer id to a set of (interval,
// room-or-none) triples. It is mutated only through Add/Remove, mirroring
// the discipline the engine itself must honour.
type Index struct {
	applicantBusy   map[domain.ApplicantID][]Interval
	interviewerBusy map[domain.InterviewerID][]InterviewerInterval
}

// NewIndex builds an empty index. Engine construction populates it from a
// snapshot via AddApplicantBusy/AddInterviewerBusy before any scheduling.
func NewIndex() *Index {
	return &Index{
		applicantBusy:   make(map[domain.ApplicantID][]Interval),
		interviewerBusy: make(map[domain.InterviewerID][]InterviewerInterval),
	}
}

// AddApplicantBusy records a declared busy interval for an applicant.
func (idx *Index) AddApplicantBusy(id domain.ApplicantID, begin, end time.Time) {
	idx.applicantBusy[id] = append(idx.applicantBusy[id], Interval{Begin: begin, End: end})
}

// AddInterviewerBusy records a busy interval for an interviewer, with an
// optional room.
func (idx *Index) AddInterviewerBusy(id domain.InterviewerID, begin, end time.Time, room *domain.RoomID) {
	idx.interviewerBusy[id] = append(idx.interviewerBusy[id], InterviewerInterval{Begin: begin, End: end, Room: room})
}

// RemoveInterviewerBusy removes the first interval exactly matching the
// given bounds and room, mirroring the original's set.remove semantics.
// It panics if no matching entry exists: per spec §4.2, both mutations are
// total under the engine's own discipline and fail loudly on programmer
// error.
func (idx *Index) RemoveInterviewerBusy(id domain.InterviewerID, begin, end time.Time, room *domain.RoomID) {
	entries := idx.interviewerBusy[id]
	for i, e := range entries {
		if e.Begin.Equal(begin) && e.End.Equal(end) && sameRoom(e.Room, room) {
			idx.interviewerBusy[id] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
	panic("availability: no matching interviewer busy interval to remove")
}

// ApplicantBusyTimes returns the busy intervals recorded for an applicant.
func (idx *Index) ApplicantBusyTimes(id domain.ApplicantID) []Interval {
	return idx.applicantBusy[id]
}

// InterviewerBusyTimes returns the busy intervals recorded for an
// interviewer.
func (idx *Index) InterviewerBusyTimes(id domain.InterviewerID) []InterviewerInterval {
	return idx.interviewerBusy[id]
}

// InterviewOnlyIntervals returns the subset of an interviewer's busy times
// that carry a concrete room, i.e. represent actual interviews rather than
// opaque manual busy declarations, sorted ascending by start. This is the
// "room is not None" filter the original's sufficient_breaks_exist applies.
func (idx *Index) InterviewOnlyIntervals(id domain.InterviewerID) []InterviewerInterval {
	var out []InterviewerInterval
	for _, e := range idx.interviewerBusy[id] {
		if e.HasRoom() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Begin.Before(out[j].Begin) })
	return out
}

func sameRoom(a, b *domain.RoomID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
