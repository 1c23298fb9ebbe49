// Package validate implements C8, the post-run validator: re-deriving busy
// indices from independently-loaded snapshot state (never the engine's own
// incrementally mutated copy, per spec §9's "ambient query-orm access →
// explicit snapshot" note) and re-checking every invariant in spec §3/§4.8.
// Any violation is a hard failure identifying which invariant and entity
// failed, not a user-facing warning.
package validate

import (
	"fmt"
	"sort"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/bipserrors"
	"github.com/bjornarhem/bips/internal/domain"
	"github.com/bjornarhem/bips/internal/timeutil"
)

// Violation identifies a single invariant failure: which rule, and the
// entity ids involved, so the caller can render a precise diagnostic.
type Violation struct {
	Rule   string
	Detail string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
}

// Input bundles the independently-loaded state the validator re-derives
// indices from: the applicant-to-applied-jobs mapping (carrying each job's
// priority lists for the coverage/require_p1 checks) and declared busy
// intervals.
type Input struct {
	AppliedJobs     map[domain.ApplicantID][]domain.Job
	ApplicantBusy   map[domain.ApplicantID][]availability.Interval
	InterviewerBusy map[domain.InterviewerID][]availability.InterviewerInterval
}

// Tunables carries the duration constants the validator needs for the
// travel and break checks.
type Tunables struct {
	TravelTime        int64
	MaxContinuousWork int64
	BreakLength       int64
}

// Validate re-derives busy indices from in and checks every invariant of
// spec §3/§4.8 against the produced interview list. Returns the first
// violation found wrapped with bipserrors.CategoryInvariant, or nil if the
// assignment is fully valid.
func Validate(interviews []domain.Interview, in Input, tunables Tunables) error {
	if v := checkCardinality(interviews); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkJobCoverage(interviews, in.AppliedJobs); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkRequireP1(interviews, in.AppliedJobs); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkApplicantFreedom(interviews, in.ApplicantBusy); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkUniqueSlot(interviews); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkUniqueApplicant(interviews); v != nil {
		return bipserrors.WrapInvariant(v)
	}

	index := rebuildIndex(interviews, in.InterviewerBusy)
	if v := checkInterviewerFreedom(interviews, in.InterviewerBusy); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkInterviewerNonOverlap(index); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkTravel(index, tunables); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	if v := checkBreaks(index, tunables); v != nil {
		return bipserrors.WrapInvariant(v)
	}
	return nil
}

func checkCardinality(interviews []domain.Interview) *Violation {
	for _, iv := range interviews {
		n := len(iv.Interviewers)
		if n != 2 && n != 3 {
			return &Violation{Rule: "cardinality", Detail: fmt.Sprintf("applicant %d has %d interviewers", iv.Applicant, n)}
		}
		seen := map[domain.InterviewerID]bool{}
		for _, i := range iv.Interviewers {
			if seen[i] {
				return &Violation{Rule: "cardinality", Detail: fmt.Sprintf("applicant %d has duplicate interviewer %d", iv.Applicant, i)}
			}
			seen[i] = true
		}
	}
	return nil
}

func checkJobCoverage(interviews []domain.Interview, appliedJobs map[domain.ApplicantID][]domain.Job) *Violation {
	for _, iv := range interviews {
		assigned := toSet(iv.Interviewers)
		for _, job := range appliedJobs[iv.Applicant] {
			if !intersects(assigned, job.P1) && !intersects(assigned, job.P2) && !intersects(assigned, job.P3) {
				return &Violation{Rule: "job_coverage", Detail: fmt.Sprintf("applicant %d job %d has no eligible interviewer present", iv.Applicant, job.ID)}
			}
		}
	}
	return nil
}

func checkRequireP1(interviews []domain.Interview, appliedJobs map[domain.ApplicantID][]domain.Job) *Violation {
	for _, iv := range interviews {
		assigned := toSet(iv.Interviewers)
		for _, job := range appliedJobs[iv.Applicant] {
			if job.RequireP1 && !intersects(assigned, job.P1) {
				return &Violation{Rule: "require_p1", Detail: fmt.Sprintf("applicant %d job %d requires a P1 interviewer, none present", iv.Applicant, job.ID)}
			}
		}
	}
	return nil
}

func checkApplicantFreedom(interviews []domain.Interview, applicantBusy map[domain.ApplicantID][]availability.Interval) *Violation {
	for _, iv := range interviews {
		for _, busy := range applicantBusy[iv.Applicant] {
			if timeutil.Overlaps(iv.Slot.Start, iv.Slot.End, busy.Begin, busy.End) {
				return &Violation{Rule: "applicant_freedom", Detail: fmt.Sprintf("applicant %d overlaps a declared busy interval", iv.Applicant)}
			}
		}
	}
	return nil
}

func checkUniqueSlot(interviews []domain.Interview) *Violation {
	seen := map[domain.SlotID]bool{}
	for _, iv := range interviews {
		if seen[iv.Slot.ID] {
			return &Violation{Rule: "unique_slot", Detail: fmt.Sprintf("slot %d used twice", iv.Slot.ID)}
		}
		seen[iv.Slot.ID] = true
	}
	return nil
}

func checkUniqueApplicant(interviews []domain.Interview) *Violation {
	seen := map[domain.ApplicantID]bool{}
	for _, iv := range interviews {
		if seen[iv.Applicant] {
			return &Violation{Rule: "unique_applicant", Detail: fmt.Sprintf("applicant %d scheduled twice", iv.Applicant)}
		}
		seen[iv.Applicant] = true
	}
	return nil
}

func checkInterviewerFreedom(interviews []domain.Interview, interviewerBusy map[domain.InterviewerID][]availability.InterviewerInterval) *Violation {
	for _, iv := range interviews {
		for _, id := range iv.Interviewers {
			for _, busy := range interviewerBusy[id] {
				if timeutil.Overlaps(iv.Slot.Start, iv.Slot.End, busy.Begin, busy.End) {
					return &Violation{Rule: "interviewer_freedom", Detail: fmt.Sprintf("interviewer %d overlaps a declared busy interval", id)}
				}
			}
		}
	}
	return nil
}

// timeSpaceEntry is a single occupied span for one interviewer, tagged with
// whether it originates from a newly-scheduled interview (false) or a
// pre-existing manual busy declaration re-derived from the snapshot
// (true) — the "manual" flag the original's
// assert_sufficient_travel_time_and_breaks_for_interviewers tracks.
type timeSpaceEntry struct {
	Start  timeValue
	End    timeValue
	Room   domain.RoomID
	Manual bool
}

// rebuiltIndex holds, per interviewer, every occupied span (scheduled
// interviews plus pre-existing room-bound busy declarations) sorted by
// start, for the travel/break/non-overlap checks.
type rebuiltIndex struct {
	byInterviewer map[domain.InterviewerID][]timeSpaceEntry
}

func rebuildIndex(interviews []domain.Interview, interviewerBusy map[domain.InterviewerID][]availability.InterviewerInterval) rebuiltIndex {
	idx := rebuiltIndex{byInterviewer: make(map[domain.InterviewerID][]timeSpaceEntry)}
	for _, iv := range interviews {
		for _, id := range iv.Interviewers {
			idx.byInterviewer[id] = append(idx.byInterviewer[id], timeSpaceEntry{
				Start: timeValue(iv.Slot.Start.UnixNano()),
				End:   timeValue(iv.Slot.End.UnixNano()),
				Room:  iv.Slot.Room,
			})
		}
	}
	for id, busy := range interviewerBusy {
		for _, b := range busy {
			if b.Room == nil {
				continue
			}
			idx.byInterviewer[id] = append(idx.byInterviewer[id], timeSpaceEntry{
				Start:  timeValue(b.Begin.UnixNano()),
				End:    timeValue(b.End.UnixNano()),
				Room:   *b.Room,
				Manual: true,
			})
		}
	}
	for id := range idx.byInterviewer {
		entries := idx.byInterviewer[id]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })
		idx.byInterviewer[id] = entries
	}
	return idx
}

// timeValue is a UnixNano timestamp used only for sorting/comparison
// inside the validator's rebuilt index.
type timeValue int64

func checkInterviewerNonOverlap(idx rebuiltIndex) *Violation {
	for id, entries := range idx.byInterviewer {
		for i := 0; i < len(entries)-1; i++ {
			if entries[i].End > entries[i+1].Start {
				return &Violation{Rule: "interviewer_non_overlap", Detail: fmt.Sprintf("interviewer %d has overlapping intervals", id)}
			}
		}
	}
	return nil
}

// checkTravel enforces the travel buffer between consecutive room-bound
// spans for each interviewer. A pair is exempt only when both sides are
// pre-existing manual busy declarations, matching
// assert_sufficient_travel_time_for_interviewers in the original (`and`,
// not `or`): a span adjacent to just one manual declaration still sits
// next to a placement the engine produced, so it's still held to the
// buffer.
func checkTravel(idx rebuiltIndex, tunables Tunables) *Violation {
	for id, entries := range idx.byInterviewer {
		for i := 0; i < len(entries)-1; i++ {
			a, b := entries[i], entries[i+1]
			if a.Manual && b.Manual {
				continue
			}
			if a.Room == b.Room {
				continue
			}
			if int64(b.Start-a.End) < tunables.TravelTime {
				return &Violation{Rule: "travel", Detail: fmt.Sprintf("interviewer %d has insufficient travel time between rooms", id)}
			}
		}
	}
	return nil
}

func checkBreaks(idx rebuiltIndex, tunables Tunables) *Violation {
	for id, entries := range idx.byInterviewer {
		var prevEnd timeValue
		var stretch int64
		first := true
		for _, e := range entries {
			if first || int64(e.Start-prevEnd) >= tunables.BreakLength {
				stretch = int64(e.End - e.Start)
			} else {
				stretch += int64(e.End - prevEnd)
			}
			if stretch > tunables.MaxContinuousWork {
				return &Violation{Rule: "breaks", Detail: fmt.Sprintf("interviewer %d exceeds continuous work without a break", id)}
			}
			prevEnd = e.End
			first = false
		}
	}
	return nil
}

func toSet(ids []domain.InterviewerID) map[domain.InterviewerID]bool {
	set := make(map[domain.InterviewerID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func intersects(set map[domain.InterviewerID]bool, ids []domain.InterviewerID) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}
