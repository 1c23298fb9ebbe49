// Package snapshot defines the reader/committer collaborator interfaces
// the engine is built against (spec §6.1/§6.3): shape, not transport. A
// concrete snapshot is loaded once at the start of a run and never
// consulted again until the post-run validator re-derives busy state from
// a second, independent load.
package snapshot

import (
	"context"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/domain"
)

// BusyTimes is the pair of busy-interval maps a Reader produces: applicant
// busy intervals, and interviewer busy intervals (room-tagged where the
// interval derives from a previously assigned slot, untagged/opaque for a
// manual declaration).
type BusyTimes struct {
	Applicant   map[domain.ApplicantID][]availability.Interval
	Interviewer map[domain.InterviewerID][]availability.InterviewerInterval
}

// Reader loads the state the engine is constructed from. Implementations
// must honor the filtering spec §6.1 requires: applications already
// withdrawn, confirmed, slot-assigned, or belonging to an ignored job are
// excluded from LoadApplications, and LoadAvailableSlots excludes any slot
// already backing an application.
type Reader interface {
	// LoadApplications returns, per applicant, the jobs they are still
	// eligible to be scheduled for.
	LoadApplications(ctx context.Context) (map[domain.ApplicantID][]domain.Job, error)

	// LoadAvailableSlots returns every slot with no backing application.
	LoadAvailableSlots(ctx context.Context) ([]domain.Slot, error)

	// LoadBusyTimes returns the applicant and interviewer busy maps. The
	// interviewer map must include, for every previously assigned slot, an
	// entry on every interviewer of that slot tagged with the slot's room.
	LoadBusyTimes(ctx context.Context) (BusyTimes, error)
}

// Committer persists the in-memory assignment list produced by a run.
// Implementations must write application updates before any downstream
// side effect keyed on the slot, so an external consumer observing the
// write never sees a slot linked to an under-populated application
// (spec §6.3).
type Committer interface {
	// SaveScheduledInterviews associates each interview's interviewer set
	// with its slot and links the applicant's surviving applications to
	// that slot.
	SaveScheduledInterviews(ctx context.Context, interviews []domain.Interview) error
}
