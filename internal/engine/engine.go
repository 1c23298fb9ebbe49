// Package engine implements C6, the two-pass scheduling engine: a naive
// greedy fill at tightening priority tiers (Pass 1), followed by a
// one-step swap rescheduling pass for applicants Pass 1 couldn't place
// (Pass 2). The engine owns the busy index and assignment list exclusively
// for the duration of a run; there is no internal concurrency (spec §5).
package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/domain"
	"github.com/bjornarhem/bips/internal/logging"
	"github.com/bjornarhem/bips/internal/selector"
	"github.com/bjornarhem/bips/pkg/interfaces"
)

// Tunables groups the constants from spec §4.3/§4.4/§6.2 the engine and its
// collaborators are parameterised on.
type Tunables struct {
	Seed              int64
	TravelTime        time.Duration
	MaxContinuousWork time.Duration
	BreakLength       time.Duration
}

// Option configures an Engine at construction, in the manner of
// scheduler.Option in the teacher's in-memory scheduler.
type Option func(*Engine)

// WithLogger injects a logger provider; defaults to a no-op provider.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) {
		if provider != nil {
			e.logger = logging.EngineLogger(provider)
		}
	}
}

// Engine is the scheduling engine of spec §4.6. It is constructed once per
// run from a Snapshot (see internal/snapshot) and is not safe for
// concurrent use — callers own exclusive access for the duration of Run.
type Engine struct {
	RunID uuid.UUID

	index    *availability.Index
	oracle   *availability.Oracle
	selector *selector.Selector
	logger   interfaces.Logger

	jobsByID map[domain.JobID]domain.Job
	rooms    map[domain.RoomID]domain.Room

	applied    map[domain.ApplicantID][]domain.Job
	slotPool   []domain.Slot
	interviews []domain.Interview

	unallocated map[domain.ApplicantID]bool
}

// New constructs an engine from pre-loaded snapshot data. The caller is
// responsible for running the pre-run checker (internal/precheck) before
// constructing the engine; construction itself does no validation.
func New(
	applied map[domain.ApplicantID][]domain.Job,
	availableSlots []domain.Slot,
	applicantBusy map[domain.ApplicantID][]availability.Interval,
	interviewerBusy map[domain.InterviewerID][]availability.InterviewerInterval,
	tunables Tunables,
	opts ...Option,
) *Engine {
	index := availability.NewIndex()
	for id, intervals := range applicantBusy {
		for _, iv := range intervals {
			index.AddApplicantBusy(id, iv.Begin, iv.End)
		}
	}
	for id, intervals := range interviewerBusy {
		for _, iv := range intervals {
			index.AddInterviewerBusy(id, iv.Begin, iv.End, iv.Room)
		}
	}

	oracle := availability.NewOracle(index, tunables.TravelTime, tunables.MaxContinuousWork, tunables.BreakLength)

	unallocated := make(map[domain.ApplicantID]bool, len(applied))
	for id := range applied {
		unallocated[id] = true
	}

	pool := make([]domain.Slot, len(availableSlots))
	copy(pool, availableSlots)

	e := &Engine{
		RunID:       uuid.New(),
		index:       index,
		oracle:      oracle,
		selector:    selector.New(oracle, tunables.Seed),
		logger:      logging.NoOp(),
		applied:     applied,
		slotPool:    pool,
		unallocated: unallocated,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Interviews returns the current assignment list. Callers must not mutate
// the returned slice; it aliases engine-internal state.
func (e *Engine) Interviews() []domain.Interview {
	return e.interviews
}

// Unallocated returns the applicant ids still without an interview.
func (e *Engine) Unallocated() []domain.ApplicantID {
	out := make([]domain.ApplicantID, 0, len(e.unallocated))
	for id := range e.unallocated {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddInterview commits an interview: appends (or inserts at index, if
// non-nil) to the assignment list, marks the applicant allocated, marks
// the interviewers busy for the slot, and removes the slot from the pool.
// Mirrors add_interview in spec §4.2; panics if the slot isn't in the pool
// (a programming error, per spec's "fail loudly" discipline).
func (e *Engine) AddInterview(iv domain.Interview, index *int) {
	if index == nil {
		e.interviews = append(e.interviews, iv)
	} else {
		i := *index
		e.interviews = append(e.interviews, domain.Interview{})
		copy(e.interviews[i+1:], e.interviews[i:])
		e.interviews[i] = iv
	}
	delete(e.unallocated, iv.Applicant)

	room := iv.Slot.Room
	for _, interviewerID := range iv.Interviewers {
		e.index.AddInterviewerBusy(interviewerID, iv.Slot.Start, iv.Slot.End, &room)
	}

	e.removeSlotFromPool(iv.Slot.ID)
}

// RemoveInterview removes the interview at the given slice index, reversing
// everything AddInterview did: the applicant returns to unallocated, the
// interviewers' busy entries are removed, and the slot returns to the pool.
// Returns the removed interview so callers (Pass 2's rollback path) can
// restore it at its original index.
func (e *Engine) RemoveInterview(index int) domain.Interview {
	iv := e.interviews[index]
	e.interviews = append(e.interviews[:index], e.interviews[index+1:]...)

	e.unallocated[iv.Applicant] = true

	room := iv.Slot.Room
	for _, interviewerID := range iv.Interviewers {
		e.index.RemoveInterviewerBusy(interviewerID, iv.Slot.Start, iv.Slot.End, &room)
	}

	e.slotPool = append(e.slotPool, iv.Slot)
	return iv
}

func (e *Engine) removeSlotFromPool(id domain.SlotID) {
	for i, s := range e.slotPool {
		if s.ID == id {
			e.slotPool = append(e.slotPool[:i], e.slotPool[i+1:]...)
			return
		}
	}
	panic("engine: slot not present in available pool")
}

// CreateInterview implements create_interview (spec §4.6): sorts the
// current available pool by (room id, start time), then attempts, in that
// order, to place the applicant at the first slot where they are free and
// an interviewer set can be assembled at the given tier cap. The pool is
// re-sorted on every call since it mutates between calls.
func (e *Engine) CreateInterview(applicant domain.ApplicantID, tierCap int) bool {
	jobs := e.applied[applicant]

	sorted := make([]domain.Slot, len(e.slotPool))
	copy(sorted, e.slotPool)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Room != sorted[j].Room {
			return sorted[i].Room < sorted[j].Room
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	for _, slot := range sorted {
		if !e.oracle.ApplicantAvailable(applicant, slot.Start, slot.End) {
			continue
		}
		interviewers, ok := e.selector.PickInterviewers(jobs, slot.Room, slot.Start, slot.End, tierCap)
		if !ok {
			continue
		}
		e.AddInterview(domain.Interview{Applicant: applicant, Interviewers: interviewers, Slot: slot}, nil)
		return true
	}
	return false
}

// RunPass1 implements Pass 1: iterate every currently unallocated applicant
// in a deterministic order, attempting tiers 1, 2, then 3 in turn, stopping
// at the first tier that succeeds.
func (e *Engine) RunPass1() {
	for _, applicant := range e.pendingApplicantsSorted() {
		for tier := 1; tier <= 3; tier++ {
			if e.CreateInterview(applicant, tier) {
				break
			}
		}
	}
}

// RunPass2 implements Pass 2, the one-step swap: for each still-unallocated
// applicant, walk the current assignment list looking for an existing
// interview whose slot the new applicant could take, tentatively evict the
// incumbent, try to re-home them at tier 3, and commit only if both sides
// succeed. The swap is strictly one level: a displaced applicant may not
// trigger a further displacement.
func (e *Engine) RunPass2() {
	for _, newApplicant := range e.pendingApplicantsSorted() {
		e.trySwap(newApplicant)
	}
}

func (e *Engine) trySwap(newApplicant domain.ApplicantID) bool {
	jobs := e.applied[newApplicant]

	for i := 0; i < len(e.interviews); i++ {
		existing := e.interviews[i]
		slot := existing.Slot

		if !e.oracle.ApplicantAvailable(newApplicant, slot.Start, slot.End) {
			continue
		}

		oldApplicant := existing.Applicant
		oldInterviewers := existing.Interviewers
		e.RemoveInterview(i)

		newInterviewers, ok := e.selector.PickInterviewers(jobs, slot.Room, slot.Start, slot.End, 3)
		if !ok {
			e.AddInterview(domain.Interview{Applicant: oldApplicant, Interviewers: oldInterviewers, Slot: slot}, &i)
			continue
		}

		e.AddInterview(domain.Interview{Applicant: newApplicant, Interviewers: newInterviewers, Slot: slot}, nil)

		if e.CreateInterview(oldApplicant, 3) {
			return true
		}

		// Re-homing the displaced applicant failed: roll back both moves.
		e.RemoveInterview(len(e.interviews) - 1)
		e.AddInterview(domain.Interview{Applicant: oldApplicant, Interviewers: oldInterviewers, Slot: slot}, &i)
	}
	return false
}

// pendingApplicantsSorted returns the currently-unallocated applicant ids
// in ascending id order: an arbitrary but deterministic-per-seed order, as
// spec §4.6 requires (the seed still governs tie-breaking inside
// CreateInterview's interviewer selection).
func (e *Engine) pendingApplicantsSorted() []domain.ApplicantID {
	return e.Unallocated()
}

// Run executes both passes in sequence, the top-level orchestration of
// spec §4.6.
func (e *Engine) Run() {
	e.logger.Info("engine.run.start", "run_id", e.RunID.String(), "applicants", len(e.applied))
	e.RunPass1()
	e.logger.Info("engine.pass1.done", "run_id", e.RunID.String(), "scheduled", len(e.interviews), "unallocated", len(e.unallocated))
	e.RunPass2()
	e.logger.Info("engine.run.done", "run_id", e.RunID.String(), "scheduled", len(e.interviews), "unallocated", len(e.unallocated))
}
