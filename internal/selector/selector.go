// Package selector implements C5, the interviewer selection logic that
// picks one available interviewer per job at a given priority tier, then
// assembles a full interviewer set for a slot across every job an
// applicant applied to.
package selector

import (
	"math/rand"
	"time"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/domain"
)

// availabilityChecker is the subset of availability.Oracle the selector
// needs; kept as an interface so tests can stub it without a full index.
type availabilityChecker interface {
	InterviewerAvailable(id domain.InterviewerID, slotRoom domain.RoomID, start, end time.Time) bool
}

// Selector picks interviewers for a job/slot pair, honouring priority tiers
// and a seeded random permutation so repeated runs against the same seed
// and snapshot are reproducible (spec §5).
type Selector struct {
	oracle availabilityChecker
	rng    *rand.Rand
}

// New builds a selector backed by the given oracle and seed. A single
// engine-scoped generator drives both the within-tier interviewer
// permutation and the job-ordering fallback of §4.5.
func New(oracle *availability.Oracle, seed int64) *Selector {
	return &Selector{oracle: oracle, rng: rand.New(rand.NewSource(seed))}
}

// newWithChecker is used by tests to inject a stub availability checker.
func newWithChecker(checker availabilityChecker, seed int64) *Selector {
	return &Selector{oracle: checker, rng: rand.New(rand.NewSource(seed))}
}

// PickInterviewer enumerates tiers 1..tierCap in order; within each tier it
// iterates the tier's interviewers in a uniformly random permutation and
// returns the first one that is both available and not already taken.
// Returns (0, false) if no tier yields a candidate.
func (s *Selector) PickInterviewer(job domain.Job, slotRoom domain.RoomID, start, end time.Time, taken map[domain.InterviewerID]bool, tierCap int) (domain.InterviewerID, bool) {
	for _, tier := range job.TierSet(tierCap) {
		perm := s.rng.Perm(len(tier))
		for _, idx := range perm {
			candidate := tier[idx]
			if taken[candidate] {
				continue
			}
			if s.oracle.InterviewerAvailable(candidate, slotRoom, start, end) {
				return candidate, true
			}
		}
	}
	return 0, false
}

// PickInterviewers implements get_available_interviewers: accumulate one
// interviewer per job (capped at tier 1 when the job requires a P1
// presence, tierCap otherwise), then, if the resulting set has fewer than 2
// distinct interviewers, recruit one additional distinct interviewer by
// scanning jobs in random order. Returns (nil, false) on failure.
func (s *Selector) PickInterviewers(jobs []domain.Job, slotRoom domain.RoomID, start, end time.Time, tierCap int) ([]domain.InterviewerID, bool) {
	taken := make(map[domain.InterviewerID]bool)
	var ordered []domain.InterviewerID

	for _, job := range jobs {
		cap := tierCap
		if job.RequireP1 {
			cap = 1
		}
		candidate, ok := s.PickInterviewer(job, slotRoom, start, end, taken, cap)
		if !ok {
			return nil, false
		}
		if !taken[candidate] {
			taken[candidate] = true
			ordered = append(ordered, candidate)
		}
	}

	if len(taken) >= 2 {
		return ordered, true
	}

	// Need a second distinct interviewer: try jobs in random order.
	perm := s.rng.Perm(len(jobs))
	for _, idx := range perm {
		job := jobs[idx]
		cap := tierCap
		if job.RequireP1 {
			cap = 1
		}
		candidate, ok := s.PickInterviewer(job, slotRoom, start, end, taken, cap)
		if ok {
			taken[candidate] = true
			ordered = append(ordered, candidate)
			return ordered, true
		}
	}
	return nil, false
}
