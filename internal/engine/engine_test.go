package engine

import (
	"testing"
	"time"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/domain"
)

func et(h, m int) time.Time {
	return time.Date(2020, 7, 12, h, m, 0, 0, time.UTC)
}

func defaultTunables(seed int64) Tunables {
	return Tunables{
		Seed:              seed,
		TravelTime:        30 * time.Minute,
		MaxContinuousWork: 4 * time.Hour,
		BreakLength:       20 * time.Minute,
	}
}

// Scenario 1: trivial fit.
func TestScenarioTrivialFit(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2}}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}}
	slots := []domain.Slot{{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)}}

	e := New(applied, slots, nil, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(e.Interviews()))
	}
	iv := e.Interviews()[0]
	if iv.Applicant != 1 || len(iv.Interviewers) != 2 {
		t.Fatalf("unexpected interview: %+v", iv)
	}
}

// Scenario 2: insufficient interviewers.
func TestScenarioInsufficientInterviewers(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1}}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}}
	slots := []domain.Slot{{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)}}

	e := New(applied, slots, nil, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 0 {
		t.Fatalf("expected empty assignment, got %d", len(e.Interviews()))
	}
}

// Scenario 3: applicant busy.
func TestScenarioApplicantBusy(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2}}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}}
	slots := []domain.Slot{{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)}}
	applicantBusy := map[domain.ApplicantID][]availability.Interval{
		1: {{Begin: et(10, 0), End: et(11, 0)}},
	}

	e := New(applied, slots, applicantBusy, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 0 {
		t.Fatalf("expected empty assignment, got %d", len(e.Interviews()))
	}
}

// Scenario 4: travel violation forces a single assignment.
func TestScenarioTravelViolationForcesSingleAssignment(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2}}
	applied := map[domain.ApplicantID][]domain.Job{
		1: {job},
		2: {job},
	}
	slots := []domain.Slot{
		{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)},
		{ID: 2, Room: 2, Start: et(10, 30), End: et(11, 0)},
	}

	e := New(applied, slots, nil, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 1 {
		t.Fatalf("expected exactly 1 interview scheduled, got %d", len(e.Interviews()))
	}
}

// Scenario 5: rescheduling succeeds via swap.
func TestScenarioRescheduleViaSwap(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2}}
	applied := map[domain.ApplicantID][]domain.Job{
		1: {job},
		2: {job},
	}
	slots := []domain.Slot{
		{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)},
		{ID: 2, Room: 1, Start: et(10, 30), End: et(11, 0)},
	}
	applicantBusy := map[domain.ApplicantID][]availability.Interval{
		2: {{Begin: et(10, 30), End: et(11, 0)}},
	}

	e := New(applied, slots, applicantBusy, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 2 {
		t.Fatalf("expected both applicants scheduled after swap, got %d", len(e.Interviews()))
	}

	byApplicant := map[domain.ApplicantID]domain.Interview{}
	for _, iv := range e.Interviews() {
		byApplicant[iv.Applicant] = iv
	}
	a1, ok1 := byApplicant[1]
	a2, ok2 := byApplicant[2]
	if !ok1 || !ok2 {
		t.Fatalf("expected both applicant 1 and 2 scheduled, got %+v", byApplicant)
	}
	if !a2.Slot.Start.Equal(et(10, 0)) {
		t.Fatalf("expected applicant 2 in the first slot (their only available one), got start=%s", a2.Slot.Start)
	}
	if !a1.Slot.Start.Equal(et(10, 30)) {
		t.Fatalf("expected applicant 1 moved to the second slot, got start=%s", a1.Slot.Start)
	}
}

// Scenario 7: P1 requirement enforced.
func TestScenarioRequireP1Enforced(t *testing.T) {
	job := domain.Job{
		ID:        1,
		RequireP1: true,
		P2:        []domain.InterviewerID{1, 2, 3, 4},
	}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}}
	slots := []domain.Slot{{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)}}

	e := New(applied, slots, nil, nil, defaultTunables(0))
	e.Run()

	if len(e.Interviews()) != 0 {
		t.Fatalf("expected empty assignment, got %d", len(e.Interviews()))
	}
}

func TestAddRemoveInterviewRoundTrip(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2}}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}}
	slots := []domain.Slot{{ID: 1, Room: 1, Start: et(10, 0), End: et(10, 30)}}

	e := New(applied, slots, nil, nil, defaultTunables(0))
	iv := domain.Interview{Applicant: 1, Interviewers: []domain.InterviewerID{1, 2}, Slot: slots[0]}

	e.AddInterview(iv, nil)
	if len(e.Interviews()) != 1 {
		t.Fatalf("expected 1 interview after add, got %d", len(e.Interviews()))
	}
	if len(e.slotPool) != 0 {
		t.Fatalf("expected slot pool drained, got %d", len(e.slotPool))
	}

	removed := e.RemoveInterview(0)
	if removed.Applicant != 1 {
		t.Fatalf("expected removed interview for applicant 1, got %+v", removed)
	}
	if len(e.Interviews()) != 0 {
		t.Fatalf("expected 0 interviews after remove, got %d", len(e.Interviews()))
	}
	if len(e.slotPool) != 1 {
		t.Fatalf("expected slot restored to pool, got %d", len(e.slotPool))
	}
	if !e.unallocated[1] {
		t.Fatal("expected applicant 1 restored to unallocated")
	}
}

func TestRunIsDeterministicGivenSameSeed(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{1, 2, 3, 4}}
	applied := map[domain.ApplicantID][]domain.Job{
		1: {job}, 2: {job}, 3: {job}, 4: {job},
	}
	slots := []domain.Slot{
		{ID: 1, Room: 1, Start: et(9, 0), End: et(9, 30)},
		{ID: 2, Room: 1, Start: et(9, 30), End: et(10, 0)},
		{ID: 3, Room: 1, Start: et(10, 0), End: et(10, 30)},
		{ID: 4, Room: 1, Start: et(10, 30), End: et(11, 0)},
	}

	run := func() []domain.Interview {
		e := New(applied, slots, nil, nil, defaultTunables(7))
		e.Run()
		return e.Interviews()
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("expected deterministic interview count, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Applicant != second[i].Applicant || first[i].Slot.ID != second[i].Slot.ID {
			t.Fatalf("expected identical assignment at index %d, got %+v vs %+v", i, first[i], second[i])
		}
	}
}
