package validate

import (
	"testing"
	"time"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/bipserrors"
	"github.com/bjornarhem/bips/internal/domain"
)

func vt(h, m int) time.Time {
	return time.Date(2020, 7, 12, h, m, 0, 0, time.UTC)
}

func defaultTunables() Tunables {
	return Tunables{
		TravelTime:        int64(30 * time.Minute),
		MaxContinuousWork: int64(4 * time.Hour),
		BreakLength:       int64(20 * time.Minute),
	}
}

func room(id domain.RoomID) *domain.RoomID { return &id }

func TestValidateAcceptsCleanAssignment(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}}}

	if err := Validate(interviews, in, defaultTunables()); err != nil {
		t.Fatalf("expected no violation, got %v", err)
	}
}

func TestValidateRejectsBadCardinality(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}}}

	err := Validate(interviews, in, defaultTunables())
	if err == nil {
		t.Fatal("expected a cardinality violation")
	}
	if !bipserrors.IsInvariant(err) {
		t.Fatalf("expected CategoryInvariant, got %v", err)
	}
}

func TestValidateRejectsMissingRequireP1(t *testing.T) {
	job := domain.Job{ID: 1, RequireP1: true, P2: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}}}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for missing P1 coverage, got %v", err)
	}
}

func TestValidateRejectsApplicantBusyOverlap(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
	}
	in := Input{
		AppliedJobs:   map[domain.ApplicantID][]domain.Job{1: {job}},
		ApplicantBusy: map[domain.ApplicantID][]availability.Interval{1: {{Begin: vt(10, 0), End: vt(11, 0)}}},
	}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for applicant busy overlap, got %v", err)
	}
}

func TestValidateRejectsDuplicateSlot(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20, 30, 40}}
	slot := domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: slot},
		{Applicant: 2, Interviewers: []domain.InterviewerID{30, 40}, Slot: slot},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}, 2: {job}}}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for duplicate slot, got %v", err)
	}
}

func TestValidateRejectsInterviewerDoubleBooked(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
		{Applicant: 2, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 2, Room: 1, Start: vt(10, 15), End: vt(10, 45)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}, 2: {job}}}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for interviewer overlap, got %v", err)
	}
}

func TestValidateRejectsInsufficientTravelAcrossRooms(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
		{Applicant: 2, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 2, Room: 2, Start: vt(10, 30), End: vt(11, 0)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}, 2: {job}}}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for insufficient travel time, got %v", err)
	}
}

func TestValidateAllowsSameRoomBackToBack(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
		{Applicant: 2, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 2, Room: 1, Start: vt(10, 30), End: vt(11, 0)}},
	}
	in := Input{AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}, 2: {job}}}

	if err := Validate(interviews, in, defaultTunables()); err != nil {
		t.Fatalf("expected same-room back-to-back to be allowed, got %v", err)
	}
}

func TestValidateRejectsExceedingContinuousWork(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	applied := map[domain.ApplicantID][]domain.Job{1: {job}, 2: {job}, 3: {job}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(8, 0), End: vt(10, 0)}},
		{Applicant: 2, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 2, Room: 1, Start: vt(10, 0), End: vt(12, 0)}},
		{Applicant: 3, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 3, Room: 1, Start: vt(12, 0), End: vt(12, 30)}},
	}
	in := Input{AppliedJobs: applied}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected invariant violation for exceeding continuous work, got %v", err)
	}
}

func TestValidateRejectsTravelViolationAdjacentToSingleManualBooking(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(10, 0), End: vt(10, 30)}},
	}
	in := Input{
		AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}},
		InterviewerBusy: map[domain.InterviewerID][]availability.InterviewerInterval{
			10: {{Begin: vt(10, 30), End: vt(11, 0), Room: room(2)}},
		},
	}

	err := Validate(interviews, in, defaultTunables())
	if err == nil || !bipserrors.IsInvariant(err) {
		t.Fatalf("expected a travel violation when only one side of the pair is manual, got %v", err)
	}
}

func TestValidateExemptsTravelCheckWhenBothBookingsAreManual(t *testing.T) {
	job := domain.Job{ID: 1, P1: []domain.InterviewerID{10, 20}}
	interviews := []domain.Interview{
		{Applicant: 1, Interviewers: []domain.InterviewerID{10, 20}, Slot: domain.Slot{ID: 1, Room: 1, Start: vt(8, 0), End: vt(8, 30)}},
	}
	in := Input{
		AppliedJobs: map[domain.ApplicantID][]domain.Job{1: {job}},
		InterviewerBusy: map[domain.InterviewerID][]availability.InterviewerInterval{
			10: {
				{Begin: vt(10, 0), End: vt(10, 30), Room: room(1)},
				{Begin: vt(10, 30), End: vt(11, 0), Room: room(2)},
			},
		},
	}

	if err := Validate(interviews, in, defaultTunables()); err != nil {
		t.Fatalf("expected two pre-existing manual bookings to be exempt from the travel check, got %v", err)
	}
}
