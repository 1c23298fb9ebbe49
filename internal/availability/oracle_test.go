package availability

import (
	"testing"
	"time"

	"github.com/bjornarhem/bips/internal/domain"
)

func newTestOracle() (*Index, *Oracle) {
	idx := NewIndex()
	oracle := NewOracle(idx, 30*time.Minute, 4*time.Hour, 20*time.Minute)
	return idx, oracle
}

func TestApplicantAvailable(t *testing.T) {
	idx, oracle := newTestOracle()
	idx.AddApplicantBusy(1, at(10, 0), at(11, 0))

	if oracle.ApplicantAvailable(1, at(10, 15), at(10, 45)) {
		t.Fatal("expected applicant to be unavailable during busy interval")
	}
	if !oracle.ApplicantAvailable(1, at(11, 0), at(11, 30)) {
		t.Fatal("expected applicant free immediately after busy interval ends")
	}
	if !oracle.ApplicantAvailable(2, at(10, 15), at(10, 45)) {
		t.Fatal("expected applicant with no busy intervals to be available")
	}
}

func TestInterviewerAvailableSameRoomConflict(t *testing.T) {
	idx, oracle := newTestOracle()
	idx.AddInterviewerBusy(1, at(10, 0), at(10, 30), room(1))

	if oracle.InterviewerAvailable(1, domain.RoomID(1), at(10, 15), at(10, 45)) {
		t.Fatal("expected conflict for overlapping same-room interval")
	}
}

func TestInterviewerAvailableDifferentRoomTravel(t *testing.T) {
	idx, oracle := newTestOracle()
	idx.AddInterviewerBusy(1, at(10, 0), at(10, 30), room(1))

	// Different room, back-to-back: violates the 30-minute travel buffer.
	if oracle.InterviewerAvailable(1, domain.RoomID(2), at(10, 30), at(11, 0)) {
		t.Fatal("expected travel buffer violation for back-to-back different-room slots")
	}

	// Separated by exactly the travel buffer: should be free.
	if !oracle.InterviewerAvailable(1, domain.RoomID(2), at(11, 0), at(11, 30)) {
		t.Fatal("expected slot separated by exactly the travel buffer to be free")
	}
}

func TestInterviewerAvailableOpaqueBusyBlocksRegardlessOfRoom(t *testing.T) {
	idx, oracle := newTestOracle()
	idx.AddInterviewerBusy(1, at(10, 0), at(10, 30), nil)

	if oracle.InterviewerAvailable(1, domain.RoomID(99), at(10, 15), at(10, 45)) {
		t.Fatal("expected opaque busy interval to block regardless of room")
	}
}

func TestInterviewerAvailableBreakRuleApplies(t *testing.T) {
	idx, oracle := newTestOracle()
	start := at(8, 0)
	for i := 0; i < 8; i++ {
		s := start.Add(time.Duration(i) * 30 * time.Minute)
		e := s.Add(30 * time.Minute)
		idx.AddInterviewerBusy(1, s, e, room(1))
	}
	// 8:00-12:00 back to back is exactly 4h; one more contiguous slot exceeds it.
	if oracle.InterviewerAvailable(1, domain.RoomID(1), at(12, 0), at(12, 30)) {
		t.Fatal("expected break rule to reject a slot pushing continuous work over the limit")
	}
}
