// Package domain defines the entity types the scheduling engine operates
// on. Entities are plain structs keyed by typed integer ids rather than by
// object identity, so busy indices and assignment state can use ids as map
// keys without relying on pointer equality.
package domain

import (
	"fmt"
	"time"
)

// ApplicantID identifies an applicant.
type ApplicantID int64

// InterviewerID identifies an interviewer.
type InterviewerID int64

// RoomID identifies a room.
type RoomID int64

// JobID identifies a job.
type JobID int64

// SlotID identifies a slot.
type SlotID int64

// Applicant is a person whose applications are up for interview scheduling.
// Display fields beyond the id are out of scope for the engine.
type Applicant struct {
	ID   ApplicantID
	Name string
}

// Interviewer is a person eligible to conduct interviews for at least one job.
type Interviewer struct {
	ID        InterviewerID
	FirstName string
	LastName  string
}

// Room is an opaque location identity; interviews occupy a room for the
// duration of a slot.
type Room struct {
	ID   RoomID
	Name string
}

// Job is a role applicants apply for, carrying three ordered, possibly
// overlapping tiers of eligible interviewers and two scheduling flags.
type Job struct {
	ID   JobID
	Name string

	// P1, P2, P3 are the priority tiers, 1 strictest. Membership in a lower
	// tier does not exclude membership in a higher one.
	P1, P2, P3 []InterviewerID

	// RequireP1 forces every interview covering this job to include at
	// least one P1 interviewer.
	RequireP1 bool

	// Ignore excludes the job from scheduling entirely.
	Ignore bool
}

// TierSet returns the eligible interviewer set for tier 1..cap, inclusive,
// without deduplicating across tiers (callers that need a flat set should
// dedupe explicitly; the selector iterates tier by tier instead).
func (j Job) TierSet(cap int) [][]InterviewerID {
	tiers := [][]InterviewerID{j.P1, j.P2, j.P3}
	if cap < 1 {
		cap = 1
	}
	if cap > 3 {
		cap = 3
	}
	return tiers[:cap]
}

// Slot is a fixed (room, start, end) tuple, the unit of interview assignment.
type Slot struct {
	ID    SlotID
	Room  RoomID
	Start time.Time
	End   time.Time
}

// Application pairs an applicant with a job. The engine only considers
// applications where Withdrawn, Confirmed are false, Slot is nil and the
// job is not ignored.
type Application struct {
	ApplicantID ApplicantID
	JobID       JobID
	Withdrawn   bool
	Confirmed   bool
	Slot        *SlotID
}

// Eligible reports whether this application should be considered by the
// engine, given the job it references is not ignored.
func (a Application) Eligible(job Job) bool {
	return !a.Withdrawn && !a.Confirmed && a.Slot == nil && !job.Ignore
}

// OwnerKind distinguishes whose busy interval is described.
type OwnerKind int

const (
	// OwnerApplicant marks a busy interval belonging to an applicant.
	OwnerApplicant OwnerKind = iota
	// OwnerInterviewer marks a busy interval belonging to an interviewer.
	OwnerInterviewer
)

// BusyInterval is a declared unavailability window. Room is only meaningful
// for interviewer-owned intervals; a nil Room means opaque unavailability
// (blocks regardless of room), while a non-nil Room marks a prior interview
// occupying that specific room.
type BusyInterval struct {
	Owner OwnerKind
	ID    int64
	Begin time.Time
	End   time.Time
	Room  *RoomID
}

// Interview is the engine's output tuple: an applicant, the interviewer set
// assigned to cover every job they applied to, and the slot they occupy.
type Interview struct {
	Applicant    ApplicantID
	Interviewers []InterviewerID
	Slot         Slot
}

// String renders a single-line summary, the Go analogue of the original's
// Interview.print_full, restyled as a report line rather than a multi-line
// debug dump. It prints ids only; human names are not resolved here.
func (iv Interview) String() string {
	return fmt.Sprintf(
		"applicant=%d interviewers=%v room=%d start=%s end=%s",
		iv.Applicant, iv.Interviewers, iv.Slot.Room,
		iv.Slot.Start.Format(time.RFC3339), iv.Slot.End.Format(time.RFC3339),
	)
}
