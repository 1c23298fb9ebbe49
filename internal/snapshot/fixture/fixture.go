// Package fixture provides a read-only, JSON-file-backed
// snapshot.Reader: a developer/test convenience standing in for a real
// database-backed loader, not a persistence layer. It never writes.
package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/google/uuid"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/bipserrors"
	"github.com/bjornarhem/bips/internal/domain"
	"github.com/bjornarhem/bips/internal/snapshot"
)

type rawRoom struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawInterviewer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type rawJob struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	P1        []int64 `json:"p1"`
	P2        []int64 `json:"p2"`
	P3        []int64 `json:"p3"`
	RequireP1 bool    `json:"require_p1"`
	Ignore    bool    `json:"ignore"`
}

type rawApplicant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawApplication struct {
	ApplicantID int64  `json:"applicant_id"`
	JobID       int64  `json:"job_id"`
	Withdrawn   bool   `json:"withdrawn"`
	Confirmed   bool   `json:"confirmed"`
	SlotID      *int64 `json:"slot_id"`
}

type rawSlot struct {
	ID     int64  `json:"id"`
	RoomID int64  `json:"room_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type rawApplicantBusy struct {
	ApplicantID int64  `json:"applicant_id"`
	Begin       string `json:"begin"`
	End         string `json:"end"`
}

type rawInterviewerBusy struct {
	InterviewerID int64  `json:"interviewer_id"`
	Begin         string `json:"begin"`
	End           string `json:"end"`
	RoomID        *int64 `json:"room_id"`
}

type rawDocument struct {
	Rooms           []rawRoom            `json:"rooms"`
	Interviewers    []rawInterviewer     `json:"interviewers"`
	Jobs            []rawJob             `json:"jobs"`
	Applicants      []rawApplicant       `json:"applicants"`
	Applications    []rawApplication     `json:"applications"`
	Slots           []rawSlot            `json:"slots"`
	ApplicantBusy   []rawApplicantBusy   `json:"applicant_busy"`
	InterviewerBusy []rawInterviewerBusy `json:"interviewer_busy"`
}

// Reader loads a snapshot from a single JSON fixture file, validating it
// against schemaDocument before decoding. It delegates the post-decode
// filtering logic (application eligibility, slot availability) to an
// internal snapshot.Memory, so a fixture behaves identically to any other
// snapshot.Reader implementation.
type Reader struct {
	LoadID uuid.UUID
	memory *snapshot.Memory
}

// Load reads and validates path, returning a ready-to-use Reader. The
// returned LoadID is a fresh identifier stamped for this load, useful for
// correlating log lines across a run that reads the same fixture twice
// (once for the engine, once for the post-run validator's independent
// re-derivation).
func Load(path string) (*Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, bipserrors.WrapInput(fmt.Errorf("fixture: read %s: %w", path, err))
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, bipserrors.WrapInput(fmt.Errorf("fixture: %s is not valid JSON: %w", path, err))
	}
	if err := validateAgainstSchema(payload); err != nil {
		return nil, bipserrors.WrapInput(fmt.Errorf("fixture: %s failed schema validation: %w", path, err))
	}

	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, bipserrors.WrapInput(fmt.Errorf("fixture: %s: %w", path, err))
	}

	mem, err := toMemory(doc)
	if err != nil {
		return nil, bipserrors.WrapInput(fmt.Errorf("fixture: %s: %w", path, err))
	}

	return &Reader{LoadID: uuid.New(), memory: mem}, nil
}

func validateAgainstSchema(payload map[string]any) error {
	encoded, err := json.Marshal(schemaDocument)
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("fixture.json", bytes.NewReader(encoded)); err != nil {
		return err
	}
	compiled, err := compiler.Compile("fixture.json")
	if err != nil {
		return err
	}
	return compiled.Validate(payload)
}

func toMemory(doc rawDocument) (*snapshot.Memory, error) {
	mem := snapshot.NewMemory()

	for _, j := range doc.Jobs {
		mem.AddJob(domain.Job{
			ID:        domain.JobID(j.ID),
			Name:      j.Name,
			P1:        toInterviewerIDs(j.P1),
			P2:        toInterviewerIDs(j.P2),
			P3:        toInterviewerIDs(j.P3),
			RequireP1: j.RequireP1,
			Ignore:    j.Ignore,
		})
	}

	for _, s := range doc.Slots {
		start, err := parseTime(s.Start)
		if err != nil {
			return nil, fmt.Errorf("slot %d: start: %w", s.ID, err)
		}
		end, err := parseTime(s.End)
		if err != nil {
			return nil, fmt.Errorf("slot %d: end: %w", s.ID, err)
		}
		mem.AddSlot(domain.Slot{ID: domain.SlotID(s.ID), Room: domain.RoomID(s.RoomID), Start: start, End: end})
	}

	for _, a := range doc.Applications {
		var slot *domain.SlotID
		if a.SlotID != nil {
			id := domain.SlotID(*a.SlotID)
			slot = &id
		}
		mem.AddApplication(domain.Application{
			ApplicantID: domain.ApplicantID(a.ApplicantID),
			JobID:       domain.JobID(a.JobID),
			Withdrawn:   a.Withdrawn,
			Confirmed:   a.Confirmed,
			Slot:        slot,
		})
	}

	for _, b := range doc.ApplicantBusy {
		begin, err := parseTime(b.Begin)
		if err != nil {
			return nil, fmt.Errorf("applicant_busy: begin: %w", err)
		}
		end, err := parseTime(b.End)
		if err != nil {
			return nil, fmt.Errorf("applicant_busy: end: %w", err)
		}
		mem.AddApplicantBusy(domain.ApplicantID(b.ApplicantID), availability.Interval{Begin: begin, End: end})
	}

	for _, b := range doc.InterviewerBusy {
		begin, err := parseTime(b.Begin)
		if err != nil {
			return nil, fmt.Errorf("interviewer_busy: begin: %w", err)
		}
		end, err := parseTime(b.End)
		if err != nil {
			return nil, fmt.Errorf("interviewer_busy: end: %w", err)
		}
		var room *domain.RoomID
		if b.RoomID != nil {
			id := domain.RoomID(*b.RoomID)
			room = &id
		}
		mem.AddInterviewerBusy(domain.InterviewerID(b.InterviewerID), availability.InterviewerInterval{Begin: begin, End: end, Room: room})
	}

	return mem, nil
}

func toInterviewerIDs(ids []int64) []domain.InterviewerID {
	if ids == nil {
		return nil
	}
	out := make([]domain.InterviewerID, len(ids))
	for i, id := range ids {
		out[i] = domain.InterviewerID(id)
	}
	return out
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// LoadApplications implements snapshot.Reader by delegating to the
// decoded in-memory snapshot.
func (r *Reader) LoadApplications(ctx context.Context) (map[domain.ApplicantID][]domain.Job, error) {
	return r.memory.LoadApplications(ctx)
}

// LoadAvailableSlots implements snapshot.Reader by delegating to the
// decoded in-memory snapshot.
func (r *Reader) LoadAvailableSlots(ctx context.Context) ([]domain.Slot, error) {
	return r.memory.LoadAvailableSlots(ctx)
}

// LoadBusyTimes implements snapshot.Reader by delegating to the decoded
// in-memory snapshot.
func (r *Reader) LoadBusyTimes(ctx context.Context) (snapshot.BusyTimes, error) {
	return r.memory.LoadBusyTimes(ctx)
}
