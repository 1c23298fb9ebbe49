package snapshot

import (
	"context"
	"sync"

	"github.com/bjornarhem/bips/internal/availability"
	"github.com/bjornarhem/bips/internal/domain"
)

// Memory is an in-memory Reader/Committer used by tests and by the engine's
// own test suite in place of a database-backed loader. Grounded on the
// teacher's MemoryContentRepository: mutex-guarded maps, context-accepting
// methods that never block, seeded via plain setter methods rather than a
// query language.
type Memory struct {
	mu sync.RWMutex

	jobs            map[domain.JobID]domain.Job
	applications    []domain.Application
	slots           map[domain.SlotID]domain.Slot
	applicantBusy   map[domain.ApplicantID][]availability.Interval
	interviewerBusy map[domain.InterviewerID][]availability.InterviewerInterval

	committed []domain.Interview
}

// NewMemory creates an empty in-memory snapshot.
func NewMemory() *Memory {
	return &Memory{
		jobs:            make(map[domain.JobID]domain.Job),
		slots:           make(map[domain.SlotID]domain.Slot),
		applicantBusy:   make(map[domain.ApplicantID][]availability.Interval),
		interviewerBusy: make(map[domain.InterviewerID][]availability.InterviewerInterval),
	}
}

// AddJob registers a job in the catalog.
func (m *Memory) AddJob(job domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

// AddApplication registers an application. The job it references must
// already have been added via AddJob for LoadApplications to surface it.
func (m *Memory) AddApplication(app domain.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications = append(m.applications, app)
}

// AddSlot registers a slot as part of the snapshot.
func (m *Memory) AddSlot(slot domain.Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot.ID] = slot
}

// AddApplicantBusy declares a pre-existing busy interval for an applicant.
func (m *Memory) AddApplicantBusy(id domain.ApplicantID, iv availability.Interval) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applicantBusy[id] = append(m.applicantBusy[id], iv)
}

// AddInterviewerBusy declares a pre-existing busy interval for an
// interviewer, room-tagged if it derives from a previously assigned slot.
func (m *Memory) AddInterviewerBusy(id domain.InterviewerID, iv availability.InterviewerInterval) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviewerBusy[id] = append(m.interviewerBusy[id], iv)
}

// LoadApplications implements Reader, applying spec §6.1's filter:
// !withdrawn && !confirmed && slot==nil && !job.ignore, grouped by
// applicant into the list of jobs they remain eligible to be scheduled for.
func (m *Memory) LoadApplications(_ context.Context) (map[domain.ApplicantID][]domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[domain.ApplicantID][]domain.Job)
	for _, app := range m.applications {
		if app.Withdrawn || app.Confirmed || app.Slot != nil {
			continue
		}
		job, ok := m.jobs[app.JobID]
		if !ok || job.Ignore {
			continue
		}
		out[app.ApplicantID] = append(out[app.ApplicantID], job)
	}
	return out, nil
}

// LoadAvailableSlots implements Reader: every registered slot not backing
// any application.
func (m *Memory) LoadAvailableSlots(_ context.Context) ([]domain.Slot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	taken := make(map[domain.SlotID]bool)
	for _, app := range m.applications {
		if app.Slot != nil {
			taken[*app.Slot] = true
		}
	}

	out := make([]domain.Slot, 0, len(m.slots))
	for id, slot := range m.slots {
		if !taken[id] {
			out = append(out, slot)
		}
	}
	return out, nil
}

// LoadBusyTimes implements Reader, returning copies of the declared busy
// maps.
func (m *Memory) LoadBusyTimes(_ context.Context) (BusyTimes, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	applicant := make(map[domain.ApplicantID][]availability.Interval, len(m.applicantBusy))
	for id, ivs := range m.applicantBusy {
		applicant[id] = append([]availability.Interval(nil), ivs...)
	}
	interviewer := make(map[domain.InterviewerID][]availability.InterviewerInterval, len(m.interviewerBusy))
	for id, ivs := range m.interviewerBusy {
		interviewer[id] = append([]availability.InterviewerInterval(nil), ivs...)
	}
	return BusyTimes{Applicant: applicant, Interviewer: interviewer}, nil
}

// SaveScheduledInterviews implements Committer: records the committed
// interviews and links every surviving application of each applicant to
// its assigned slot, application updates first per spec §6.3's ordering
// requirement.
func (m *Memory) SaveScheduledInterviews(_ context.Context, interviews []domain.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bySlot := make(map[domain.ApplicantID]domain.SlotID, len(interviews))
	for _, iv := range interviews {
		bySlot[iv.Applicant] = iv.Slot.ID
	}

	for i, app := range m.applications {
		if app.Withdrawn {
			continue
		}
		if slotID, ok := bySlot[app.ApplicantID]; ok {
			id := slotID
			m.applications[i].Slot = &id
		}
	}

	m.committed = append(m.committed, interviews...)
	return nil
}

// Committed returns every interview ever passed to SaveScheduledInterviews,
// for test assertions.
func (m *Memory) Committed() []domain.Interview {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Interview, len(m.committed))
	copy(out, m.committed)
	return out
}
