// Package report renders the operator-facing summary of a scheduling run
// (spec §6.4): scheduled count, allocation ratio, missing-P1 count, and
// per-interviewer load. Grounded on the print statements of the original
// schedule_interviews management command, restructured as pure functions
// returning strings instead of printing directly.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bjornarhem/bips/internal/domain"
)

// LoadEntry is one interviewer's interview count, used for the
// above-threshold load listing.
type LoadEntry struct {
	Interviewer domain.InterviewerID
	Count       int
}

// Summary aggregates everything the operator surface needs to print after
// a run.
type Summary struct {
	Scheduled       int
	Allocated       int
	TotalApplicants int
	MissingP1Count  int
	OverloadedAbove []LoadEntry
}

// Build computes a Summary from the engine's output. appliedJobs is the
// full applicant-to-jobs map the run started from (not just the
// unallocated remainder), so TotalApplicants reflects every applicant who
// applied, whether or not they ended up scheduled.
func Build(interviews []domain.Interview, appliedJobs map[domain.ApplicantID][]domain.Job, loadThreshold int) Summary {
	s := Summary{
		Scheduled:       len(interviews),
		TotalApplicants: len(appliedJobs),
	}
	s.Allocated = s.TotalApplicants - unallocatedCount(interviews, appliedJobs)

	for _, iv := range interviews {
		assigned := toSet(iv.Interviewers)
		for _, job := range appliedJobs[iv.Applicant] {
			if !intersects(assigned, job.P1) {
				s.MissingP1Count++
				break
			}
		}
	}

	counts := LoadReport(interviews)
	for _, entry := range counts {
		if entry.Count > loadThreshold {
			s.OverloadedAbove = append(s.OverloadedAbove, entry)
		}
	}
	return s
}

func unallocatedCount(interviews []domain.Interview, appliedJobs map[domain.ApplicantID][]domain.Job) int {
	scheduled := make(map[domain.ApplicantID]bool, len(interviews))
	for _, iv := range interviews {
		scheduled[iv.Applicant] = true
	}
	unallocated := 0
	for applicant := range appliedJobs {
		if !scheduled[applicant] {
			unallocated++
		}
	}
	return unallocated
}

// LoadReport returns every interviewer's interview count, sorted by
// descending count then ascending id for determinism.
func LoadReport(interviews []domain.Interview) []LoadEntry {
	counts := make(map[domain.InterviewerID]int)
	for _, iv := range interviews {
		for _, id := range iv.Interviewers {
			counts[id]++
		}
	}
	entries := make([]LoadEntry, 0, len(counts))
	for id, count := range counts {
		entries = append(entries, LoadEntry{Interviewer: id, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Interviewer < entries[j].Interviewer
	})
	return entries
}

// Render formats a Summary into the multi-line operator-facing text spec
// §6.4 describes.
func Render(s Summary, loadThreshold int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scheduled %d interviews.\n", s.Scheduled)
	fmt.Fprintf(&b, "%d out of %d applicants got an interview.\n", s.Allocated, s.TotalApplicants)
	fmt.Fprintf(&b, "There were %d interviews where not all applied jobs had a first priority interviewer present.\n", s.MissingP1Count)
	fmt.Fprintf(&b, "Interviewers with more than %d interviews:\n", loadThreshold)
	for _, entry := range s.OverloadedAbove {
		fmt.Fprintf(&b, "  interviewer %d: %d\n", entry.Interviewer, entry.Count)
	}
	return b.String()
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
