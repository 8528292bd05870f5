// Package view derives display-ordered subsets of complaints. Every function
// is pure: inputs are never modified and a fresh slice is returned.
package view

import (
	"sort"
	"strings"

	"complaint-service/internal/model"
)

// Criteria mirrors the dashboard filter bar. Zero values match everything.
type Criteria struct {
	Search   string
	Status   model.ComplaintStatus
	Ward     string
	Category string
}

func Filter(complaints []model.Complaint, criteria Criteria) []model.Complaint {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	ward := strings.TrimSpace(criteria.Ward)
	category := strings.TrimSpace(criteria.Category)

	out := make([]model.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.ID), search) &&
			!strings.Contains(strings.ToLower(c.Citizen.Name), search) {
			continue
		}
		if criteria.Status != "" && c.Status != criteria.Status {
			continue
		}
		if ward != "" && c.Ward != ward {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort orders escalated complaints first, then by severity, then newest
// first. Equal keys keep their input order.
func Sort(complaints []model.Complaint) []model.Complaint {
	out := make([]model.Complaint, len(complaints))
	copy(out, complaints)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Escalated != b.Escalated {
			return a.Escalated
		}
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra > rb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

type Summary struct {
	Total     int                           `json:"total"`
	ByStatus  map[model.ComplaintStatus]int `json:"byStatus"`
	Escalated int                           `json:"escalated"`
	Appealed  int                           `json:"appealed"`
}

// Summarize counts complaints for the dashboard header. Every status is
// present in ByStatus, zero or not.
func Summarize(complaints []model.Complaint) Summary {
	summary := Summary{ByStatus: make(map[model.ComplaintStatus]int)}
	for _, status := range model.ComplaintStatuses() {
		summary.ByStatus[status] = 0
	}
	for _, c := range complaints {
		summary.Total++
		summary.ByStatus[c.Status]++
		if c.Escalated {
			summary.Escalated++
		}
		if c.HasAppealed() {
			summary.Appealed++
		}
	}
	return summary
}
