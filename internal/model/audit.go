package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TimelineStepCompleted    = "completed"
	TimelineStepEscalated    = "Escalated to Higher Authority"
	TimelineStepAppealRaised = "Appeal Raised by Citizen"
)

type TimelineEntry struct {
	Step   string    `json:"step"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

func NewTimelineEntry(step string, at time.Time) TimelineEntry {
	return TimelineEntry{Step: step, Status: TimelineStepCompleted, Date: at}
}

// UnmarshalJSON accepts the locale date strings older records carry.
func (e *TimelineEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Step   looseString `json:"step"`
		Status looseString `json:"status"`
		Date   looseTime   `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Step = string(aux.Step)
	e.Status = string(aux.Status)
	e.Date = time.Time(aux.Date)
	return nil
}

type AuditAction string

const (
	AuditActionStatusUpdate AuditAction = "STATUS_UPDATE"
	AuditActionEscalate     AuditAction = "ESCALATE"
)

// AuditEntry records one admin-initiated mutation. Reason and Comment are
// empty unless the action carried them. ID is a UUID for new entries; older
// entries keep whatever id they were written with, possibly none.
type AuditEntry struct {
	ID             string          `json:"id"`
	Action         AuditAction     `json:"action"`
	ByAdmin        string          `json:"byAdmin"`
	Timestamp      time.Time       `json:"timestamp"`
	PreviousStatus ComplaintStatus `json:"previousStatus"`
	NewStatus      ComplaintStatus `json:"newStatus"`
	Reason         string          `json:"reason"`
	Comment        string          `json:"comment"`
}

func NewAuditEntry(action AuditAction, byAdmin string, at time.Time, prev, next ComplaintStatus) AuditEntry {
	return AuditEntry{
		ID:             uuid.NewString(),
		Action:         action,
		ByAdmin:        byAdmin,
		Timestamp:      at,
		PreviousStatus: prev,
		NewStatus:      next,
	}
}

func (e *AuditEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID             looseString `json:"id"`
		Action         looseString `json:"action"`
		ByAdmin        looseString `json:"byAdmin"`
		Timestamp      looseTime   `json:"timestamp"`
		PreviousStatus looseString `json:"previousStatus"`
		NewStatus      looseString `json:"newStatus"`
		Reason         looseString `json:"reason"`
		Comment        looseString `json:"comment"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.ID = string(aux.ID)
	e.Action = AuditAction(aux.Action)
	e.ByAdmin = string(aux.ByAdmin)
	e.Timestamp = time.Time(aux.Timestamp)
	e.PreviousStatus = storedStatus(string(aux.PreviousStatus))
	e.NewStatus = storedStatus(string(aux.NewStatus))
	e.Reason = string(aux.Reason)
	e.Comment = string(aux.Comment)
	return nil
}

// storedStatus canonicalises a status found in history, keeping unknown
// values verbatim since audit entries are never rewritten.
func storedStatus(raw string) ComplaintStatus {
	if status, ok := ParseComplaintStatus(raw); ok {
		return status
	}
	return ComplaintStatus(raw)
}
