package model

import (
	"encoding/json"
	"strings"
	"time"
)

type ComplaintStatus string

const (
	ComplaintStatusPendingVerification ComplaintStatus = "PendingVerification"
	ComplaintStatusVerified            ComplaintStatus = "Verified"
	ComplaintStatusInProgress          ComplaintStatus = "InProgress"
	ComplaintStatusResolved            ComplaintStatus = "Resolved"
	ComplaintStatusRejected            ComplaintStatus = "Rejected"
	ComplaintStatusAppealRaised        ComplaintStatus = "AppealRaised"
)

var complaintStatuses = []ComplaintStatus{
	ComplaintStatusPendingVerification,
	ComplaintStatusVerified,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusRejected,
	ComplaintStatusAppealRaised,
}

var statusLabels = map[ComplaintStatus]string{
	ComplaintStatusPendingVerification: "Pending Verification",
	ComplaintStatusVerified:            "Verified",
	ComplaintStatusInProgress:          "In Progress",
	ComplaintStatusResolved:            "Resolved",
	ComplaintStatusRejected:            "Rejected",
	ComplaintStatusAppealRaised:        "Appeal Raised",
}

// ComplaintStatuses returns the closed set of statuses in workflow order.
func ComplaintStatuses() []ComplaintStatus {
	out := make([]ComplaintStatus, len(complaintStatuses))
	copy(out, complaintStatuses)
	return out
}

func (s ComplaintStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human-readable name used for timeline steps.
func (s ComplaintStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseComplaintStatus accepts both the canonical value and the spaced label
// form written by older records ("In Progress"), ignoring case.
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if key == "" {
		return "", false
	}
	for _, status := range complaintStatuses {
		if strings.ToLower(string(status)) == key {
			return status, true
		}
	}
	if key == "pending" {
		return ComplaintStatusPendingVerification, true
	}
	return "", false
}

type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Rank orders severities for display; anything unknown counts as Medium.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityLow:
		return 1
	default:
		return 2
	}
}

func ParseSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return SeverityHigh
	case "low":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

type Citizen struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UnmarshalJSON accepts phone numbers stored as JSON numbers.
func (c *Citizen) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name  looseString `json:"name"`
		Phone looseString `json:"phone"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Name = string(aux.Name)
	c.Phone = string(aux.Phone)
	return nil
}

// Complaint is the single persisted record. Text fields use "" for unset,
// AppealRaisedAt uses nil.
type Complaint struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Ward           string          `json:"ward"`
	Zone           string          `json:"zone"`
	Description    string          `json:"description"`
	PhotoReference string          `json:"photoReference"`
	Severity       Severity        `json:"severity"`
	Citizen        Citizen         `json:"citizen"`
	CreatedAt      time.Time       `json:"createdAt"`
	Status         ComplaintStatus `json:"status"`
	OfficerComment string          `json:"officerComment"`
	ETA            string          `json:"eta"`
	Department     string          `json:"department"`
	Escalated      bool            `json:"escalated"`
	Timeline       []TimelineEntry `json:"timeline"`

	RejectionReason  string `json:"rejectionReason"`
	RejectionComment string `json:"rejectionComment"`

	AuditLog []AuditEntry `json:"auditLog"`

	AppealMessage        string     `json:"appealMessage"`
	AppealPhotoReference string     `json:"appealPhotoReference"`
	AppealRaisedAt       *time.Time `json:"appealRaisedAt"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Complaint) HasAppealed() bool {
	return c.AppealRaisedAt != nil && !c.AppealRaisedAt.IsZero()
}

// Normalize fills every optional field with its default so derived views
// never see a missing value.
func (c *Complaint) Normalize() {
	c.ID = strings.TrimSpace(c.ID)
	if status, ok := ParseComplaintStatus(string(c.Status)); ok {
		c.Status = status
	} else {
		c.Status = ComplaintStatusPendingVerification
	}
	c.Severity = ParseSeverity(string(c.Severity))
	if c.Timeline == nil {
		c.Timeline = []TimelineEntry{}
	}
	if c.AuditLog == nil {
		c.AuditLog = []AuditEntry{}
	}
	if c.AppealRaisedAt != nil && c.AppealRaisedAt.IsZero() {
		c.AppealRaisedAt = nil
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
}

// UnmarshalJSON tolerates records written by the browser client, where ids
// were numeric timestamps and optional fields could be null.
func (c *Complaint) UnmarshalJSON(data []byte) error {
	type plain Complaint
	aux := struct {
		*plain
		ID                   looseString `json:"id"`
		Category             looseString `json:"category"`
		Ward                 looseString `json:"ward"`
		Zone                 looseString `json:"zone"`
		Description          looseString `json:"description"`
		PhotoReference       looseString `json:"photoReference"`
		OfficerComment       looseString `json:"officerComment"`
		ETA                  looseString `json:"eta"`
		Department           looseString `json:"department"`
		Status               looseString `json:"status"`
		Severity             looseString `json:"severity"`
		Escalated            looseBool   `json:"escalated"`
		RejectionReason      looseString `json:"rejectionReason"`
		RejectionComment     looseString `json:"rejectionComment"`
		AppealMessage        looseString `json:"appealMessage"`
		AppealPhotoReference looseString `json:"appealPhotoReference"`
		CreatedAt            looseTime   `json:"createdAt"`
		UpdatedAt            looseTime   `json:"updatedAt"`
		AppealedAt           looseTime   `json:"appealRaisedAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = string(aux.ID)
	c.Category = string(aux.Category)
	c.Ward = string(aux.Ward)
	c.Zone = string(aux.Zone)
	c.Description = string(aux.Description)
	c.PhotoReference = string(aux.PhotoReference)
	c.OfficerComment = string(aux.OfficerComment)
	c.ETA = string(aux.ETA)
	c.Department = string(aux.Department)
	c.Status = ComplaintStatus(aux.Status)
	c.Severity = Severity(aux.Severity)
	c.Escalated = bool(aux.Escalated)
	c.RejectionReason = string(aux.RejectionReason)
	c.RejectionComment = string(aux.RejectionComment)
	c.AppealMessage = string(aux.AppealMessage)
	c.AppealPhotoReference = string(aux.AppealPhotoReference)
	c.CreatedAt = time.Time(aux.CreatedAt)
	c.UpdatedAt = time.Time(aux.UpdatedAt)
	c.AppealRaisedAt = nil
	if at := time.Time(aux.AppealedAt); !at.IsZero() {
		c.AppealRaisedAt = &at
	}
	return nil
}
