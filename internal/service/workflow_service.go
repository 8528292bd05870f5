package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"complaint-service/internal/metrics"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

const MinRejectionCommentLength = 30

type WorkflowService struct {
	repo    *repository.ComplaintRepository
	metrics *metrics.Recorder
}

func NewWorkflowService(repo *repository.ComplaintRepository, recorder *metrics.Recorder) *WorkflowService {
	return &WorkflowService{repo: repo, metrics: recorder}
}

type StatusUpdate struct {
	Status     model.ComplaintStatus
	Comment    string
	ETA        string
	Department string
	// RejectionReason is one of the model.RejectionReason codes; required
	// when Status is Rejected.
	RejectionReason string
	// OtherReason replaces the code when RejectionReason is Other.
	OtherReason string
}

func (s *WorkflowService) UpdateStatus(ctx context.Context, principal model.Principal, id string, update StatusUpdate) (*model.Complaint, error) {
	if !principal.CanManage() {
		return nil, ErrPermissionDenied
	}

	reason, err := validateStatusUpdate(update)
	if err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(update.Comment)
	eta := strings.TrimSpace(update.ETA)
	department := strings.TrimSpace(update.Department)

	updated, err := s.repo.Replace(ctx, id, func(c *model.Complaint) error {
		now := s.repo.Now()
		prev := c.Status

		c.Status = update.Status
		if comment != "" {
			c.OfficerComment = comment
		}
		if eta != "" {
			c.ETA = eta
		}
		if department != "" {
			c.Department = department
		}

		entry := model.NewAuditEntry(model.AuditActionStatusUpdate, principal.AuditName(), now, prev, update.Status)
		entry.Comment = comment
		if update.Status == model.ComplaintStatusRejected {
			c.RejectionReason = reason
			c.RejectionComment = comment
			entry.Reason = reason
		} else {
			c.RejectionReason = ""
			c.RejectionComment = ""
		}

		c.Timeline = append(c.Timeline, model.NewTimelineEntry(update.Status.Label(), now))
		c.AuditLog = append(c.AuditLog, entry)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.metrics.StatusChanged(string(update.Status))
	return updated, nil
}

// Escalate flags the complaint for higher authority. The flag and its
// timeline entry are set once; every call is still written to the audit log.
func (s *WorkflowService) Escalate(ctx context.Context, principal model.Principal, id string) (*model.Complaint, error) {
	if !principal.CanManage() {
		return nil, ErrPermissionDenied
	}

	updated, err := s.repo.Replace(ctx, id, func(c *model.Complaint) error {
		now := s.repo.Now()
		if !c.Escalated {
			c.Escalated = true
			c.Timeline = append(c.Timeline, model.NewTimelineEntry(model.TimelineStepEscalated, now))
		}
		c.AuditLog = append(c.AuditLog, model.NewAuditEntry(model.AuditActionEscalate, principal.AuditName(), now, c.Status, c.Status))
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.metrics.Escalated()
	return updated, nil
}

// validateStatusUpdate checks the target status and, for rejections, returns
// the reason text to store.
func validateStatusUpdate(update StatusUpdate) (string, error) {
	if !update.Status.Valid() {
		return "", validationError("unknown status %q", update.Status)
	}
	if update.Status == model.ComplaintStatusAppealRaised {
		return "", ErrInvalidState
	}
	if update.Status != model.ComplaintStatusRejected {
		return "", nil
	}

	if strings.TrimSpace(update.RejectionReason) == "" {
		return "", validationError("rejection reason is required")
	}
	code, ok := model.ParseRejectionReason(update.RejectionReason)
	if !ok {
		return "", validationError("unknown rejection reason %q", update.RejectionReason)
	}
	reason := string(code)
	if code == model.RejectionReasonOther {
		reason = strings.TrimSpace(update.OtherReason)
		if reason == "" {
			return "", validationError("a custom reason is required when rejection reason is Other")
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(update.Comment)) < MinRejectionCommentLength {
		return "", validationError("rejection comment must be at least %d characters", MinRejectionCommentLength)
	}
	return reason, nil
}
