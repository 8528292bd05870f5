package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"complaint-service/internal/metrics"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

const MinAppealMessageLength = 20

type AppealService struct {
	repo    *repository.ComplaintRepository
	metrics *metrics.Recorder
}

func NewAppealService(repo *repository.ComplaintRepository, recorder *metrics.Recorder) *AppealService {
	return &AppealService{repo: repo, metrics: recorder}
}

type AppealInput struct {
	Message        string
	PhotoReference string
}

// RaiseAppeal lets the citizen contest a rejection, once per complaint.
func (s *AppealService) RaiseAppeal(ctx context.Context, id string, input AppealInput) (*model.Complaint, error) {
	message := strings.TrimSpace(input.Message)

	updated, err := s.repo.Replace(ctx, id, func(c *model.Complaint) error {
		if c.HasAppealed() {
			return ErrAlreadyAppealed
		}
		if c.Status != model.ComplaintStatusRejected {
			return ErrInvalidState
		}
		if utf8.RuneCountInString(message) < MinAppealMessageLength {
			return validationError("appeal message must be at least %d characters", MinAppealMessageLength)
		}

		now := s.repo.Now()
		c.Status = model.ComplaintStatusAppealRaised
		c.AppealMessage = message
		c.AppealPhotoReference = strings.TrimSpace(input.PhotoReference)
		c.AppealRaisedAt = &now
		c.Timeline = append(c.Timeline, model.NewTimelineEntry(model.TimelineStepAppealRaised, now))
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.metrics.AppealRaised()
	return updated, nil
}
