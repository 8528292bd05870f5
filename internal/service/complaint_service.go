package service

import (
	"context"
	"errors"

	"complaint-service/internal/metrics"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
	"complaint-service/internal/view"
)

type ComplaintService struct {
	repo    *repository.ComplaintRepository
	metrics *metrics.Recorder
}

func NewComplaintService(repo *repository.ComplaintRepository, recorder *metrics.Recorder) *ComplaintService {
	return &ComplaintService{repo: repo, metrics: recorder}
}

type SubmitInput struct {
	Category       string
	Ward           string
	Zone           string
	Description    string
	PhotoReference string
	Severity       string
	CitizenName    string
	CitizenPhone   string
}

// Submit files a new complaint on behalf of a citizen.
func (s *ComplaintService) Submit(ctx context.Context, input SubmitInput) (*model.Complaint, error) {
	complaint, err := s.repo.Create(ctx, repository.NewComplaint{
		Category:       input.Category,
		Ward:           input.Ward,
		Zone:           input.Zone,
		Description:    input.Description,
		PhotoReference: input.PhotoReference,
		Severity:       model.ParseSeverity(input.Severity),
		Citizen: model.Citizen{
			Name:  input.CitizenName,
			Phone: input.CitizenPhone,
		},
	})
	if err != nil {
		s.metrics.StoreFailure("create")
		return nil, translate(err)
	}
	s.metrics.ComplaintCreated()
	return complaint, nil
}

func (s *ComplaintService) Get(ctx context.Context, id string) (*model.Complaint, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.metrics.StoreFailure("get")
		}
		return nil, translate(err)
	}
	return complaint, nil
}

// List returns the management view: filtered by criteria, then sorted for
// display. On a store failure the list is empty and the error is returned.
func (s *ComplaintService) List(ctx context.Context, criteria view.Criteria) ([]model.Complaint, error) {
	complaints, err := s.repo.GetAll(ctx)
	if err != nil {
		s.metrics.StoreFailure("list")
		return []model.Complaint{}, translate(err)
	}
	return view.Sort(view.Filter(complaints, criteria)), nil
}

func (s *ComplaintService) Summary(ctx context.Context) (view.Summary, error) {
	complaints, err := s.repo.GetAll(ctx)
	if err != nil {
		s.metrics.StoreFailure("summary")
		return view.Summarize(nil), translate(err)
	}
	return view.Summarize(complaints), nil
}
