package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
	"complaint-service/internal/repository"
	"complaint-service/internal/store"
)

var (
	adminPrincipal  = model.Principal{UserID: "u-admin", Name: "Ward Admin", Role: model.UserRoleAdmin}
	viewerPrincipal = model.Principal{UserID: "u-viewer", Role: model.UserRoleViewer}
)

type services struct {
	repo       *repository.ComplaintRepository
	complaints *ComplaintService
	workflow   *WorkflowService
	appeals    *AppealService
}

func newServices(t *testing.T) services {
	t.Helper()
	current := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	rs := store.NewRecordStore(store.NewMemoryKV(), store.DefaultKey, zerolog.Nop())
	repo := repository.NewComplaintRepository(rs, repository.WithClock(clock))
	return services{
		repo:       repo,
		complaints: NewComplaintService(repo, nil),
		workflow:   NewWorkflowService(repo, nil),
		appeals:    NewAppealService(repo, nil),
	}
}

func (s services) submit(t *testing.T) *model.Complaint {
	t.Helper()
	c, err := s.complaints.Submit(context.Background(), SubmitInput{
		Category:     "Water Logging",
		Ward:         "W1",
		Description:  "Water standing on the main road for two days",
		Severity:     "High",
		CitizenName:  "Ravi",
		CitizenPhone: "9000000000",
	})
	require.NoError(t, err)
	return c
}

func (s services) reject(t *testing.T, id string) *model.Complaint {
	t.Helper()
	c, err := s.workflow.UpdateStatus(context.Background(), adminPrincipal, id, StatusUpdate{
		Status:          model.ComplaintStatusRejected,
		RejectionReason: string(model.RejectionReasonInsufficientEvidence),
		Comment:         "Not enough evidence provided in submitted photo.",
	})
	require.NoError(t, err)
	return c
}

type failingStore struct{}

func (failingStore) Load(context.Context) ([]model.Complaint, error) {
	return []model.Complaint{}, store.ErrStoreFailure
}

func (failingStore) Save(context.Context, []model.Complaint) error {
	return store.ErrStoreFailure
}
