package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
	"complaint-service/internal/store"
)

type stubStore struct {
	complaints []model.Complaint
	loadErr    error
	saveErr    error
	saves      int
}

func (s *stubStore) Load(context.Context) ([]model.Complaint, error) {
	if s.loadErr != nil {
		return []model.Complaint{}, s.loadErr
	}
	out := make([]model.Complaint, len(s.complaints))
	copy(out, s.complaints)
	return out, nil
}

func (s *stubStore) Save(_ context.Context, complaints []model.Complaint) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.complaints = complaints
	return nil
}

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newMemoryRepo(opts ...Option) *ComplaintRepository {
	rs := store.NewRecordStore(store.NewMemoryKV(), store.DefaultKey, zerolog.Nop())
	return NewComplaintRepository(rs, opts...)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newMemoryRepo(WithClock(fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))
	ctx := context.Background()

	created, err := repo.Create(ctx, NewComplaint{
		Category:    " Water Logging ",
		Ward:        "W1",
		Description: "Road flooded near the market",
		Citizen:     model.Citizen{Name: " Ravi ", Phone: "555"},
	})
	require.NoError(t, err)

	assert.Equal(t, "CMP-000001", created.ID)
	assert.Equal(t, "Water Logging", created.Category)
	assert.Equal(t, "Ravi", created.Citizen.Name)
	assert.Equal(t, model.ComplaintStatusPendingVerification, created.Status)
	assert.Equal(t, model.SeverityMedium, created.Severity)
	assert.False(t, created.Escalated)
	assert.Empty(t, created.Timeline)
	assert.Empty(t, created.AuditLog)
	assert.Nil(t, created.AppealRaisedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *stored)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	st := &stubStore{complaints: []model.Complaint{
		{ID: "1714557600000"},
		{ID: "TKT-000009"},
		{ID: "TKT-000004"},
	}}
	repo := NewComplaintRepository(st, WithIDPrefix("TKT"))
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		c, err := repo.Create(ctx, NewComplaint{Category: "Garbage"})
		require.NoError(t, err)
		assert.False(t, seen[c.ID], c.ID)
		seen[c.ID] = true
	}
	assert.True(t, seen["TKT-000010"])
	assert.True(t, seen["TKT-000014"])
	assert.Len(t, st.complaints, 8)
}

func TestCreateDoesNotOverwriteOnReadFailure(t *testing.T) {
	st := &stubStore{loadErr: store.ErrStoreFailure}
	repo := NewComplaintRepository(st)

	_, err := repo.Create(context.Background(), NewComplaint{Category: "Garbage"})
	assert.ErrorIs(t, err, store.ErrStoreFailure)
	assert.Zero(t, st.saves)
}

func TestGetAllReturnsEmptyOnFailure(t *testing.T) {
	repo := NewComplaintRepository(&stubStore{loadErr: store.ErrStoreFailure})

	complaints, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, store.ErrStoreFailure)
	assert.Empty(t, complaints)
}

func TestGetByIDUnknown(t *testing.T) {
	repo := newMemoryRepo()

	_, err := repo.GetByID(context.Background(), "CMP-404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceUpdatesAndStamps(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newMemoryRepo(WithClock(fixedClock(start)))
	ctx := context.Background()

	created, err := repo.Create(ctx, NewComplaint{Category: "Streetlight"})
	require.NoError(t, err)

	updated, err := repo.Replace(ctx, created.ID, func(c *model.Complaint) error {
		c.Status = model.ComplaintStatusVerified
		c.Timeline = append(c.Timeline, model.NewTimelineEntry("Verified", start))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusVerified, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusVerified, stored.Status)
	assert.Len(t, stored.Timeline, 1)
}

func TestReplaceMutatorErrorLeavesStoreUntouched(t *testing.T) {
	st := &stubStore{complaints: []model.Complaint{{ID: "CMP-000001", Status: model.ComplaintStatusVerified}}}
	repo := NewComplaintRepository(st)
	boom := errors.New("rejected by rule")

	_, err := repo.Replace(context.Background(), "CMP-000001", func(c *model.Complaint) error {
		c.Status = model.ComplaintStatusResolved
		c.Timeline = append(c.Timeline, model.NewTimelineEntry("Resolved", time.Now()))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, st.saves)
	assert.Equal(t, model.ComplaintStatusVerified, st.complaints[0].Status)
	assert.Empty(t, st.complaints[0].Timeline)
}

func TestReplaceUnknownID(t *testing.T) {
	st := &stubStore{}
	repo := NewComplaintRepository(st)
	called := false

	_, err := repo.Replace(context.Background(), "CMP-000001", func(*model.Complaint) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
	assert.Zero(t, st.saves)
}

func TestReplaceSaveFailure(t *testing.T) {
	st := &stubStore{
		complaints: []model.Complaint{{ID: "CMP-000001"}},
		saveErr:    store.ErrStoreFailure,
	}
	repo := NewComplaintRepository(st)

	_, err := repo.Replace(context.Background(), "CMP-000001", func(c *model.Complaint) error {
		c.Escalated = true
		return nil
	})
	assert.ErrorIs(t, err, store.ErrStoreFailure)
}

func TestLegacySlotSurvivesCreate(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	legacy := `[
		{"id":1714557600000,"category":"Garbage","status":"Resolved","escalated":"true",
		 "citizen":{"name":"Asha","phone":98450},
		 "timeline":[{"step":"Resolved","status":"completed","date":"5/1/2024, 10:00:00 AM"}],
		 "auditLog":[{"id":"","action":"STATUS_UPDATE","byAdmin":"admin","timestamp":"5/1/2024, 10:00:00 AM","previousStatus":"Pending Verification","newStatus":"Resolved"}]},
		{"id":"CMP-000003","timeline":{"unexpected":"shape"}}
	]`
	require.NoError(t, kv.Set(ctx, store.DefaultKey, []byte(legacy)))
	repo := NewComplaintRepository(store.NewRecordStore(kv, store.DefaultKey, zerolog.Nop()))

	before, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "1714557600000", before[0].ID)
	assert.True(t, before[0].Escalated)

	created, err := repo.Create(ctx, NewComplaint{Category: "Streetlight"})
	require.NoError(t, err)
	_, err = repo.Replace(ctx, "1714557600000", func(c *model.Complaint) error {
		c.OfficerComment = "checked again"
		return nil
	})
	require.NoError(t, err)

	after, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, "1714557600000", after[0].ID)
	assert.Equal(t, model.ComplaintStatusResolved, after[0].Status)
	assert.Len(t, after[0].Timeline, 1)
	assert.Len(t, after[0].AuditLog, 1)
	assert.Equal(t, "checked again", after[0].OfficerComment)
	assert.Equal(t, created.ID, after[1].ID)

	raw, err := kv.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"unexpected":"shape"`)
}
