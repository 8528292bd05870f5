package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"complaint-service/internal/model"
)

var ErrNotFound = errors.New("complaint not found")

const defaultIDPrefix = "CMP"

// RecordStore is the whole-collection persistence the repository runs on.
type RecordStore interface {
	Load(ctx context.Context) ([]model.Complaint, error)
	Save(ctx context.Context, complaints []model.Complaint) error
}

// Mutator changes one complaint in place. Returning an error aborts the
// operation before anything is written.
type Mutator func(c *model.Complaint) error

type NewComplaint struct {
	Category       string
	Ward           string
	Zone           string
	Description    string
	PhotoReference string
	Severity       model.Severity
	Citizen        model.Citizen
}

type ComplaintRepository struct {
	store    RecordStore
	idPrefix string
	now      func() time.Time

	// mu serialises load-modify-store cycles inside this process.
	mu sync.Mutex
}

type Option func(*ComplaintRepository)

func WithIDPrefix(prefix string) Option {
	return func(r *ComplaintRepository) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			r.idPrefix = prefix
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *ComplaintRepository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewComplaintRepository(store RecordStore, opts ...Option) *ComplaintRepository {
	r := &ComplaintRepository{
		store:    store,
		idPrefix: defaultIDPrefix,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now is the clock every mutation timestamps with.
func (r *ComplaintRepository) Now() time.Time {
	return r.now()
}

func (r *ComplaintRepository) Create(ctx context.Context, input NewComplaint) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaints, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	complaint := model.Complaint{
		ID:             r.nextID(complaints),
		Category:       strings.TrimSpace(input.Category),
		Ward:           strings.TrimSpace(input.Ward),
		Zone:           strings.TrimSpace(input.Zone),
		Description:    strings.TrimSpace(input.Description),
		PhotoReference: input.PhotoReference,
		Severity:       input.Severity,
		Citizen: model.Citizen{
			Name:  strings.TrimSpace(input.Citizen.Name),
			Phone: strings.TrimSpace(input.Citizen.Phone),
		},
		CreatedAt: now,
		UpdatedAt: now,
		Status:    model.ComplaintStatusPendingVerification,
		Timeline:  []model.TimelineEntry{},
		AuditLog:  []model.AuditEntry{},
	}
	complaint.Normalize()

	complaints = append(complaints, complaint)
	if err := r.store.Save(ctx, complaints); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// GetAll returns every complaint. On a store failure it returns an empty
// list together with the error so read-only callers can still render.
func (r *ComplaintRepository) GetAll(ctx context.Context) ([]model.Complaint, error) {
	complaints, err := r.store.Load(ctx)
	for i := range complaints {
		complaints[i].Normalize()
	}
	return complaints, err
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	complaints, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(complaints, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	complaint := complaints[idx]
	complaint.Normalize()
	return &complaint, nil
}

// Replace is the only write path for an existing complaint: load, mutate the
// matching record, stamp UpdatedAt, save the whole list.
func (r *ComplaintRepository) Replace(ctx context.Context, id string, mutate Mutator) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaints, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(complaints, id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	working := complaints[idx]
	working.Normalize()
	working.Timeline = append([]model.TimelineEntry(nil), working.Timeline...)
	working.AuditLog = append([]model.AuditEntry(nil), working.AuditLog...)
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.UpdatedAt = r.now()
	complaints[idx] = working

	if err := r.store.Save(ctx, complaints); err != nil {
		return nil, err
	}
	return &working, nil
}

func (r *ComplaintRepository) nextID(existing []model.Complaint) string {
	taken := make(map[string]struct{}, len(existing))
	var maxSeq int64
	prefix := r.idPrefix + "-"
	for _, c := range existing {
		taken[c.ID] = struct{}{}
		if !strings.HasPrefix(c.ID, prefix) {
			continue
		}
		if seq, err := strconv.ParseInt(strings.TrimPrefix(c.ID, prefix), 10, 64); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	for seq := maxSeq + 1; ; seq++ {
		id := fmt.Sprintf("%s%06d", prefix, seq)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func indexOf(complaints []model.Complaint, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range complaints {
		if complaints[i].ID == id {
			return i
		}
	}
	return -1
}
