package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"complaint-service/internal/model"
)

const DefaultKey = "complaints"

// RecordStore reads and writes the full complaint list under one key.
type RecordStore struct {
	kv  KV
	key string
	log zerolog.Logger
}

func NewRecordStore(kv KV, key string, log zerolog.Logger) *RecordStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultKey
	}
	return &RecordStore{
		kv:  kv,
		key: key,
		log: log.With().Str("component", "record_store").Str("slot", key).Logger(),
	}
}

func (s *RecordStore) Key() string {
	return s.key
}

// Load returns the normalised collection. A missing or unparsable slot yields
// an empty list and no error. A medium failure yields an empty list together
// with an error wrapping ErrStoreFailure.
func (s *RecordStore) Load(ctx context.Context) ([]model.Complaint, error) {
	raw, err := s.read(ctx)
	if err != nil {
		return []model.Complaint{}, err
	}
	complaints, _, err := s.decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("treating slot as empty")
	}
	return complaints, nil
}

// Save replaces the slot with the given collection. Records in the slot that
// Load could not decode are written back unchanged after it, so a save never
// drops data it did not understand.
func (s *RecordStore) Save(ctx context.Context, complaints []model.Complaint) error {
	raw, err := s.read(ctx)
	if err != nil {
		return err
	}
	_, undecodable, err := s.decode(raw)
	if err != nil {
		return fmt.Errorf("%w: refusing to overwrite %s: %v", ErrStoreFailure, s.key, err)
	}

	elements := make([]json.RawMessage, 0, len(complaints)+len(undecodable))
	for _, c := range complaints {
		element, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", ErrStoreFailure, c.ID, err)
		}
		elements = append(elements, element)
	}
	if len(undecodable) > 0 {
		s.log.Warn().Int("records", len(undecodable)).Msg("carrying undecodable records over unchanged")
		elements = append(elements, undecodable...)
	}

	payload, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStoreFailure, s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		s.log.Error().Err(err).Int("records", len(elements)).Msg("write slot")
		return fmt.Errorf("%w: write %s: %v", ErrStoreFailure, s.key, err)
	}
	return nil
}

// read returns the raw slot; a missing slot is nil with no error.
func (s *RecordStore) read(ctx context.Context) ([]byte, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, nil
		}
		s.log.Error().Err(err).Msg("read slot")
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreFailure, s.key, err)
	}
	return raw, nil
}

// decode splits the slot into usable complaints and the raw elements that
// could not be turned into one. It fails only when the slot is not a JSON
// array at all.
func (s *RecordStore) decode(raw []byte) ([]model.Complaint, []json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Complaint{}, nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []model.Complaint{}, nil, fmt.Errorf("slot is not a JSON array: %w", err)
	}

	complaints := make([]model.Complaint, 0, len(elements))
	var undecodable []json.RawMessage
	for i, element := range elements {
		if bytes.Equal(bytes.TrimSpace(element), []byte("null")) {
			continue
		}
		var c model.Complaint
		if err := json.Unmarshal(element, &c); err != nil {
			s.log.Warn().Err(err).Int("index", i).Msg("skipping undecodable record")
			undecodable = append(undecodable, element)
			continue
		}
		c.Normalize()
		if c.ID == "" {
			s.log.Warn().Int("index", i).Msg("skipping record without id")
			undecodable = append(undecodable, element)
			continue
		}
		complaints = append(complaints, c)
	}
	return complaints, undecodable, nil
}
