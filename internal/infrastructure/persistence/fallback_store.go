package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
	"github.com/eventhive/events-service/internal/fileutil"
)

// MaxFallbackFileSize is the maximum allowed size for the fallback file (4MB).
// This prevents denial of service from maliciously crafted large files.
const MaxFallbackFileSize = 4 << 20 // 4MB

// checkContext checks if the context is canceled and returns the error if so.
// This helper eliminates repeated select/case patterns throughout the stores.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// FallbackStore keeps event snapshots in a single JSON document on disk.
// It is the durability net behind the hybrid repository: when the primary
// store is unreachable, writes land here and reads are served from here.
type FallbackStore struct {
	path string
	mu   sync.RWMutex
}

// fallbackDocument is the on-disk layout of the store.
type fallbackDocument struct {
	Events []eventDTO `json:"events"`
}

// NewFallbackStore creates a fallback store writing to the given file.
// The parent directory is created if needed.
func NewFallbackStore(path string) (*FallbackStore, error) {
	const op = "persistence.NewFallbackStore"

	if path == "" {
		return nil, errors.Config(op, "fallback store path is required")
	}
	// 0700: snapshots may hold unpublished event details
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.IOWrap(err, op, "failed to create fallback directory")
	}
	return &FallbackStore{path: path}, nil
}

// Save writes or replaces an event snapshot.
func (s *FallbackStore) Save(ctx context.Context, e *event.Event) error {
	const op = "persistence.FallbackStore.Save"

	if err := checkContext(ctx); err != nil {
		return errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(op)
	if err != nil {
		return err
	}

	dto := toDTO(e)
	replaced := false
	for i, existing := range doc.Events {
		if existing.ID == dto.ID {
			doc.Events[i] = dto
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Events = append(doc.Events, dto)
	}

	return s.write(op, doc)
}

// GetByID loads an event snapshot.
func (s *FallbackStore) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	const op = "persistence.FallbackStore.GetByID"

	if err := checkContext(ctx); err != nil {
		return nil, errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(op)
	if err != nil {
		return nil, err
	}

	want := id.String()
	for _, dto := range doc.Events {
		if dto.ID == want {
			return fromDTO(dto)
		}
	}
	return nil, errors.NotFound(op, "event not found")
}

// All returns every stored snapshot. Used by list degradation paths and
// by operational tooling inspecting the fallback file.
func (s *FallbackStore) All(ctx context.Context) ([]*event.Event, error) {
	const op = "persistence.FallbackStore.All"

	if err := checkContext(ctx); err != nil {
		return nil, errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(op)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(doc.Events))
	for _, dto := range doc.Events {
		e, err := fromDTO(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// load reads the document; a missing file is an empty store.
// Callers must hold the lock.
func (s *FallbackStore) load(op string) (fallbackDocument, error) {
	var doc fallbackDocument

	data, err := fileutil.ReadFileLimited(s.path, MaxFallbackFileSize)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, errors.IOWrap(err, op, "failed to read fallback file")
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, errors.IOWrap(err, op, "fallback file is corrupt")
	}
	return doc, nil
}

// write persists the document atomically. Callers must hold the lock.
func (s *FallbackStore) write(op string, doc fallbackDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.IOWrap(err, op, "failed to marshal fallback document")
	}
	if err := fileutil.AtomicWriteFile(s.path, data, 0600); err != nil {
		return errors.IOWrap(err, op, "failed to write fallback file")
	}
	return nil
}
