package repository

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/Kosench/shortlink/internal/errors"
	"github.com/Kosench/shortlink/internal/model"
)

var _ LinkRepository = (*MemoryLinkRepository)(nil)

// MemoryLinkRepository is the process-wide registry of links. A single lock
// guards the map and every record's click history.
type MemoryLinkRepository struct {
	mu    sync.RWMutex
	links map[string]*model.LinkRecord
	now   func() time.Time
}

func NewMemoryLinkRepository(now func() time.Time) *MemoryLinkRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryLinkRepository{
		links: make(map[string]*model.LinkRecord),
		now:   now,
	}
}

func (r *MemoryLinkRepository) Has(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hasLocked(code)
}

func (r *MemoryLinkRepository) hasLocked(code string) bool {
	_, ok := r.links[code]
	return ok
}

// Get returns a snapshot; later clicks do not show up in it.
func (r *MemoryLinkRepository) Get(code string) (*model.LinkRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[code]
	if !ok {
		return nil, fmt.Errorf("shortcode '%s': %w", code, apperrors.ErrNotFound)
	}
	return link.Clone(), nil
}

func (r *MemoryLinkRepository) Create(code, originalURL string, validity time.Duration) (*model.LinkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasLocked(code) {
		return nil, fmt.Errorf("shortcode '%s': %w", code, apperrors.ErrDuplicateCode)
	}
	return r.insertLocked(code, originalURL, validity), nil
}

// CreateGenerated runs generate and the insert in one critical section, so
// two concurrent creations can never both be handed the same fresh code.
func (r *MemoryLinkRepository) CreateGenerated(generate GenerateFunc, originalURL string, validity time.Duration) (*model.LinkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := generate(r.hasLocked)
	if err != nil {
		return nil, err
	}
	if r.hasLocked(code) {
		return nil, apperrors.NewBusinessError(apperrors.ErrShortCodeGeneration.Code,
			fmt.Sprintf("generator returned taken code '%s'", code), nil)
	}
	return r.insertLocked(code, originalURL, validity), nil
}

func (r *MemoryLinkRepository) insertLocked(code, originalURL string, validity time.Duration) *model.LinkRecord {
	now := r.now().UTC()
	link := &model.LinkRecord{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		Expiry:      now.Add(validity),
		Clicks:      []model.ClickEvent{},
	}
	r.links[code] = link
	return link.Clone()
}

func (r *MemoryLinkRepository) AppendClick(code string, event model.ClickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[code]
	if !ok {
		return fmt.Errorf("shortcode '%s': %w", code, apperrors.ErrNotFound)
	}
	link.Clicks = append(link.Clicks, event)
	return nil
}

// RecordClick resolves code at event.Timestamp and appends the event when the
// link is still active. Expired links get no click.
func (r *MemoryLinkRepository) RecordClick(code string, event model.ClickEvent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[code]
	if !ok {
		return "", fmt.Errorf("shortcode '%s': %w", code, apperrors.ErrNotFound)
	}
	if link.IsExpired(event.Timestamp) {
		return "", fmt.Errorf("shortcode '%s' expired at %s: %w",
			code, link.Expiry.Format(time.RFC3339), apperrors.ErrExpired)
	}

	link.Clicks = append(link.Clicks, event)
	return link.OriginalURL, nil
}

func (r *MemoryLinkRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.links)
}
