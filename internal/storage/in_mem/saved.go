package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/domain"
)

// SavedStore holds user/article pairings for one list kind (bookmarks or
// read-later). Uniqueness by (userID, articleID) is enforced here with a
// check before insert; removal deletes the pairing outright.
type SavedStore struct {
	kind string

	mu      sync.RWMutex
	byUser  map[string]map[int]domain.SavedEntry
	nowFunc func() time.Time
}

func NewSavedStore(kind string) *SavedStore {
	return &SavedStore{
		kind:    kind,
		byUser:  make(map[string]map[int]domain.SavedEntry),
		nowFunc: time.Now,
	}
}

func (s *SavedStore) Add(ctx context.Context, userID string, articleID int) (domain.SavedEntry, error) {
	if userID == "" {
		return domain.SavedEntry{}, apperr.NewValidation("userId is required")
	}
	if articleID <= 0 {
		return domain.SavedEntry{}, apperr.NewValidation("articleId must be a positive integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.byUser[userID]
	if !ok {
		entries = make(map[int]domain.SavedEntry)
		s.byUser[userID] = entries
	}
	if existing, ok := entries[articleID]; ok {
		return existing, nil
	}

	entry := domain.SavedEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: s.nowFunc(),
	}
	entries[articleID] = entry
	return entry, nil
}

func (s *SavedStore) Remove(ctx context.Context, userID string, articleID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.byUser[userID]
	if !ok {
		return apperr.NewNotFound(s.kind, articleID)
	}
	if _, ok := entries[articleID]; !ok {
		return apperr.NewNotFound(s.kind, articleID)
	}
	delete(entries, articleID)
	return nil
}

func (s *SavedStore) List(ctx context.Context, userID string) []domain.SavedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SavedEntry, 0, len(s.byUser[userID]))
	for _, entry := range s.byUser[userID] {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *SavedStore) Contains(ctx context.Context, userID string, articleID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byUser[userID][articleID]
	return ok
}

