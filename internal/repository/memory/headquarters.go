package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
)

type HeadquartersStore struct {
	mu    sync.RWMutex
	items map[string]headquarters.Headquarters
}

func NewHeadquartersStore() *HeadquartersStore {
	return &HeadquartersStore{items: make(map[string]headquarters.Headquarters)}
}

func (s *HeadquartersStore) Create(_ context.Context, h headquarters.Headquarters) (headquarters.Headquarters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Name == h.Name {
			return headquarters.Headquarters{}, headquarters.ErrHeadquartersNameExists
		}
	}

	h.ID = uuid.NewString()
	h.CreatedAt = time.Now()
	s.items[h.ID] = h
	return h, nil
}

func (s *HeadquartersStore) GetByID(_ context.Context, id string) (headquarters.Headquarters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.items[id]
	if !ok {
		return headquarters.Headquarters{}, headquarters.ErrHeadquartersNotFound
	}
	return h, nil
}

func (s *HeadquartersStore) List(_ context.Context) ([]headquarters.Headquarters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]headquarters.Headquarters, 0, len(s.items))
	for _, h := range s.items {
		result = append(result, h)
	}
	return result, nil
}
