package database

import (
	"sync"

	"github.com/sahilchouksey/university-catalog/model"
)

// MemoryStore is an in-memory Storage used for local development and tests.
// Documents are deep-copied on every read and write so callers never alias
// the stored tree, matching the whole-document semantics of the SQL store.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*model.University
	order   []string
	orphans []model.OrphanAsset
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*model.University),
		nextID: 1,
	}
}

func (s *MemoryStore) Init() error        { return nil }
func (s *MemoryStore) Close() error       { return nil }
func (s *MemoryStore) HealthCheck() error { return nil }

func (s *MemoryStore) CreateUniversity(u *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := cloneUniversity(u)
	s.byID[u.ID] = clone
	s.order = append(s.order, u.ID)
	return nil
}

func (s *MemoryStore) GetUniversity(id string) (*model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUniversity(stored), nil
}

func (s *MemoryStore) ListUniversities(offset, limit int, search string) ([]model.University, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*model.University
	for _, id := range s.order {
		u := s.byID[id]
		if search == "" || u.NameMatches(search) {
			matched = append(matched, u)
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.University{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]model.University, 0, end-offset)
	for _, u := range matched[offset:end] {
		page = append(page, *cloneUniversity(u))
	}
	return page, total, nil
}

func (s *MemoryStore) SearchUniversities(query string) ([]model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []model.University
	for _, id := range s.order {
		u := s.byID[id]
		if u.NameMatches(query) || u.TreeMatches(query) {
			matched = append(matched, *cloneUniversity(u))
		}
	}
	return matched, nil
}

func (s *MemoryStore) SaveUniversity(u *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[u.ID]; !ok {
		return ErrNotFound
	}
	s.byID[u.ID] = cloneUniversity(u)
	return nil
}

func (s *MemoryStore) DeleteUniversity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) AddOrphanAsset(o model.OrphanAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextID
	s.nextID++
	s.orphans = append(s.orphans, o)
	return nil
}

func (s *MemoryStore) ListOrphanAssets(limit int) ([]model.OrphanAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.orphans)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.OrphanAsset, n)
	copy(out, s.orphans[:n])
	return out, nil
}

func (s *MemoryStore) BumpOrphanAttempts(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orphans {
		if s.orphans[i].ID == id {
			s.orphans[i].Attempts++
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) RemoveOrphanAsset(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orphans {
		if s.orphans[i].ID == id {
			s.orphans = append(s.orphans[:i], s.orphans[i+1:]...)
			return nil
		}
	}
	return nil
}

func cloneUniversity(u *model.University) *model.University {
	clone := *u
	clone.Image = cloneStringPtr(u.Image)
	clone.PDF = cloneStringPtr(u.PDF)
	clone.NAACGrade = cloneStringPtr(u.NAACGrade)
	clone.RankedBy = cloneStringPtr(u.RankedBy)
	clone.Categories = make([]model.Category, len(u.Categories))
	for i := range u.Categories {
		clone.Categories[i] = cloneCategory(&u.Categories[i])
	}
	return &clone
}

func cloneCategory(c *model.Category) model.Category {
	clone := *c
	clone.PDF = cloneStringPtr(c.PDF)
	clone.Courses = make([]model.Course, len(c.Courses))
	for i := range c.Courses {
		clone.Courses[i] = c.Courses[i]
		clone.Courses[i].PDF = cloneStringPtr(c.Courses[i].PDF)
	}
	return clone
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
