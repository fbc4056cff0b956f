package user

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a process-local Store used for development (STORE_DRIVER=memory)
// and tests. Concurrent writers of the same transition follow last-writer-wins,
// the same as the Postgres repository.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
	byPhone map[string]uuid.UUID
	results map[uuid.UUID][]TestResult
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
		byPhone: make(map[string]uuid.UUID),
		results: make(map[uuid.UUID][]TestResult),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, ok := s.byEmail[email]; ok {
		return nil, ErrDuplicateEmail
	}
	if u.Phone != "" {
		if _, ok := s.byPhone[u.Phone]; ok {
			return nil, ErrDuplicatePhone
		}
	}

	stored := *u
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := s.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.users[stored.ID] = &stored
	s.byEmail[email] = stored.ID
	if stored.Phone != "" {
		s.byPhone[stored.Phone] = stored.ID
	}

	out := stored
	return &out, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, id uuid.UUID, p Profile, t progression.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.lockedForTransition(id, t)
	if err != nil {
		return err
	}

	u.DOB = p.DOB
	u.Gender = p.Gender
	u.Address = p.Address
	u.City = p.City
	u.State = p.State
	if p.Photo != nil {
		u.Photo = *p.Photo
	}
	if p.SkillLevel != nil {
		u.SkillLevel = *p.SkillLevel
	}
	u.Stage = t.To
	u.UpdatedAt = s.now()

	return nil
}

func (s *MemoryStore) UpdateStage(_ context.Context, id uuid.UUID, t progression.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.lockedForTransition(id, t)
	if err != nil {
		return err
	}
	u.Stage = t.To
	u.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) AppendResult(_ context.Context, r *TestResult, t progression.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.lockedForTransition(r.UserID, t)
	if err != nil {
		return err
	}

	stored := *r
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Answers = slices.Clone(r.Answers)
	if stored.Answers == nil {
		stored.Answers = []string{}
	}

	s.results[r.UserID] = append(s.results[r.UserID], stored)
	u.Stage = t.To
	u.UpdatedAt = s.now()

	r.ID = stored.ID
	return nil
}

// lockedForTransition returns the user when t still applies. s.mu must be held.
func (s *MemoryStore) lockedForTransition(id uuid.UUID, t progression.Transition) (*User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	current := u.Stage
	if current == "" {
		current = progression.StageSignup
	}
	if current != t.From && current != t.To {
		return nil, ErrStageChanged
	}
	return u, nil
}

func (s *MemoryStore) ListResults(_ context.Context, userID uuid.UUID) ([]TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.results[userID]
	out := make([]TestResult, 0, len(stored))
	// Walk backwards so equal timestamps keep newest-insert-first.
	for i := len(stored) - 1; i >= 0; i-- {
		r := stored[i]
		r.Answers = slices.Clone(r.Answers)
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b TestResult) int {
		return b.TakenAt.Compare(a.TakenAt)
	})

	return out, nil
}
