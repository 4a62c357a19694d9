package database

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthplus/identity/internal/models"
)

// MemoryStore is an in-process UserStore for tests and local runs. It
// enforces the same identifier uniqueness the Postgres indexes do.
type MemoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryStore) collides(user *models.User) bool {
	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if user.MatricNumber != nil && existing.MatricNumber != nil && *user.MatricNumber == *existing.MatricNumber {
			return true
		}
		if user.StaffID != nil && existing.StaffID != nil && *user.StaffID == *existing.StaffID {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collides(user) {
		return ErrDuplicateIdentity
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	if s.collides(user) {
		return ErrDuplicateIdentity
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(id string) (*models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[parsed]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStore) FindByMatricNumber(matricNumber string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.MatricNumber != nil && *user.MatricNumber == matricNumber {
			user := user
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) FindByStaffID(staffID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.StaffID != nil && *user.StaffID == staffID {
			user := user
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) UpdateLastLogin(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[parsed]
	if !ok {
		return ErrUserNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	s.users[parsed] = user
	return nil
}

func (s *MemoryStore) NextSerialNumber() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, user := range s.users {
		if user.SerialNumber > max {
			max = user.SerialNumber
		}
	}
	return max + 1, nil
}
