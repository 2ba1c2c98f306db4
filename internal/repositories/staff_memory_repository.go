package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tienda/internal/models"

	"github.com/google/uuid"
)

// MemoryStaffRepository is an in-memory implementation of StaffRepository.
type MemoryStaffRepository struct {
	staff map[string]models.Staff
	mu    sync.RWMutex
}

// NewMemoryStaffRepository creates a new instance of MemoryStaffRepository.
func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{
		staff: make(map[string]models.Staff),
	}
}

// Create adds a staff account, rejecting duplicate usernames and emails.
func (r *MemoryStaffRepository) Create(_ context.Context, staff *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.staff {
		if s.Username == staff.Username || s.Email == staff.Email {
			return fmt.Errorf("failed to create staff account: duplicate username or email")
		}
	}
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	staff.CreatedAt = time.Now()
	r.staff[staff.ID] = *staff
	return nil
}

// GetByUsername retrieves a staff account by username.
func (r *MemoryStaffRepository) GetByUsername(_ context.Context, username string) (*models.Staff, error) {
	return r.find(username, func(s models.Staff) bool { return s.Username == username })
}

// GetByEmail retrieves a staff account by email.
func (r *MemoryStaffRepository) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	return r.find(email, func(s models.Staff) bool { return s.Email == email })
}

// GetByID retrieves a staff account by ID.
func (r *MemoryStaffRepository) GetByID(_ context.Context, id string) (*models.Staff, error) {
	return r.find(id, func(s models.Staff) bool { return s.ID == id })
}

func (r *MemoryStaffRepository) find(key string, match func(models.Staff) bool) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.staff {
		if match(s) {
			found := s
			return &found, nil
		}
	}
	return nil, fmt.Errorf("staff %q: %w", key, ErrStaffNotFound)
}

// Count returns the number of staff accounts.
func (r *MemoryStaffRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.staff)), nil
}
