package session

import (
	"context"
	"sync"

	"github.com/dentalcare/clinic/internal/storage"
)

// UserRepo is the file-backed user list. Users are read-mostly: the
// collection is loaded once and only re-persisted if it changes.
type UserRepo struct {
	mu    sync.RWMutex
	gw    *storage.Gateway
	users []User
}

// NewUserRepo loads the user collection from the gateway.
func NewUserRepo(gw *storage.Gateway) (*UserRepo, error) {
	r := &UserRepo{gw: gw}
	if err := gw.Load(storage.CollectionUsers, &r.users); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, true
		}
	}
	return nil, false
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, true
		}
	}
	return nil, false
}

func (r *UserRepo) List(_ context.Context) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}

// FileStore persists the current session as a single-entry collection.
type FileStore struct {
	mu sync.Mutex
	gw *storage.Gateway
}

func NewFileStore(gw *storage.Gateway) *FileStore {
	return &FileStore{gw: gw}
}

func (s *FileStore) Save(_ context.Context, p Persisted) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gw.Save(storage.CollectionSession, p)
}

func (s *FileStore) Load(_ context.Context) (Persisted, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p Persisted
	if err := s.gw.Load(storage.CollectionSession, &p); err != nil {
		return Persisted{}, false
	}
	if p.UserID == "" {
		return Persisted{}, false
	}
	return p, true
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gw.Remove(storage.CollectionSession)
}
