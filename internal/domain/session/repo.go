package session

import "context"

// UserRepository is the persisted user list.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, bool)
	GetByID(ctx context.Context, id string) (*User, bool)
	List(ctx context.Context) []User
}

// Store holds at most one persisted session.
type Store interface {
	Save(ctx context.Context, s Persisted) error
	Load(ctx context.Context) (Persisted, bool)
	Clear(ctx context.Context) error
}
