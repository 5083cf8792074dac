// Package auth carries the authenticated identity through request
// contexts and enforces role gates on the HTTP surface.
package auth

import "context"

// Roles. Patient-role callers are read-only and scoped to their own
// patient record; Admin has full access.
const (
	RoleAdmin   = "Admin"
	RolePatient = "Patient"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID    string `json:"id"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	PatientID string `json:"patientId,omitempty"`
}

// IsPatient reports whether the identity is patient-scoped.
func (id Identity) IsPatient() bool { return id.Role == RolePatient }

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity set by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
