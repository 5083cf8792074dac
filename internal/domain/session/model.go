package session

import "time"

// User is a login account. Patient-role users carry the id of the
// patient record they are bound to.
type User struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	PatientID string `json:"patientId,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Sanitized returns a copy safe to serve over the API.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Persisted is the current session as written to disk, so a restarted
// process comes back up already logged in.
type Persisted struct {
	UserID  string    `json:"userId"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}
