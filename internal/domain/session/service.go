package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic/internal/platform/auth"
	"github.com/dentalcare/clinic/internal/platform/clock"
)

// ErrInvalidCredentials is returned for any login failure. Callers get
// no hint whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Gate authenticates users against the persisted user list and tracks
// the current session across restarts.
type Gate struct {
	users    UserRepository
	sessions Store
	tokens   *auth.TokenIssuer
	clock    clock.Clock
	log      zerolog.Logger
}

func NewGate(users UserRepository, sessions Store, tokens *auth.TokenIssuer, clk clock.Clock, log zerolog.Logger) *Gate {
	return &Gate{users: users, sessions: sessions, tokens: tokens, clock: clk, log: log}
}

// Login matches email and password exactly against the user list. On
// success it issues a signed token and persists the session.
func (g *Gate) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, ok := g.users.GetByEmail(ctx, email)
	if !ok || u.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token, err := g.tokens.Issue(identityFor(u))
	if err != nil {
		return "", nil, err
	}

	if err := g.sessions.Save(ctx, Persisted{UserID: u.ID, Token: token, SavedAt: g.clock.Now()}); err != nil {
		g.log.Warn().Err(err).Msg("could not persist session")
	}

	clean := u.Sanitized()
	return token, &clean, nil
}

// Logout clears the persisted session. Logging out when nobody is
// logged in is a no-op.
func (g *Gate) Logout(ctx context.Context) error {
	return g.sessions.Clear(ctx)
}

// Current returns the user behind the persisted session, if any. A
// stale session pointing at a deleted user is discarded.
func (g *Gate) Current(ctx context.Context) (*User, bool) {
	p, ok := g.sessions.Load(ctx)
	if !ok {
		return nil, false
	}
	u, ok := g.users.GetByID(ctx, p.UserID)
	if !ok {
		if err := g.sessions.Clear(ctx); err != nil {
			g.log.Warn().Err(err).Msg("could not clear stale session")
		}
		return nil, false
	}
	clean := u.Sanitized()
	return &clean, true
}

// Rehydrate re-issues a token for the persisted session at startup and
// stores it back, so the saved session never carries an expired token.
func (g *Gate) Rehydrate(ctx context.Context) (string, *User, bool) {
	u, ok := g.Current(ctx)
	if !ok {
		return "", nil, false
	}
	token, err := g.tokens.Issue(identityFor(u))
	if err != nil {
		g.log.Warn().Err(err).Msg("could not rehydrate session")
		return "", nil, false
	}
	if err := g.sessions.Save(ctx, Persisted{UserID: u.ID, Token: token, SavedAt: g.clock.Now()}); err != nil {
		g.log.Warn().Err(err).Msg("could not persist rehydrated session")
	}
	return token, u, true
}

func identityFor(u *User) auth.Identity {
	return auth.Identity{
		UserID:    u.ID,
		Role:      u.Role,
		Name:      u.Name,
		PatientID: u.PatientID,
	}
}
