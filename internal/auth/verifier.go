package auth

import (
	"context"
	"errors"
)

// Verifier checks credentials before a session is established. The store
// itself never rejects a login; swapping the verifier is the seam for moving
// from demo authentication to the real thing.
type Verifier interface {
	Verify(ctx context.Context, email, password string) error
}

// AllowAll accepts any credentials. This is the demo default and is a mock by
// design: it must not be mistaken for authentication.
type AllowAll struct{}

// Verify always succeeds.
func (AllowAll) Verify(_ context.Context, _, _ string) error {
	return nil
}

// HashLookup resolves a stored bcrypt hash for an email. An empty hash means
// the account is unknown.
type HashLookup func(ctx context.Context, email string) string

// Local verifies passwords against hashes resolved by a lookup, typically the
// employee directory.
type Local struct {
	lookup HashLookup
}

// NewLocal builds a Local verifier.
func NewLocal(lookup HashLookup) *Local {
	return &Local{lookup: lookup}
}

// Verify compares the password against the stored hash for the email.
func (v *Local) Verify(ctx context.Context, email, password string) error {
	hash := v.lookup(ctx, email)
	if hash == "" {
		return errors.New("unknown account")
	}
	if err := ComparePassword(hash, password); err != nil {
		return errors.New("invalid credentials")
	}
	return nil
}
