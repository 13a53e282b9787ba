package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/persistence"
)

const sessionKey = "session.current"

// SessionStore holds the identity currently using the application. It has two
// states, anonymous and authenticated; Login always succeeds and replaces the
// identity, Logout returns to anonymous. Every transition is mirrored to the
// session storage key and pushed to subscribers.
type SessionStore struct {
	mu      sync.RWMutex
	kv      persistence.KV
	logger  *zap.Logger
	current *domain.Identity
	subs    []func(*domain.Identity)
}

// IdentityPatch carries the partial fields accepted by UpdateUser. Nil fields
// are left untouched.
type IdentityPatch struct {
	Name         *string
	Phone        *string
	Address      *string
	Avatar       *string
	SchoolID     *string
	DepartmentID *string
	Assignments  *[]string
}

// NewSessionStore hydrates the session from storage. A missing or unparsable
// session key means an anonymous start.
func NewSessionStore(ctx context.Context, kv persistence.KV, logger *zap.Logger) *SessionStore {
	s := &SessionStore{kv: kv, logger: logger}

	payload, found, err := kv.Get(ctx, sessionKey)
	if err != nil {
		logger.Warn("session hydration failed", zap.Error(err))
		return s
	}
	if !found {
		return s
	}
	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		logger.Warn("discarding corrupt session payload", zap.Error(err))
		return s
	}
	s.current = &identity
	return s
}

// Login replaces the current identity with one synthesized from the email
// local-part and the requested role. No credential check happens here; callers
// that want verification run it before calling Login.
func (s *SessionStore) Login(ctx context.Context, email string, role domain.Role) domain.Identity {
	identity := SynthesizeIdentity(email, role)

	s.mu.Lock()
	s.current = &identity
	s.persist(ctx, &identity)
	subs := append([]func(*domain.Identity){}, s.subs...)
	s.mu.Unlock()

	notify(subs, &identity)
	return identity
}

// Logout clears the identity from memory and storage. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.current != nil
	s.current = nil
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		s.logger.Warn("failed to clear session storage", zap.Error(err))
	}
	subs := append([]func(*domain.Identity){}, s.subs...)
	s.mu.Unlock()

	if wasAuthenticated {
		notify(subs, nil)
	}
}

// UpdateUser merges the patch into the current identity. It reports false
// without side effects when the session is anonymous.
func (s *SessionStore) UpdateUser(ctx context.Context, patch IdentityPatch) (domain.Identity, bool) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.Identity{}, false
	}

	merged := *s.current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Address != nil {
		merged.Address = *patch.Address
	}
	if patch.Avatar != nil {
		merged.Avatar = *patch.Avatar
	}
	if patch.SchoolID != nil {
		merged.SchoolID = *patch.SchoolID
	}
	if patch.DepartmentID != nil {
		merged.DepartmentID = *patch.DepartmentID
	}
	if patch.Assignments != nil {
		merged.Assignments = append([]string{}, (*patch.Assignments)...)
	}
	s.current = &merged
	s.persist(ctx, &merged)
	subs := append([]func(*domain.Identity){}, s.subs...)
	s.mu.Unlock()

	notify(subs, &merged)
	return merged, true
}

// Current returns a copy of the identity, or nil when anonymous.
func (s *SessionStore) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	cp.Assignments = append([]string{}, s.current.Assignments...)
	return &cp
}

// Subscribe registers a callback invoked after every session transition with
// the new identity, nil meaning anonymous.
func (s *SessionStore) Subscribe(fn func(*domain.Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// persist mirrors the identity to the session key. Callers hold s.mu so
// mirrors reach storage in transition order.
func (s *SessionStore) persist(ctx context.Context, identity *domain.Identity) {
	payload, err := json.Marshal(identity)
	if err != nil {
		s.logger.Warn("failed to encode session", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, sessionKey, payload); err != nil {
		s.logger.Warn("failed to mirror session to storage", zap.Error(err))
	}
}

func notify(subs []func(*domain.Identity), identity *domain.Identity) {
	for _, fn := range subs {
		fn(identity)
	}
}

// SynthesizeIdentity builds a deterministic profile from the email local-part
// and role. This is a demo stand-in for authentication, not a credential
// check; substituting real verification is a product decision.
func SynthesizeIdentity(email string, role domain.Role) domain.Identity {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	return domain.Identity{
		ID:        uuid.NewString(),
		Name:      displayName(local),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

func displayName(local string) string {
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return local
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
