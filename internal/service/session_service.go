package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/events"
	"github.com/spec-kit/campus-desk/internal/store"
)

// SessionService coordinates login/logout flows: credential verification,
// session replacement and token issuance.
type SessionService struct {
	sessions   *store.SessionStore
	verifier   auth.Verifier
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewSessionService builds the service.
func NewSessionService(sessions *store.SessionStore, verifier auth.Verifier, tokens *auth.TokenManager, dispatcher events.Dispatcher) *SessionService {
	return &SessionService{
		sessions:   sessions,
		verifier:   verifier,
		tokens:     tokens,
		dispatcher: dispatcher,
	}
}

// Login verifies credentials, establishes the session and issues a token. With
// the default mock verifier it cannot fail.
func (s *SessionService) Login(ctx context.Context, email, password string, role domain.Role) (domain.Identity, string, time.Time, error) {
	if err := s.verifier.Verify(ctx, email, password); err != nil {
		return domain.Identity{}, "", time.Time{}, err
	}

	identity := s.sessions.Login(ctx, email, role)

	token, expiresAt, err := s.tokens.GenerateToken(identity.ID, identity.Role)
	if err != nil {
		return domain.Identity{}, "", time.Time{}, err
	}

	s.publish(ctx, events.EventSessionStarted, identity.ID, events.SessionPayload{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Role:       identity.Role,
	})
	return identity, token, expiresAt, nil
}

// Logout ends the current session. Idempotent.
func (s *SessionService) Logout(ctx context.Context) {
	current := s.sessions.Current()
	s.sessions.Logout(ctx)
	if current != nil {
		s.publish(ctx, events.EventSessionEnded, current.ID, events.SessionPayload{
			IdentityID: current.ID,
			Email:      current.Email,
			Role:       current.Role,
		})
	}
}

// UpdateProfile merges partial fields into the current identity. It reports
// false when no session exists.
func (s *SessionService) UpdateProfile(ctx context.Context, patch store.IdentityPatch) (domain.Identity, bool) {
	return s.sessions.UpdateUser(ctx, patch)
}

// Current returns the session identity, nil when anonymous.
func (s *SessionService) Current() *domain.Identity {
	return s.sessions.Current()
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
