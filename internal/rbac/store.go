package rbac

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Backend is the durable storage of permission overrides, one record per role.
type Backend interface {
	// ReadOverrides returns every stored override.
	ReadOverrides(ctx context.Context) ([]StoredOverride, error)
	// WriteOverride creates or replaces the override of one role.
	WriteOverride(ctx context.Context, o StoredOverride) error
	// DeleteOverride removes the override of one role. Deleting a missing override is not an error.
	DeleteOverride(ctx context.Context, role Role) error
}

// Store keeps the loaded overrides in memory and writes changes through to a Backend.
type Store struct {
	backend Backend
	now     func() time.Time

	mu        sync.RWMutex
	overrides map[Role]Override

	// writeMu serializes Set and Reset so a backend write and the memory swap happen as one step.
	writeMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store on top of backend. Call Load before use.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		now:       time.Now,
		overrides: make(map[Role]Override),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory overrides with the backend content.
// Records that fail to decode are logged and skipped. When the backend can not
// be read the store is left empty and the error is returned.
func (s *Store) Load(ctx context.Context) error {
	if s.backend == nil {
		return ErrBackendNil
	}

	loaded := make(map[Role]Override)

	stored, err := s.backend.ReadOverrides(ctx)
	if err != nil {
		s.swap(loaded)
		return fmt.Errorf("failed to read permission overrides: %w", err)
	}

	for _, rec := range stored {
		o, errDecode := DecodeOverride(rec.Role, rec.Payload)
		if errDecode != nil {
			log.Warn().Err(errDecode).Str("role", rec.Role).
				Msg("discarding unreadable permission override")

			continue
		}

		loaded[o.Role] = o
	}

	s.swap(loaded)

	log.Debug().Int("count", len(loaded)).Msg("permission overrides loaded")

	return nil
}

func (s *Store) swap(m map[Role]Override) {
	s.mu.Lock()
	s.overrides = m
	s.mu.Unlock()
}

// Get returns the override of r, if any.
func (s *Store) Get(r Role) (Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.overrides[r]

	return o, ok
}

// All returns every active override ordered by descending role rank.
func (s *Store) All() []Override {
	s.mu.RLock()
	out := make([]Override, 0, len(s.overrides))

	for _, o := range s.overrides {
		out = append(out, o)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Role.Rank() > out[j].Role.Rank()
	})

	return out
}

// Set replaces the override of r with p, stamped with actor and the current time.
// Memory is only updated after the backend accepted the write.
func (s *Store) Set(ctx context.Context, r Role, p Patch, actor string) (Override, error) {
	if s.backend == nil {
		return Override{}, ErrBackendNil
	}

	if !r.Valid() {
		return Override{}, fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		return Override{}, ErrActorRequired
	}

	o := Override{
		Role:      r,
		Patch:     p,
		UpdatedBy: actor,
		UpdatedAt: s.now().UTC(),
	}

	payload, err := EncodeOverride(o)
	if err != nil {
		return Override{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err = s.backend.WriteOverride(ctx, StoredOverride{Role: string(r), Payload: payload}); err != nil {
		return Override{}, fmt.Errorf("failed to write permission override for role %s: %w", r, err)
	}

	s.mu.Lock()
	s.overrides[r] = o
	s.mu.Unlock()

	log.Info().Str("role", string(r)).Str("actor", actor).Strs("keys", capabilityStrings(p.Keys())).
		Msg("permission override set")

	return o, nil
}

// Reset removes the override of r so it resolves to its base record again.
// Resetting a role without override is a no-op. The backend delete is still
// issued so records discarded as unreadable during Load are cleaned up too.
func (s *Store) Reset(ctx context.Context, r Role) error {
	if s.backend == nil {
		return ErrBackendNil
	}

	if !r.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.DeleteOverride(ctx, r); err != nil {
		return fmt.Errorf("failed to delete permission override for role %s: %w", r, err)
	}

	s.mu.Lock()
	delete(s.overrides, r)
	s.mu.Unlock()

	log.Info().Str("role", string(r)).Msg("permission override reset")

	return nil
}

func capabilityStrings(caps []Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}

	return out
}
