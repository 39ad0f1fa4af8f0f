// Package store holds the in-memory, per-entity caches that mirror the
// remote tables. Every mutation goes to the remote gateway first and only
// a successful write patches the cache, one record at a time.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

// Record is any cached row: addressable by id and owned by one restaurant.
type Record interface {
	GetID() string
	GetRestaurantID() string
}

// Patch is a typed partial update. Apply merges it onto a copy of the
// cached record; it must replace slices rather than edit them in place.
type Patch[T any] interface {
	Apply(*T)
}

// Gateway performs the remote reads and writes for one entity.
type Gateway[T Record, P Patch[T], F any] interface {
	List(ctx context.Context, scopeID string, filter F) ([]*T, error)
	Search(ctx context.Context, scopeID, query string) ([]*T, error)
	Insert(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, scopeID, id string, patch P) error
	Delete(ctx context.Context, scopeID, id string) error
}

type InsertPosition int

const (
	InsertFront InsertPosition = iota
	InsertBack
)

type Options struct {
	// Entity prefixes error codes, e.g. "order" gives "order_not_found".
	Entity string
	Insert InsertPosition
	Logger logrus.FieldLogger
}

// ErrStale is returned by Fetch and Search when a newer fetch was issued
// while the call was in flight. The response was discarded.
var ErrStale = errors.New("store: response superseded by a newer fetch")

type Store[T Record, P Patch[T], F any] struct {
	gw   Gateway[T, P, F]
	opts Options
	log  logrus.FieldLogger

	mu       sync.RWMutex
	items    []*T
	scopeID  string
	loading  int
	lastErr  error
	seq      uint64
	inflight map[string]struct{}
}

func New[T Record, P Patch[T], F any](gw Gateway[T, P, F], opts Options) *Store[T, P, F] {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store[T, P, F]{
		gw:       gw,
		opts:     opts,
		log:      logger.WithField("store", opts.Entity),
		inflight: make(map[string]struct{}),
	}
}

// ======================================================
// READS
// ======================================================

// Fetch replaces the whole cache with the remote result set for scopeID.
func (s *Store[T, P, F]) Fetch(ctx context.Context, scopeID string, filter F) ([]*T, error) {
	return s.load(ctx, scopeID, "fetch", func(ctx context.Context) ([]*T, error) {
		return s.gw.List(ctx, scopeID, filter)
	})
}

// Search is Fetch filtered server-side by a case-insensitive substring
// match. A blank query is a plain fetch.
func (s *Store[T, P, F]) Search(ctx context.Context, scopeID, query string) ([]*T, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		var zero F
		return s.Fetch(ctx, scopeID, zero)
	}
	return s.load(ctx, scopeID, "search", func(ctx context.Context) ([]*T, error) {
		return s.gw.Search(ctx, scopeID, query)
	})
}

func (s *Store[T, P, F]) load(
	ctx context.Context,
	scopeID string,
	op string,
	call func(context.Context) ([]*T, error),
) ([]*T, error) {

	if strings.TrimSpace(scopeID) == "" {
		return nil, apperr.Validation("scope_required")
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading++
	s.mu.Unlock()

	rows, err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--

	log := s.log.WithFields(logrus.Fields{"op": op, "scope": scopeID, "seq": seq})

	if seq != s.seq {
		log.WithError(err).Debug("discarding superseded response")
		return nil, ErrStale
	}

	if err != nil {
		err = s.classify(op, err)
		s.lastErr = err
		log.WithError(err).Warn("load failed, keeping cached rows")
		return nil, err
	}

	kept := make([]*T, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		if (*row).GetRestaurantID() != scopeID {
			log.WithField("id", (*row).GetID()).Warn("dropping row from another scope")
			continue
		}
		kept = append(kept, row)
	}

	s.items = kept
	s.scopeID = scopeID
	s.lastErr = nil

	return s.snapshotLocked(), nil
}

// Items returns the current snapshot. The slice is a copy; the records
// are shared and must be treated as read-only.
func (s *Store[T, P, F]) Items() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store[T, P, F]) Get(id string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.findLocked(id)
	return row, row != nil
}

// First returns the only cached row of single-record stores (restaurant).
func (s *Store[T, P, F]) First() (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[0], true
}

func (s *Store[T, P, F]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T, P, F]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// LastError is the most recent failure. A successful Fetch or Search
// clears it, so a non-nil value means the rows may be stale.
func (s *Store[T, P, F]) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store[T, P, F]) ScopeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopeID
}

// Reset drops every cached row and the scope binding. Responses of fetches
// still in flight are discarded when they arrive.
func (s *Store[T, P, F]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.scopeID = ""
	s.lastErr = nil
	s.seq++
}

// ======================================================
// MUTATIONS
// ======================================================

// Create inserts row remotely and, on success, adds the row returned by
// the gateway (with server-generated fields) to the cache.
func (s *Store[T, P, F]) Create(ctx context.Context, row *T) (*T, error) {
	if row == nil {
		return nil, apperr.Validation(s.code("required"))
	}
	if err := s.checkScope((*row).GetRestaurantID()); err != nil {
		return nil, err
	}

	created, err := s.gw.Insert(ctx, row)
	if err != nil {
		err = s.classify("create", err)
		s.fail("create", err)
		return nil, err
	}

	s.mu.Lock()
	s.insertLocked(created)
	s.mu.Unlock()

	return created, nil
}

func (s *Store[T, P, F]) Update(ctx context.Context, id string, patch P) error {
	return s.Mutate(ctx, id, func(T) (P, error) {
		return patch, nil
	})
}

// Mutate derives a patch from the cached record and writes it. fn gets a
// copy of the record; returning an error aborts before any remote call.
// While Mutate runs, other mutations of the same id are rejected.
func (s *Store[T, P, F]) Mutate(ctx context.Context, id string, fn func(current T) (P, error)) error {
	current, ok := s.Get(id)
	if !ok {
		return apperr.NotFound(s.code("not_found"))
	}

	release, err := s.Reserve(id)
	if err != nil {
		return err
	}
	defer release()

	// re-read under the reservation; a fetch may have swapped the record
	if current, ok = s.Get(id); !ok {
		return apperr.NotFound(s.code("not_found"))
	}

	patch, err := fn(*current)
	if err != nil {
		return err
	}

	if err := s.gw.Update(ctx, (*current).GetRestaurantID(), id, patch); err != nil {
		err = s.classify("update", err)
		s.fail("update", err)
		return err
	}

	s.mu.Lock()
	patched := s.patchLocked(id, patch)
	s.mu.Unlock()

	if !patched {
		s.log.WithField("id", id).Debug("record left the cache during update")
	}
	return nil
}

func (s *Store[T, P, F]) Delete(ctx context.Context, id string) error {
	current, ok := s.Get(id)
	if !ok {
		return apperr.NotFound(s.code("not_found"))
	}

	release, err := s.Reserve(id)
	if err != nil {
		return err
	}
	defer release()

	if err := s.gw.Delete(ctx, (*current).GetRestaurantID(), id); err != nil {
		err = s.classify("delete", err)
		s.fail("delete", err)
		return err
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	return nil
}

// ======================================================
// MULTI-ENTITY COORDINATION
// ======================================================

// Reserve marks ids as having a mutation in flight. It fails without
// reserving anything if any id is already taken.
func (s *Store[T, P, F]) Reserve(ids ...string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, busy := s.inflight[id]; busy {
			return nil, apperr.Conflict("mutation_in_flight")
		}
	}
	for _, id := range ids {
		s.inflight[id] = struct{}{}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for _, id := range ids {
				delete(s.inflight, id)
			}
			s.mu.Unlock()
		})
	}, nil
}

// Reconcile applies patch to the cached record after the caller has
// already committed the same change remotely.
func (s *Store[T, P, F]) Reconcile(id string, patch P) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.patchLocked(id, patch) {
		return apperr.NotFound(s.code("not_found"))
	}
	return nil
}

// Admit caches a row the caller has already created remotely.
func (s *Store[T, P, F]) Admit(row *T) error {
	if row == nil {
		return apperr.Validation(s.code("required"))
	}
	if err := s.checkScope((*row).GetRestaurantID()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked((*row).GetID())
	s.insertLocked(row)
	return nil
}

// ======================================================
// INTERNALS
// ======================================================

func (s *Store[T, P, F]) checkScope(scopeID string) error {
	if strings.TrimSpace(scopeID) == "" {
		return apperr.Validation("scope_required")
	}
	s.mu.RLock()
	bound := s.scopeID
	s.mu.RUnlock()
	if bound != "" && bound != scopeID {
		return apperr.Validation("scope_mismatch")
	}
	return nil
}

func (s *Store[T, P, F]) insertLocked(row *T) {
	if s.scopeID == "" {
		s.scopeID = (*row).GetRestaurantID()
	}
	if s.opts.Insert == InsertBack {
		s.items = append(s.items, row)
		return
	}
	items := make([]*T, 0, len(s.items)+1)
	items = append(items, row)
	s.items = append(items, s.items...)
}

func (s *Store[T, P, F]) patchLocked(id string, patch P) bool {
	for i, row := range s.items {
		if (*row).GetID() != id {
			continue
		}
		next := *row
		patch.Apply(&next)
		s.items[i] = &next
		return true
	}
	return false
}

func (s *Store[T, P, F]) removeLocked(id string) {
	items := make([]*T, 0, len(s.items))
	for _, row := range s.items {
		if (*row).GetID() != id {
			items = append(items, row)
		}
	}
	s.items = items
}

func (s *Store[T, P, F]) findLocked(id string) *T {
	for _, row := range s.items {
		if (*row).GetID() == id {
			return row
		}
	}
	return nil
}

func (s *Store[T, P, F]) snapshotLocked() []*T {
	out := make([]*T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T, P, F]) fail(op string, err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.log.WithField("op", op).WithError(err).Warn("mutation failed")
}

func (s *Store[T, P, F]) classify(op string, err error) error {
	if _, ok := apperr.KindOf(err); ok {
		return err
	}
	return apperr.Remote(s.code(op+"_failed"), err)
}

func (s *Store[T, P, F]) code(suffix string) string {
	if s.opts.Entity == "" {
		return suffix
	}
	return s.opts.Entity + "_" + suffix
}
