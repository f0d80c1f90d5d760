package formhttp

import (
	"container/list"
	"log/slog"
	"sync"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
)

// DefaultMaxSessions bounds a Registry created without an explicit capacity.
const DefaultMaxSessions = 1000

// Registry keeps live sessions by ID and closes the least recently used one
// once capacity is exceeded. Closing flushes a pending auto-save, so an
// evicted session can be resumed from its draft.
type Registry struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
	logger   *slog.Logger
}

// NewRegistry panics when capacity is not positive.
func NewRegistry(capacity int, log *slog.Logger) *Registry {
	if capacity <= 0 {
		panic("formhttp: registry capacity must be positive")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Registry{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		logger:   log,
	}
}

// Get returns a session and marks it as recently used.
func (r *Registry) Get(id string) (*multistep.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[id]
	if !ok {
		return nil, false
	}
	r.order.MoveToFront(elem)
	return elem.Value.(*multistep.Session), true
}

// Put stores s under its ID. A different session previously stored under the
// same ID is closed, as is any session evicted to make room.
func (r *Registry) Put(s *multistep.Session) {
	var stale []*multistep.Session

	r.mu.Lock()
	if elem, ok := r.items[s.ID()]; ok {
		if prev := elem.Value.(*multistep.Session); prev != s {
			stale = append(stale, prev)
		}
		elem.Value = s
		r.order.MoveToFront(elem)
	} else {
		r.items[s.ID()] = r.order.PushFront(s)
		for r.order.Len() > r.capacity {
			stale = append(stale, r.removeLocked(r.order.Back()))
		}
	}
	r.mu.Unlock()

	for _, old := range stale {
		r.close(old, "session evicted")
	}
}

// Remove drops and closes a session. It reports whether the ID was present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	elem, ok := r.items[id]
	var s *multistep.Session
	if ok {
		s = r.removeLocked(elem)
	}
	r.mu.Unlock()

	if ok {
		r.close(s, "session closed")
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

// CloseAll empties the registry, closing every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*multistep.Session, 0, r.order.Len())
	for elem := r.order.Front(); elem != nil; elem = elem.Next() {
		sessions = append(sessions, elem.Value.(*multistep.Session))
	}
	r.items = make(map[string]*list.Element)
	r.order.Init()
	r.mu.Unlock()

	for _, s := range sessions {
		r.close(s, "session closed")
	}
}

// Must be called with r.mu held.
func (r *Registry) removeLocked(elem *list.Element) *multistep.Session {
	r.order.Remove(elem)
	s := elem.Value.(*multistep.Session)
	delete(r.items, s.ID())
	return s
}

// close runs outside the lock: Close may block on a draft save.
func (r *Registry) close(s *multistep.Session, msg string) {
	if err := s.Close(); err != nil {
		r.logger.Warn("failed to close session", logger.SessionID(s.ID()), logger.Error(err))
		return
	}
	r.logger.Debug(msg, logger.SessionID(s.ID()), logger.FormID(s.Definition().ID))
}
