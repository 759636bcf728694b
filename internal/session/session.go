package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go-stockcontrol-ws/internal/broker"
	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/repository"
	"go-stockcontrol-ws/pkg/metrics"
)

// Sections selects which parts of the document a persist call writes. The
// store merges: sections not selected are left untouched.
type Sections uint8

const (
	SectionInventory Sections = 1 << iota
	SectionSales
	SectionNotes

	SectionAll = SectionInventory | SectionSales | SectionNotes
)

// Listener receives the full snapshot on every change, local or remote.
type Listener func(model.Snapshot)

// Session owns one authenticated identity: its in-memory snapshot, the live
// watch on its document, and the listener fan-out. Construct via
// Manager.Login; one Session per identity is active at a time.
//
// The mutex makes individual operations race-free, but two operations whose
// persist calls overlap still resolve by last-write-wins at the store. That
// matches the single-writer usage this was built for.
type Session struct {
	username string
	repo     repository.DocumentRepository
	broker   broker.SyncBroker

	mu          sync.Mutex
	cache       model.Snapshot
	listeners   []listenerEntry
	nextListID  int
	cancelWatch context.CancelFunc
}

type listenerEntry struct {
	id int
	fn Listener
}

func newSession(username string, repo repository.DocumentRepository, brk broker.SyncBroker) *Session {
	s := &Session{username: username, repo: repo, broker: brk}
	s.cache.FillDefaults()
	return s
}

func (s *Session) Username() string { return s.username }

// Snapshot returns an independent copy of the current cache.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clone()
}

// OnSync registers a listener and returns its unsubscribe function. Listeners
// fire synchronously, in registration order, within the notifying call.
func (s *Session) OnSync(fn Listener) func() {
	s.mu.Lock()
	id := s.nextListID
	s.nextListID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Apply runs fn against the cache under the session lock. The mutation is
// visible to every subsequent read before any persistence starts.
func (s *Session) Apply(fn func(*model.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cache)
}

// Persist merge-writes the selected sections, publishes the new state for
// remote watchers and fans out to local listeners. On failure it returns
// false and leaves the cache as mutated: local apply is optimistic, the
// remote write is best-effort, and the caller only learns of the gap through
// the return value.
func (s *Session) Persist(ctx context.Context, secs Sections) bool {
	s.mu.Lock()
	s.cache.LastUpdate = time.Now()
	snap := s.cache.Clone()
	s.mu.Unlock()

	patch := model.DocumentPatch{LastUpdate: snap.LastUpdate}
	if secs&SectionInventory != 0 {
		patch.Inventory = &snap.Inventory
	}
	if secs&SectionSales != 0 {
		patch.Sales = &snap.Sales
	}
	if secs&SectionNotes != 0 {
		patch.Notes = &snap.Notes
	}

	if err := s.repo.SavePatch(ctx, s.username, patch); err != nil {
		log.Printf("session %s: persist failed: %v", s.username, err)
		metrics.PersistFailures.Inc()
		return false
	}
	if err := s.broker.Publish(ctx, s.username, snap); err != nil {
		// The write landed; remote watchers converge on the next change.
		log.Printf("session %s: publish failed: %v", s.username, err)
	}
	s.notify()
	return true
}

func (s *Session) notify() {
	s.mu.Lock()
	snap := s.cache.Clone()
	entries := make([]listenerEntry, len(s.listeners))
	copy(entries, s.listeners)
	s.mu.Unlock()

	for _, e := range entries {
		e.fn(snap)
	}
}

// startWatch opens the live subscription for this session's document. Any
// previous watch is cancelled first so a session never holds two.
func (s *Session) startWatch() {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	s.cancelWatch = cancel
	s.mu.Unlock()

	ch, stop, err := s.broker.Subscribe(ctx, s.username)
	if err != nil {
		log.Printf("session %s: subscription failed: %v", s.username, err)
		cancel()
		return
	}

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-ch:
				if !ok {
					return
				}
				snap.FillDefaults()
				s.mu.Lock()
				if snap.LastUpdate.Before(s.cache.LastUpdate) {
					// A delayed echo of an older write. The state it carries
					// has already been superseded locally.
					s.mu.Unlock()
					continue
				}
				s.cache = snap
				s.mu.Unlock()
				metrics.SyncUpdates.Inc()
				s.notify()
			}
		}
	}()
}

// stop cancels the watch and resets the cache. Idempotent.
func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
	s.cache = model.Snapshot{}
	s.cache.FillDefaults()
}

func (s *Session) replaceCache(snap model.Snapshot) {
	snap.FillDefaults()
	s.mu.Lock()
	s.cache = snap
	s.mu.Unlock()
}

// Inventory returns the cached inventory, fetching the document once when the
// cache is empty. An empty-but-legitimately-empty section is refetched every
// time; the fetch is idempotent so this costs a round-trip, not correctness.
func (s *Session) Inventory(ctx context.Context) model.ItemList {
	s.mu.Lock()
	if len(s.cache.Inventory) > 0 {
		out := make(model.ItemList, len(s.cache.Inventory))
		copy(out, s.cache.Inventory)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	doc := s.fetch(ctx)
	if doc == nil {
		return model.ItemList{}
	}
	s.mu.Lock()
	s.cache.Inventory = doc.Inventory
	s.cache.FillDefaults()
	out := make(model.ItemList, len(s.cache.Inventory))
	copy(out, s.cache.Inventory)
	s.mu.Unlock()
	return out
}

// Sales returns the cached sales ledger, newest first, fetching once when the
// cache is empty.
func (s *Session) Sales(ctx context.Context) model.SaleList {
	s.mu.Lock()
	if len(s.cache.Sales) > 0 {
		out := make(model.SaleList, len(s.cache.Sales))
		copy(out, s.cache.Sales)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	doc := s.fetch(ctx)
	if doc == nil {
		return model.SaleList{}
	}
	s.mu.Lock()
	s.cache.Sales = doc.Sales
	s.cache.FillDefaults()
	out := make(model.SaleList, len(s.cache.Sales))
	copy(out, s.cache.Sales)
	s.mu.Unlock()
	return out
}

// Notes returns the cached notes, newest first, fetching once when the cache
// is empty.
func (s *Session) Notes(ctx context.Context) model.NoteList {
	s.mu.Lock()
	if len(s.cache.Notes) > 0 {
		out := make(model.NoteList, len(s.cache.Notes))
		copy(out, s.cache.Notes)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	doc := s.fetch(ctx)
	if doc == nil {
		return model.NoteList{}
	}
	s.mu.Lock()
	s.cache.Notes = doc.Notes
	s.cache.FillDefaults()
	out := make(model.NoteList, len(s.cache.Notes))
	copy(out, s.cache.Notes)
	s.mu.Unlock()
	return out
}

func (s *Session) fetch(ctx context.Context) *model.Document {
	doc, err := s.repo.Find(ctx, s.username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("session %s: fetch failed: %v", s.username, err)
		}
		return nil
	}
	return doc
}
