package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-stockcontrol-ws/internal/broker"
	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/repository"
	"go-stockcontrol-ws/pkg/metrics"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid access token")
	ErrUnavailable  = errors.New("backend unavailable")
)

// Manager is the registry of active sessions, one per authenticated username.
type Manager struct {
	repo   repository.DocumentRepository
	broker broker.SyncBroker

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(repo repository.DocumentRepository, brk broker.SyncBroker) *Manager {
	return &Manager{
		repo:     repo,
		broker:   brk,
		sessions: make(map[string]*Session),
	}
}

// Login checks the presented token against the stored one by exact match and,
// on success, establishes a session with a live watch. An unknown username,
// a wrong token and an unreachable backend are reported as distinct errors.
// A prior session for the same username is replaced; last login wins.
func (m *Manager) Login(ctx context.Context, username, token string) (*Session, error) {
	doc, err := m.repo.Find(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if doc.Token != token {
		return nil, ErrInvalidToken
	}

	sess := newSession(username, m.repo, m.broker)
	// Seed the cache from the document we just read. The pub/sub watch does
	// not replay current state, so this stands in for the initial update a
	// document watch would deliver.
	sess.replaceCache(model.Snapshot{
		Inventory:  doc.Inventory,
		Sales:      doc.Sales,
		Notes:      doc.Notes,
		LastUpdate: doc.LastUpdate,
	})
	sess.startWatch()

	m.mu.Lock()
	if prev, ok := m.sessions[username]; ok {
		prev.stop()
	} else {
		metrics.ActiveSessions.Inc()
	}
	m.sessions[username] = sess
	m.mu.Unlock()

	return sess, nil
}

// Get returns the active session for a username, if any.
func (m *Manager) Get(username string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[username]
	return sess, ok
}

// Logout cancels the watch, resets the session state and drops it from the
// registry. Nothing is deleted remotely. Idempotent.
func (m *Manager) Logout(username string) {
	m.mu.Lock()
	sess, ok := m.sessions[username]
	if ok {
		delete(m.sessions, username)
		metrics.ActiveSessions.Dec()
	}
	m.mu.Unlock()

	if ok {
		sess.stop()
	}
}
