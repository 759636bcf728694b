// Package testutil provides in-memory doubles shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sync"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/repository"
)

// ErrBackendDown simulates an unreachable store.
var ErrBackendDown = errors.New("connection refused")

// MemoryRepo is a DocumentRepository backed by a map, with switches to force
// read or write failures.
type MemoryRepo struct {
	mu         sync.Mutex
	docs       map[string]*model.Document
	FailReads  bool
	FailWrites bool
	SaveCalls  int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]*model.Document)}
}

// Seed installs a document directly, bypassing merge semantics.
func (r *MemoryRepo) Seed(doc *model.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.Username] = cloneDoc(doc)
}

// Doc returns a copy of the stored document, or nil.
func (r *MemoryRepo) Doc(username string) *model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[username]
	if !ok {
		return nil
	}
	return cloneDoc(doc)
}

func (r *MemoryRepo) Find(_ context.Context, username string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads {
		return nil, ErrBackendDown
	}
	doc, ok := r.docs[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (r *MemoryRepo) SavePatch(_ context.Context, username string, patch model.DocumentPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.FailWrites {
		return ErrBackendDown
	}

	doc, ok := r.docs[username]
	if !ok {
		doc = &model.Document{Username: username}
		r.docs[username] = doc
	}
	if patch.Inventory != nil {
		doc.Inventory = append(model.ItemList(nil), *patch.Inventory...)
	}
	if patch.Sales != nil {
		doc.Sales = append(model.SaleList(nil), *patch.Sales...)
	}
	if patch.Notes != nil {
		doc.Notes = append(model.NoteList(nil), *patch.Notes...)
	}
	doc.LastUpdate = patch.LastUpdate
	return nil
}

func (r *MemoryRepo) SetToken(_ context.Context, username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrBackendDown
	}
	doc, ok := r.docs[username]
	if !ok {
		doc = &model.Document{Username: username}
		r.docs[username] = doc
	}
	doc.Token = token
	return nil
}

func cloneDoc(doc *model.Document) *model.Document {
	out := *doc
	out.Inventory = append(model.ItemList(nil), doc.Inventory...)
	out.Sales = append(model.SaleList(nil), doc.Sales...)
	out.Notes = append(model.NoteList(nil), doc.Notes...)
	return &out
}
