package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/pkg/metrics"

	"github.com/google/uuid"
)

// ErrEmptyNote means the note text was empty after trimming. Nothing is
// mutated in that case.
var ErrEmptyNote = errors.New("note text is empty")

type NotesService interface {
	Notes(ctx context.Context, sess *session.Session) model.NoteList
	Add(ctx context.Context, sess *session.Session, text string) (*model.Note, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

type notesService struct{}

func NewNotesService() NotesService {
	return &notesService{}
}

func (s *notesService) Notes(ctx context.Context, sess *session.Session) model.NoteList {
	if sess == nil {
		return model.NoteList{}
	}
	return sess.Notes(ctx)
}

func (s *notesService) Add(ctx context.Context, sess *session.Session, text string) (*model.Note, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}

	note := model.Note{
		ID:     uuid.NewString(),
		Text:   text,
		Author: sess.Username(),
		Date:   time.Now(),
	}
	sess.Apply(func(snap *model.Snapshot) {
		snap.Notes = append(model.NoteList{note}, snap.Notes...)
	})

	if !sess.Persist(ctx, session.SectionNotes) {
		metrics.Operations.WithLabelValues("add_note", "error").Inc()
		return &note, ErrPersistFailed
	}
	metrics.Operations.WithLabelValues("add_note", "ok").Inc()
	return &note, nil
}

// Delete removes a note if present; an unknown id still reports success.
func (s *notesService) Delete(ctx context.Context, sess *session.Session, id string) error {
	if sess == nil {
		return ErrNoSession
	}

	sess.Apply(func(snap *model.Snapshot) {
		kept := snap.Notes[:0]
		for _, n := range snap.Notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		snap.Notes = kept
	})

	sess.Persist(ctx, session.SectionNotes)
	metrics.Operations.WithLabelValues("delete_note", "ok").Inc()
	return nil
}
