package editor

import (
	"context"
	"sync"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/validation"
)

// Backend persists documents. apiclient.Client implements it over HTTP.
type Backend interface {
	Create(ctx context.Context, doc resumes.Document) (resumes.Resume, error)
	Update(ctx context.Context, resumeID int64, doc resumes.Document, version int) (resumes.Resume, error)
}

// Editor holds one document being edited. It is safe for concurrent use.
type Editor struct {
	backend Backend

	// saveMu serializes saves so a new document is created at most once.
	saveMu sync.Mutex

	mu       sync.Mutex
	doc      Document
	dirty    bool
	revision uint64
}

// New starts an editor on doc. A zero-ID doc is created on first save.
func New(backend Backend, doc Document) *Editor {
	return &Editor{backend: backend, doc: doc.Clone()}
}

// Dispatch applies msg to the document and marks it dirty.
func (e *Editor) Dispatch(msg Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = Reduce(e.doc, msg)
	e.dirty = true
	e.revision++
}

// Document returns a copy of the current state.
func (e *Editor) Document() Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// Dirty reports whether there are edits that have not been saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Save validates and persists the document: create when it has no id, update otherwise.
// On failure the state is left untouched and stays dirty. On success the server copy is
// adopted unless edits were dispatched while the call was in flight; those edits are kept
// and remain dirty.
func (e *Editor) Save(ctx context.Context) (Document, error) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	snapshot := e.doc.Clone()
	rev := e.revision
	e.mu.Unlock()

	if issues := Validate(snapshot); len(issues) > 0 {
		return snapshot, &validation.Error{Issues: issues}
	}

	var (
		saved resumes.Resume
		err   error
	)
	if snapshot.IsNew() {
		saved, err = e.backend.Create(ctx, snapshot.Document)
	} else {
		saved, err = e.backend.Update(ctx, snapshot.ID, snapshot.Document, snapshot.Version)
	}
	if err != nil {
		return snapshot, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.revision == rev {
		e.doc = FromResume(saved)
		e.dirty = false
	} else {
		e.doc.ID = saved.ID
		e.doc.Version = saved.Version
	}
	return e.doc.Clone(), nil
}

// SaveIfDirty saves only when there are unsaved edits and reports whether it saved.
func (e *Editor) SaveIfDirty(ctx context.Context) (bool, error) {
	if !e.Dirty() {
		return false, nil
	}
	if _, err := e.Save(ctx); err != nil {
		return false, err
	}
	return true, nil
}
