package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/digimonapk/dicords/model"
)

// Effect is the outbound consequence of a workflow transition. The engine
// only decides which effect to emit; the dispatcher renders and sends it.
type Effect int

const (
	// EffectNone means the command was a stale or superseded confirmation
	// and the record is unchanged.
	EffectNone Effect = iota
	// EffectPrompt asks the operator to confirm a staged page change.
	EffectPrompt
	// EffectApproved announces a committed page change.
	EffectApproved
	// EffectCancelled announces a declined page change.
	EffectCancelled
	// EffectDeleted announces removal of the document.
	EffectDeleted
)

// Transition is the pure state machine: it maps a current record and a
// command to the next record and the effect to dispatch. It never touches
// the store.
//
// States move none -> waiting -> approved|cancelled. Approved and
// cancelled are terminal for that confirmation only; a later SelectPage
// re-enters waiting. A Confirm whose page does not match the staged page
// is a stale prompt and leaves the record untouched.
func Transition(doc model.Document, cmd model.Command, now int64) (model.Document, Effect) {
	switch c := cmd.(type) {
	case model.SelectPage:
		if !c.Page.Valid() {
			return doc, EffectNone
		}
		doc.Action = model.ActionWaiting
		doc.PendingPage = c.Page
		doc.Timestamp = now
		return doc, EffectPrompt

	case model.Confirm:
		if doc.Action != model.ActionWaiting || doc.PendingPage != c.Page {
			return doc, EffectNone
		}
		doc.PendingPage = 0
		doc.Timestamp = now
		if c.Approve {
			doc.Action = model.ActionApproved
			doc.Page = c.Page
			return doc, EffectApproved
		}
		doc.Action = model.ActionCancelled
		return doc, EffectCancelled

	case model.DeleteDoc:
		return doc, EffectDeleted

	default:
		return doc, EffectNone
	}
}

// Engine applies decoded commands against the store. Interaction events
// and HTTP requests arrive on separate goroutines, so Apply serializes
// the whole read-transition-write sequence under one lock; transitions
// for the same document never interleave.
type Engine struct {
	mu    sync.Mutex
	store *DocumentStore
	clock func() time.Time
}

// NewEngine creates an engine bound to the given store.
func NewEngine(store *DocumentStore) *Engine {
	return &Engine{
		store: store,
		clock: time.Now,
	}
}

// Apply runs one command through the state machine and persists the
// result. A command for an unknown document operates on a fresh base
// record rather than failing; the operator's click is always honoured.
func (e *Engine) Apply(cmd model.Command) (model.Document, Effect) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.store.Get(cmd.Doc())
	if !ok {
		doc = model.NewDocument(cmd.Doc(), model.Submission{}, 0)
		if _, isDelete := cmd.(model.DeleteDoc); !isDelete {
			slog.Warn("command for unknown document, starting from base record",
				"doc_id", cmd.Doc(),
			)
		}
	}

	next, effect := Transition(doc, cmd, e.nextTimestamp(doc.Timestamp))

	switch effect {
	case EffectNone:
		// Stale confirmation: nothing to persist.
	case EffectDeleted:
		e.store.Delete(cmd.Doc())
	default:
		e.store.Put(next)
	}

	return next, effect
}

// nextTimestamp returns a wall-clock mark strictly greater than the
// record's previous one.
func (e *Engine) nextTimestamp(prev int64) int64 {
	now := e.clock().UnixMilli()
	if now <= prev {
		return prev + 1
	}
	return now
}
