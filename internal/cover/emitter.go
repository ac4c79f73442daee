package cover

import (
	"sync"

	"github.com/google/uuid"
)

// coverEmitter mirrors the editor's observer registry for the narrower
// cover channel: callbacks carry the descriptor and an optional generation
// error, fired in subscription order.
type coverEmitter struct {
	mu     sync.Mutex
	order  []uuid.UUID
	subs   map[uuid.UUID]func(Cover, error)
	closed bool
}

func newCoverEmitter() *coverEmitter {
	return &coverEmitter{subs: make(map[uuid.UUID]func(Cover, error))}
}

func (e *coverEmitter) subscribe(fn func(Cover, error)) uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := uuid.New()
	if e.closed {
		return id
	}
	e.order = append(e.order, id)
	e.subs[id] = fn
	return id
}

func (e *coverEmitter) unsubscribe(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.subs[id]; !ok {
		return
	}
	delete(e.subs, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *coverEmitter) notify(cover Cover, err error) {
	e.mu.Lock()
	callbacks := make([]func(Cover, error), 0, len(e.order))
	for _, id := range e.order {
		if fn, ok := e.subs[id]; ok {
			callbacks = append(callbacks, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range callbacks {
		fn(cover, err)
	}
}

func (e *coverEmitter) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.order = nil
	e.subs = make(map[uuid.UUID]func(Cover, error))
}
