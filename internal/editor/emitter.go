package editor

import (
	"sync"

	"github.com/google/uuid"
)

// emitter is a minimal observer registry: uuid-keyed callbacks fired in
// subscription order, one shot per committed mutation. After close it drops
// all subscribers and never fires again.
type emitter struct {
	mu     sync.Mutex
	order  []uuid.UUID
	subs   map[uuid.UUID]func()
	closed bool
}

func newEmitter() *emitter {
	return &emitter{subs: make(map[uuid.UUID]func())}
}

func (e *emitter) subscribe(fn func()) uuid.UUID {
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

func (e *emitter) unsubscribe(id uuid.UUID) {
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

// notify invokes subscribers outside the registry lock so callbacks may
// re-read state or unsubscribe themselves.
func (e *emitter) notify() {
	e.mu.Lock()
	callbacks := make([]func(), 0, len(e.order))
	for _, id := range e.order {
		if fn, ok := e.subs[id]; ok {
			callbacks = append(callbacks, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (e *emitter) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.order = nil
	e.subs = make(map[uuid.UUID]func())
}
