package handle

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("handle table closed")

// Table stores foreign-runtime-owned objects and hands out opaque handles.
// Slots are reused through a free list, so a released handle may be
// reissued for a different object; holders must not use a handle after
// releasing it.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value  any
	typeID uint32
	valid  bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value and returns its handle. Returns None after Close.
func (t *Table) Insert(typeID uint32, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return None
	}

	e := entry{typeID: typeID, value: value, valid: true}

	var h Handle
	if n := len(t.freeList); n > 0 {
		h = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
	} else {
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	if h == None {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return nil, false
	}
	return t.entries[idx].value, true
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	actual, ok := t.TypeID(h)
	if !ok || actual != typeID {
		return nil, false
	}
	return t.Get(h)
}

// TypeID returns the type tag recorded at insertion.
func (t *Table) TypeID(h Handle) (uint32, bool) {
	if h == None {
		return 0, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return 0, false
	}
	return t.entries[idx].typeID, true
}

// Live reports whether h currently refers to a stored object.
func (t *Table) Live(h Handle) bool {
	_, ok := t.Get(h)
	return ok
}

// Release drops an object and returns (value, true) if it was present.
// If the value implements Dropper, Drop is called before observers fire.
func (t *Table) Release(h Handle) (any, bool) {
	if h == None {
		return nil, false
	}

	t.mu.Lock()
	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		t.mu.Unlock()
		return nil, false
	}

	e := &t.entries[idx]
	value := e.value
	typeID := e.typeID
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, h)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{Type: EventReleased, Handle: h, TypeID: typeID, Value: value})
	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Each iterates over live objects. Return false from fn to stop.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.RLock()
	snapshot := make([]struct {
		h      Handle
		typeID uint32
		value  any
	}, 0, len(t.entries))
	for i, e := range t.entries {
		if e.valid {
			snapshot = append(snapshot, struct {
				h      Handle
				typeID uint32
				value  any
			}{Handle(i + 1), e.typeID, e.value})
		}
	}
	t.mu.RUnlock()

	for _, s := range snapshot {
		if !fn(s.h, s.typeID, s.value) {
			return
		}
	}
}

// Clear releases all objects.
func (t *Table) Clear() {
	var handles []Handle
	t.Each(func(h Handle, _ uint32, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Release(h)
	}
}

// Close releases all objects and stops accepting insertions.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.closed = true
	t.mu.Unlock()

	t.Clear()
	return nil
}

func (t *Table) notify(ev Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(ev)
	}
}
