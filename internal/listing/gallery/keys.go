package gallery

import "sync"

type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
)

// KeyDispatcher routes key events to bound handlers. It is the process-side
// stand-in for a window key listener table: Bind returns an unbind func, and
// a view that binds on mount must unbind on unmount so handlers never leak
// across views.
type KeyDispatcher struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]binding
}

type binding struct {
	key Key
	fn  func()
}

func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{handlers: make(map[int]binding)}
}

// Bind registers fn for key and returns its unbind func. Unbinding twice is
// harmless.
func (d *KeyDispatcher) Bind(key Key, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.handlers[id] = binding{key: key, fn: fn}
	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.handlers, id)
			d.mu.Unlock()
		})
	}
}

// Press delivers a key event to every handler bound to it.
func (d *KeyDispatcher) Press(key Key) {
	d.mu.Lock()
	var fns []func()
	for _, b := range d.handlers {
		if b.key == key {
			fns = append(fns, b.fn)
		}
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// BindingCount reports live bindings; used to verify nothing leaks between
// views.
func (d *KeyDispatcher) BindingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
