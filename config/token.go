package config

import (
	"sort"
	"sync"
	"sync/atomic"
)

// ChangeToken is a single-use change notification. Firing it runs every
// registered callback exactly once; afterwards the token stays changed and a
// new token has to be obtained to observe later changes.
type ChangeToken struct {
	mu        sync.Mutex
	fired     bool
	done      chan struct{}
	nextID    uint64
	callbacks map[uint64]func()
}

// NewChangeToken creates an unfired token.
func NewChangeToken() *ChangeToken {
	return &ChangeToken{
		done:      make(chan struct{}),
		callbacks: make(map[uint64]func()),
	}
}

// HasChanged reports whether the token has fired.
func (t *ChangeToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fired
}

// Done returns a channel that is closed when the token fires.
func (t *ChangeToken) Done() <-chan struct{} {
	return t.done
}

// RegisterChangeCallback registers fn to run when the token fires and returns
// a function that removes the registration. Registering on a token that has
// already fired runs fn immediately.
//
// Callbacks of a provider token run while that provider holds its reload lock.
// fn may read data and call Close, but it must not call Load or Reload on the
// same provider, or push to the registry feeding it, without first handing the
// call to another goroutine.
func (t *ChangeToken) RegisterChangeCallback(fn func()) (unregister func()) {
	t.mu.Lock()

	if t.fired {
		t.mu.Unlock()
		fn()

		return func() {}
	}

	id := t.nextID
	t.nextID++
	t.callbacks[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.callbacks, id)
		t.mu.Unlock()
	}
}

func (t *ChangeToken) fire() {
	t.mu.Lock()

	if t.fired {
		t.mu.Unlock()

		return
	}

	t.fired = true
	close(t.done)

	ids := make([]uint64, 0, len(t.callbacks))
	for id := range t.callbacks {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	callbacks := make([]func(), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, t.callbacks[id])
	}

	t.callbacks = nil
	t.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Notifier hands out the current ChangeToken and replaces it on every
// notification. The zero value is ready to use.
type Notifier struct {
	once  sync.Once
	token atomic.Pointer[ChangeToken]
}

// Token returns the current, unfired token.
func (n *Notifier) Token() *ChangeToken {
	n.once.Do(func() {
		n.token.CompareAndSwap(nil, NewChangeToken())
	})

	return n.token.Load()
}

// Notify installs a fresh token and then fires the previous one, so callbacks
// that ask for the current token observe the new one.
func (n *Notifier) Notify() {
	previous := n.Token()

	if n.token.CompareAndSwap(previous, NewChangeToken()) {
		previous.fire()
	}
}

// OnChange calls consumer every time the token returned by producer fires,
// re-registering on the producer's current token after each notification.
// The returned function stops further calls. consumer runs like a change
// callback, with the same restriction on reloading the notifying provider.
func OnChange(producer func() *ChangeToken, consumer func()) (stop func()) {
	var (
		mu         sync.Mutex
		stopped    bool
		unregister func()
	)

	var register func()

	register = func() {
		token := producer()

		unreg := token.RegisterChangeCallback(func() {
			mu.Lock()
			done := stopped
			mu.Unlock()

			if done {
				return
			}

			consumer()
			register()
		})

		mu.Lock()
		unregister = unreg
		mu.Unlock()
	}

	register()

	return func() {
		mu.Lock()
		stopped = true
		current := unregister
		mu.Unlock()

		if current != nil {
			current()
		}
	}
}
