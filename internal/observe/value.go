// Package observe provides a small publish-on-change value container used
// for state shared between one writer and many readers.
package observe

import "sync"

// Reader is the read side of a Value.
type Reader[T comparable] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Value holds a T and notifies subscribers whenever it changes.
// Subscribers are called synchronously, in subscription order, outside the
// lock, so a subscriber may call Get.
type Value[T comparable] struct {
	mu   sync.RWMutex
	v    T
	next int
	subs []subscriber[T]
}

type subscriber[T comparable] struct {
	id int
	fn func(T)
}

func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set stores x and reports whether it differed from the previous value.
// Subscribers are only notified on change.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	if v.v == x {
		v.mu.Unlock()
		return false
	}
	v.v = x
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		if v.live(s.id) {
			s.fn(x)
		}
	}
	return true
}

// Subscribe registers fn. The returned function removes it; calling it more
// than once is harmless. Once it returns, later calls to Set skip fn.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

func (v *Value[T]) live(id int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, s := range v.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
