// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for delivering notifications to
// observers.
package event

// Feed delivers values of type T to its subscribers, in subscription
// order. The zero Feed is ready to use.
//
// A Feed is not safe for concurrent use; it is meant to be driven from
// the UI goroutine that owns the emitting component.
type Feed[T any] struct {
	subs   []subscription[T]
	nextID int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// Observed reports whether the feed has at least one subscriber.
func (f *Feed[T]) Observed() bool {
	return len(f.subs) > 0
}

// Emit delivers v to every current subscriber. Subscribers added or
// removed during delivery take effect from the next Emit.
func (f *Feed[T]) Emit(v T) {
	subs := f.subs
	for _, s := range subs {
		s.fn(v)
	}
}
