package registry

import (
	"sync"
)

// Registry is a concurrency safe key-value store used to
// look up named values registered at startup.
type Registry[K comparable, V any] struct {
	lock    sync.RWMutex
	entries map[K]V
}

// Entry is a single key-value pair in a [Registry].
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds a value under the given key, overwriting
// any existing value.
func (r *Registry[K, V]) Register(key K, value V) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.entries[key] = value
}

func (r *Registry[K, V]) RegisterMany(entries ...Entry[K, V]) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, e := range entries {
		r.entries[e.Key] = e.Value
	}
}

// Update replaces the value under key with the result of fn, which
// receives the current value and whether it exists. fn runs with the
// registry locked and must not call back into it.
func (r *Registry[K, V]) Update(key K, fn func(V, bool) V) {
	r.lock.Lock()
	defer r.lock.Unlock()

	val, exists := r.entries[key]
	r.entries[key] = fn(val, exists)
}

func (r *Registry[K, V]) Exists(key K) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, exists := r.entries[key]
	return exists
}

func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	val, exists := r.entries[key]
	return val, exists
}

func (r *Registry[K, V]) Delete(keys ...K) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, k := range keys {
		delete(r.entries, k)
	}
}

// List returns all registered keys in no particular order.
func (r *Registry[K, V]) List() []K {
	r.lock.RLock()
	defer r.lock.RUnlock()

	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}
