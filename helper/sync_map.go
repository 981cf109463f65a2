package helper

import "sync"

// SyncMap is a typed wrapper around sync.Map.
type SyncMap[Key comparable, Value any] struct {
	inner sync.Map
}

func (m *SyncMap[Key, Value]) Get(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.Load(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// PutIfAbsent stores value unless key is already present, and returns the
// value now associated with key.
func (m *SyncMap[Key, Value]) PutIfAbsent(key Key, value Value) (actual Value, exists bool) {
	actualValue, exists := m.inner.LoadOrStore(key, value)
	if !exists {
		return value, exists
	}
	return actualValue.(Value), exists
}

func (m *SyncMap[Key, Value]) ForEach(f func(key Key, value Value) bool) {
	m.inner.Range(func(key, value any) bool { return f(key.(Key), value.(Value)) })
}

// Values returns a snapshot of all values, in no particular order.
func (m *SyncMap[Key, Value]) Values() []Value {
	var values []Value
	m.ForEach(func(_ Key, value Value) bool {
		values = append(values, value)
		return true
	})
	return values
}
