package types

// DefaultMap is a map that creates values on first access.
//
//	labels := NewDefaultMap[string](func() Set[string] { return NewSet[string]() })
//	labels.Get("script").Add("address")
//
// Like Set, it is not safe for concurrent use.
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates an empty DefaultMap filling missing keys with
// defaultFunc.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value for key, storing a default one first if key is
// missing.
func (d DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Lookup returns the value for key without creating it.
func (d DefaultMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := d.data[key]
	return val, ok
}

// Set stores val under key.
func (d DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Delete removes key. Missing keys are ignored.
func (d DefaultMap[K, V]) Delete(key K) {
	delete(d.data, key)
}

// Len returns the number of stored keys.
func (d DefaultMap[K, V]) Len() int {
	return len(d.data)
}
