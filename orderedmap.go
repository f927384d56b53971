package tilestitch

// OrderedMap is a map that iterates in insertion order. Re-setting an
// existing key keeps its position; deleting and setting it again moves it
// to the end.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set adds a key-value pair to the map
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get retrieves a value from the map by key
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := om.values[key]
	return val, exists
}

// Delete removes a key-value pair from the map
func (om *OrderedMap[K, V]) Delete(key K) {
	if _, exists := om.values[key]; !exists {
		return
	}
	delete(om.values, key)
	for i, k := range om.keys {
		if k == key {
			om.keys = append(om.keys[:i], om.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order
func (om *OrderedMap[K, V]) Keys() []K {
	return append([]K(nil), om.keys...)
}

// Iterate calls f for each pair in order until f returns false.
func (om *OrderedMap[K, V]) Iterate(f func(key K, value V) bool) {
	for _, k := range om.keys {
		if !f(k, om.values[k]) {
			return
		}
	}
}

// Len returns the number of elements in the map
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}
