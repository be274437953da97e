package dotenv

import (
	"iter"
	"maps"
	"slices"
)

// Pair is one key with an optional value.
type Pair struct {
	Key   string
	Value *string
}

// Values is an ordered mapping from key to optional value.
// A key keeps the position of its first definition; setting it again only
// updates the value.
type Values struct {
	keys []string
	vals map[string]*string
}

// NewValues returns an empty mapping.
func NewValues() *Values {
	return &Values{vals: make(map[string]*string)}
}

// Set stores value under key.
func (v *Values) Set(key string, value *string) {
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get returns the value for key and whether key is present.
func (v *Values) Get(key string) (*string, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v.vals[key]
	return val, ok
}

// Lookup implements Environment.
func (v *Values) Lookup(key string) (*string, bool) {
	return v.Get(key)
}

// Keys returns the keys in definition order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.keys)
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// All iterates over keys and values in definition order.
func (v *Values) All() iter.Seq2[string, *string] {
	return func(yield func(string, *string) bool) {
		if v == nil {
			return
		}
		for _, k := range v.keys {
			if !yield(k, v.vals[k]) {
				return
			}
		}
	}
}

// Merge sets every key of other into v, in other's order.
func (v *Values) Merge(other *Values) {
	for k, val := range other.All() {
		v.Set(k, val)
	}
}

// Clone returns an independent copy.
func (v *Values) Clone() *Values {
	c := NewValues()
	c.Merge(v)
	return c
}

// StringMap returns the non-nil values as a plain map.
func (v *Values) StringMap() map[string]string {
	m := make(map[string]string, v.Len())
	for k, val := range v.All() {
		if val != nil {
			m[k] = *val
		}
	}
	return m
}

// PairsFromMap turns a plain map into pairs sorted by key, since maps have no order.
func PairsFromMap(m map[string]string) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			val := m[k]
			if !yield(Pair{Key: k, Value: &val}) {
				return
			}
		}
	}
}
