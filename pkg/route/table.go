package route

// Table maps route keys to their ordered variant lists. A Table is produced
// by a Builder and never mutated afterwards, so reads need no locking.
type Table struct {
	entries map[Key][]*Variant
	keys    []Key // key registration order, for deterministic iteration
}

func newTable() *Table {
	return &Table{entries: make(map[Key][]*Variant)}
}

func (t *Table) add(key Key, v *Variant) {
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = append(t.entries[key], v)
}

// Variants returns the ordered variant list for a key, or nil when the key
// is unknown. A known key's list is never empty.
func (t *Table) Variants(key Key) []*Variant {
	return t.entries[key]
}

// Keys returns every route key in registration order.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.keys...)
}

// Len returns the number of route keys in the table.
func (t *Table) Len() int {
	return len(t.keys)
}
