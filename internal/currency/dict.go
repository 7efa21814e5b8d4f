package currency

import "fmt"

// Entry is one name -> value pair of a Dict, returned by reference so
// that a for-loop's bound identifier or a .get() result shares the same
// underlying Value cell as the dictionary; mutating Entry.Value.Amount
// through any alias is visible through every other alias.
type Entry struct {
	Name  string
	Value *Value
}

// Dict is an insertion-ordered name -> currency-value mapping: a slice
// keeping the order plus a map for lookup.
type Dict struct {
	order   []string
	entries map[string]*Entry
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]*Entry)}
}

// Add inserts name -> v, taking ownership of v (v must not alias a Value
// still owned elsewhere unless sharing is intended). Fails if name is
// already present.
func (d *Dict) Add(name string, v *Value) error {
	if _, exists := d.entries[name]; exists {
		return fmt.Errorf("key %q already exists", name)
	}
	d.entries[name] = &Entry{Name: name, Value: v}
	d.order = append(d.order, name)
	return nil
}

// Get looks up name, returning its handle.
func (d *Dict) Get(name string) (*Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Len reports the number of entries.
func (d *Dict) Len() int { return len(d.order) }

// Entries returns every entry in insertion order.
func (d *Dict) Entries() []*Entry {
	out := make([]*Entry, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.entries[name])
	}
	return out
}

// FilterByTag returns a new dictionary holding only the entries whose
// currency type equals tag, sharing the same underlying Value cells as
// the source dictionary.
func (d *Dict) FilterByTag(tag Tag) *Dict {
	out := NewDict()
	for _, name := range d.order {
		e := d.entries[name]
		if e.Value.Type == tag {
			_ = out.Add(name, e.Value)
		}
	}
	return out
}
