package attendance

import "slices"

// Roster tracks which known people have not been marked present yet.
// It only ever shrinks.
type Roster struct {
	order   []string
	pending map[string]bool
}

// NewRoster returns a roster with every name pending.
func NewRoster(names []string) *Roster {
	r := &Roster{
		order:   slices.Clone(names),
		pending: make(map[string]bool, len(names)),
	}
	for _, n := range names {
		r.pending[n] = true
	}
	return r
}

// IsPending reports whether name has not been marked present yet.
func (r *Roster) IsPending(name string) bool {
	return r.pending[name]
}

// MarkPresent removes name from the pending set. It returns true only the
// first time a pending name is marked.
func (r *Roster) MarkPresent(name string) bool {
	if !r.pending[name] {
		return false
	}
	delete(r.pending, name)
	return true
}

// Absent returns the pending names in roster order.
func (r *Roster) Absent() []string {
	var absent []string
	for _, n := range r.order {
		if r.pending[n] {
			absent = append(absent, n)
		}
	}
	return absent
}

// Present returns the names marked present, in roster order.
func (r *Roster) Present() []string {
	var present []string
	for _, n := range r.order {
		if !r.pending[n] {
			present = append(present, n)
		}
	}
	return present
}
