package simtable

import "github.com/MrWong99/rhymekit/pkg/phoneme"

// Builder assembles a [Table] in code. It is mainly useful for tests and for
// callers that derive scores from another source than a table file.
type Builder struct {
	t    *Table
	keys map[key]struct{}
}

// NewBuilder returns a builder whose pairs all start as [Undefined].
func NewBuilder() *Builder {
	return &Builder{t: newTable(), keys: make(map[key]struct{})}
}

// Pair sets score(a, b) and score(b, a) to v.
func (b *Builder) Pair(x, y phoneme.Phoneme, v float64) *Builder {
	kx, ky := key{id: x.ID}, key{id: y.ID}
	b.t.set(kx, ky, v)
	b.keys[kx] = struct{}{}
	b.keys[ky] = struct{}{}
	return b
}

// Boundary sets the cost of leaving p unmatched at bnd.
func (b *Builder) Boundary(bnd Boundary, p phoneme.Phoneme, v float64) *Builder {
	kb, kp := key{boundary: bnd}, key{id: p.ID}
	b.t.set(kb, kp, v)
	b.keys[kb] = struct{}{}
	b.keys[kp] = struct{}{}
	return b
}

// Build returns the table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := b.t
	t.width = len(b.keys)
	b.t = nil
	return t
}
