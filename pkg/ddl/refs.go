package ddl

import (
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Ref is a deferred reference: a name link recorded during the walk that can
// only be checked once the whole unit is known. The set of implementations is
// closed.
type Ref interface {
	Kind() RefKind
	isRef()
}

// IndexReference matches the key part names of an index against the columns
// of its table.
type IndexReference struct {
	Table *catalog.Table
	Index *catalog.Index
}

// ReferencingReference matches the local column names of a foreign key against
// the columns of its table.
type ReferencingReference struct {
	Table      *catalog.Table
	ForeignKey *catalog.ForeignKey
}

// ReferencedReference resolves the target table of a foreign key and matches
// the referenced column names against it. An unqualified target binds to the
// schema of the owning table.
type ReferencedReference struct {
	Table      *catalog.Table
	ForeignKey *catalog.ForeignKey
	Target     []string
}

// ObjectReference resolves a name to an object of the given kind and hands it
// to Bind. It carries statements that could not be applied during the walk,
// such as CREATE INDEX on a table defined further down.
type ObjectReference struct {
	Target catalog.Kind
	Name   []string
	// Schema is where an unqualified table name binds; it is captured when the
	// reference is recorded since USE may switch schemas later.
	Schema *catalog.Schema
	// Owner identifies the object holding the reference, for error reports.
	Owner     catalog.Object
	OwnerName string
	// Defines is the table whose definition Bind fills in, for LIKE. A LIKE
	// of that table waits until it is filled.
	Defines *catalog.Table
	Bind    func(obj catalog.Object)
}

// Kind implements Ref.
func (*IndexReference) Kind() RefKind { return RefIndex }

// Kind implements Ref.
func (*ReferencingReference) Kind() RefKind { return RefReferencing }

// Kind implements Ref.
func (*ReferencedReference) Kind() RefKind { return RefReferenced }

// Kind implements Ref.
func (*ObjectReference) Kind() RefKind { return RefTable }

func (*IndexReference) isRef()       {}
func (*ReferencingReference) isRef() {}
func (*ReferencedReference) isRef()  {}
func (*ObjectReference) isRef()      {}

// RefCache is the append-only list of deferred references of one unit.
type RefCache struct {
	refs []Ref
}

// NewRefCache returns an empty cache.
func NewRefCache() *RefCache {
	return &RefCache{}
}

// Push appends references in order.
func (c *RefCache) Push(refs ...Ref) {
	c.refs = append(c.refs, refs...)
}

// Len returns the number of recorded references.
func (c *RefCache) Len() int {
	return len(c.refs)
}

// At returns the i-th reference.
func (c *RefCache) At(i int) Ref {
	return c.refs[i]
}

// Refs returns a copy of the recorded references.
func (c *RefCache) Refs() []Ref {
	out := make([]Ref, len(c.refs))
	copy(out, c.refs)
	return out
}

// Clear discards every reference.
func (c *RefCache) Clear() {
	c.refs = nil
}

// indexRefFor returns the reference that binds the key parts of idx.
func indexRefFor(t *catalog.Table, idx *catalog.Index) Ref {
	return &IndexReference{Table: t, Index: idx}
}

// foreignKeyRefs returns the two references a foreign key needs.
func foreignKeyRefs(t *catalog.Table, fk *catalog.ForeignKey, target []string) []Ref {
	return []Ref{
		&ReferencingReference{Table: t, ForeignKey: fk},
		&ReferencedReference{Table: t, ForeignKey: fk, Target: target},
	}
}
