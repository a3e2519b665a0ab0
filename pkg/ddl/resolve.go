package ddl

import (
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Resolve runs the resolution pass over every reference recorded in ctx and
// returns the references that did not resolve. It is meant to run once, after
// the last statement of the unit; the cache is cleared afterwards.
//
// Resolution runs in two phases, so errors come back grouped by phase rather
// than in strict insertion order. Object references run first, in insertion
// order, since their binds attach indexes, copy LIKE definitions and replay
// deferred ALTER TABLE items, and may record new column references. A LIKE
// whose source is itself a pending LIKE copy waits for that copy. Column
// references then run in insertion order, skipping those whose index, foreign
// key or table was dropped after they were recorded. With ParallelResolve
// their lookups run concurrently; the results are still written back
// serially, in insertion order.
func Resolve(ctx *Context) []*ResolutionError {
	cache := ctx.Refs()
	errs := resolveObjects(ctx, cache)

	var pending []Ref
	for _, ref := range cache.Refs() {
		if _, ok := ref.(*ObjectReference); !ok && attached(ref) {
			pending = append(pending, ref)
		}
	}

	plans := make([]plan, len(pending))
	if ctx.Options().ParallelResolve && len(pending) > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, ref := range pending {
			g.Go(func() error {
				plans[i] = planRef(ctx, ref)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, ref := range pending {
			plans[i] = planRef(ctx, ref)
		}
	}

	for i, ref := range pending {
		if err := applyPlan(ctx, ref, plans[i]); err != nil {
			errs = append(errs, err)
		}
	}

	ctx.logger.Info("resolution pass completed",
		"references", cache.Len(), "unresolved", len(errs), "parallel", ctx.Options().ParallelResolve)
	cache.Clear()
	return errs
}

// resolveObjects runs the object references of cache until none is left. A
// LIKE copy is held back while its source waits for a LIKE copy of its own;
// copies still held back when no progress is possible form a cycle and are
// bound as they stand.
func resolveObjects(ctx *Context, cache *RefCache) []*ResolutionError {
	var errs []*ResolutionError
	done := make(map[*ObjectReference]bool)
	run := func(ref *ObjectReference) {
		done[ref] = true
		if err := resolveObject(ctx, ref); err != nil {
			errs = append(errs, err)
		}
	}

	for {
		progress := false
		// binds may append to the cache while we iterate
		for i := 0; i < cache.Len(); i++ {
			ref, ok := cache.At(i).(*ObjectReference)
			if !ok || done[ref] || waitsForCopy(ctx, cache, ref, done) {
				continue
			}
			progress = true
			if ref.Defines != nil && !tableAttached(ref.Defines) {
				// the copying table was dropped before the pass
				done[ref] = true
				continue
			}
			run(ref)
		}
		if !progress {
			break
		}
	}

	for i := 0; i < cache.Len(); i++ {
		ref, ok := cache.At(i).(*ObjectReference)
		if !ok || done[ref] {
			continue
		}
		ctx.reportf(SeverityError, CodeCircularLike, ref.OwnerName, nil,
			"table %s is copied by a circular chain of LIKE clauses", ref.OwnerName)
		run(ref)
	}
	return errs
}

// waitsForCopy reports whether ref is a LIKE whose source table is still to
// be filled by another pending LIKE.
func waitsForCopy(ctx *Context, cache *RefCache, ref *ObjectReference, done map[*ObjectReference]bool) bool {
	if ref.Defines == nil {
		return false
	}
	src, ok := lookupObject(ctx, ref).(*catalog.Table)
	if !ok || src == ref.Defines {
		return false
	}
	for i := 0; i < cache.Len(); i++ {
		other, ok := cache.At(i).(*ObjectReference)
		if ok && other != ref && !done[other] && other.Defines == src {
			return true
		}
	}
	return false
}

// attached reports whether the index, foreign key and table a column
// reference writes into are still part of the catalog.
func attached(ref Ref) bool {
	switch r := ref.(type) {
	case *IndexReference:
		return tableAttached(r.Table) && slices.Contains(r.Table.Indexes, r.Index)
	case *ReferencingReference:
		return tableAttached(r.Table) && slices.Contains(r.Table.ForeignKeys, r.ForeignKey)
	case *ReferencedReference:
		return tableAttached(r.Table) && slices.Contains(r.Table.ForeignKeys, r.ForeignKey)
	}
	return true
}

func tableAttached(t *catalog.Table) bool {
	s := t.Owner
	return s != nil && slices.Contains(s.Tables, t) &&
		s.Owner != nil && slices.Contains(s.Owner.Schemas, s)
}

// plan is the read-only outcome of looking up one column reference.
type plan struct {
	target  *catalog.Table
	columns []*catalog.Column
	missing []string
}

func planRef(ctx *Context, ref Ref) plan {
	cs := ctx.CaseSensitive()
	switch r := ref.(type) {
	case *IndexReference:
		return matchColumns(r.Table, r.Index.ColumnNames(), cs)
	case *ReferencingReference:
		return matchColumns(r.Table, r.ForeignKey.ColumnNames, cs)
	case *ReferencedReference:
		target := findReferencedTable(ctx, r)
		if target == nil {
			return plan{}
		}
		names := r.ForeignKey.ReferencedColumnNames
		if len(names) == 0 && target.PrimaryKey != nil {
			names = target.PrimaryKey.ColumnNames()
		}
		p := matchColumns(target, names, cs)
		p.target = target
		return p
	}
	return plan{}
}

// matchColumns looks up names among t's columns, in order. Empty names stand
// for functional key parts and match nothing.
func matchColumns(t *catalog.Table, names []string, caseSensitive bool) plan {
	p := plan{columns: make([]*catalog.Column, len(names))}
	for i, name := range names {
		if name == "" {
			continue
		}
		col := t.FindColumn(name, caseSensitive)
		if col == nil {
			p.missing = append(p.missing, name)
			continue
		}
		p.columns[i] = col
	}
	return p
}

func findReferencedTable(ctx *Context, r *ReferencedReference) *catalog.Table {
	schema, name := splitQualified(r.Target)
	var s *catalog.Schema
	if schema == "" {
		s = r.Table.Owner
	} else {
		s = ctx.Catalog().FindSchema(schema, ctx.CaseSensitive())
	}
	if s == nil {
		return nil
	}
	return s.FindTable(name, ctx.CaseSensitive())
}

func applyPlan(ctx *Context, ref Ref, p plan) *ResolutionError {
	switch r := ref.(type) {
	case *IndexReference:
		for i, col := range p.columns {
			r.Index.Columns[i].Column = col
		}
		if len(p.missing) == 0 {
			return nil
		}
		r.Index.Incomplete = true
		return &ResolutionError{
			Kind: RefIndex, OwnerID: r.Table.ID, Owner: r.Table.Qualified(), Object: r.Index.Name,
			Target: catalog.KindColumn, Names: p.missing,
		}

	case *ReferencingReference:
		r.ForeignKey.Columns = p.columns
		if len(p.missing) == 0 {
			return nil
		}
		r.ForeignKey.Incomplete = true
		return &ResolutionError{
			Kind: RefReferencing, OwnerID: r.Table.ID, Owner: r.Table.Qualified(), Object: r.ForeignKey.Name,
			Target: catalog.KindColumn, Names: p.missing,
		}

	case *ReferencedReference:
		fk := r.ForeignKey
		if p.target == nil {
			// an earlier stub may have been created for the same target
			if target := findReferencedTable(ctx, r); target != nil {
				p = planRef(ctx, r)
			} else if ctx.Options().StubUnresolvedTables {
				p = stubTarget(ctx, r)
			}
		}
		if p.target == nil {
			fk.Incomplete = true
			return &ResolutionError{
				Kind: RefReferenced, OwnerID: r.Table.ID, Owner: r.Table.Qualified(), Object: fk.Name,
				Target: catalog.KindTable, Names: []string{strings.Join(r.Target, ".")},
			}
		}
		if p.target.IsStub && len(p.missing) > 0 {
			addStubColumns(ctx, p.target, p.missing)
			p = planRef(ctx, r)
		}
		fk.ReferencedTable = p.target
		fk.ReferencedColumns = p.columns
		if len(fk.ReferencedColumnNames) == 0 && p.target.PrimaryKey != nil {
			fk.ReferencedColumnNames = p.target.PrimaryKey.ColumnNames()
		}
		if len(p.missing) == 0 {
			return nil
		}
		fk.Incomplete = true
		return &ResolutionError{
			Kind: RefReferenced, OwnerID: r.Table.ID, Owner: r.Table.Qualified(), Object: fk.Name,
			Target: catalog.KindColumn, Names: p.missing,
		}
	}
	return nil
}

// stubTarget creates the missing target table of a foreign key as a stub with
// the referenced columns.
func stubTarget(ctx *Context, r *ReferencedReference) plan {
	schema, name := splitQualified(r.Target)
	s := r.Table.Owner
	if schema != "" {
		s = ctx.EnsureSchemaExists(schema)
	}
	t := ctx.Catalog().NewTable(name)
	t.IsStub = true
	s.AddTable(t)
	addStubColumns(ctx, t, r.ForeignKey.ReferencedColumnNames)
	ctx.logger.Debug("created stub table", "table", t.Qualified())
	p := planRef(ctx, r)
	return p
}

func addStubColumns(ctx *Context, t *catalog.Table, names []string) {
	for _, n := range names {
		if t.FindColumn(n, ctx.CaseSensitive()) == nil {
			t.AddColumn(ctx.Catalog().NewColumn(n))
		}
	}
}

func resolveObject(ctx *Context, r *ObjectReference) *ResolutionError {
	obj := lookupObject(ctx, r)
	if obj == nil {
		var ownerID catalog.ID
		if r.Owner != nil {
			ownerID = r.Owner.ObjectID()
		}
		return &ResolutionError{
			Kind: RefTable, OwnerID: ownerID, Owner: r.OwnerName,
			Target: r.Target, Names: []string{strings.Join(r.Name, ".")},
		}
	}
	if r.Bind != nil {
		r.Bind(obj)
	}
	return nil
}

func lookupObject(ctx *Context, r *ObjectReference) catalog.Object {
	cs := ctx.CaseSensitive()
	schema, name := splitQualified(r.Name)
	switch r.Target {
	case catalog.KindTable:
		s := r.Schema
		if schema != "" {
			s = ctx.Catalog().FindSchema(schema, cs)
		}
		if s == nil {
			return nil
		}
		if t := s.FindTable(name, cs); t != nil {
			return t
		}
	case catalog.KindLogfileGroup:
		if lg := ctx.Catalog().FindLogfileGroup(name, cs); lg != nil {
			return lg
		}
	case catalog.KindTablespace:
		if ts := ctx.Catalog().FindTablespace(name, cs); ts != nil {
			return ts
		}
	case catalog.KindSchema:
		if s := ctx.Catalog().FindSchema(name, cs); s != nil {
			return s
		}
	}
	return nil
}
