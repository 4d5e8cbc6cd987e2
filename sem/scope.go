package sem

import (
	"svlang/logging"
	"svlang/syntax"
)

// LookupKind selects the visibility rule a lookup applies
type LookupKind int

// Enumeration of lookup kinds
const (
	// LookupDefault resolves anywhere in the scope chain with no ordering
	// constraint, as for module-level references
	LookupDefault LookupKind = iota

	// LookupProcedural additionally requires the symbol to be declared at or
	// before the textual location of the reference
	LookupProcedural
)

// MemberElaborator promotes deferred syntax members into real symbols
// defined in the given scope.  Promotion runs in two phases so deferred
// members can reference each other regardless of declaration order:
// DeclareMember introduces the symbols by name, then BindMember resolves
// types, initializers, and bodies against the fully declared scope.  The
// resolve package supplies the implementation; the scope only orchestrates
// when promotion happens.
type MemberElaborator interface {
	DeclareMember(scope *Scope, member syntax.MemberNode)
	BindMember(scope *Scope, member syntax.MemberNode)
}

// Scope is a name-binding region attached to a scoped symbol.  Members are
// kept both in insertion order and in a name index.  Scope members may be
// deferred: the scope holds their syntax until the first lookup (or member
// enumeration) forces promotion.
//
// Promotion is re-entrant by design: the initialized flag is set before the
// deferred members are walked, so a lookup issued from inside promotion sees
// the partial scope instead of recursing forever.  Forward references
// resolve once promotion completes because a scope never reports a miss
// until every deferred member has been promoted.
type Scope struct {
	owner  Symbol
	parent *Scope

	members []Symbol
	names   map[string]Symbol

	deferred    []syntax.MemberNode
	elaborator  MemberElaborator
	initialized bool
}

// NewScope creates an empty scope owned by the given symbol
func NewScope(owner Symbol, parent *Scope) *Scope {
	return &Scope{
		owner:  owner,
		parent: parent,
		names:  make(map[string]Symbol),
	}
}

// Owner returns the symbol that introduces this scope; nil for the design
// root
func (s *Scope) Owner() Symbol { return s.owner }

// ParentScope returns the lexically enclosing scope
func (s *Scope) ParentScope() *Scope { return s.parent }

// Define adds a symbol to the scope.  It returns false if the name is
// already bound, leaving the previous binding in place; the caller reports
// the diagnostic.  Anonymous symbols are tracked in insertion order but do
// not enter the name index.
func (s *Scope) Define(sym Symbol) bool {
	if sym.Name() != "" {
		if _, ok := s.names[sym.Name()]; ok {
			return false
		}
		s.names[sym.Name()] = sym
	}

	s.members = append(s.members, sym)
	sym.setParent(s)
	return true
}

// AddDeferredMembers stores syntax whose symbols are materialized on first
// lookup
func (s *Scope) AddDeferredMembers(members ...syntax.MemberNode) {
	s.deferred = append(s.deferred, members...)
	s.initialized = false
}

// SetElaborator installs the promotion callback used for deferred members
func (s *Scope) SetElaborator(e MemberElaborator) {
	s.elaborator = e
}

// ensureElaborated promotes all deferred members.  The flag is set first so
// re-entrant lookups from inside promotion observe the partial view.
func (s *Scope) ensureElaborated() {
	if s.initialized {
		return
	}
	s.initialized = true

	if s.elaborator == nil {
		return
	}

	pending := s.deferred
	s.deferred = nil
	for _, member := range pending {
		s.elaborator.DeclareMember(s, member)
	}
	for _, member := range pending {
		s.elaborator.BindMember(s, member)
	}
}

// Members returns the scope's symbols in declaration order, forcing
// promotion of any deferred members first
func (s *Scope) Members() []Symbol {
	s.ensureElaborated()
	return s.members
}

// ResolveLocal resolves a name in this scope only, forcing promotion before
// reporting a miss
func (s *Scope) ResolveLocal(name string) (Symbol, bool) {
	if sym, ok := s.names[name]; ok {
		return sym, true
	}

	s.ensureElaborated()
	sym, ok := s.names[name]
	return sym, ok
}

// Lookup resolves an unqualified name starting at this scope and walking
// outward.  The first hit wins.  Under LookupProcedural a symbol declared
// after the reference position is rejected and the walk continues outward.
// Repeated lookups with the same arguments always return the same symbol.
func (s *Scope) Lookup(name string, pos *logging.TextPosition, kind LookupKind) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		sym, ok := scope.ResolveLocal(name)
		if !ok {
			continue
		}

		if kind == LookupProcedural && pos != nil && declaredAfter(sym, pos) {
			continue
		}

		return sym, true
	}

	return nil, false
}

// LookupPath resolves a dotted name.  The first segment resolves by
// unqualified lookup and must produce a scope-bearing symbol for every
// segment but the last; subsequent segments resolve within that scope only.
// The second result names the segment that failed when resolution misses.
func (s *Scope) LookupPath(parts []string, pos *logging.TextPosition, kind LookupKind) (Symbol, string, bool) {
	sym, ok := s.Lookup(parts[0], pos, kind)
	if !ok {
		return nil, parts[0], false
	}

	for _, part := range parts[1:] {
		scoped, ok := sym.(ScopedSymbol)
		if !ok {
			return sym, part, false
		}

		// qualified segments ignore declaration order
		sym, ok = scoped.MemberScope().ResolveLocal(part)
		if !ok {
			return nil, part, false
		}
	}

	return sym, "", true
}

// UnitScope climbs to the nearest enclosing compilation unit scope, used
// for `$unit::` style upward lookup
func (s *Scope) UnitScope() *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.owner != nil && scope.owner.Kind() == SymCompilationUnit {
			return scope
		}
	}
	return s.RootScope()
}

// RootScope climbs to the design root
func (s *Scope) RootScope() *Scope {
	scope := s
	for scope.parent != nil {
		scope = scope.parent
	}
	return scope
}

// FindAncestor walks the owner chain looking for a symbol of the given kind;
// it is how a return statement finds its enclosing subroutine
func (s *Scope) FindAncestor(kind SymbolKind) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.owner != nil && scope.owner.Kind() == kind {
			return scope.owner, true
		}
	}
	return nil, false
}

// declaredAfter indicates whether the symbol's declaration follows the
// given reference position in the source text
func declaredAfter(sym Symbol, pos *logging.TextPosition) bool {
	dp := sym.Position()
	if dp == logging.NoPosition {
		return false
	}
	if dp.StartLn != pos.StartLn {
		return dp.StartLn > pos.StartLn
	}
	return dp.StartCol > pos.StartCol
}
