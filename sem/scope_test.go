package sem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svlang/logging"
	"svlang/syntax"
	"svlang/typing"
)

func pos(line, col int) *logging.TextPosition {
	return &logging.TextPosition{StartLn: line, StartCol: col, EndLn: line, EndCol: col + 1}
}

func TestScopeDefineAndLookup(t *testing.T) {
	root := NewScope(nil, nil)
	mod := NewModule("top", pos(1, 1), root)
	require.True(t, root.Define(mod))

	p := NewParameter("WIDTH", pos(2, 3), typing.IntType, false)
	require.True(t, mod.MemberScope().Define(p))

	t.Run("local hit", func(t *testing.T) {
		sym, ok := mod.MemberScope().Lookup("WIDTH", nil, LookupDefault)
		require.True(t, ok)
		assert.Same(t, Symbol(p), sym)
	})

	t.Run("walks outward", func(t *testing.T) {
		inner := NewBlock("", pos(3, 1), mod.MemberScope())
		sym, ok := inner.MemberScope().Lookup("WIDTH", nil, LookupDefault)
		require.True(t, ok)
		assert.Same(t, Symbol(p), sym)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := mod.MemberScope().Lookup("missing", nil, LookupDefault)
		assert.False(t, ok)
	})

	t.Run("redefinition rejected", func(t *testing.T) {
		dup := NewParameter("WIDTH", pos(9, 1), typing.IntType, false)
		assert.False(t, mod.MemberScope().Define(dup))

		// the original binding survives
		sym, _ := mod.MemberScope().Lookup("WIDTH", nil, LookupDefault)
		assert.Same(t, Symbol(p), sym)
	})

	t.Run("every non-root symbol has one parent", func(t *testing.T) {
		assert.Same(t, mod.MemberScope(), p.Parent())
		assert.Same(t, root, mod.Parent())
	})
}

func TestLookupDeterminism(t *testing.T) {
	root := NewScope(nil, nil)
	v := NewVariable("v", pos(1, 1), typing.IntType, false)
	require.True(t, root.Define(v))

	first, ok1 := root.Lookup("v", pos(5, 1), LookupProcedural)
	second, ok2 := root.Lookup("v", pos(5, 1), LookupProcedural)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Same(t, first, second)
}

func TestProceduralVisibility(t *testing.T) {
	root := NewScope(nil, nil)
	v := NewVariable("v", pos(10, 1), typing.IntType, false)
	require.True(t, root.Define(v))

	t.Run("use before declaration misses", func(t *testing.T) {
		_, ok := root.Lookup("v", pos(5, 1), LookupProcedural)
		assert.False(t, ok)
	})

	t.Run("use after declaration hits", func(t *testing.T) {
		_, ok := root.Lookup("v", pos(11, 1), LookupProcedural)
		assert.True(t, ok)
	})

	t.Run("default lookup ignores ordering", func(t *testing.T) {
		_, ok := root.Lookup("v", pos(5, 1), LookupDefault)
		assert.True(t, ok)
	})
}

func TestHierarchicalLookup(t *testing.T) {
	root := NewScope(nil, nil)
	pkg := NewPackage("mypkg", pos(1, 1), root)
	require.True(t, root.Define(pkg))

	blk := NewBlock("blk", pos(2, 1), pkg.MemberScope())
	require.True(t, pkg.MemberScope().Define(blk))

	p := NewParameter("P", pos(3, 1), typing.IntType, false)
	require.True(t, blk.MemberScope().Define(p))

	t.Run("dotted path resolves", func(t *testing.T) {
		sym, _, ok := root.LookupPath([]string{"mypkg", "blk", "P"}, nil, LookupDefault)
		require.True(t, ok)
		assert.Same(t, Symbol(p), sym)
	})

	t.Run("non-scope middle segment fails", func(t *testing.T) {
		_, failed, ok := root.LookupPath([]string{"mypkg", "blk", "P", "x"}, nil, LookupDefault)
		assert.False(t, ok)
		assert.Equal(t, "x", failed)
	})

	t.Run("missing first segment fails", func(t *testing.T) {
		sym, failed, ok := root.LookupPath([]string{"nope", "P"}, nil, LookupDefault)
		assert.False(t, ok)
		assert.Nil(t, sym)
		assert.Equal(t, "nope", failed)
	})
}

func TestFindAncestor(t *testing.T) {
	root := NewScope(nil, nil)
	sub := NewSubroutine("f", pos(1, 1), typing.IntType, true, root)
	require.True(t, root.Define(sub))

	blk := NewBlock("", pos(2, 1), sub.MemberScope())

	found, ok := blk.MemberScope().FindAncestor(SymSubroutine)
	require.True(t, ok)
	assert.Same(t, Symbol(sub), found)

	_, ok = root.FindAncestor(SymSubroutine)
	assert.False(t, ok)
}

// countingElaborator records promotion calls and declares one variable per
// deferred data declaration
type countingElaborator struct {
	declares int
	binds    int

	// lookupDuringBind looks up a name mid-promotion to exercise the
	// re-entrant partial view
	lookupDuringBind string
	sawDuringBind    bool
}

func (ce *countingElaborator) DeclareMember(scope *Scope, member syntax.MemberNode) {
	ce.declares++
	if decl, ok := member.(*syntax.DataDeclaration); ok {
		for _, d := range decl.Declarators {
			scope.Define(NewVariable(d.Name.Value, d.Name.Position(), typing.IntType, false))
		}
	}
}

func (ce *countingElaborator) BindMember(scope *Scope, member syntax.MemberNode) {
	ce.binds++
	if ce.lookupDuringBind != "" {
		_, ce.sawDuringBind = scope.Lookup(ce.lookupDuringBind, nil, LookupDefault)
	}
}

func dataDecl(name string, line int) *syntax.DataDeclaration {
	return &syntax.DataDeclaration{
		Type: &syntax.IntegerType{
			KeywordTok: &syntax.Token{Kind: syntax.IDENTIFIER, Value: "int", Line: line, Col: 4},
			Keyword:    syntax.IntKwInt,
		},
		Declarators: []*syntax.Declarator{
			{Name: &syntax.Token{Kind: syntax.IDENTIFIER, Value: name, Line: line, Col: 10}},
		},
	}
}

func TestLazyPromotion(t *testing.T) {
	t.Run("lookup forces promotion before reporting a miss", func(t *testing.T) {
		root := NewScope(nil, nil)
		ce := &countingElaborator{}
		root.SetElaborator(ce)
		root.AddDeferredMembers(dataDecl("a", 1), dataDecl("b", 2))

		_, ok := root.Lookup("b", nil, LookupDefault)
		assert.True(t, ok)
		assert.Equal(t, 2, ce.declares)
	})

	t.Run("promotion is idempotent", func(t *testing.T) {
		root := NewScope(nil, nil)
		ce := &countingElaborator{}
		root.SetElaborator(ce)
		root.AddDeferredMembers(dataDecl("a", 1))

		root.Members()
		root.Members()
		_, _ = root.Lookup("a", nil, LookupDefault)

		assert.Equal(t, 1, ce.declares)
		assert.Equal(t, 1, ce.binds)
	})

	t.Run("re-entrant lookup sees the partial view", func(t *testing.T) {
		root := NewScope(nil, nil)
		ce := &countingElaborator{lookupDuringBind: "b"}
		root.SetElaborator(ce)
		root.AddDeferredMembers(dataDecl("a", 1), dataDecl("b", 2))

		// binding of `a` looks up `b`, which was declared in phase one even
		// though it appears later in the source
		_, ok := root.Lookup("a", nil, LookupDefault)
		assert.True(t, ok)
		assert.True(t, ce.sawDuringBind)
	})

	t.Run("members enumerate in declaration order", func(t *testing.T) {
		root := NewScope(nil, nil)
		ce := &countingElaborator{}
		root.SetElaborator(ce)
		root.AddDeferredMembers(dataDecl("x", 1), dataDecl("y", 2), dataDecl("z", 3))

		var names []string
		for _, m := range root.Members() {
			names = append(names, m.Name())
		}
		assert.Equal(t, []string{"x", "y", "z"}, names)
	})
}

func TestAnonymousScopes(t *testing.T) {
	root := NewScope(nil, nil)
	blk := NewBlock("", pos(1, 1), root)
	require.True(t, root.Define(blk))

	// anonymous blocks are tracked but invisible to name lookup
	assert.Len(t, root.Members(), 1)
	_, ok := root.Lookup("", nil, LookupDefault)
	assert.False(t, ok)
}
