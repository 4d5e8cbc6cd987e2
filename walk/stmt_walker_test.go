package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

func exprStmt(e syntax.ExpressionNode) *syntax.ExpressionStatement {
	return &syntax.ExpressionStatement{Expr: e}
}

func block(items ...syntax.Node) *syntax.BlockStatement {
	return &syntax.BlockStatement{
		BeginKw: tk(syntax.KWBEGIN, "begin"),
		EndKw:   tk(syntax.KWEND, "end"),
		Items:   items,
	}
}

func declInt(name string, init syntax.ExpressionNode) *syntax.DataDeclaration {
	return &syntax.DataDeclaration{
		Type: intTypeSyn(),
		Declarators: []*syntax.Declarator{
			{Name: tk(syntax.IDENTIFIER, name), Initializer: init},
		},
	}
}

func TestConditionalStatement(t *testing.T) {
	t.Run("binds predicate and branches", func(t *testing.T) {
		te := newTestEnv()
		te.defineVar("v", typing.IntType)

		stmt := te.w.Statement(&syntax.ConditionalStatement{
			IfKw:       tk(syntax.KWIF, "if"),
			Conditions: []*syntax.PredicateCondition{{Expr: id("v")}},
			IfTrue:     exprStmt(&syntax.AssignmentExpression{Left: id("v"), Right: num("1")}),
			IfFalse:    exprStmt(&syntax.AssignmentExpression{Left: id("v"), Right: num("2")}),
		})

		cond, ok := stmt.(*sem.ConditionalStmt)
		require.True(t, ok)
		assert.NotNil(t, cond.Cond)
		assert.NotNil(t, cond.IfTrue)
		assert.NotNil(t, cond.IfFalse)
	})

	t.Run("ampersand-chained predicates are rejected", func(t *testing.T) {
		te := newTestEnv()
		te.defineVar("v", typing.IntType)

		stmt := te.w.Statement(&syntax.ConditionalStatement{
			IfKw: tk(syntax.KWIF, "if"),
			Conditions: []*syntax.PredicateCondition{
				{Expr: id("v")}, {Expr: num("1")},
			},
			IfTrue: exprStmt(num("1")),
		})

		assert.Equal(t, sem.StmtInvalid, stmt.StmtKind())
		assert.Contains(t, te.codes(), logging.DiagUnsupportedConditionalPredicate)
	})

	t.Run("matches clauses are rejected", func(t *testing.T) {
		te := newTestEnv()
		te.defineVar("v", typing.IntType)

		stmt := te.w.Statement(&syntax.ConditionalStatement{
			IfKw: tk(syntax.KWIF, "if"),
			Conditions: []*syntax.PredicateCondition{
				{Expr: id("v"), HasMatchesClause: true},
			},
			IfTrue: exprStmt(num("1")),
		})

		assert.Equal(t, sem.StmtInvalid, stmt.StmtKind())
		assert.Contains(t, te.codes(), logging.DiagUnsupportedConditionalPredicate)
	})
}

func TestReturnStatement(t *testing.T) {
	t.Run("outside a subroutine diagnoses", func(t *testing.T) {
		te := newTestEnv()

		stmt := te.w.Statement(&syntax.ReturnStatement{
			ReturnKw: tk(syntax.KWRETURN, "return"),
			Value:    num("1"),
		})

		assert.Equal(t, sem.StmtInvalid, stmt.StmtKind())
		assert.Contains(t, te.codes(), logging.DiagReturnNotInSubroutine)
	})

	t.Run("value converts to the return type", func(t *testing.T) {
		te := newTestEnv()
		sub := sem.NewSubroutine("f", nil, typing.IntType, true, te.scope)
		te.scope.Define(sub)

		body := te.w.SubroutineBody(sub, []syntax.Node{
			&syntax.ReturnStatement{ReturnKw: tk(syntax.KWRETURN, "return"), Value: vec("8'd7")},
		}, nil)

		require.Len(t, body.Stmts, 1)
		ret, ok := body.Stmts[0].(*sem.ReturnStmt)
		require.True(t, ok)
		assert.Equal(t, uint32(32), typing.BitWidth(ret.Value.Type()))
	})

	t.Run("missing value for non-void diagnoses", func(t *testing.T) {
		te := newTestEnv()
		sub := sem.NewSubroutine("f", nil, typing.IntType, true, te.scope)
		te.scope.Define(sub)

		body := te.w.SubroutineBody(sub, []syntax.Node{
			&syntax.ReturnStatement{ReturnKw: tk(syntax.KWRETURN, "return")},
		}, nil)

		assert.Equal(t, sem.StmtInvalid, body.Stmts[0].StmtKind())
		assert.Contains(t, te.codes(), logging.DiagMissingReturnValue)
	})
}

func TestBlockStatement(t *testing.T) {
	te := newTestEnv()

	stmt := te.w.Statement(block(
		declInt("local", num("3")),
		exprStmt(&syntax.AssignmentExpression{Left: id("local"), Right: num("4")}),
	))

	blk, ok := stmt.(*sem.BlockStmt)
	require.True(t, ok)
	require.Len(t, blk.Body.Stmts, 2)

	decl, ok := blk.Body.Stmts[0].(*sem.VariableDeclStmt)
	require.True(t, ok)
	assert.Equal(t, "local", decl.Variable.Name())
	assert.True(t, decl.Variable.IsAutomatic)

	// the local lives in the block's scope, not the enclosing one
	_, ok = te.scope.Lookup("local", nil, sem.LookupDefault)
	assert.False(t, ok)
	_, ok = blk.Block.MemberScope().Lookup("local", nil, sem.LookupDefault)
	assert.True(t, ok)
}

func TestForLoopStatement(t *testing.T) {
	te := newTestEnv()
	te.defineVar("acc", typing.IntType)

	iVar := id("i")
	stmt := te.w.Statement(&syntax.ForLoopStatement{
		ForKw:        tk(syntax.KWFOR, "for"),
		Initializers: []syntax.Node{declInt("i", num("0"))},
		StopExpr:     bin(syntax.LT, iVar, num("4")),
		Steps: []syntax.ExpressionNode{
			&syntax.AssignmentExpression{Left: id("i"), Right: bin(syntax.PLUS, id("i"), num("1"))},
		},
		Body: exprStmt(&syntax.AssignmentExpression{
			Left:  id("acc"),
			Right: bin(syntax.PLUS, id("acc"), id("i")),
		}),
	})

	loop, ok := stmt.(*sem.ForLoopStmt)
	require.True(t, ok)
	require.Len(t, loop.Initializers, 1)
	require.NotNil(t, loop.StopExpr)
	require.Len(t, loop.Steps, 1)
	require.NotNil(t, loop.Body)

	// the loop variable is scoped to the loop header
	_, ok = te.scope.Lookup("i", nil, sem.LookupDefault)
	assert.False(t, ok)
}

func TestCaseStatement(t *testing.T) {
	te := newTestEnv()
	te.defineVar("out", typing.IntType)

	stmt := te.w.Statement(&syntax.CaseStatement{
		CaseKw:   tk(syntax.KWCASE, "case"),
		EndKw:    tk(syntax.KWEND, "endcase"),
		Selector: vec("3'b01x"),
		Items: []*syntax.CaseItem{
			{
				Exprs: []syntax.ExpressionNode{vec("3'b010")},
				Stmt:  exprStmt(&syntax.AssignmentExpression{Left: id("out"), Right: num("1")}),
			},
			{
				Exprs: []syntax.ExpressionNode{vec("3'b01x")},
				Stmt:  exprStmt(&syntax.AssignmentExpression{Left: id("out"), Right: num("2")}),
			},
		},
		DefaultStmt: exprStmt(&syntax.AssignmentExpression{Left: id("out"), Right: num("3")}),
	})

	cs, ok := stmt.(*sem.CaseStmt)
	require.True(t, ok)
	require.Len(t, cs.Items, 2)
	require.NotNil(t, cs.Default)

	// all arms share the selector's comparison type
	assert.Equal(t, uint32(3), typing.BitWidth(cs.Selector.Type()))
	for _, item := range cs.Items {
		for _, e := range item.Exprs {
			assert.Equal(t, uint32(3), typing.BitWidth(e.Type()))
		}
	}
}
