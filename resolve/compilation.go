package resolve

import (
	"go.uber.org/zap"

	"svlang/conf"
	"svlang/eval"
	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
	"svlang/walk"
)

// Compilation is the root of one elaboration: it owns the design root
// scope, the `$unit` compilation unit, the shared type table, and the
// diagnostic sink.  All state lives on the compilation; there are no
// process-wide singletons.
type Compilation struct {
	// Log is the diagnostic sink every component reports through
	Log *logging.Logger

	// Types is the shared type intern table
	Types *typing.Table

	// EvalOptions bounds constant evaluation performed during elaboration
	EvalOptions eval.Options

	// Tracer receives debug traces of elaboration progress
	Tracer *zap.Logger

	root *sem.Scope
	unit *sem.CompilationUnitSymbol

	resolver *Resolver
}

// NewCompilation creates an empty compilation with a design root and a
// `$unit` compilation unit scope
func NewCompilation(log *logging.Logger) *Compilation {
	c := &Compilation{
		Log:         log,
		Types:       typing.NewTable(),
		EvalOptions: eval.DefaultOptions(),
		Tracer:      zap.NewNop(),
	}

	c.root = sem.NewScope(nil, nil)
	c.unit = sem.NewCompilationUnit(c.root)
	c.root.Define(c.unit)

	c.resolver = NewResolver(c)
	c.unit.MemberScope().SetElaborator(c.resolver)

	return c
}

// WithLogger sets the trace logger for the compilation
func (c *Compilation) WithLogger(log *zap.Logger) *Compilation {
	c.Tracer = log.With(zap.String("component", "resolve"))
	return c
}

// ApplyOptions applies loaded tool options: the sink's log level and the
// constant evaluation limits
func (c *Compilation) ApplyOptions(opts *conf.Options) {
	c.Log.LogLevel = opts.LogLevel
	c.EvalOptions = opts.Eval
}

// RootScope returns the design root scope
func (c *Compilation) RootScope() *sem.Scope { return c.root }

// Unit returns the `$unit` compilation unit symbol
func (c *Compilation) Unit() *sem.CompilationUnitSymbol { return c.unit }

// AddUnitMembers defers file-level declarations into the compilation unit
// scope; they materialize lazily on first lookup
func (c *Compilation) AddUnitMembers(members ...syntax.MemberNode) {
	c.unit.MemberScope().AddDeferredMembers(members...)
}

// Walker returns a binder positioned at the compilation unit scope
func (c *Compilation) Walker() *walk.Walker {
	return walk.NewWalker(c.unit.MemberScope(), c.Log, c.Types)
}

// WalkerAt returns a binder positioned at an arbitrary scope of this
// compilation
func (c *Compilation) WalkerAt(scope *sem.Scope) *walk.Walker {
	return walk.NewWalker(scope, c.Log, c.Types)
}

// Elaborate forces promotion of every scope in the design, depth first.
// Lazy elaboration makes this optional; it exists so a caller can surface
// all diagnostics without touching every name itself.
func (c *Compilation) Elaborate() {
	c.elaborateScope(c.root)
}

func (c *Compilation) elaborateScope(scope *sem.Scope) {
	for _, member := range scope.Members() {
		sem.ForceBound(member)
		if scoped, ok := member.(sem.ScopedSymbol); ok {
			c.Tracer.Debug("elaborating scope",
				zap.String("owner", scoped.Name()))
			c.elaborateScope(scoped.MemberScope())
		}
	}
}
