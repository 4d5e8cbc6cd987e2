package resolve

import (
	"svlang/eval"
	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// Resolver promotes deferred scope members into symbols.  Promotion is two
// phase: DeclareMember introduces every symbol by name and installs a lazy
// binding step, so deferred members can reference each other in any order;
// BindMember then forces the binding step for each member in declaration
// order.  A reference that arrives before a member's BindMember turn simply
// forces the same step early.
type Resolver struct {
	comp *Compilation
}

// NewResolver creates a resolver for the given compilation
func NewResolver(comp *Compilation) *Resolver {
	return &Resolver{comp: comp}
}

// DeclareMember introduces the symbols a deferred member declares, each
// carrying a binder that resolves its type, initializer, or body on first
// use
func (r *Resolver) DeclareMember(scope *sem.Scope, member syntax.MemberNode) {
	switch v := member.(type) {
	case *syntax.ParameterDeclaration:
		for _, d := range v.Declarators {
			r.declareParameter(scope, v, d)
		}

	case *syntax.DataDeclaration:
		for _, d := range v.Declarators {
			r.declareVariable(scope, v, d)
		}

	case *syntax.FunctionDeclaration:
		r.declareFunction(scope, v)

	case *syntax.TypedefDeclaration:
		r.declareTypedef(scope, v)

	case *syntax.ModuleDeclaration:
		mod := sem.NewModule(v.Name.Value, v.Name.Position(), scope)
		mod.MemberScope().SetElaborator(r)
		mod.MemberScope().AddDeferredMembers(v.Members...)
		r.define(scope, mod, v.Name)

	case *syntax.PackageDeclaration:
		pkg := sem.NewPackage(v.Name.Value, v.Name.Position(), scope)
		pkg.MemberScope().SetElaborator(r)
		pkg.MemberScope().AddDeferredMembers(v.Members...)
		r.define(scope, pkg, v.Name)
	}
}

// BindMember forces each declared symbol's binding step.  Parameters
// additionally fold eagerly so their constant values are diagnosed at the
// point of declaration.
func (r *Resolver) BindMember(scope *sem.Scope, member syntax.MemberNode) {
	switch v := member.(type) {
	case *syntax.ParameterDeclaration:
		for _, d := range v.Declarators {
			if p, ok := r.parameterFor(scope, d); ok {
				p.EnsureBound()
				r.foldParameter(p, d)
			}
		}

	case *syntax.DataDeclaration:
		for _, d := range v.Declarators {
			if sym, ok := scope.ResolveLocal(d.Name.Value); ok {
				sem.ForceBound(sym)
			}
		}

	case *syntax.FunctionDeclaration:
		if sym, ok := scope.ResolveLocal(v.Name.Value); ok {
			sem.ForceBound(sym)
		}

	case *syntax.TypedefDeclaration:
		if sym, ok := scope.ResolveLocal(v.Name.Value); ok {
			sem.ForceBound(sym)
		}
	}
}

// define adds a symbol to the scope, diagnosing redefinitions
func (r *Resolver) define(scope *sem.Scope, sym sem.Symbol, name *syntax.Token) bool {
	if !scope.Define(sym) {
		r.comp.Log.ReportCode(logging.DiagRedefinedSymbol, name.Position(), name.Value)
		return false
	}
	return true
}

func (r *Resolver) parameterFor(scope *sem.Scope, d *syntax.Declarator) (*sem.ParameterSymbol, bool) {
	sym, ok := scope.ResolveLocal(d.Name.Value)
	if !ok {
		return nil, false
	}
	p, ok := sym.(*sem.ParameterSymbol)
	return p, ok
}

// -----------------------------------------------------------------------------

// declareParameter introduces one parameter with a binder that types it and
// binds its value expression
func (r *Resolver) declareParameter(scope *sem.Scope, v *syntax.ParameterDeclaration, d *syntax.Declarator) {
	p := sem.NewParameter(d.Name.Value, d.Name.Position(), typing.ErrorTyp, v.IsLocal)
	if !r.define(scope, p, d.Name) {
		return
	}

	p.SetBinder(func() {
		w := r.comp.WalkerAt(scope)

		if d.Initializer == nil {
			r.comp.Log.ReportCode(logging.DiagConstantRequired, d.Name.Position(),
				"parameter has no value")
			return
		}

		if v.Type == nil {
			// an untyped parameter takes the self-determined type of its
			// initializer
			init := w.SelfDetermined(d.Initializer)
			p.Type = init.Type()
			p.Initializer = init
			return
		}

		p.Type = w.WalkType(v.Type)
		p.Initializer = w.AssignmentLike(p.Type, d.Initializer, d.Initializer.Position())
	})
}

// foldParameter evaluates a parameter's value with constant-required
// semantics: failures flush the evaluation diagnostics to the sink
func (r *Resolver) foldParameter(p *sem.ParameterSymbol, d *syntax.Declarator) {
	if _, ok := p.Value(); ok {
		return
	}
	if p.Initializer == nil || sem.Bad(p.Initializer) {
		return
	}

	ctx := eval.NewContext(r.comp.EvalOptions)
	cv := ctx.Eval(p.Initializer)
	if cv.IsBad() {
		ctx.FlushTo(r.comp.Log)
		r.comp.Log.ReportCode(logging.DiagConstantRequired, d.Initializer.Position(),
			"parameter value")
		return
	}

	p.SetValue(eval.ConvertValue(cv, p.Type))
}

// declareVariable introduces one scope-level variable with a binder for its
// type and initializer.  Scope-level variables have static lifetime, so
// they are not writable during constant evaluation.
func (r *Resolver) declareVariable(scope *sem.Scope, v *syntax.DataDeclaration, d *syntax.Declarator) {
	vs := sem.NewVariable(d.Name.Value, d.Name.Position(), typing.ErrorTyp, false)
	if !r.define(scope, vs, d.Name) {
		return
	}

	vs.SetBinder(func() {
		w := r.comp.WalkerAt(scope)

		varType := w.WalkType(v.Type)
		for i := len(d.UnpackedDims) - 1; i >= 0; i-- {
			rng, ok := w.WalkRange(d.UnpackedDims[i])
			if !ok {
				varType = typing.ErrorTyp
				break
			}
			varType = &typing.UnpackedArrayType{Elem: varType, Range: rng}
		}
		vs.Type = varType

		if d.Initializer != nil {
			init := w.AssignmentLike(varType, d.Initializer, d.Initializer.Position())
			if !sem.Bad(init) {
				vs.Initializer = init
			}
		}
	})
}

// declareFunction introduces a subroutine whose binder resolves the return
// type, declares the formals, and binds the body
func (r *Resolver) declareFunction(scope *sem.Scope, v *syntax.FunctionDeclaration) {
	sub := sem.NewSubroutine(v.Name.Value, v.Name.Position(), typing.VoidTyp, v.IsAutomatic, scope)
	if !r.define(scope, sub, v.Name) {
		return
	}

	sub.SetBinder(func() {
		w := r.comp.WalkerAt(scope)
		if v.ReturnType != nil {
			sub.ReturnType = w.WalkType(v.ReturnType)
		}

		subWalker := r.comp.WalkerAt(sub.MemberScope())

		// a port with no type inherits the previous port's
		var lastType typing.DataType = typing.LogicType
		for _, port := range v.Ports {
			portType := lastType
			if port.Type != nil {
				portType = subWalker.WalkType(port.Type)
				lastType = portType
			}

			formal := sem.NewFormalArgument(port.Name.Value, port.Name.Position(), portType, port.Direction)
			if port.Default != nil {
				def := subWalker.AssignmentLike(portType, port.Default, port.Default.Position())
				if !sem.Bad(def) {
					formal.Default = def
				}
			}

			if !sub.MemberScope().Define(formal) {
				r.comp.Log.ReportCode(logging.DiagRedefinedSymbol, port.Name.Position(), port.Name.Value)
				continue
			}
			sub.Args = append(sub.Args, formal)
		}

		sub.Body = subWalker.SubroutineBody(sub, v.Items, v.Position())
	})
}

// declareTypedef introduces a type alias whose binder resolves the target
// type
func (r *Resolver) declareTypedef(scope *sem.Scope, v *syntax.TypedefDeclaration) {
	alias := sem.NewTypeAlias(v.Name.Value, v.Name.Position(), typing.ErrorTyp)
	if !r.define(scope, alias, v.Name) {
		return
	}

	alias.SetBinder(func() {
		alias.Aliased.Target = r.comp.WalkerAt(scope).WalkType(v.Type)
	})
}
