package sem

import (
	"svlang/logging"
	"svlang/numeric"
	"svlang/typing"
)

// SymbolKind discriminates the concrete symbol variants
type SymbolKind int

// Enumeration of symbol kinds
const (
	SymCompilationUnit SymbolKind = iota
	SymPackage
	SymModule
	SymBlock
	SymParameter
	SymVariable
	SymFormalArgument
	SymSubroutine
	SymTypeAlias
	SymEnumMember
)

// Symbol is the interface for all named entities in the design.  Every
// non-root symbol has exactly one parent scope; the parent link is a
// non-owning back reference established when the symbol is defined.
type Symbol interface {
	// Name returns the symbol's declared name; anonymous symbols return ""
	Name() string

	// Kind returns the symbol's kind discriminator
	Kind() SymbolKind

	// Position returns the text position where the symbol is declared
	Position() *logging.TextPosition

	// Parent returns the scope the symbol is declared in; nil only for the
	// design root
	Parent() *Scope

	setParent(s *Scope)
}

// SymbolBase is the base struct embedded by all symbols
type SymbolBase struct {
	name   string
	pos    *logging.TextPosition
	parent *Scope
}

// NewSymbolBase creates a symbol base for embedding
func NewSymbolBase(name string, pos *logging.TextPosition) SymbolBase {
	if pos == nil {
		pos = logging.NoPosition
	}
	return SymbolBase{name: name, pos: pos}
}

func (sb *SymbolBase) Name() string                    { return sb.name }
func (sb *SymbolBase) Position() *logging.TextPosition { return sb.pos }
func (sb *SymbolBase) Parent() *Scope                  { return sb.parent }
func (sb *SymbolBase) setParent(s *Scope)              { sb.parent = s }

// lazyBound provides one-shot deferred binding for symbols whose types,
// initializers, or bodies resolve after declaration.  The binder slot is
// cleared before it runs so a self-referential cycle sees the unbound
// symbol instead of recursing.
type lazyBound struct {
	binder func()
}

// SetBinder installs the deferred binding step
func (lb *lazyBound) SetBinder(f func()) { lb.binder = f }

// EnsureBound forces the deferred binding step; it is idempotent
func (lb *lazyBound) EnsureBound() {
	if lb.binder != nil {
		b := lb.binder
		lb.binder = nil
		b()
	}
}

// LateBound is implemented by symbols with a deferred binding step
type LateBound interface {
	EnsureBound()
}

// ForceBound forces the deferred binding step of any symbol that has one
func ForceBound(sym Symbol) {
	if lb, ok := sym.(LateBound); ok {
		lb.EnsureBound()
	}
}

// ScopedSymbol is implemented by symbols that introduce a name-binding
// region of their own
type ScopedSymbol interface {
	Symbol

	// MemberScope returns the scope the symbol introduces
	MemberScope() *Scope
}

// ValueSymbol is implemented by symbols that denote a typed runtime or
// elaboration-time value
type ValueSymbol interface {
	Symbol

	// DataType returns the declared type of the value
	DataType() typing.DataType
}

// -----------------------------------------------------------------------------

// CompilationUnitSymbol is the `$unit` scope holding file-level declarations
type CompilationUnitSymbol struct {
	SymbolBase
	scope *Scope
}

// NewCompilationUnit creates a compilation unit with a fresh scope under the
// given parent
func NewCompilationUnit(parent *Scope) *CompilationUnitSymbol {
	cu := &CompilationUnitSymbol{SymbolBase: NewSymbolBase("$unit", nil)}
	cu.scope = NewScope(cu, parent)
	return cu
}

func (*CompilationUnitSymbol) Kind() SymbolKind           { return SymCompilationUnit }
func (cu *CompilationUnitSymbol) MemberScope() *Scope     { return cu.scope }

// PackageSymbol is a `package` declaration
type PackageSymbol struct {
	SymbolBase
	scope *Scope
}

// NewPackage creates a package symbol with a fresh member scope
func NewPackage(name string, pos *logging.TextPosition, parent *Scope) *PackageSymbol {
	p := &PackageSymbol{SymbolBase: NewSymbolBase(name, pos)}
	p.scope = NewScope(p, parent)
	return p
}

func (*PackageSymbol) Kind() SymbolKind       { return SymPackage }
func (p *PackageSymbol) MemberScope() *Scope  { return p.scope }

// ModuleSymbol is an elaborated module instance
type ModuleSymbol struct {
	SymbolBase
	scope *Scope
}

// NewModule creates a module symbol with a fresh member scope
func NewModule(name string, pos *logging.TextPosition, parent *Scope) *ModuleSymbol {
	m := &ModuleSymbol{SymbolBase: NewSymbolBase(name, pos)}
	m.scope = NewScope(m, parent)
	return m
}

func (*ModuleSymbol) Kind() SymbolKind      { return SymModule }
func (m *ModuleSymbol) MemberScope() *Scope { return m.scope }

// BlockSymbol is a statement or generate block scope.  Blocks may be
// anonymous, in which case they hold members but are invisible to lookup by
// name.
type BlockSymbol struct {
	SymbolBase
	scope *Scope
}

// NewBlock creates a block symbol with a fresh member scope
func NewBlock(name string, pos *logging.TextPosition, parent *Scope) *BlockSymbol {
	b := &BlockSymbol{SymbolBase: NewSymbolBase(name, pos)}
	b.scope = NewScope(b, parent)
	return b
}

func (*BlockSymbol) Kind() SymbolKind      { return SymBlock }
func (b *BlockSymbol) MemberScope() *Scope { return b.scope }

// -----------------------------------------------------------------------------

// ParameterSymbol is an elaboration-time constant declared with `parameter`
// or `localparam`
type ParameterSymbol struct {
	SymbolBase
	lazyBound

	Type    typing.DataType
	IsLocal bool

	// Initializer is the bound default/override expression
	Initializer Expression

	// value caches the folded constant after first evaluation
	value *numeric.ConstantValue
}

// NewParameter creates an unbound parameter symbol
func NewParameter(name string, pos *logging.TextPosition, typ typing.DataType, isLocal bool) *ParameterSymbol {
	return &ParameterSymbol{SymbolBase: NewSymbolBase(name, pos), Type: typ, IsLocal: isLocal}
}

func (*ParameterSymbol) Kind() SymbolKind              { return SymParameter }
func (p *ParameterSymbol) DataType() typing.DataType   { return p.Type }

// Value returns the parameter's cached constant value, if it has been folded
func (p *ParameterSymbol) Value() (numeric.ConstantValue, bool) {
	if p.value == nil {
		return numeric.BadValue, false
	}
	return *p.value, true
}

// SetValue caches the parameter's folded constant value
func (p *ParameterSymbol) SetValue(cv numeric.ConstantValue) {
	p.value = &cv
}

// VariableSymbol is a data declaration: a module-level, block-local, or
// subroutine-local variable
type VariableSymbol struct {
	SymbolBase
	lazyBound

	Type typing.DataType

	// IsAutomatic indicates automatic lifetime; only automatic variables may
	// be written during constant evaluation
	IsAutomatic bool

	// Initializer is the bound initializer expression, or nil
	Initializer Expression
}

// NewVariable creates a variable symbol
func NewVariable(name string, pos *logging.TextPosition, typ typing.DataType, automatic bool) *VariableSymbol {
	return &VariableSymbol{SymbolBase: NewSymbolBase(name, pos), Type: typ, IsAutomatic: automatic}
}

func (*VariableSymbol) Kind() SymbolKind            { return SymVariable }
func (v *VariableSymbol) DataType() typing.DataType { return v.Type }

// FormalArgumentSymbol is a subroutine port
type FormalArgumentSymbol struct {
	SymbolBase

	Type typing.DataType

	// Direction is one of the syntax direction constants (in, out, inout, ref)
	Direction int

	// Default is the bound default value expression, or nil
	Default Expression
}

// NewFormalArgument creates a formal argument symbol
func NewFormalArgument(name string, pos *logging.TextPosition, typ typing.DataType, direction int) *FormalArgumentSymbol {
	return &FormalArgumentSymbol{SymbolBase: NewSymbolBase(name, pos), Type: typ, Direction: direction}
}

func (*FormalArgumentSymbol) Kind() SymbolKind            { return SymFormalArgument }
func (f *FormalArgumentSymbol) DataType() typing.DataType { return f.Type }

// SubroutineSymbol is a function declaration together with its bound body
type SubroutineSymbol struct {
	SymbolBase
	lazyBound

	ReturnType  typing.DataType
	Args        []*FormalArgumentSymbol
	IsAutomatic bool

	// Body is the bound statement list; set once binding completes
	Body *StatementList

	scope *Scope
}

// NewSubroutine creates a subroutine symbol with a fresh scope for its
// arguments and locals
func NewSubroutine(name string, pos *logging.TextPosition, returnType typing.DataType, automatic bool, parent *Scope) *SubroutineSymbol {
	s := &SubroutineSymbol{
		SymbolBase:  NewSymbolBase(name, pos),
		ReturnType:  returnType,
		IsAutomatic: automatic,
	}
	s.scope = NewScope(s, parent)
	return s
}

func (*SubroutineSymbol) Kind() SymbolKind        { return SymSubroutine }
func (s *SubroutineSymbol) MemberScope() *Scope   { return s.scope }

// TypeAliasSymbol is a `typedef` declaration
type TypeAliasSymbol struct {
	SymbolBase
	lazyBound

	// Aliased is the alias type wrapping the target
	Aliased *typing.AliasType
}

// NewTypeAlias creates a typedef symbol
func NewTypeAlias(name string, pos *logging.TextPosition, target typing.DataType) *TypeAliasSymbol {
	return &TypeAliasSymbol{
		SymbolBase: NewSymbolBase(name, pos),
		Aliased:    &typing.AliasType{Name: name, Target: target},
	}
}

func (*TypeAliasSymbol) Kind() SymbolKind { return SymTypeAlias }

// EnumMemberSymbol is a single enum member spilled into the scope enclosing
// its enum type declaration
type EnumMemberSymbol struct {
	SymbolBase

	Type  *typing.EnumType
	Value numeric.SVInt
}

// NewEnumMember creates an enum member symbol
func NewEnumMember(name string, pos *logging.TextPosition, typ *typing.EnumType, value numeric.SVInt) *EnumMemberSymbol {
	return &EnumMemberSymbol{SymbolBase: NewSymbolBase(name, pos), Type: typ, Value: value}
}

func (*EnumMemberSymbol) Kind() SymbolKind            { return SymEnumMember }
func (e *EnumMemberSymbol) DataType() typing.DataType { return e.Type }
