package eval

import (
	"go.uber.org/zap"

	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/typing"
)

// Options bounds a single constant evaluation
type Options struct {
	// MaxSteps is the statement/iteration budget; exhaustion aborts the
	// evaluation with a timeout diagnostic
	MaxSteps int

	// MaxDepth is the call stack depth limit
	MaxDepth int

	// ScriptMode permits reads and writes of variables in outer frames, used
	// by the interactive session
	ScriptMode bool

	// StrictX turns unknown conditional predicates and uninitialized
	// variable reads into diagnostics instead of silent X propagation
	StrictX bool
}

// DefaultOptions returns the limits used for ordinary constant folding
func DefaultOptions() Options {
	return Options{MaxSteps: 100000, MaxDepth: 128}
}

// frame is one call frame: a mapping from value symbols to their current
// values plus the return slot
type frame struct {
	sub  *sem.SubroutineSymbol
	vars map[sem.ValueSymbol]numeric.ConstantValue

	returned    bool
	returnValue numeric.ConstantValue
}

// Context carries the state of one constant evaluation: the frame stack,
// the step budget, and a local diagnostic buffer.  Diagnostics stay on the
// context, attached to the originating evaluation, and are only flushed to
// the compilation's sink when the binding context requires a constant.
type Context struct {
	opts  Options
	steps int

	frames []*frame

	diags  []*logging.Diagnostic
	failed bool

	cancel func() bool

	// Tracer receives debug traces of evaluation steps
	Tracer *zap.Logger
}

// NewContext creates an evaluation context with one root frame
func NewContext(opts Options) *Context {
	return &Context{
		opts:   opts,
		steps:  opts.MaxSteps,
		frames: []*frame{newFrame(nil)},
		Tracer: zap.NewNop(),
	}
}

// WithLogger sets the trace logger for the context
func (ctx *Context) WithLogger(log *zap.Logger) *Context {
	ctx.Tracer = log.With(zap.String("component", "eval"))
	return ctx
}

// SetCancel installs an external cancellation flag, polled at statement
// granularity
func (ctx *Context) SetCancel(cancel func() bool) {
	ctx.cancel = cancel
}

func newFrame(sub *sem.SubroutineSymbol) *frame {
	return &frame{sub: sub, vars: make(map[sem.ValueSymbol]numeric.ConstantValue)}
}

// SetVariable seeds a variable in the current frame; the interactive
// session and tests use this to prepare evaluation state
func (ctx *Context) SetVariable(sym sem.ValueSymbol, value numeric.ConstantValue) {
	ctx.topFrame().vars[sym] = value
}

// Variable reads a variable's current value from the frame stack
func (ctx *Context) Variable(sym sem.ValueSymbol) (numeric.ConstantValue, bool) {
	cv, ok := ctx.findVar(sym)
	return cv, ok
}

// Steps returns the remaining step budget
func (ctx *Context) Steps() int { return ctx.steps }

// Diagnostics returns the diagnostics recorded during evaluation
func (ctx *Context) Diagnostics() []*logging.Diagnostic { return ctx.diags }

// FlushTo forwards the recorded diagnostics to the compilation's sink; the
// binder calls this when a constant was required and evaluation failed
func (ctx *Context) FlushTo(log *logging.Logger) {
	for _, d := range ctx.diags {
		log.Report(d)
	}
	ctx.diags = nil
}

// fail records a diagnostic and puts the context into the failed state;
// subsequent failures on the same evaluation stay silent once failed
func (ctx *Context) fail(code logging.DiagCode, pos *logging.TextPosition, args ...interface{}) numeric.ConstantValue {
	if !ctx.failed {
		ctx.diags = append(ctx.diags, &logging.Diagnostic{Code: code, Position: pos, Args: args})
		ctx.failed = true
	}
	return numeric.BadValue
}

// note records a non-fatal diagnostic such as a division-by-zero warning
func (ctx *Context) note(code logging.DiagCode, pos *logging.TextPosition, args ...interface{}) {
	ctx.diags = append(ctx.diags, &logging.Diagnostic{Code: code, Position: pos, Args: args})
}

// step consumes one unit of budget
func (ctx *Context) step(pos *logging.TextPosition) bool {
	if ctx.steps <= 0 {
		ctx.fail(logging.DiagEvalTimeout, pos)
		return false
	}
	ctx.steps--
	return true
}

// checkCancel polls the external cancellation flag
func (ctx *Context) checkCancel(pos *logging.TextPosition) bool {
	if ctx.cancel != nil && ctx.cancel() {
		ctx.fail(logging.DiagEvalCanceled, pos)
		return false
	}
	return true
}

func (ctx *Context) topFrame() *frame {
	return ctx.frames[len(ctx.frames)-1]
}

// pushFrame adds a call frame, enforcing the depth limit
func (ctx *Context) pushFrame(sub *sem.SubroutineSymbol, pos *logging.TextPosition) bool {
	if len(ctx.frames) >= ctx.opts.MaxDepth {
		ctx.fail(logging.DiagRecursionLimit, pos, ctx.opts.MaxDepth)
		return false
	}

	ctx.Tracer.Debug("entering frame",
		zap.String("subroutine", sub.Name()),
		zap.Int("depth", len(ctx.frames)))
	ctx.frames = append(ctx.frames, newFrame(sub))
	return true
}

// popFrame removes the top call frame regardless of how evaluation exited
func (ctx *Context) popFrame() *frame {
	f := ctx.topFrame()
	ctx.frames = ctx.frames[:len(ctx.frames)-1]
	return f
}

// findVar locates a symbol's value.  Ordinarily only the innermost frame is
// visible; script mode searches outward through the whole stack.
func (ctx *Context) findVar(sym sem.ValueSymbol) (numeric.ConstantValue, bool) {
	if cv, ok := ctx.topFrame().vars[sym]; ok {
		return cv, true
	}

	if ctx.opts.ScriptMode {
		for i := len(ctx.frames) - 2; i >= 0; i-- {
			if cv, ok := ctx.frames[i].vars[sym]; ok {
				return cv, true
			}
		}
	}

	return numeric.BadValue, false
}

// setVar writes a symbol's value into the frame that holds it, falling back
// to the innermost frame for fresh bindings
func (ctx *Context) setVar(sym sem.ValueSymbol, value numeric.ConstantValue) {
	if _, ok := ctx.topFrame().vars[sym]; ok {
		ctx.topFrame().vars[sym] = value
		return
	}

	if ctx.opts.ScriptMode {
		for i := len(ctx.frames) - 2; i >= 0; i-- {
			if _, ok := ctx.frames[i].vars[sym]; ok {
				ctx.frames[i].vars[sym] = value
				return
			}
		}
	}

	ctx.topFrame().vars[sym] = value
}

// defaultValue builds the initial value a variable of the given type holds
// before assignment: X-filled for four-state integrals, zero otherwise
func defaultValue(dt typing.DataType) numeric.ConstantValue {
	switch v := typing.InnerType(dt).(type) {
	case *typing.FloatType:
		if v.ShortReal {
			return numeric.ShortRealValue(0)
		}
		return numeric.RealValue(0)

	case *typing.StringType:
		return numeric.StringValue("")

	case *typing.UnpackedArrayType:
		elems := make([]numeric.ConstantValue, v.Range.Width())
		for i := range elems {
			elems[i] = defaultValue(v.Elem)
		}
		return numeric.ArrayValue(elems)

	case *typing.StructType:
		if !v.Packed {
			elems := make([]numeric.ConstantValue, len(v.Fields))
			for i, f := range v.Fields {
				elems[i] = defaultValue(f.Type)
			}
			return numeric.ArrayValue(elems)
		}
	}

	info, ok := typing.Integral(dt)
	if !ok {
		return numeric.NullValue()
	}

	fill := numeric.Bit0
	if info.FourState {
		fill = numeric.BitX
	}
	sv, err := numeric.Fill(info.Width, info.Signed, fill)
	if err != nil {
		return numeric.BadValue
	}
	return numeric.IntegerValue(sv)
}
