package walk

import (
	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// walkType resolves data type syntax to a semantic type.  Failures produce
// the error type after diagnosing.
func (w *Walker) walkType(node syntax.TypeNode) typing.DataType {
	switch v := node.(type) {
	case *syntax.NamedType:
		return w.walkNamedType(v)
	case *syntax.IntegerType:
		return w.walkIntegerType(v)
	case *syntax.RealType:
		switch v.Keyword {
		case syntax.RealKwShortReal:
			return typing.ShortRealType
		case syntax.RealKwRealTime:
			return typing.RealTimeType
		default:
			return typing.RealType
		}
	case *syntax.StringType:
		return typing.StrType
	case *syntax.VoidType:
		return typing.VoidTyp
	case *syntax.EnumType:
		return w.walkEnumType(v)
	case *syntax.StructType:
		return w.walkStructType(v)
	default:
		return typing.ErrorTyp
	}
}

// walkNamedType resolves a typedef reference
func (w *Walker) walkNamedType(node *syntax.NamedType) typing.DataType {
	sym, ok := w.Scope.Lookup(node.Name.Value, node.Position(), w.LookupKind)
	if !ok {
		w.logError(logging.DiagUndeclaredIdentifier, node.Position(), node.Name.Value)
		return typing.ErrorTyp
	}

	alias, ok := sym.(*sem.TypeAliasSymbol)
	if !ok {
		w.logError(logging.DiagNotAType, node.Position(), node.Name.Value)
		return typing.ErrorTyp
	}

	alias.EnsureBound()
	return alias.Aliased
}

// integerKeywordBase maps integer type keywords to their predefined types
var integerKeywordBase = map[int]*typing.IntegralType{
	syntax.IntKwLogic:    typing.LogicType,
	syntax.IntKwBit:      typing.BitType,
	syntax.IntKwReg:      typing.LogicType,
	syntax.IntKwInt:      typing.IntType,
	syntax.IntKwInteger:  typing.IntegerType,
	syntax.IntKwShortInt: typing.ShortIntType,
	syntax.IntKwLongInt:  typing.LongIntType,
	syntax.IntKwByte:     typing.ByteType,
	syntax.IntKwTime:     typing.TimeType,
}

// walkIntegerType builds an integer vector type from its keyword, signing,
// and packed dimensions
func (w *Walker) walkIntegerType(node *syntax.IntegerType) typing.DataType {
	base, ok := integerKeywordBase[node.Keyword]
	if !ok {
		return typing.ErrorTyp
	}

	signed := base.Signed
	switch node.Signing {
	case syntax.SigningSigned:
		signed = true
	case syntax.SigningUnsigned:
		signed = false
	}

	var result typing.DataType = w.Types.Integral(base.Width, signed, base.FourState)

	// dimensions nest outermost-first: `logic [3:0][7:0]` is four elements
	// of eight bits
	for i := len(node.Dims) - 1; i >= 0; i-- {
		rng, ok := w.walkPackedDimension(node.Dims[i])
		if !ok {
			return typing.ErrorTyp
		}

		pat := w.Types.Packed(result, rng)
		if i == 0 {
			pat.Signed = signed
		}
		result = pat
	}

	return result
}

// walkPackedDimension folds the bounds of a `[msb:lsb]` dimension
func (w *Walker) walkPackedDimension(dim *syntax.PackedDimension) (typing.Range, bool) {
	left, lok := w.foldInt32(w.SelfDetermined(dim.Left), "packed dimension bound")
	right, rok := w.foldInt32(w.SelfDetermined(dim.Right), "packed dimension bound")
	if !lok || !rok {
		return typing.Range{}, false
	}

	return typing.Range{Left: left, Right: right}, true
}

// walkEnumType builds an enum type and spills its members into the current
// scope as enum member symbols
func (w *Walker) walkEnumType(node *syntax.EnumType) typing.DataType {
	base := typing.DataType(typing.IntType)
	if node.Base != nil {
		base = w.walkType(node.Base)
	}

	info, ok := typing.Integral(base)
	if !ok {
		w.logError(logging.DiagInvalidEnumBase, node.Position())
		return typing.ErrorTyp
	}

	et := &typing.EnumType{Base: base}

	prev, err := numeric.New(info.Width, info.Signed, 0)
	if err != nil {
		return typing.ErrorTyp
	}
	first := true

	for _, member := range node.Members {
		value := prev
		if !first {
			one, _ := numeric.New(info.Width, info.Signed, 1)
			value = prev.Add(one)
		}
		first = false

		if member.Value != nil {
			init := w.SelfDetermined(member.Value)
			sv, ok := w.foldInteger(init, "enum member value")
			if !ok {
				return typing.ErrorTyp
			}
			value = sv.WithSign(info.Signed).Resize(info.Width)
		}
		prev = value

		et.Members = append(et.Members, &typing.EnumValue{Name: member.Name.Value, Value: value})

		sym := sem.NewEnumMember(member.Name.Value, member.Name.Position(), et, value)
		if !w.Scope.Define(sym) {
			w.logError(logging.DiagRedefinedSymbol, member.Name.Position(), member.Name.Value)
		}
	}

	return et
}

// walkStructType builds a struct type, computing field offsets: bit offsets
// from the LSB for packed structs, element indices for unpacked ones
func (w *Walker) walkStructType(node *syntax.StructType) typing.DataType {
	st := &typing.StructType{Packed: node.Packed}

	for _, fieldSyn := range node.Fields {
		ft := w.walkType(fieldSyn.Type)
		if typing.IsError(ft) {
			return typing.ErrorTyp
		}

		if node.Packed {
			if _, ok := typing.Integral(ft); !ok {
				w.logError(logging.DiagTypeMismatch, fieldSyn.Type.Position(),
					ft.Repr(), "an integral type")
				return typing.ErrorTyp
			}
		}

		for _, name := range fieldSyn.Names {
			st.Fields = append(st.Fields, &typing.StructField{Name: name.Value, Type: ft})
		}
	}

	if node.Packed {
		// the first declared field occupies the most significant bits
		offset := typing.BitWidth(st)
		for _, f := range st.Fields {
			offset -= typing.BitWidth(f.Type)
			f.Offset = offset
		}
	} else {
		for i, f := range st.Fields {
			f.Offset = uint32(i)
		}
	}

	return st
}
