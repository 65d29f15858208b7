package spv

import "github.com/gogpu/spv/spirv"

// operandKey names an operand type for diagnostics.
func operandKey(v Value) string {
	if !v.valid() {
		return "<invalid value>"
	}
	return v.typ.key()
}

// emit validates nothing: callers check operands first so that a failed
// operation appends no instruction. It interns the result type,
// allocates the result id, and appends the instruction.
func (s *Scope) emit(op spirv.OpCode, result Type, operands ...uint32) (Value, error) {
	tid, err := s.b.typeID(result)
	if err != nil {
		return Value{}, err
	}
	id, err := s.b.alloc()
	if err != nil {
		return Value{}, err
	}
	words := make([]uint32, 0, len(operands)+2)
	words = append(words, tid, id)
	words = append(words, operands...)
	s.append(spirv.Inst(op, words...))
	return Value{id: id, typ: result}, nil
}

func checkOperands(vals ...Value) error {
	for _, v := range vals {
		if !v.valid() {
			return NewError(ErrTypeMismatch, "operand is not a value produced by this session")
		}
	}
	return nil
}

// binaryOpcode selects the float/signed/unsigned form of a binary op.
func binaryOpcode(class scalarClass, fop, sop, uop spirv.OpCode) (spirv.OpCode, bool) {
	switch class {
	case classFloat:
		return fop, true
	case classSInt:
		return sop, true
	case classUInt:
		return uop, true
	default:
		return 0, false
	}
}

// numericBinary emits a component-wise binary operation on two values
// of the same numeric scalar or vector type.
func (s *Scope) numericBinary(name string, fop, sop, uop spirv.OpCode, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	if !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "cannot %s %s and %s", name, operandKey(a), operandKey(b))
	}
	op, ok := binaryOpcode(classOf(a.typ), fop, sop, uop)
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "cannot %s values of type %s", name, operandKey(a))
	}
	return s.emit(op, a.typ, a.id, b.id)
}

// Add emits component-wise addition.
func (s *Scope) Add(a, b Value) (Value, error) {
	return s.numericBinary("add", spirv.OpFAdd, spirv.OpIAdd, spirv.OpIAdd, a, b)
}

// Sub emits component-wise subtraction.
func (s *Scope) Sub(a, b Value) (Value, error) {
	return s.numericBinary("subtract", spirv.OpFSub, spirv.OpISub, spirv.OpISub, a, b)
}

// Div emits component-wise division.
func (s *Scope) Div(a, b Value) (Value, error) {
	return s.numericBinary("divide", spirv.OpFDiv, spirv.OpSDiv, spirv.OpUDiv, a, b)
}

// Mod emits the component-wise remainder with the sign of the dividend.
func (s *Scope) Mod(a, b Value) (Value, error) {
	return s.numericBinary("mod", spirv.OpFRem, spirv.OpSRem, spirv.OpUMod, a, b)
}

// Mul emits the multiplication matching the operand shapes: scalar and
// component-wise products, vector or matrix scaling, and the linear
// algebra products between vectors and matrices.
func (s *Scope) Mul(a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}

	// vector * scalar and matrix * scalar commute.
	if av, ok := a.typ.(VectorType); ok && sameType(b.typ, av.Elem) && classOf(av.Elem) == classFloat {
		return s.emit(spirv.OpVectorTimesScalar, a.typ, a.id, b.id)
	}
	if bv, ok := b.typ.(VectorType); ok && sameType(a.typ, bv.Elem) && classOf(bv.Elem) == classFloat {
		return s.emit(spirv.OpVectorTimesScalar, b.typ, b.id, a.id)
	}
	if am, ok := a.typ.(MatrixType); ok && sameType(b.typ, am.Elem) {
		return s.emit(spirv.OpMatrixTimesScalar, a.typ, a.id, b.id)
	}
	if bm, ok := b.typ.(MatrixType); ok && sameType(a.typ, bm.Elem) {
		return s.emit(spirv.OpMatrixTimesScalar, b.typ, b.id, a.id)
	}

	am, aIsMat := a.typ.(MatrixType)
	bm, bIsMat := b.typ.(MatrixType)
	av, aIsVec := a.typ.(VectorType)
	bv, bIsVec := b.typ.(VectorType)

	switch {
	case aIsMat && bIsVec:
		if bv.Size != am.Cols || classOf(bv.Elem) != classFloat {
			return Value{}, errf(ErrTypeMismatch, "cannot multiply %s by %s", operandKey(a), operandKey(b))
		}
		return s.emit(spirv.OpMatrixTimesVector, VectorType{Elem: am.Elem, Size: am.Rows}, a.id, b.id)
	case aIsVec && bIsMat:
		if av.Size != bm.Rows || classOf(av.Elem) != classFloat {
			return Value{}, errf(ErrTypeMismatch, "cannot multiply %s by %s", operandKey(a), operandKey(b))
		}
		return s.emit(spirv.OpVectorTimesMatrix, VectorType{Elem: bm.Elem, Size: bm.Cols}, a.id, b.id)
	case aIsMat && bIsMat:
		if am.Cols != bm.Rows {
			return Value{}, errf(ErrTypeMismatch, "cannot multiply %s by %s", operandKey(a), operandKey(b))
		}
		return s.emit(spirv.OpMatrixTimesMatrix, MatrixType{Cols: bm.Cols, Rows: am.Rows, Elem: am.Elem}, a.id, b.id)
	}

	return s.numericBinary("multiply", spirv.OpFMul, spirv.OpIMul, spirv.OpIMul, a, b)
}

// Neg emits arithmetic negation.
func (s *Scope) Neg(v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	switch classOf(v.typ) {
	case classFloat:
		return s.emit(spirv.OpFNegate, v.typ, v.id)
	case classSInt:
		return s.emit(spirv.OpSNegate, v.typ, v.id)
	default:
		return Value{}, errf(ErrTypeMismatch, "cannot negate %s", operandKey(v))
	}
}

// Dot emits the dot product of two float vectors.
func (s *Scope) Dot(a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	av, ok := a.typ.(VectorType)
	if !ok || classOf(av.Elem) != classFloat || !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "dot requires matching float vectors, got %s and %s", operandKey(a), operandKey(b))
	}
	return s.emit(spirv.OpDot, av.Elem, a.id, b.id)
}

// boolResult returns the comparison result type matching the operand
// shape: bool for scalars, a bool vector for vectors.
func boolResult(t Type) Type {
	if v, ok := t.(VectorType); ok {
		return VectorType{Elem: Bool, Size: v.Size}
	}
	return Bool
}

// compare emits an ordered comparison producing bool components.
func (s *Scope) compare(name string, fop, sop, uop spirv.OpCode, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	if !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "%s compares %s against %s", name, operandKey(a), operandKey(b))
	}
	op, ok := binaryOpcode(classOf(a.typ), fop, sop, uop)
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "cannot order values of type %s", operandKey(a))
	}
	return s.emit(op, boolResult(a.typ), a.id, b.id)
}

// Eq emits component-wise equality.
func (s *Scope) Eq(a, b Value) (Value, error) {
	if classOf(a.typ) == classBool && classOf(b.typ) == classBool {
		return s.numericEquality(spirv.OpLogicalEqual, a, b)
	}
	return s.compare("equality", spirv.OpFOrdEqual, spirv.OpIEqual, spirv.OpIEqual, a, b)
}

// Ne emits component-wise inequality.
func (s *Scope) Ne(a, b Value) (Value, error) {
	if classOf(a.typ) == classBool && classOf(b.typ) == classBool {
		return s.numericEquality(spirv.OpLogicalNotEqual, a, b)
	}
	return s.compare("inequality", spirv.OpFOrdNotEqual, spirv.OpINotEqual, spirv.OpINotEqual, a, b)
}

func (s *Scope) numericEquality(op spirv.OpCode, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	if !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "cannot compare %s and %s", operandKey(a), operandKey(b))
	}
	return s.emit(op, boolResult(a.typ), a.id, b.id)
}

// Lt emits component-wise less-than.
func (s *Scope) Lt(a, b Value) (Value, error) {
	return s.compare("less-than", spirv.OpFOrdLessThan, spirv.OpSLessThan, spirv.OpULessThan, a, b)
}

// Le emits component-wise less-or-equal.
func (s *Scope) Le(a, b Value) (Value, error) {
	return s.compare("less-or-equal", spirv.OpFOrdLessThanEqual, spirv.OpSLessThanEqual, spirv.OpULessThanEqual, a, b)
}

// Gt emits component-wise greater-than.
func (s *Scope) Gt(a, b Value) (Value, error) {
	return s.compare("greater-than", spirv.OpFOrdGreaterThan, spirv.OpSGreaterThan, spirv.OpUGreaterThan, a, b)
}

// Ge emits component-wise greater-or-equal.
func (s *Scope) Ge(a, b Value) (Value, error) {
	return s.compare("greater-or-equal", spirv.OpFOrdGreaterThanEqual, spirv.OpSGreaterThanEqual, spirv.OpUGreaterThanEqual, a, b)
}

// logical emits a boolean binary operation.
func (s *Scope) logical(name string, op spirv.OpCode, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	if classOf(a.typ) != classBool || !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "logical %s requires matching bool operands, got %s and %s",
			name, operandKey(a), operandKey(b))
	}
	return s.emit(op, a.typ, a.id, b.id)
}

// And emits logical conjunction.
func (s *Scope) And(a, b Value) (Value, error) {
	return s.logical("and", spirv.OpLogicalAnd, a, b)
}

// Or emits logical disjunction.
func (s *Scope) Or(a, b Value) (Value, error) {
	return s.logical("or", spirv.OpLogicalOr, a, b)
}

// Not emits logical negation.
func (s *Scope) Not(v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	if classOf(v.typ) != classBool {
		return Value{}, errf(ErrTypeMismatch, "logical not requires bool, got %s", operandKey(v))
	}
	return s.emit(spirv.OpLogicalNot, v.typ, v.id)
}

// Select emits a component-wise conditional select between two values
// of the same type.
func (s *Scope) Select(cond, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(cond, a, b); err != nil {
		return Value{}, err
	}
	if !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "select arms differ: %s and %s", operandKey(a), operandKey(b))
	}
	if classOf(cond.typ) != classBool || componentCount(cond.typ) != componentCount(a.typ) {
		return Value{}, errf(ErrTypeMismatch, "select condition %s does not match %s", operandKey(cond), operandKey(a))
	}
	return s.emit(spirv.OpSelect, a.typ, cond.id, a.id, b.id)
}

// swizzleIndex maps a component letter to its index.
func swizzleIndex(c byte) (uint32, bool) {
	switch c {
	case 'x', 'r':
		return 0, true
	case 'y', 'g':
		return 1, true
	case 'z', 'b':
		return 2, true
	case 'w', 'a':
		return 3, true
	default:
		return 0, false
	}
}

// Swizzle selects or reorders vector components by name, e.g. "xyz" or
// "bgra". A single component yields the scalar element type.
func (s *Scope) Swizzle(v Value, components string) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	vt, ok := v.typ.(VectorType)
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "cannot swizzle %s", operandKey(v))
	}
	if len(components) == 0 || len(components) > 4 {
		return Value{}, errf(ErrTypeMismatch, "swizzle %q selects %d components", components, len(components))
	}
	indices := make([]uint32, len(components))
	for i := 0; i < len(components); i++ {
		idx, ok := swizzleIndex(components[i])
		if !ok || idx >= vt.Size {
			return Value{}, errf(ErrTypeMismatch, "component %q out of range for %s", components[i:i+1], operandKey(v))
		}
		indices[i] = idx
	}
	if len(indices) == 1 {
		return s.emit(spirv.OpCompositeExtract, vt.Elem, v.id, indices[0])
	}
	operands := append([]uint32{v.id, v.id}, indices...)
	result := VectorType{Elem: vt.Elem, Size: uint32(len(indices))}
	return s.emit(spirv.OpVectorShuffle, result, operands...)
}

// Construct builds a vector from scalar and vector parts, or a matrix
// from column vectors. The component counts of the parts must sum to
// the target's count.
func (s *Scope) Construct(t Type, parts ...Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(parts...); err != nil {
		return Value{}, err
	}

	switch tt := t.(type) {
	case VectorType:
		var have uint32
		for _, p := range parts {
			if !sameType(componentType(p.typ), tt.Elem) {
				return Value{}, errf(ErrTypeMismatch, "cannot build %s from %s", tt.key(), operandKey(p))
			}
			have += componentCount(p.typ)
		}
		if have != tt.Size {
			return Value{}, errf(ErrTypeMismatch, "%s needs %d components, parts supply %d", tt.key(), tt.Size, have)
		}
	case MatrixType:
		if uint32(len(parts)) != tt.Cols {
			return Value{}, errf(ErrTypeMismatch, "%s needs %d columns, got %d", tt.key(), tt.Cols, len(parts))
		}
		col := VectorType{Elem: tt.Elem, Size: tt.Rows}
		for _, p := range parts {
			if !sameType(p.typ, col) {
				return Value{}, errf(ErrTypeMismatch, "%s column must be %s, got %s", tt.key(), col.key(), operandKey(p))
			}
		}
	default:
		return Value{}, errf(ErrTypeMismatch, "cannot construct values of type %s", t.key())
	}

	operands := make([]uint32, len(parts))
	for i, p := range parts {
		operands[i] = p.id
	}
	return s.emit(spirv.OpCompositeConstruct, t, operands...)
}

// Load reads the value a pointer addresses.
func (s *Scope) Load(ptr Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(ptr); err != nil {
		return Value{}, err
	}
	pt, ok := ptr.pointer()
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "cannot load through %s", operandKey(ptr))
	}
	tid, err := s.b.pointeeID(pt)
	if err != nil {
		return Value{}, err
	}
	id, err := s.b.alloc()
	if err != nil {
		return Value{}, err
	}
	s.append(spirv.Inst(spirv.OpLoad, tid, id, ptr.id))
	return Value{id: id, typ: pt.Elem}, nil
}

// Store writes a value through a pointer of matching element type.
func (s *Scope) Store(ptr, val Value) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := checkOperands(ptr, val); err != nil {
		return err
	}
	pt, ok := ptr.pointer()
	if !ok {
		return errf(ErrTypeMismatch, "cannot store through %s", operandKey(ptr))
	}
	if !sameType(pt.Elem, val.typ) {
		return errf(ErrTypeMismatch, "cannot store %s into pointer to %s", operandKey(val), pt.Elem.key())
	}
	s.append(spirv.Inst(spirv.OpStore, ptr.id, val.id))
	return nil
}

// AccessChain forms a pointer to a sub-object of a composite variable.
// Struct members must be indexed with interned integer constants;
// arrays, vectors, and matrix columns accept any integer value.
func (s *Scope) AccessChain(ptr Value, indices ...Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(ptr); err != nil {
		return Value{}, err
	}
	if err := checkOperands(indices...); err != nil {
		return Value{}, err
	}
	pt, ok := ptr.pointer()
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "cannot index through %s", operandKey(ptr))
	}
	if len(indices) == 0 {
		return Value{}, NewError(ErrTypeMismatch, "access chain needs at least one index")
	}

	cur := pt.Elem
	for _, idx := range indices {
		if _, ok := idx.typ.(IntType); !ok {
			return Value{}, errf(ErrTypeMismatch, "index must be an integer, got %s", operandKey(idx))
		}
		switch ct := cur.(type) {
		case StructType:
			member, ok := s.b.constLiterals[idx.id]
			if !ok {
				return Value{}, NewError(ErrTypeMismatch, "struct member index must be a constant")
			}
			if int(member) >= len(ct.Members) {
				return Value{}, errf(ErrTypeMismatch, "member %d out of range for %s", member, ct.key())
			}
			cur = ct.Members[member].Type
		case ArrayType:
			cur = ct.Elem
		case RuntimeArrayType:
			cur = ct.Elem
		case VectorType:
			cur = ct.Elem
		case MatrixType:
			cur = VectorType{Elem: ct.Elem, Size: ct.Rows}
		default:
			return Value{}, errf(ErrTypeMismatch, "cannot index into %s", cur.key())
		}
	}

	result := PointerType{Storage: pt.Storage, Elem: cur}
	tid, err := s.b.pointerID(pt.Storage, cur)
	if err != nil {
		return Value{}, err
	}
	id, err := s.b.alloc()
	if err != nil {
		return Value{}, err
	}
	words := make([]uint32, 0, len(indices)+3)
	words = append(words, tid, id, ptr.id)
	for _, idx := range indices {
		words = append(words, idx.id)
	}
	s.append(spirv.Inst(spirv.OpAccessChain, words...))
	return Value{id: id, typ: result}, nil
}

// Field forms a pointer to a struct member by position.
func (s *Scope) Field(ptr Value, member uint32) (Value, error) {
	idx, err := s.b.ConstUInt(member)
	if err != nil {
		return Value{}, err
	}
	return s.AccessChain(ptr, idx)
}

// convert emits a scalar or vector numeric conversion.
func (s *Scope) convert(target Type, v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	from, to := classOf(v.typ), classOf(target)
	result := target
	if vt, ok := v.typ.(VectorType); ok {
		result = VectorType{Elem: target, Size: vt.Size}
	}
	var op spirv.OpCode
	switch {
	case from == classSInt && to == classFloat:
		op = spirv.OpConvertSToF
	case from == classUInt && to == classFloat:
		op = spirv.OpConvertUToF
	case from == classFloat && to == classSInt:
		op = spirv.OpConvertFToS
	case from == classFloat && to == classUInt:
		op = spirv.OpConvertFToU
	case (from == classSInt && to == classUInt) || (from == classUInt && to == classSInt):
		op = spirv.OpBitcast
	default:
		return Value{}, errf(ErrTypeMismatch, "cannot convert %s to %s", operandKey(v), target.key())
	}
	return s.emit(op, result, v.id)
}

// ToFloat converts integer components to f32.
func (s *Scope) ToFloat(v Value) (Value, error) {
	return s.convert(Float32, v)
}

// ToInt converts components to i32.
func (s *Scope) ToInt(v Value) (Value, error) {
	return s.convert(Int32, v)
}

// ToUInt converts components to u32.
func (s *Scope) ToUInt(v Value) (Value, error) {
	return s.convert(UInt32, v)
}

// ext emits a GLSL.std.450 extended instruction.
func (s *Scope) ext(instr uint32, result Type, args ...Value) (Value, error) {
	set, err := s.b.glslImport()
	if err != nil {
		return Value{}, err
	}
	operands := make([]uint32, 0, len(args)+2)
	operands = append(operands, set, instr)
	for _, a := range args {
		operands = append(operands, a.id)
	}
	return s.emit(spirv.OpExtInst, result, operands...)
}

// floatUnary validates a float scalar or vector operand.
func (s *Scope) floatUnary(name string, instr uint32, v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	if classOf(v.typ) != classFloat {
		return Value{}, errf(ErrTypeMismatch, "%s requires float components, got %s", name, operandKey(v))
	}
	return s.ext(instr, v.typ, v)
}

// Sqrt emits the component-wise square root.
func (s *Scope) Sqrt(v Value) (Value, error) {
	return s.floatUnary("sqrt", spirv.GLSLstd450Sqrt, v)
}

// InverseSqrt emits the component-wise reciprocal square root.
func (s *Scope) InverseSqrt(v Value) (Value, error) {
	return s.floatUnary("inverse sqrt", spirv.GLSLstd450InverseSqrt, v)
}

// Sin emits the component-wise sine.
func (s *Scope) Sin(v Value) (Value, error) {
	return s.floatUnary("sin", spirv.GLSLstd450Sin, v)
}

// Cos emits the component-wise cosine.
func (s *Scope) Cos(v Value) (Value, error) {
	return s.floatUnary("cos", spirv.GLSLstd450Cos, v)
}

// Floor emits the component-wise floor.
func (s *Scope) Floor(v Value) (Value, error) {
	return s.floatUnary("floor", spirv.GLSLstd450Floor, v)
}

// Fract emits the component-wise fractional part.
func (s *Scope) Fract(v Value) (Value, error) {
	return s.floatUnary("fract", spirv.GLSLstd450Fract, v)
}

// Abs emits the component-wise absolute value.
func (s *Scope) Abs(v Value) (Value, error) {
	return s.floatUnary("abs", spirv.GLSLstd450FAbs, v)
}

// Pow emits the component-wise power x^y.
func (s *Scope) Pow(x, y Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(x, y); err != nil {
		return Value{}, err
	}
	if classOf(x.typ) != classFloat || !sameType(x.typ, y.typ) {
		return Value{}, errf(ErrTypeMismatch, "pow requires matching float operands, got %s and %s", operandKey(x), operandKey(y))
	}
	return s.ext(spirv.GLSLstd450Pow, x.typ, x, y)
}

// extBinarySelect picks the GLSL.std.450 instruction by scalar class.
func extBinarySelect(class scalarClass, f, si, u uint32) (uint32, bool) {
	switch class {
	case classFloat:
		return f, true
	case classSInt:
		return si, true
	case classUInt:
		return u, true
	default:
		return 0, false
	}
}

// Min emits the component-wise minimum.
func (s *Scope) Min(a, b Value) (Value, error) {
	return s.minMax("min", spirv.GLSLstd450FMin, spirv.GLSLstd450SMin, spirv.GLSLstd450UMin, a, b)
}

// Max emits the component-wise maximum.
func (s *Scope) Max(a, b Value) (Value, error) {
	return s.minMax("max", spirv.GLSLstd450FMax, spirv.GLSLstd450SMax, spirv.GLSLstd450UMax, a, b)
}

func (s *Scope) minMax(name string, f, si, u uint32, a, b Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(a, b); err != nil {
		return Value{}, err
	}
	if !sameType(a.typ, b.typ) {
		return Value{}, errf(ErrTypeMismatch, "%s requires matching operands, got %s and %s", name, operandKey(a), operandKey(b))
	}
	instr, ok := extBinarySelect(classOf(a.typ), f, si, u)
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "%s does not apply to %s", name, operandKey(a))
	}
	return s.ext(instr, a.typ, a, b)
}

// Clamp emits the component-wise clamp of v to [lo, hi].
func (s *Scope) Clamp(v, lo, hi Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v, lo, hi); err != nil {
		return Value{}, err
	}
	if !sameType(v.typ, lo.typ) || !sameType(v.typ, hi.typ) {
		return Value{}, errf(ErrTypeMismatch, "clamp requires matching operands, got %s, %s, %s",
			operandKey(v), operandKey(lo), operandKey(hi))
	}
	instr, ok := extBinarySelect(classOf(v.typ), spirv.GLSLstd450FClamp, spirv.GLSLstd450SClamp, spirv.GLSLstd450UClamp)
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "clamp does not apply to %s", operandKey(v))
	}
	return s.ext(instr, v.typ, v, lo, hi)
}

// Mix emits the component-wise linear blend of x and y by a.
func (s *Scope) Mix(x, y, a Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(x, y, a); err != nil {
		return Value{}, err
	}
	if classOf(x.typ) != classFloat || !sameType(x.typ, y.typ) || !sameType(x.typ, a.typ) {
		return Value{}, errf(ErrTypeMismatch, "mix requires matching float operands, got %s, %s, %s",
			operandKey(x), operandKey(y), operandKey(a))
	}
	return s.ext(spirv.GLSLstd450FMix, x.typ, x, y, a)
}

// floatVector validates a float vector operand.
func floatVector(name string, v Value) (VectorType, error) {
	vt, ok := v.typ.(VectorType)
	if !ok || classOf(vt.Elem) != classFloat {
		return VectorType{}, errf(ErrTypeMismatch, "%s requires a float vector, got %s", name, operandKey(v))
	}
	return vt, nil
}

// Normalize emits the unit-length form of a float vector.
func (s *Scope) Normalize(v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	if _, err := floatVector("normalize", v); err != nil {
		return Value{}, err
	}
	return s.ext(spirv.GLSLstd450Normalize, v.typ, v)
}

// Length emits the euclidean length of a float vector.
func (s *Scope) Length(v Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(v); err != nil {
		return Value{}, err
	}
	vt, err := floatVector("length", v)
	if err != nil {
		return Value{}, err
	}
	return s.ext(spirv.GLSLstd450Length, vt.Elem, v)
}

// Reflect emits the reflection of incident vector i about normal n.
func (s *Scope) Reflect(i, n Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(i, n); err != nil {
		return Value{}, err
	}
	if _, err := floatVector("reflect", i); err != nil {
		return Value{}, err
	}
	if !sameType(i.typ, n.typ) {
		return Value{}, errf(ErrTypeMismatch, "reflect requires matching vectors, got %s and %s", operandKey(i), operandKey(n))
	}
	return s.ext(spirv.GLSLstd450Reflect, i.typ, i, n)
}
