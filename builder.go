package spv

import (
	"math"

	"fortio.org/safecast"

	"github.com/gogpu/spv/spirv"
)

// constKey interns a scalar constant by its type and literal bits, and
// a composite constant by its type and component id list.
type constKey struct {
	typeKey string
	bits    uint64
	parts   string
}

// Builder is one shader stage's build session. It owns the identifier
// allocator, the type and constant interners, the declared resources,
// and the entry function under construction. A Builder is consumed
// exactly once by Build and is spent afterwards; it is not safe for
// concurrent use.
type Builder struct {
	opts  Options
	stage Stage

	nextID uint32
	spent  bool

	mod *spirv.Module

	typeIDs  map[string]uint32
	constIDs map[constKey]uint32

	// constLiterals maps scalar constant ids back to their literal
	// words; access chains need the literal to resolve struct members.
	constLiterals map[uint32]uint32

	glslExt uint32

	// ioVars holds every declared input/output variable id; the entry
	// point interface list is cross-checked against it at Build.
	ioVars       map[uint32]string
	interfaceIDs []uint32

	// globalIDs holds every module-scope variable in declaration
	// order. From SPIR-V 1.4 the entry point interface must list all
	// of them, not just inputs and outputs.
	globalIDs []uint32

	locals []spirv.Instruction
	body   []spirv.Instruction

	root *Scope

	workgroup     [3]uint32
	depthReplaced bool
}

// NewBuilder creates a session for the given stage with default
// options.
func NewBuilder(stage Stage) *Builder {
	return NewBuilderWith(stage, DefaultOptions())
}

// NewBuilderWith creates a session for the given stage.
func NewBuilderWith(stage Stage, opts Options) *Builder {
	b := &Builder{
		opts:          opts,
		stage:         stage,
		nextID:        1,
		mod:           spirv.NewModule(opts.Version),
		typeIDs:       make(map[string]uint32),
		constIDs:      make(map[constKey]uint32),
		constLiterals: make(map[uint32]uint32),
		ioVars:        make(map[uint32]string),
		workgroup:     [3]uint32{1, 1, 1},
	}
	b.mod.AddCapability(spirv.CapabilityShader)
	b.mod.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	// The entry block label is the first id issued.
	entry, _ := b.alloc()
	b.root = &Scope{b: b, blockID: entry}
	return b
}

// Stage returns the stage this session builds.
func (b *Builder) Stage() Stage {
	return b.stage
}

// Body returns the entry function's root scope. Instructions appended
// to it form the body of the stage's main function.
func (b *Builder) Body() *Scope {
	return b.root
}

// SetWorkgroupSize sets the compute dispatch group size. It has no
// effect on vertex or fragment sessions.
func (b *Builder) SetWorkgroupSize(x, y, z uint32) {
	b.workgroup = [3]uint32{x, y, z}
}

// alloc issues the next identifier.
func (b *Builder) alloc() (uint32, error) {
	id := b.nextID
	if id == 0 {
		return 0, NewError(ErrIdentifierExhausted, "identifier space exhausted")
	}
	b.nextID++
	return id, nil
}

// ready reports whether the session can still accept declarations.
func (b *Builder) ready() error {
	if b.spent {
		return NewError(ErrBlockAlreadySealed, "session already consumed by Build")
	}
	return nil
}

// debugName records an OpName for id if debug names are enabled.
func (b *Builder) debugName(id uint32, name string) {
	if b.opts.DebugNames && name != "" {
		b.mod.AddName(id, name)
	}
}

// typeID interns a type by its structural key and returns its id,
// declaring it in the module on first use.
func (b *Builder) typeID(t Type) (uint32, error) {
	if id, ok := b.typeIDs[t.key()]; ok {
		return id, nil
	}
	if err := checkSupported(t); err != nil {
		return 0, err
	}

	var inst spirv.Instruction
	var id uint32
	var err error
	switch tt := t.(type) {
	case VoidType:
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeVoid, id)
	case BoolType:
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeBool, id)
	case IntType:
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		signed := uint32(0)
		if tt.Signed {
			signed = 1
		}
		inst = spirv.Inst(spirv.OpTypeInt, id, tt.Width, signed)
	case FloatType:
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeFloat, id, tt.Width)
	case VectorType:
		elem, err := b.typeID(tt.Elem)
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeVector, id, elem, tt.Size)
	case MatrixType:
		col, err := b.typeID(VectorType{Elem: tt.Elem, Size: tt.Rows})
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeMatrix, id, col, tt.Cols)
	case ArrayType:
		elem, err := b.typeID(tt.Elem)
		if err != nil {
			return 0, err
		}
		length, err := b.constScalar(UInt32, tt.Length)
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeArray, id, elem, length.id)
	case RuntimeArrayType:
		elem, err := b.typeID(tt.Elem)
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeRuntimeArray, id, elem)
	case StructType:
		words := make([]uint32, 0, len(tt.Members)+1)
		words = append(words, 0)
		for _, m := range tt.Members {
			mid, err := b.typeID(m.Type)
			if err != nil {
				return 0, err
			}
			words = append(words, mid)
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		words[0] = id
		inst = spirv.Inst(spirv.OpTypeStruct, words...)
	case PointerType:
		elem, err := b.typeID(tt.Elem)
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypePointer, id, uint32(tt.Storage), elem)
	case ImageType:
		texel, err := b.typeID(Float32)
		if err != nil {
			return 0, err
		}
		if tt.Dim == Texture1D {
			b.mod.AddCapability(spirv.CapabilitySampled1D)
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		// depth=0, arrayed=0, ms=0, sampled=1, format=Unknown
		inst = spirv.Inst(spirv.OpTypeImage, id, texel, uint32(tt.Dim), 0, 0, 0, 1,
			uint32(spirv.ImageFormatUnknown))
	case SamplerType:
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeSampler, id)
	case SampledImageType:
		img, err := b.typeID(tt.Image)
		if err != nil {
			return 0, err
		}
		if id, err = b.alloc(); err != nil {
			return 0, err
		}
		inst = spirv.Inst(spirv.OpTypeSampledImage, id, img)
	default:
		return 0, errf(ErrUnsupportedType, "unknown type %T", t)
	}

	b.mod.AddGlobal(inst)
	b.typeIDs[t.key()] = id
	return id, nil
}

// layoutTypeID interns a type for use inside an explicitly laid-out
// block. Arrays and structs get their own ids, distinct from the plain
// forms, because the layout decorations attach to the type itself.
func (b *Builder) layoutTypeID(t Type, rule layoutRule) (uint32, error) {
	tag := "base:"
	if rule == layoutExtended {
		tag = "ext:"
	}

	switch tt := t.(type) {
	case ArrayType:
		if id, ok := b.typeIDs[tag+t.key()]; ok {
			return id, nil
		}
		elem, err := b.layoutTypeID(tt.Elem, rule)
		if err != nil {
			return 0, err
		}
		stride, err := arrayStride(tt.Elem, rule)
		if err != nil {
			return 0, err
		}
		length, err := b.constScalar(UInt32, tt.Length)
		if err != nil {
			return 0, err
		}
		id, err := b.alloc()
		if err != nil {
			return 0, err
		}
		b.mod.AddGlobal(spirv.Inst(spirv.OpTypeArray, id, elem, length.id))
		b.mod.AddDecorate(id, spirv.DecorationArrayStride, stride)
		b.typeIDs[tag+t.key()] = id
		return id, nil

	case RuntimeArrayType:
		if id, ok := b.typeIDs[tag+t.key()]; ok {
			return id, nil
		}
		elem, err := b.layoutTypeID(tt.Elem, rule)
		if err != nil {
			return 0, err
		}
		stride, err := arrayStride(tt.Elem, rule)
		if err != nil {
			return 0, err
		}
		id, err := b.alloc()
		if err != nil {
			return 0, err
		}
		b.mod.AddGlobal(spirv.Inst(spirv.OpTypeRuntimeArray, id, elem))
		b.mod.AddDecorate(id, spirv.DecorationArrayStride, stride)
		b.typeIDs[tag+t.key()] = id
		return id, nil

	case StructType:
		if id, ok := b.typeIDs[tag+t.key()]; ok {
			return id, nil
		}
		if err := checkSupported(t); err != nil {
			return 0, err
		}
		offsets, _, err := structLayout(tt, rule)
		if err != nil {
			return 0, err
		}
		words := make([]uint32, 0, len(tt.Members)+1)
		words = append(words, 0)
		for _, m := range tt.Members {
			mid, err := b.layoutTypeID(m.Type, rule)
			if err != nil {
				return 0, err
			}
			words = append(words, mid)
		}
		id, err := b.alloc()
		if err != nil {
			return 0, err
		}
		words[0] = id
		b.mod.AddGlobal(spirv.Inst(spirv.OpTypeStruct, words...))
		for i, m := range tt.Members {
			member, err := safecast.Conv[uint32](i)
			if err != nil {
				return 0, errf(ErrUnsupportedType, "struct too large: %v", err)
			}
			b.mod.AddMemberDecorate(id, member, spirv.DecorationOffset, offsets[i])
			if mt, ok := m.Type.(MatrixType); ok {
				b.mod.AddMemberDecorate(id, member, spirv.DecorationColMajor)
				b.mod.AddMemberDecorate(id, member, spirv.DecorationMatrixStride, matrixStride(mt, rule))
			}
			if b.opts.DebugNames && m.Name != "" {
				b.mod.AddMemberName(id, member, m.Name)
			}
		}
		b.typeIDs[tag+t.key()] = id
		return id, nil

	default:
		return b.typeID(t)
	}
}

// blockRule returns the layout rule for a storage class whose contents
// are explicitly laid out.
func blockRule(class spirv.StorageClass) (layoutRule, bool) {
	switch class {
	case spirv.StorageClassUniform:
		return layoutExtended, true
	case spirv.StorageClassStorageBuffer, spirv.StorageClassPushConstant:
		return layoutBase, true
	default:
		return 0, false
	}
}

// pointerID interns a pointer type. For storage classes with explicit
// layout the pointee is interned through layoutTypeID so that pointers
// into a block address the decorated form of the type.
func (b *Builder) pointerID(class spirv.StorageClass, elem Type) (uint32, error) {
	rule, layered := blockRule(class)
	if !layered {
		return b.typeID(PointerType{Storage: class, Elem: elem})
	}
	tag := "base:"
	if rule == layoutExtended {
		tag = "ext:"
	}
	key := PointerType{Storage: class, Elem: elem}.key()
	key = tag + key
	if id, ok := b.typeIDs[key]; ok {
		return id, nil
	}
	elemID, err := b.layoutTypeID(elem, rule)
	if err != nil {
		return 0, err
	}
	id, err := b.alloc()
	if err != nil {
		return 0, err
	}
	b.mod.AddGlobal(spirv.Inst(spirv.OpTypePointer, id, uint32(class), elemID))
	b.typeIDs[key] = id
	return id, nil
}

// pointeeID returns the id of the type a pointer addresses. Block
// storage classes resolve to the laid-out form of the pointee, so a
// load through a block pointer names the decorated type rather than
// re-declaring a plain one.
func (b *Builder) pointeeID(pt PointerType) (uint32, error) {
	if rule, layered := blockRule(pt.Storage); layered {
		return b.layoutTypeID(pt.Elem, rule)
	}
	return b.typeID(pt.Elem)
}

// constScalar interns a 32-bit scalar constant.
func (b *Builder) constScalar(t Type, bits uint32) (Value, error) {
	key := constKey{typeKey: t.key(), bits: uint64(bits)}
	if id, ok := b.constIDs[key]; ok {
		return Value{id: id, typ: t}, nil
	}
	tid, err := b.typeID(t)
	if err != nil {
		return Value{}, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, err
	}
	var inst spirv.Instruction
	switch t.(type) {
	case BoolType:
		op := spirv.OpConstantFalse
		if bits != 0 {
			op = spirv.OpConstantTrue
		}
		inst = spirv.Inst(op, tid, id)
	default:
		inst = spirv.Inst(spirv.OpConstant, tid, id, bits)
	}
	b.mod.AddGlobal(inst)
	b.constIDs[key] = id
	b.constLiterals[id] = bits
	return Value{id: id, typ: t}, nil
}

// ConstFloat returns the interned f32 constant.
func (b *Builder) ConstFloat(v float32) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	return b.constScalar(Float32, math.Float32bits(v))
}

// ConstInt returns the interned i32 constant.
func (b *Builder) ConstInt(v int32) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	return b.constScalar(Int32, uint32(v))
}

// ConstUInt returns the interned u32 constant.
func (b *Builder) ConstUInt(v uint32) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	return b.constScalar(UInt32, v)
}

// ConstBool returns the interned boolean constant.
func (b *Builder) ConstBool(v bool) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	var bits uint32
	if v {
		bits = 1
	}
	return b.constScalar(Bool, bits)
}

// ConstVec2 returns the interned vec2<f32> constant.
func (b *Builder) ConstVec2(x, y float32) (Value, error) {
	return b.constComposite(Vec2, []float32{x, y})
}

// ConstVec3 returns the interned vec3<f32> constant.
func (b *Builder) ConstVec3(x, y, z float32) (Value, error) {
	return b.constComposite(Vec3, []float32{x, y, z})
}

// ConstVec4 returns the interned vec4<f32> constant.
func (b *Builder) ConstVec4(x, y, z, w float32) (Value, error) {
	return b.constComposite(Vec4, []float32{x, y, z, w})
}

func (b *Builder) constComposite(t VectorType, comps []float32) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	words := make([]uint32, 0, len(comps)+2)
	words = append(words, 0, 0)
	parts := make([]byte, 0, len(comps)*4)
	for _, c := range comps {
		cv, err := b.constScalar(Float32, math.Float32bits(c))
		if err != nil {
			return Value{}, err
		}
		words = append(words, cv.id)
		parts = append(parts,
			byte(cv.id), byte(cv.id>>8), byte(cv.id>>16), byte(cv.id>>24))
	}
	key := constKey{typeKey: t.key(), parts: string(parts)}
	if id, ok := b.constIDs[key]; ok {
		return Value{id: id, typ: t}, nil
	}
	tid, err := b.typeID(t)
	if err != nil {
		return Value{}, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, err
	}
	words[0], words[1] = tid, id
	b.mod.AddGlobal(spirv.Inst(spirv.OpConstantComposite, words...))
	b.constIDs[key] = id
	return Value{id: id, typ: t}, nil
}

// glslImport returns the id of the GLSL.std.450 extended instruction
// set, importing it on first use.
func (b *Builder) glslImport() (uint32, error) {
	if b.glslExt != 0 {
		return b.glslExt, nil
	}
	id, err := b.alloc()
	if err != nil {
		return 0, err
	}
	b.mod.AddExtInstImport(id, spirv.GLSLstd450)
	b.glslExt = id
	return id, nil
}

// Local declares a function-scope mutable variable and returns a
// pointer to it. Loop counters and other mutable state live in locals.
func (b *Builder) Local(t Type, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	pt := PointerType{Storage: spirv.StorageClassFunction, Elem: t}
	ptid, err := b.typeID(pt)
	if err != nil {
		return Value{}, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, err
	}
	b.locals = append(b.locals, spirv.Inst(spirv.OpVariable, ptid, id, uint32(spirv.StorageClassFunction)))
	b.debugName(id, name)
	return Value{id: id, typ: pt}, nil
}

// appendBody adds an instruction to the entry function body.
func (b *Builder) appendBody(inst spirv.Instruction) {
	b.body = append(b.body, inst)
}

// Build finalizes the session and returns the binary module with the
// given entry point name. The session is spent afterwards whether or
// not Build succeeds.
func (b *Builder) Build(name string) ([]byte, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	b.spent = true

	if b.root.child != nil {
		return nil, NewError(ErrUnterminatedConstruct, "control-flow construct left open at build")
	}
	if !b.root.sealed {
		b.body = append(b.body, spirv.Inst(spirv.OpReturn))
	}

	if err := b.checkInterface(); err != nil {
		return nil, err
	}

	voidID, err := b.typeID(Void)
	if err != nil {
		return nil, err
	}
	fnType, err := b.alloc()
	if err != nil {
		return nil, err
	}
	b.mod.AddGlobal(spirv.Inst(spirv.OpTypeFunction, fnType, voidID))
	funcID, err := b.alloc()
	if err != nil {
		return nil, err
	}
	b.debugName(funcID, name)

	b.mod.AddFunctionInst(spirv.Inst(spirv.OpFunction, voidID, funcID, uint32(spirv.FunctionControlNone), fnType))
	b.mod.AddFunctionInst(spirv.Inst(spirv.OpLabel, b.root.blockID))
	for _, inst := range b.locals {
		b.mod.AddFunctionInst(inst)
	}
	for _, inst := range b.body {
		b.mod.AddFunctionInst(inst)
	}
	b.mod.AddFunctionInst(spirv.Inst(spirv.OpFunctionEnd))

	iface := b.interfaceIDs
	if b.opts.Version.AtLeast(spirv.Version1_4) {
		iface = b.globalIDs
	}
	b.mod.AddEntryPoint(b.stage.executionModel(), funcID, name, iface)
	switch b.stage {
	case StageFragment:
		b.mod.AddExecutionMode(funcID, spirv.ExecutionModeOriginUpperLeft)
		if b.depthReplaced {
			b.mod.AddExecutionMode(funcID, spirv.ExecutionModeDepthReplacing)
		}
	case StageCompute:
		b.mod.AddExecutionMode(funcID, spirv.ExecutionModeLocalSize,
			b.workgroup[0], b.workgroup[1], b.workgroup[2])
	}

	b.mod.Bound = b.nextID
	return b.mod.Bytes()
}

// checkInterface cross-checks the entry point interface list against
// the declared input/output variables, in both directions.
func (b *Builder) checkInterface() error {
	listed := make(map[uint32]bool, len(b.interfaceIDs))
	for _, id := range b.interfaceIDs {
		if _, ok := b.ioVars[id]; !ok {
			return errf(ErrMissingInterfaceVariable, "interface lists %%%d which is not a declared input or output", id)
		}
		if listed[id] {
			return errf(ErrMissingInterfaceVariable, "interface lists %%%d twice", id)
		}
		listed[id] = true
	}
	for id, name := range b.ioVars {
		if !listed[id] {
			return errf(ErrMissingInterfaceVariable, "declared variable %q (%%%d) missing from interface", name, id)
		}
	}
	return nil
}
