package spv

import "github.com/gogpu/spv/spirv"

// StorageAccess restricts how a storage buffer may be accessed.
type StorageAccess uint8

const (
	StorageReadWrite StorageAccess = iota
	StorageReadOnly
	StorageWriteOnly
)

// ioVar declares a stage input or output variable and registers it in
// the entry point interface list.
func (b *Builder) ioVar(class spirv.StorageClass, t Type, name string) (Value, error) {
	pt := PointerType{Storage: class, Elem: t}
	ptid, err := b.typeID(pt)
	if err != nil {
		return Value{}, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, err
	}
	b.mod.AddGlobal(spirv.Inst(spirv.OpVariable, ptid, id, uint32(class)))
	b.debugName(id, name)
	b.ioVars[id] = name
	b.interfaceIDs = append(b.interfaceIDs, id)
	b.globalIDs = append(b.globalIDs, id)
	return Value{id: id, typ: pt}, nil
}

// checkIOType rejects types that cannot cross a stage boundary.
func checkIOType(t Type) error {
	if !isNumeric(t) {
		return errf(ErrUnsupportedType, "%s cannot be a stage input or output", t.key())
	}
	return nil
}

// Input declares a location-indexed stage input and returns a pointer
// to it. Integer inputs of a fragment stage are flat-interpolated, as
// the format requires.
func (b *Builder) Input(location uint32, t Type, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	if b.stage == StageCompute {
		return Value{}, NewError(ErrUnsupportedType, "compute stages have no location inputs")
	}
	if err := checkIOType(t); err != nil {
		return Value{}, err
	}
	v, err := b.ioVar(spirv.StorageClassInput, t, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationLocation, location)
	if b.stage == StageFragment && classOf(t) != classFloat {
		b.mod.AddDecorate(v.id, spirv.DecorationFlat)
	}
	return v, nil
}

// InputFlat declares a location-indexed stage input with flat
// interpolation regardless of component type.
func (b *Builder) InputFlat(location uint32, t Type, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	if b.stage == StageCompute {
		return Value{}, NewError(ErrUnsupportedType, "compute stages have no location inputs")
	}
	if err := checkIOType(t); err != nil {
		return Value{}, err
	}
	v, err := b.ioVar(spirv.StorageClassInput, t, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationLocation, location)
	b.mod.AddDecorate(v.id, spirv.DecorationFlat)
	return v, nil
}

// Output declares a location-indexed stage output and returns a
// pointer to it.
func (b *Builder) Output(location uint32, t Type, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	if b.stage == StageCompute {
		return Value{}, NewError(ErrUnsupportedType, "compute stages have no location outputs")
	}
	if err := checkIOType(t); err != nil {
		return Value{}, err
	}
	v, err := b.ioVar(spirv.StorageClassOutput, t, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationLocation, location)
	return v, nil
}

// BuiltinInput declares a stage built-in input (frag_coord,
// vertex_index, global_invocation_id, ...) and returns a pointer to
// its fixed type.
func (b *Builder) BuiltinInput(builtin Builtin, name string) (Value, error) {
	return b.builtinVar(builtin, name, true)
}

// BuiltinOutput declares a stage built-in output (position,
// frag_depth, ...) and returns a pointer to its fixed type.
func (b *Builder) BuiltinOutput(builtin Builtin, name string) (Value, error) {
	return b.builtinVar(builtin, name, false)
}

func (b *Builder) builtinVar(builtin Builtin, name string, isInput bool) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	info, ok := builtins[builtin]
	if !ok {
		return Value{}, NewError(ErrUnsupportedType, "unknown built-in")
	}
	if info.stage != b.stage {
		return Value{}, errf(ErrUnsupportedType, "%s belongs to the %s stage, not %s", info.name, info.stage, b.stage)
	}
	if info.isInput != isInput {
		dir := "output"
		if info.isInput {
			dir = "input"
		}
		return Value{}, errf(ErrUnsupportedType, "%s is an %s of the %s stage", info.name, dir, info.stage)
	}
	class := spirv.StorageClassOutput
	if isInput {
		class = spirv.StorageClassInput
	}
	if name == "" {
		name = info.name
	}
	v, err := b.ioVar(class, info.typ, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationBuiltIn, uint32(info.spirv))
	if builtin == BuiltinFragDepth {
		b.depthReplaced = true
	}
	return v, nil
}

// blockVar declares a descriptor-backed block variable: the struct is
// interned with explicit layout, decorated Block, and the variable gets
// its binding metadata.
func (b *Builder) blockVar(class spirv.StorageClass, members []Member, name string) (Value, uint32, error) {
	if len(members) == 0 {
		return Value{}, 0, NewError(ErrUnsupportedType, "block needs at least one member")
	}
	rule, ok := blockRule(class)
	if !ok {
		return Value{}, 0, errf(ErrUnsupportedType, "storage class %d cannot hold a block", uint32(class))
	}
	st := StructType{Members: members}
	structID, err := b.layoutTypeID(st, rule)
	if err != nil {
		return Value{}, 0, err
	}
	b.mod.AddDecorate(structID, spirv.DecorationBlock)

	ptid, err := b.pointerID(class, st)
	if err != nil {
		return Value{}, 0, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, 0, err
	}
	b.mod.AddGlobal(spirv.Inst(spirv.OpVariable, ptid, id, uint32(class)))
	b.debugName(id, name)
	b.globalIDs = append(b.globalIDs, id)
	return Value{id: id, typ: PointerType{Storage: class, Elem: st}}, structID, nil
}

// Uniform declares a uniform block at the given descriptor set and
// binding. Members are laid out with extended alignment; the returned
// pointer is indexed with Field or AccessChain.
func (b *Builder) Uniform(set, binding uint32, name string, members ...Member) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	v, _, err := b.blockVar(spirv.StorageClassUniform, members, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationDescriptorSet, set)
	b.mod.AddDecorate(v.id, spirv.DecorationBinding, binding)
	return v, nil
}

// Storage declares a storage buffer at the given descriptor set and
// binding. Read-only and write-only buffers are decorated accordingly.
func (b *Builder) Storage(set, binding uint32, access StorageAccess, name string, members ...Member) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	v, _, err := b.blockVar(spirv.StorageClassStorageBuffer, members, name)
	if err != nil {
		return Value{}, err
	}
	b.mod.AddDecorate(v.id, spirv.DecorationDescriptorSet, set)
	b.mod.AddDecorate(v.id, spirv.DecorationBinding, binding)
	switch access {
	case StorageReadOnly:
		b.mod.AddDecorate(v.id, spirv.DecorationNonWritable)
	case StorageWriteOnly:
		b.mod.AddDecorate(v.id, spirv.DecorationNonReadable)
	}
	return v, nil
}

// PushConstants declares the stage's push-constant block. Push
// constants carry no set or binding; the pipeline layout addresses them
// by offset alone.
func (b *Builder) PushConstants(name string, members ...Member) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	v, _, err := b.blockVar(spirv.StorageClassPushConstant, members, name)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}
