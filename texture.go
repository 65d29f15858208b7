package spv

import "github.com/gogpu/spv/spirv"

// Texture declares a sampled texture at the given descriptor set and
// binding and returns a pointer to it. Textures and samplers are
// separate objects; CombineSample pairs them for sampling.
func (b *Builder) Texture(set, binding uint32, dim TextureDim, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	return b.handleVar(ImageType{Dim: dim}, set, binding, name)
}

// Sampler declares a sampler at the given descriptor set and binding
// and returns a pointer to it.
func (b *Builder) Sampler(set, binding uint32, name string) (Value, error) {
	if err := b.ready(); err != nil {
		return Value{}, err
	}
	return b.handleVar(SamplerType{}, set, binding, name)
}

// handleVar declares an opaque-handle variable (texture or sampler).
func (b *Builder) handleVar(t Type, set, binding uint32, name string) (Value, error) {
	pt := PointerType{Storage: spirv.StorageClassUniformConstant, Elem: t}
	ptid, err := b.typeID(pt)
	if err != nil {
		return Value{}, err
	}
	id, err := b.alloc()
	if err != nil {
		return Value{}, err
	}
	b.mod.AddGlobal(spirv.Inst(spirv.OpVariable, ptid, id, uint32(spirv.StorageClassUniformConstant)))
	b.mod.AddDecorate(id, spirv.DecorationDescriptorSet, set)
	b.mod.AddDecorate(id, spirv.DecorationBinding, binding)
	b.debugName(id, name)
	b.globalIDs = append(b.globalIDs, id)
	return Value{id: id, typ: pt}, nil
}

// coordType returns the sampling coordinate type for a texture
// dimensionality.
func coordType(dim TextureDim) Type {
	switch dim {
	case Texture1D:
		return Float32
	case Texture2D:
		return Vec2
	default:
		return Vec3
	}
}

// CombineSample loads a texture and a sampler variable and pairs them
// into a sampled-image value.
func (s *Scope) CombineSample(tex, samp Value) (Value, error) {
	if err := s.ready(); err != nil {
		return Value{}, err
	}
	if err := checkOperands(tex, samp); err != nil {
		return Value{}, err
	}
	tp, ok := tex.pointer()
	img, isImg := tp.Elem.(ImageType)
	if !ok || !isImg {
		return Value{}, errf(ErrTypeMismatch, "combine needs a texture variable, got %s", operandKey(tex))
	}
	sp, ok := samp.pointer()
	if !ok {
		return Value{}, errf(ErrTypeMismatch, "combine needs a sampler variable, got %s", operandKey(samp))
	}
	if _, isSamp := sp.Elem.(SamplerType); !isSamp {
		return Value{}, errf(ErrTypeMismatch, "combine needs a sampler variable, got %s", operandKey(samp))
	}

	imgVal, err := s.emit(spirv.OpLoad, img, tex.id)
	if err != nil {
		return Value{}, err
	}
	sampVal, err := s.emit(spirv.OpLoad, SamplerType{}, samp.id)
	if err != nil {
		return Value{}, err
	}
	return s.emit(spirv.OpSampledImage, SampledImageType{Image: img}, imgVal.id, sampVal.id)
}

// Sample reads a texel with implicit level of detail. Implicit-lod
// sampling is only defined inside fragment stages; other stages use
// SampleLod.
func (s *Scope) Sample(sampled, coord Value) (Value, error) {
	if _, err := s.sampleArgs(sampled, coord); err != nil {
		return Value{}, err
	}
	if s.b.stage != StageFragment {
		return Value{}, errf(ErrUnsupportedType, "implicit-lod sampling is not available in the %s stage", s.b.stage)
	}
	return s.emit(spirv.OpImageSampleImplicitLod, Vec4, sampled.id, coord.id)
}

// SampleLod reads a texel at an explicit level of detail.
func (s *Scope) SampleLod(sampled, coord, lod Value) (Value, error) {
	if _, err := s.sampleArgs(sampled, coord); err != nil {
		return Value{}, err
	}
	if err := checkOperands(lod); err != nil {
		return Value{}, err
	}
	if !sameType(lod.typ, Float32) {
		return Value{}, errf(ErrTypeMismatch, "lod must be f32, got %s", operandKey(lod))
	}
	return s.emit(spirv.OpImageSampleExplicitLod, Vec4,
		sampled.id, coord.id, spirv.ImageOperandsLod, lod.id)
}

// sampleArgs validates the sampled image and coordinate operands.
func (s *Scope) sampleArgs(sampled, coord Value) (SampledImageType, error) {
	if err := s.ready(); err != nil {
		return SampledImageType{}, err
	}
	if err := checkOperands(sampled, coord); err != nil {
		return SampledImageType{}, err
	}
	si, ok := sampled.typ.(SampledImageType)
	if !ok {
		return SampledImageType{}, errf(ErrTypeMismatch, "sample needs a combined texture/sampler, got %s", operandKey(sampled))
	}
	want := coordType(si.Image.Dim)
	if !sameType(coord.typ, want) {
		return SampledImageType{}, errf(ErrTypeMismatch, "sampling a %s texture needs %s coordinates, got %s",
			si.Image.key(), want.key(), operandKey(coord))
	}
	return si, nil
}
