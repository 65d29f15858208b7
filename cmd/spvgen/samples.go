package main

import "github.com/gogpu/spv"

// samples maps a sample name to the function that builds its stage
// binaries, keyed by output filename.
var samples = map[string]func() (map[string][]byte, error){
	"basic":         buildBasic,
	"uniform":       buildUniform,
	"push_constant": buildPushConstant,
	"texture":       buildTexture,
	"storage":       buildStorage,
	"condition":     buildCondition,
	"loop":          buildLoop,
}

// buildBasic is a position/color passthrough pipeline.
func buildBasic() (map[string][]byte, error) {
	vb := spv.NewBuilder(spv.StageVertex)
	pos, err := vb.Input(0, spv.Vec3, "position")
	if err != nil {
		return nil, err
	}
	colIn, err := vb.Input(1, spv.Vec3, "color")
	if err != nil {
		return nil, err
	}
	colOut, err := vb.Output(0, spv.Vec3, "v_color")
	if err != nil {
		return nil, err
	}
	clip, err := vb.BuiltinOutput(spv.BuiltinPosition, "")
	if err != nil {
		return nil, err
	}
	s := vb.Body()
	p, err := s.Load(pos)
	if err != nil {
		return nil, err
	}
	one, err := vb.ConstFloat(1)
	if err != nil {
		return nil, err
	}
	p4, err := s.Construct(spv.Vec4, p, one)
	if err != nil {
		return nil, err
	}
	if err := s.Store(clip, p4); err != nil {
		return nil, err
	}
	c, err := s.Load(colIn)
	if err != nil {
		return nil, err
	}
	if err := s.Store(colOut, c); err != nil {
		return nil, err
	}
	vert, err := vb.Build("main")
	if err != nil {
		return nil, err
	}

	fb := spv.NewBuilder(spv.StageFragment)
	vcol, err := fb.Input(0, spv.Vec3, "v_color")
	if err != nil {
		return nil, err
	}
	frag, err := fb.Output(0, spv.Vec4, "frag_color")
	if err != nil {
		return nil, err
	}
	fs := fb.Body()
	c, err = fs.Load(vcol)
	if err != nil {
		return nil, err
	}
	one, err = fb.ConstFloat(1)
	if err != nil {
		return nil, err
	}
	c4, err := fs.Construct(spv.Vec4, c, one)
	if err != nil {
		return nil, err
	}
	if err := fs.Store(frag, c4); err != nil {
		return nil, err
	}
	fragBin, err := fb.Build("main")
	if err != nil {
		return nil, err
	}

	return map[string][]byte{
		"basic.vert.spv": vert,
		"basic.frag.spv": fragBin,
	}, nil
}

// buildUniform transforms positions by a uniform matrix and scales the
// color by a uniform intensity scalar.
func buildUniform() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageVertex)
	ub, err := b.Uniform(0, 0, "globals",
		spv.Member{Name: "mvp", Type: spv.Mat4},
		spv.Member{Name: "intensity", Type: spv.Float32},
	)
	if err != nil {
		return nil, err
	}
	pos, err := b.Input(0, spv.Vec3, "position")
	if err != nil {
		return nil, err
	}
	colIn, err := b.Input(1, spv.Vec3, "color")
	if err != nil {
		return nil, err
	}
	colOut, err := b.Output(0, spv.Vec3, "v_color")
	if err != nil {
		return nil, err
	}
	clip, err := b.BuiltinOutput(spv.BuiltinPosition, "")
	if err != nil {
		return nil, err
	}

	s := b.Body()
	mvpPtr, err := s.Field(ub, 0)
	if err != nil {
		return nil, err
	}
	mvp, err := s.Load(mvpPtr)
	if err != nil {
		return nil, err
	}
	p, err := s.Load(pos)
	if err != nil {
		return nil, err
	}
	one, err := b.ConstFloat(1)
	if err != nil {
		return nil, err
	}
	p4, err := s.Construct(spv.Vec4, p, one)
	if err != nil {
		return nil, err
	}
	transformed, err := s.Mul(mvp, p4)
	if err != nil {
		return nil, err
	}
	if err := s.Store(clip, transformed); err != nil {
		return nil, err
	}

	intensityPtr, err := s.Field(ub, 1)
	if err != nil {
		return nil, err
	}
	intensity, err := s.Load(intensityPtr)
	if err != nil {
		return nil, err
	}
	c, err := s.Load(colIn)
	if err != nil {
		return nil, err
	}
	scaled, err := s.Mul(c, intensity)
	if err != nil {
		return nil, err
	}
	if err := s.Store(colOut, scaled); err != nil {
		return nil, err
	}

	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"uniform.vert.spv": bin}, nil
}

// buildPushConstant tints the output by a push-constant color.
func buildPushConstant() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageFragment)
	pc, err := b.PushConstants("push",
		spv.Member{Name: "tint", Type: spv.Vec4},
	)
	if err != nil {
		return nil, err
	}
	frag, err := b.Output(0, spv.Vec4, "frag_color")
	if err != nil {
		return nil, err
	}
	s := b.Body()
	tintPtr, err := s.Field(pc, 0)
	if err != nil {
		return nil, err
	}
	tint, err := s.Load(tintPtr)
	if err != nil {
		return nil, err
	}
	if err := s.Store(frag, tint); err != nil {
		return nil, err
	}
	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"push_constant.frag.spv": bin}, nil
}

// buildTexture samples a 2D texture through a separate sampler.
func buildTexture() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageFragment)
	tex, err := b.Texture(0, 0, spv.Texture2D, "albedo")
	if err != nil {
		return nil, err
	}
	samp, err := b.Sampler(0, 1, "albedo_sampler")
	if err != nil {
		return nil, err
	}
	uv, err := b.Input(0, spv.Vec2, "v_uv")
	if err != nil {
		return nil, err
	}
	frag, err := b.Output(0, spv.Vec4, "frag_color")
	if err != nil {
		return nil, err
	}

	s := b.Body()
	coord, err := s.Load(uv)
	if err != nil {
		return nil, err
	}
	sampled, err := s.CombineSample(tex, samp)
	if err != nil {
		return nil, err
	}
	texel, err := s.Sample(sampled, coord)
	if err != nil {
		return nil, err
	}
	if err := s.Store(frag, texel); err != nil {
		return nil, err
	}
	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"texture.frag.spv": bin}, nil
}

// buildStorage doubles every element of a storage buffer in a compute
// stage, one invocation per element.
func buildStorage() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageCompute)
	b.SetWorkgroupSize(64, 1, 1)
	buf, err := b.Storage(0, 0, spv.StorageReadWrite, "data",
		spv.Member{Name: "values", Type: spv.RuntimeArrayOf(spv.Float32)},
	)
	if err != nil {
		return nil, err
	}
	gid, err := b.BuiltinInput(spv.BuiltinGlobalInvocationID, "")
	if err != nil {
		return nil, err
	}

	s := b.Body()
	id3, err := s.Load(gid)
	if err != nil {
		return nil, err
	}
	idx, err := s.Swizzle(id3, "x")
	if err != nil {
		return nil, err
	}
	zero, err := b.ConstUInt(0)
	if err != nil {
		return nil, err
	}
	elem, err := s.AccessChain(buf, zero, idx)
	if err != nil {
		return nil, err
	}
	v, err := s.Load(elem)
	if err != nil {
		return nil, err
	}
	two, err := b.ConstFloat(2)
	if err != nil {
		return nil, err
	}
	doubled, err := s.Mul(v, two)
	if err != nil {
		return nil, err
	}
	if err := s.Store(elem, doubled); err != nil {
		return nil, err
	}
	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"storage.comp.spv": bin}, nil
}

// buildCondition discards dim fragments and brightens the rest.
func buildCondition() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageFragment)
	vcol, err := b.Input(0, spv.Vec4, "v_color")
	if err != nil {
		return nil, err
	}
	frag, err := b.Output(0, spv.Vec4, "frag_color")
	if err != nil {
		return nil, err
	}

	s := b.Body()
	c, err := s.Load(vcol)
	if err != nil {
		return nil, err
	}
	alpha, err := s.Swizzle(c, "a")
	if err != nil {
		return nil, err
	}
	threshold, err := b.ConstFloat(0.1)
	if err != nil {
		return nil, err
	}
	dim, err := s.Lt(alpha, threshold)
	if err != nil {
		return nil, err
	}
	iff, err := s.If(dim)
	if err != nil {
		return nil, err
	}
	if err := iff.Then.Discard(); err != nil {
		return nil, err
	}
	els, err := iff.Else()
	if err != nil {
		return nil, err
	}
	boost, err := b.ConstFloat(1.2)
	if err != nil {
		return nil, err
	}
	bright, err := els.Mul(c, boost)
	if err != nil {
		return nil, err
	}
	if err := els.Store(frag, bright); err != nil {
		return nil, err
	}
	if err := iff.End(); err != nil {
		return nil, err
	}

	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"condition.frag.spv": bin}, nil
}

// buildLoop sums the first n values of a storage buffer with a while
// loop and writes the total back.
func buildLoop() (map[string][]byte, error) {
	b := spv.NewBuilder(spv.StageCompute)
	buf, err := b.Storage(0, 0, spv.StorageReadWrite, "data",
		spv.Member{Name: "count", Type: spv.UInt32},
		spv.Member{Name: "total", Type: spv.Float32},
		spv.Member{Name: "values", Type: spv.RuntimeArrayOf(spv.Float32)},
	)
	if err != nil {
		return nil, err
	}

	i, err := b.Local(spv.UInt32, "i")
	if err != nil {
		return nil, err
	}
	acc, err := b.Local(spv.Float32, "acc")
	if err != nil {
		return nil, err
	}

	s := b.Body()
	zeroU, err := b.ConstUInt(0)
	if err != nil {
		return nil, err
	}
	zeroF, err := b.ConstFloat(0)
	if err != nil {
		return nil, err
	}
	if err := s.Store(i, zeroU); err != nil {
		return nil, err
	}
	if err := s.Store(acc, zeroF); err != nil {
		return nil, err
	}

	countPtr, err := s.Field(buf, 0)
	if err != nil {
		return nil, err
	}
	count, err := s.Load(countPtr)
	if err != nil {
		return nil, err
	}

	loop, err := s.While()
	if err != nil {
		return nil, err
	}
	iv, err := loop.Cond.Load(i)
	if err != nil {
		return nil, err
	}
	more, err := loop.Cond.Lt(iv, count)
	if err != nil {
		return nil, err
	}
	body, err := loop.Begin(more)
	if err != nil {
		return nil, err
	}

	idx, err := body.Load(i)
	if err != nil {
		return nil, err
	}
	two, err := b.ConstUInt(2)
	if err != nil {
		return nil, err
	}
	elem, err := body.AccessChain(buf, two, idx)
	if err != nil {
		return nil, err
	}
	v, err := body.Load(elem)
	if err != nil {
		return nil, err
	}
	sum, err := body.Load(acc)
	if err != nil {
		return nil, err
	}
	sum, err = body.Add(sum, v)
	if err != nil {
		return nil, err
	}
	if err := body.Store(acc, sum); err != nil {
		return nil, err
	}
	oneU, err := b.ConstUInt(1)
	if err != nil {
		return nil, err
	}
	next, err := body.Add(idx, oneU)
	if err != nil {
		return nil, err
	}
	if err := body.Store(i, next); err != nil {
		return nil, err
	}
	if err := loop.End(); err != nil {
		return nil, err
	}

	totalPtr, err := s.Field(buf, 1)
	if err != nil {
		return nil, err
	}
	total, err := s.Load(acc)
	if err != nil {
		return nil, err
	}
	if err := s.Store(totalPtr, total); err != nil {
		return nil, err
	}

	bin, err := b.Build("main")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"loop.comp.spv": bin}, nil
}
