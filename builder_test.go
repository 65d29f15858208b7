package spv

import (
	"testing"

	"github.com/gogpu/spv/spirv"
)

// parseModule decodes a built binary for structural assertions.
func parseModule(t *testing.T, bin []byte) *spirv.ParsedModule {
	t.Helper()
	mod, err := spirv.ParseBytes(bin)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	return mod
}

// findAll returns every instruction with the given opcode.
func findAll(mod *spirv.ParsedModule, op spirv.OpCode) []spirv.Instruction {
	var out []spirv.Instruction
	for _, inst := range mod.Instructions {
		if inst.Opcode == op {
			out = append(out, inst)
		}
	}
	return out
}

func findOne(t *testing.T, mod *spirv.ParsedModule, op spirv.OpCode) spirv.Instruction {
	t.Helper()
	insts := findAll(mod, op)
	if len(insts) != 1 {
		t.Fatalf("Found %d %s instructions, want 1", len(insts), op)
	}
	return insts[0]
}

// buildPassthroughVertex is the minimal vertex stage: one location
// input forwarded to the position built-in.
func buildPassthroughVertex(t *testing.T) ([]byte, *Builder) {
	t.Helper()
	b := NewBuilder(StageVertex)
	pos, err := b.Input(0, Vec3, "position")
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	clip, err := b.BuiltinOutput(BuiltinPosition, "")
	if err != nil {
		t.Fatalf("BuiltinOutput failed: %v", err)
	}
	s := b.Body()
	p, err := s.Load(pos)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	one, err := b.ConstFloat(1)
	if err != nil {
		t.Fatalf("ConstFloat failed: %v", err)
	}
	p4, err := s.Construct(Vec4, p, one)
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	if err := s.Store(clip, p4); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	bin, err := b.Build("main")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return bin, b
}

func TestBuildPassthroughVertex(t *testing.T) {
	bin, _ := buildPassthroughVertex(t)
	mod := parseModule(t, bin)

	cap := findOne(t, mod, spirv.OpCapability)
	if cap.Words[0] != uint32(spirv.CapabilityShader) {
		t.Errorf("Capability: got %d, want Shader", cap.Words[0])
	}
	mem := findOne(t, mod, spirv.OpMemoryModel)
	if mem.Words[0] != uint32(spirv.AddressingModelLogical) || mem.Words[1] != uint32(spirv.MemoryModelGLSL450) {
		t.Errorf("Memory model: got %v", mem.Words)
	}

	entry := findOne(t, mod, spirv.OpEntryPoint)
	if entry.Words[0] != uint32(spirv.ExecutionModelVertex) {
		t.Errorf("Execution model: got %d, want Vertex", entry.Words[0])
	}
	name, used := entry.DecodeString(2)
	if name != "main" {
		t.Errorf("Entry point name: got %q, want main", name)
	}

	// Both IO variables appear in the interface list, and only those.
	iface := entry.Words[2+used:]
	vars := findAll(mod, spirv.OpVariable)
	var ioIDs []uint32
	for _, v := range vars {
		class := spirv.StorageClass(v.Words[2])
		if class == spirv.StorageClassInput || class == spirv.StorageClassOutput {
			id, _ := v.ResultID()
			ioIDs = append(ioIDs, id)
		}
	}
	if len(iface) != 2 || len(ioIDs) != 2 {
		t.Fatalf("Interface: %d listed, %d declared, want 2 and 2", len(iface), len(ioIDs))
	}
	for _, id := range ioIDs {
		found := false
		for _, listed := range iface {
			if listed == id {
				found = true
			}
		}
		if !found {
			t.Errorf("Variable %%%d missing from interface list", id)
		}
	}

	// Vertex stages carry no execution modes.
	if modes := findAll(mod, spirv.OpExecutionMode); len(modes) != 0 {
		t.Errorf("Vertex stage has %d execution modes, want 0", len(modes))
	}
	t.Logf("Module: %d instructions, bound %d", len(mod.Instructions), mod.Header.Bound)
}

func TestBoundCoversAllResults(t *testing.T) {
	bin, _ := buildPassthroughVertex(t)
	mod := parseModule(t, bin)

	seen := make(map[uint32]bool)
	for _, inst := range mod.Instructions {
		id, ok := inst.ResultID()
		if !ok {
			continue
		}
		if id == 0 || id >= mod.Header.Bound {
			t.Errorf("%s result %%%d outside bound %d", inst.Opcode, id, mod.Header.Bound)
		}
		if seen[id] {
			t.Errorf("Result %%%d assigned twice", id)
		}
		seen[id] = true
	}
}

func TestTypeInterning(t *testing.T) {
	b := NewBuilder(StageVertex)

	id1, err := b.typeID(Vec4)
	if err != nil {
		t.Fatalf("typeID failed: %v", err)
	}
	id2, err := b.typeID(VectorType{Elem: FloatType{Width: 32}, Size: 4})
	if err != nil {
		t.Fatalf("typeID failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Structurally equal vec4 types got ids %d and %d", id1, id2)
	}

	// Interning is structural, not per-value: a fresh but identical
	// struct maps to the same id.
	s1, err := b.typeID(StructType{Members: []Member{{Name: "a", Type: Mat4}, {Name: "b", Type: Float32}}})
	if err != nil {
		t.Fatalf("typeID failed: %v", err)
	}
	s2, err := b.typeID(StructType{Members: []Member{{Name: "renamed", Type: Mat4}, {Name: "still", Type: Float32}}})
	if err != nil {
		t.Fatalf("typeID failed: %v", err)
	}
	if s1 != s2 {
		t.Errorf("Structurally equal structs got ids %d and %d", s1, s2)
	}
}

func TestConstantInterning(t *testing.T) {
	b := NewBuilder(StageVertex)

	c1, err := b.ConstFloat(1.5)
	if err != nil {
		t.Fatalf("ConstFloat failed: %v", err)
	}
	c2, err := b.ConstFloat(1.5)
	if err != nil {
		t.Fatalf("ConstFloat failed: %v", err)
	}
	if c1.ID() != c2.ID() {
		t.Errorf("Equal constants got ids %d and %d", c1.ID(), c2.ID())
	}

	c3, err := b.ConstFloat(2.5)
	if err != nil {
		t.Fatalf("ConstFloat failed: %v", err)
	}
	if c3.ID() == c1.ID() {
		t.Error("Distinct constants share an id")
	}

	// Same bits, different type: a fresh constant.
	u, err := b.ConstUInt(0x3fc00000)
	if err != nil {
		t.Fatalf("ConstUInt failed: %v", err)
	}
	if u.ID() == c1.ID() {
		t.Error("Constants of different types share an id")
	}

	v1, err := b.ConstVec3(0, 0, 0)
	if err != nil {
		t.Fatalf("ConstVec3 failed: %v", err)
	}
	v2, err := b.ConstVec3(0, 0, 0)
	if err != nil {
		t.Fatalf("ConstVec3 failed: %v", err)
	}
	if v1.ID() != v2.ID() {
		t.Errorf("Equal composite constants got ids %d and %d", v1.ID(), v2.ID())
	}
}

func TestIdentifierExhausted(t *testing.T) {
	b := NewBuilder(StageVertex)
	b.nextID = 0 // simulate a wrapped allocator

	_, err := b.ConstFloat(1)
	if !IsKind(err, ErrIdentifierExhausted) {
		t.Errorf("ConstFloat after wraparound: got %v, want IdentifierExhausted", err)
	}
}

func TestSessionSpentAfterBuild(t *testing.T) {
	_, b := buildPassthroughVertex(t)

	if _, err := b.Build("main"); !IsKind(err, ErrBlockAlreadySealed) {
		t.Errorf("Second Build: got %v, want BlockAlreadySealed", err)
	}
	if _, err := b.ConstFloat(2); !IsKind(err, ErrBlockAlreadySealed) {
		t.Errorf("Constant after Build: got %v, want BlockAlreadySealed", err)
	}
	if _, err := b.Input(1, Vec2, "late"); !IsKind(err, ErrBlockAlreadySealed) {
		t.Errorf("Input after Build: got %v, want BlockAlreadySealed", err)
	}
	if err := b.Body().Return(); !IsKind(err, ErrBlockAlreadySealed) {
		t.Errorf("Return after Build: got %v, want BlockAlreadySealed", err)
	}
}

func TestInterfaceCrossCheck(t *testing.T) {
	// Declared variable dropped from the interface list.
	b := NewBuilder(StageVertex)
	if _, err := b.Input(0, Vec3, "position"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	b.interfaceIDs = nil
	if _, err := b.Build("main"); !IsKind(err, ErrMissingInterfaceVariable) {
		t.Errorf("Dropped variable: got %v, want MissingInterfaceVariable", err)
	}

	// Interface entry that no declaration backs.
	b = NewBuilder(StageVertex)
	if _, err := b.Input(0, Vec3, "position"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	b.interfaceIDs = append(b.interfaceIDs, 9999)
	if _, err := b.Build("main"); !IsKind(err, ErrMissingInterfaceVariable) {
		t.Errorf("Phantom interface id: got %v, want MissingInterfaceVariable", err)
	}
}

func TestInterfaceListsAllGlobalsFrom14(t *testing.T) {
	build := func(t *testing.T, version spirv.Version) (*spirv.ParsedModule, Value, Value) {
		t.Helper()
		b := NewBuilderWith(StageVertex, Options{Version: version, DebugNames: true})
		in, err := b.Input(0, Vec3, "position")
		if err != nil {
			t.Fatalf("Input failed: %v", err)
		}
		ub, err := b.Uniform(0, 0, "globals", Member{Name: "mvp", Type: Mat4})
		if err != nil {
			t.Fatalf("Uniform failed: %v", err)
		}
		bin, err := b.Build("main")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		return parseModule(t, bin), in, ub
	}

	interfaceIDs := func(t *testing.T, mod *spirv.ParsedModule) []uint32 {
		t.Helper()
		entry := findOne(t, mod, spirv.OpEntryPoint)
		_, used := entry.DecodeString(2)
		return entry.Words[2+used:]
	}
	contains := func(ids []uint32, id uint32) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}

	// Up to 1.3 the interface lists inputs and outputs only.
	mod, in, ub := build(t, spirv.Version1_3)
	iface := interfaceIDs(t, mod)
	if !contains(iface, in.ID()) {
		t.Errorf("1.3 interface %v missing input %%%d", iface, in.ID())
	}
	if contains(iface, ub.ID()) {
		t.Errorf("1.3 interface %v must not list uniform %%%d", iface, ub.ID())
	}

	// From 1.4 every module-scope variable is listed.
	mod, in, ub = build(t, spirv.Version1_4)
	iface = interfaceIDs(t, mod)
	if !contains(iface, in.ID()) {
		t.Errorf("1.4 interface %v missing input %%%d", iface, in.ID())
	}
	if !contains(iface, ub.ID()) {
		t.Errorf("1.4 interface %v missing uniform %%%d", iface, ub.ID())
	}
	if vars := findAll(mod, spirv.OpVariable); len(iface) != len(vars) {
		t.Errorf("1.4 interface lists %d ids, module declares %d variables", len(iface), len(vars))
	}
}

func TestAutoSealedEmptyBody(t *testing.T) {
	b := NewBuilder(StageFragment)
	bin, err := b.Build("main")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mod := parseModule(t, bin)

	if ret := findAll(mod, spirv.OpReturn); len(ret) != 1 {
		t.Errorf("Empty body: %d OpReturn, want 1", len(ret))
	}
	mode := findOne(t, mod, spirv.OpExecutionMode)
	if mode.Words[1] != uint32(spirv.ExecutionModeOriginUpperLeft) {
		t.Errorf("Fragment execution mode: got %d, want OriginUpperLeft", mode.Words[1])
	}
}

func TestComputeLocalSize(t *testing.T) {
	b := NewBuilder(StageCompute)
	b.SetWorkgroupSize(64, 2, 1)
	bin, err := b.Build("main")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mod := parseModule(t, bin)

	mode := findOne(t, mod, spirv.OpExecutionMode)
	if mode.Words[1] != uint32(spirv.ExecutionModeLocalSize) {
		t.Fatalf("Compute execution mode: got %d, want LocalSize", mode.Words[1])
	}
	if mode.Words[2] != 64 || mode.Words[3] != 2 || mode.Words[4] != 1 {
		t.Errorf("Workgroup size: got %v, want [64 2 1]", mode.Words[2:])
	}
	entry := findOne(t, mod, spirv.OpEntryPoint)
	if entry.Words[0] != uint32(spirv.ExecutionModelGLCompute) {
		t.Errorf("Execution model: got %d, want GLCompute", entry.Words[0])
	}
}

func TestUnsupportedTypes(t *testing.T) {
	b := NewBuilder(StageVertex)

	tests := []Type{
		FloatType{Width: 16},
		IntType{Width: 64, Signed: true},
		VectorType{Elem: Float32, Size: 5},
		VectorType{Elem: Vec2, Size: 2},
		MatrixType{Cols: 1, Rows: 4, Elem: Float32},
		MatrixType{Cols: 4, Rows: 4, Elem: Int32},
		ArrayType{Elem: Float32, Length: 0},
	}
	for _, tt := range tests {
		if _, err := b.typeID(tt); !IsKind(err, ErrUnsupportedType) {
			t.Errorf("typeID(%s): got %v, want UnsupportedType", tt.key(), err)
		}
	}
}

func BenchmarkBuildPassthroughVertex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		bb := NewBuilder(StageVertex)
		pos, _ := bb.Input(0, Vec3, "position")
		clip, _ := bb.BuiltinOutput(BuiltinPosition, "")
		s := bb.Body()
		p, _ := s.Load(pos)
		one, _ := bb.ConstFloat(1)
		p4, _ := s.Construct(Vec4, p, one)
		_ = s.Store(clip, p4)
		if _, err := bb.Build("main"); err != nil {
			b.Fatal(err)
		}
	}
}
