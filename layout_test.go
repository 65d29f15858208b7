package spv

import (
	"testing"

	"github.com/gogpu/spv/spirv"
)

func TestStructLayoutExtended(t *testing.T) {
	// A mat4 occupies four 16-byte columns, so the scalar after it
	// lands at offset 64 and padding rounds the struct to 80.
	st := StructType{Members: []Member{
		{Name: "mvp", Type: Mat4},
		{Name: "intensity", Type: Float32},
	}}
	offsets, size, err := structLayout(st, layoutExtended)
	if err != nil {
		t.Fatalf("structLayout failed: %v", err)
	}
	if offsets[0] != 0 || offsets[1] != 64 {
		t.Errorf("Offsets: got %v, want [0 64]", offsets)
	}
	if size != 80 {
		t.Errorf("Size: got %d, want 80", size)
	}
}

func TestStructLayoutVec3Padding(t *testing.T) {
	st := StructType{Members: []Member{
		{Name: "a", Type: Float32},
		{Name: "b", Type: Vec3},
		{Name: "c", Type: Float32},
	}}
	offsets, size, err := structLayout(st, layoutExtended)
	if err != nil {
		t.Fatalf("structLayout failed: %v", err)
	}
	// vec3 aligns to 16 but only occupies 12 bytes, so the scalar
	// after it packs into the trailing slot.
	want := []uint32{0, 16, 28}
	for i, w := range want {
		if offsets[i] != w {
			t.Errorf("Offset %d: got %d, want %d", i, offsets[i], w)
		}
	}
	if size != 32 {
		t.Errorf("Size: got %d, want 32", size)
	}
}

func TestLayoutRulesDiffer(t *testing.T) {
	ext, err := arrayStride(Float32, layoutExtended)
	if err != nil {
		t.Fatalf("arrayStride failed: %v", err)
	}
	base, err := arrayStride(Float32, layoutBase)
	if err != nil {
		t.Fatalf("arrayStride failed: %v", err)
	}
	if ext != 16 || base != 4 {
		t.Errorf("f32 array stride: got ext=%d base=%d, want 16 and 4", ext, base)
	}

	m2 := MatrixType{Cols: 2, Rows: 2, Elem: Float32}
	if got := matrixStride(m2, layoutBase); got != 8 {
		t.Errorf("mat2 base stride: got %d, want 8", got)
	}
	if got := matrixStride(m2, layoutExtended); got != 16 {
		t.Errorf("mat2 extended stride: got %d, want 16", got)
	}

	st := StructType{Members: []Member{{Name: "v", Type: Vec2}}}
	extSize, err := sizeOf(st, layoutExtended)
	if err != nil {
		t.Fatalf("sizeOf failed: %v", err)
	}
	baseSize, err := sizeOf(st, layoutBase)
	if err != nil {
		t.Fatalf("sizeOf failed: %v", err)
	}
	if extSize != 16 || baseSize != 8 {
		t.Errorf("struct{vec2} size: got ext=%d base=%d, want 16 and 8", extSize, baseSize)
	}
}

func TestRuntimeArrayMustBeLast(t *testing.T) {
	st := StructType{Members: []Member{
		{Name: "data", Type: RuntimeArrayOf(Float32)},
		{Name: "count", Type: UInt32},
	}}
	if _, _, err := structLayout(st, layoutBase); !IsKind(err, ErrUnsupportedType) {
		t.Errorf("Runtime array in the middle: got %v, want UnsupportedType", err)
	}
}

// memberDecorations collects OpMemberDecorate entries for one
// decoration as member -> params.
func memberDecorations(mod *spirv.ParsedModule, dec spirv.Decoration) map[uint32][]uint32 {
	out := make(map[uint32][]uint32)
	for _, inst := range mod.Instructions {
		if inst.Opcode != spirv.OpMemberDecorate || inst.Words[2] != uint32(dec) {
			continue
		}
		out[inst.Words[1]] = inst.Words[3:]
	}
	return out
}

func TestUniformBlockDecorations(t *testing.T) {
	b := NewBuilder(StageVertex)
	if _, err := b.Uniform(0, 0, "globals",
		Member{Name: "mvp", Type: Mat4},
		Member{Name: "intensity", Type: Float32},
	); err != nil {
		t.Fatalf("Uniform failed: %v", err)
	}

	bin, err := b.Build("main")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mod := parseModule(t, bin)

	offsets := memberDecorations(mod, spirv.DecorationOffset)
	if len(offsets) != 2 {
		t.Fatalf("Offset decorations: got %d, want 2", len(offsets))
	}
	if got := offsets[0]; len(got) != 1 || got[0] != 0 {
		t.Errorf("Member 0 offset: got %v, want [0]", got)
	}
	if got := offsets[1]; len(got) != 1 || got[0] != 64 {
		t.Errorf("Member 1 offset: got %v, want [64]", got)
	}

	strides := memberDecorations(mod, spirv.DecorationMatrixStride)
	if got := strides[0]; len(got) != 1 || got[0] != 16 {
		t.Errorf("Matrix member stride: got %v, want [16]", got)
	}
	if _, ok := strides[1]; ok {
		t.Error("Scalar member has a matrix stride")
	}
	colMajor := memberDecorations(mod, spirv.DecorationColMajor)
	if _, ok := colMajor[0]; !ok {
		t.Error("Matrix member is not column-major decorated")
	}
}

func TestStorageRuntimeArrayStride(t *testing.T) {
	b := NewBuilder(StageCompute)
	if _, err := b.Storage(0, 0, StorageReadWrite, "buf",
		Member{Name: "data", Type: RuntimeArrayOf(Float32)},
	); err != nil {
		t.Fatalf("Storage failed: %v", err)
	}

	bin, err := b.Build("main")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mod := parseModule(t, bin)

	found := false
	for _, inst := range mod.Instructions {
		if inst.Opcode != spirv.OpDecorate || inst.Words[1] != uint32(spirv.DecorationArrayStride) {
			continue
		}
		found = true
		if inst.Words[2] != 4 {
			t.Errorf("Runtime array stride: got %d, want 4", inst.Words[2])
		}
	}
	if !found {
		t.Error("No ArrayStride decoration emitted")
	}
}
