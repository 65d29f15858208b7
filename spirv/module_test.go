package spirv

import (
	"encoding/binary"
	"errors"
	"testing"
)

// minimalModule builds the smallest valid module: one entry point with
// an empty void function.
func minimalModule() *Module {
	m := NewModule(Version1_3)
	m.AddCapability(CapabilityShader)
	m.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// %1 = void, %2 = fn type, %3 = function, %4 = entry label
	m.AddGlobal(Inst(OpTypeVoid, 1))
	m.AddGlobal(Inst(OpTypeFunction, 2, 1))
	m.AddFunctionInst(Inst(OpFunction, 1, 3, uint32(FunctionControlNone), 2))
	m.AddFunctionInst(Inst(OpLabel, 4))
	m.AddFunctionInst(Inst(OpReturn))
	m.AddFunctionInst(Inst(OpFunctionEnd))
	m.AddEntryPoint(ExecutionModelVertex, 3, "main", nil)
	m.Bound = 5
	return m
}

func TestModuleHeader(t *testing.T) {
	data, err := minimalModule().Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}
	if len(data) < HeaderWords*4 {
		t.Fatalf("Module too small: %d bytes", len(data))
	}

	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != MagicNumber {
		t.Errorf("Magic: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != Version1_3.Word() {
		t.Errorf("Version: got 0x%08X, want 0x%08X", version, Version1_3.Word())
	}
	if generator := binary.LittleEndian.Uint32(data[8:12]); generator != GeneratorID {
		t.Errorf("Generator: got 0x%08X, want 0x%08X", generator, GeneratorID)
	}
	if bound := binary.LittleEndian.Uint32(data[12:16]); bound != 5 {
		t.Errorf("Bound: got %d, want 5", bound)
	}
	if schema := binary.LittleEndian.Uint32(data[16:20]); schema != 0 {
		t.Errorf("Schema: got %d, want 0", schema)
	}
	t.Logf("Module size: %d bytes", len(data))
}

func TestModuleSectionOrder(t *testing.T) {
	m := minimalModule()
	m.AddExtInstImport(5, GLSLstd450)
	m.AddDecorate(3, DecorationBuiltIn, 0)
	m.AddName(3, "main")
	m.Bound = 6

	words, err := m.Words()
	if err != nil {
		t.Fatalf("Words() failed: %v", err)
	}
	parsed, err := Parse(words)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []OpCode{
		OpCapability, OpExtInstImport, OpMemoryModel, OpEntryPoint,
		OpName, OpDecorate, OpTypeVoid, OpTypeFunction,
		OpFunction, OpLabel, OpReturn, OpFunctionEnd,
	}
	if len(parsed.Instructions) != len(want) {
		t.Fatalf("Instruction count: got %d, want %d", len(parsed.Instructions), len(want))
	}
	for i, op := range want {
		if parsed.Instructions[i].Opcode != op {
			t.Errorf("Instruction %d: got %s, want %s", i, parsed.Instructions[i].Opcode, op)
		}
	}
}

func TestModuleValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Module)
		wantErr error
	}{
		{
			"missing memory model",
			func(m *Module) { m.MemoryModel = nil },
			ErrNoMemoryModel,
		},
		{
			"missing entry point",
			func(m *Module) { m.EntryPoints = nil },
			ErrNoEntryPoint,
		},
		{
			"zero bound",
			func(m *Module) { m.Bound = 0 },
			ErrZeroBound,
		},
		{
			"result id at bound",
			func(m *Module) { m.Bound = 4 },
			ErrBoundExceeded,
		},
		{
			"duplicate result id",
			func(m *Module) { m.AddGlobal(Inst(OpTypeBool, 1)) },
			ErrDuplicateResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := minimalModule()
			tt.mutate(m)
			_, err := m.Words()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Words() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModuleValidationIsAllOrNothing(t *testing.T) {
	m := minimalModule()
	m.Bound = 0
	data, err := m.Bytes()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if data != nil {
		t.Errorf("Got %d bytes alongside error, want none", len(data))
	}
}

func TestParseRoundTrip(t *testing.T) {
	m := minimalModule()
	m.AddExtInstImport(5, GLSLstd450)
	m.Bound = 6

	words, err := m.Words()
	if err != nil {
		t.Fatalf("Words() failed: %v", err)
	}
	parsed, err := Parse(words)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parsed.Header.Version != Version1_3 {
		t.Errorf("Version: got %v", parsed.Header.Version)
	}
	if parsed.Header.Bound != 6 {
		t.Errorf("Bound: got %d, want 6", parsed.Header.Bound)
	}

	// Re-encoding every parsed instruction must reproduce the stream.
	out := []uint32{MagicNumber, parsed.Header.Version.Word(), parsed.Header.Generator, parsed.Header.Bound, parsed.Header.Schema}
	for _, inst := range parsed.Instructions {
		out = append(out, inst.Encode()...)
	}
	if len(out) != len(words) {
		t.Fatalf("Round trip length: got %d words, want %d", len(out), len(words))
	}
	for i := range words {
		if out[i] != words[i] {
			t.Fatalf("Round trip word %d: got 0x%08X, want 0x%08X", i, out[i], words[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]uint32{MagicNumber, 0}); !errors.Is(err, ErrTruncated) {
		t.Errorf("Short stream: got %v, want %v", err, ErrTruncated)
	}
	if _, err := Parse([]uint32{0xdeadbeef, 0, 0, 1, 0}); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Bad magic: got %v, want %v", err, ErrBadMagic)
	}
	// A word count pointing past the end of the stream.
	bad := []uint32{MagicNumber, Version1_3.Word(), 0, 2, 0, (9 << 16) | uint32(OpCapability), 1}
	if _, err := Parse(bad); !errors.Is(err, ErrTruncated) {
		t.Errorf("Truncated instruction: got %v, want %v", err, ErrTruncated)
	}
	if _, err := ParseBytes(make([]byte, 21)); !errors.Is(err, ErrTruncated) {
		t.Errorf("Unaligned bytes: got %v, want %v", err, ErrTruncated)
	}
}

func BenchmarkModuleBytes(b *testing.B) {
	m := minimalModule()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Bytes(); err != nil {
			b.Fatal(err)
		}
	}
}
