package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Emission failure modes. The serializer is all-or-nothing: any of
// these aborts emission with no partial artifact.
var (
	ErrNoMemoryModel   = errors.New("spirv: module has no memory model")
	ErrNoEntryPoint    = errors.New("spirv: module has no entry point")
	ErrZeroBound       = errors.New("spirv: identifier bound is zero")
	ErrBoundExceeded   = errors.New("spirv: result id not below identifier bound")
	ErrDuplicateResult = errors.New("spirv: duplicate result id")
)

// Module is the section-ordered aggregate of a SPIR-V module. Sections
// are kept separate so instructions may be recorded in any order; the
// serializer writes them in the order the format mandates.
type Module struct {
	Version   Version
	Generator uint32

	// Bound is the first unused result id. The builder that owns id
	// allocation must set it before serialization.
	Bound uint32

	Capabilities   []Instruction
	Extensions     []Instruction
	ExtInstImports []Instruction
	MemoryModel    *Instruction
	EntryPoints    []Instruction
	ExecutionModes []Instruction
	DebugNames     []Instruction // OpName, OpMemberName
	Annotations    []Instruction // OpDecorate, OpMemberDecorate
	Globals        []Instruction // OpType*, OpConstant*, global OpVariable
	Functions      []Instruction // OpFunction ... OpFunctionEnd
}

// NewModule creates an empty module targeting the given version.
func NewModule(version Version) *Module {
	return &Module{
		Version:   version,
		Generator: GeneratorID,
	}
}

// AddCapability records an OpCapability instruction.
func (m *Module) AddCapability(capability Capability) {
	m.Capabilities = append(m.Capabilities, Inst(OpCapability, uint32(capability)))
}

// SetMemoryModel records the module's single OpMemoryModel instruction.
func (m *Module) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	inst := Inst(OpMemoryModel, uint32(addressing), uint32(memory))
	m.MemoryModel = &inst
}

// AddExtInstImport records an extended instruction set import with the
// given result id.
func (m *Module) AddExtInstImport(id uint32, name string) {
	b := NewInstructionBuilder()
	b.AddWord(id)
	b.AddString(name)
	m.ExtInstImports = append(m.ExtInstImports, b.Build(OpExtInstImport))
}

// AddEntryPoint records an entry point declaration and its interface
// variable list.
func (m *Module) AddEntryPoint(model ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	b := NewInstructionBuilder()
	b.AddWord(uint32(model))
	b.AddWord(funcID)
	b.AddString(name)
	b.AddWords(interfaces...)
	m.EntryPoints = append(m.EntryPoints, b.Build(OpEntryPoint))
}

// AddExecutionMode records an execution mode for an entry point.
func (m *Module) AddExecutionMode(funcID uint32, mode ExecutionMode, params ...uint32) {
	b := NewInstructionBuilder()
	b.AddWord(funcID)
	b.AddWord(uint32(mode))
	b.AddWords(params...)
	m.ExecutionModes = append(m.ExecutionModes, b.Build(OpExecutionMode))
}

// AddName records a debug name for an id.
func (m *Module) AddName(id uint32, name string) {
	b := NewInstructionBuilder()
	b.AddWord(id)
	b.AddString(name)
	m.DebugNames = append(m.DebugNames, b.Build(OpName))
}

// AddMemberName records a debug name for a struct member.
func (m *Module) AddMemberName(structID, member uint32, name string) {
	b := NewInstructionBuilder()
	b.AddWord(structID)
	b.AddWord(member)
	b.AddString(name)
	m.DebugNames = append(m.DebugNames, b.Build(OpMemberName))
}

// AddDecorate records a decoration.
func (m *Module) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	words := append([]uint32{id, uint32(decoration)}, params...)
	m.Annotations = append(m.Annotations, Inst(OpDecorate, words...))
}

// AddMemberDecorate records a struct member decoration.
func (m *Module) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	words := append([]uint32{structID, member, uint32(decoration)}, params...)
	m.Annotations = append(m.Annotations, Inst(OpMemberDecorate, words...))
}

// AddGlobal records a type, constant, or global variable declaration.
func (m *Module) AddGlobal(inst Instruction) {
	m.Globals = append(m.Globals, inst)
}

// AddFunctionInst records an instruction in the function-definition
// section.
func (m *Module) AddFunctionInst(inst Instruction) {
	m.Functions = append(m.Functions, inst)
}

// sections returns all instruction sections in mandated order.
func (m *Module) sections() [][]Instruction {
	ordered := [][]Instruction{
		m.Capabilities,
		m.Extensions,
		m.ExtInstImports,
	}
	if m.MemoryModel != nil {
		ordered = append(ordered, []Instruction{*m.MemoryModel})
	}
	return append(ordered,
		m.EntryPoints,
		m.ExecutionModes,
		m.DebugNames,
		m.Annotations,
		m.Globals,
		m.Functions,
	)
}

// validate checks the structural invariants the serializer relies on:
// mandatory sections present, every result id nonzero, unique, and
// below the recorded bound.
func (m *Module) validate() error {
	if m.MemoryModel == nil {
		return ErrNoMemoryModel
	}
	if len(m.EntryPoints) == 0 {
		return ErrNoEntryPoint
	}
	if m.Bound == 0 {
		return ErrZeroBound
	}
	seen := make(map[uint32]OpCode)
	for _, section := range m.sections() {
		for _, inst := range section {
			id, ok := inst.ResultID()
			if !ok {
				continue
			}
			if id == 0 || id >= m.Bound {
				return fmt.Errorf("%w: %%%d from %s (bound %d)", ErrBoundExceeded, id, inst.Opcode, m.Bound)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: %%%d defined by %s and %s", ErrDuplicateResult, id, prev, inst.Opcode)
			}
			seen[id] = inst.Opcode
		}
	}
	return nil
}

// Words serializes the module into its binary word stream, starting
// with the five-word header. Emission is all-or-nothing: a validation
// failure yields an error and no words.
func (m *Module) Words() ([]uint32, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	total := HeaderWords
	for _, section := range m.sections() {
		for _, inst := range section {
			total += inst.WordCount()
		}
	}

	words := make([]uint32, 0, total)
	words = append(words, MagicNumber, m.Version.Word(), m.Generator, m.Bound, 0)
	for _, section := range m.sections() {
		for _, inst := range section {
			words = append(words, inst.Encode()...)
		}
	}
	return words, nil
}

// Bytes serializes the module as little-endian bytes, the layout
// expected when handing the artifact to a graphics API.
func (m *Module) Bytes() ([]byte, error) {
	words, err := m.Words()
	if err != nil {
		return nil, err
	}
	size, err := safecast.Conv[uint32](len(words) * 4)
	if err != nil {
		return nil, fmt.Errorf("spirv: module too large: %w", err)
	}
	buf := make([]byte, size)
	for i, word := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], word)
	}
	return buf, nil
}
