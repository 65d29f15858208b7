package spirv

// Instruction represents a single SPIR-V instruction.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // result type ID, result ID, operands
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		words: make([]uint32, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(word uint32) *InstructionBuilder {
	b.words = append(b.words, word)
	return b
}

// AddWords adds several words to the instruction.
func (b *InstructionBuilder) AddWords(words ...uint32) *InstructionBuilder {
	b.words = append(b.words, words...)
	return b
}

// AddString adds a null-terminated UTF-8 string, padded to a word
// boundary as the format requires.
func (b *InstructionBuilder) AddString(s string) *InstructionBuilder {
	bytes := []byte(s)
	bytes = append(bytes, 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) |
			uint32(bytes[i+1])<<8 |
			uint32(bytes[i+2])<<16 |
			uint32(bytes[i+3])<<24
		b.words = append(b.words, word)
	}
	return b
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{
		Opcode: opcode,
		Words:  b.words,
	}
}

// Inst is shorthand for building an instruction from literal words.
func Inst(opcode OpCode, words ...uint32) Instruction {
	return Instruction{Opcode: opcode, Words: words}
}

// WordCount returns the encoded size of the instruction, including the
// leading word-count/opcode word.
func (i Instruction) WordCount() int {
	return len(i.Words) + 1
}

// Encode encodes the instruction to its binary words.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(i.WordCount())
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// ResultID returns the instruction's result id and true if the opcode
// produces one.
func (i Instruction) ResultID() (uint32, bool) {
	info := opInfos[i.Opcode]
	switch {
	case !info.result:
		return 0, false
	case info.resultType:
		if len(i.Words) < 2 {
			return 0, false
		}
		return i.Words[1], true
	default:
		if len(i.Words) < 1 {
			return 0, false
		}
		return i.Words[0], true
	}
}

// DecodeString decodes a null-terminated string literal starting at the
// given operand index and returns it with the number of words consumed.
func (i Instruction) DecodeString(start int) (string, int) {
	var out []byte
	used := 0
	for idx := start; idx < len(i.Words); idx++ {
		word := i.Words[idx]
		used++
		for shift := 0; shift < 32; shift += 8 {
			c := byte(word >> shift)
			if c == 0 {
				return string(out), used
			}
			out = append(out, c)
		}
	}
	return string(out), used
}
