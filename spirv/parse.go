package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Parse failure modes.
var (
	ErrTruncated  = errors.New("spirv: truncated module")
	ErrBadMagic   = errors.New("spirv: bad magic number")
	ErrBadEncoded = errors.New("spirv: malformed instruction")
)

// Header holds the decoded five-word module header.
type Header struct {
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32
}

// ParsedModule is the flat result of decoding a binary module: the
// header plus every instruction in stream order. No section structure
// is recovered; callers that need it walk the instruction list.
type ParsedModule struct {
	Header       Header
	Instructions []Instruction
}

// Parse decodes a module from its word stream.
func Parse(words []uint32) (*ParsedModule, error) {
	if len(words) < HeaderWords {
		return nil, fmt.Errorf("%w: %d words, header needs %d", ErrTruncated, len(words), HeaderWords)
	}
	if words[0] != MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, words[0])
	}

	p := &ParsedModule{
		Header: Header{
			Version: Version{
				Major: uint8(words[1] >> 16),
				Minor: uint8(words[1] >> 8),
			},
			Generator: words[2],
			Bound:     words[3],
			Schema:    words[4],
		},
	}

	for pos := HeaderWords; pos < len(words); {
		first := words[pos]
		wordCount := int(first >> 16)
		opcode := OpCode(first & 0xffff)
		if wordCount == 0 {
			return nil, fmt.Errorf("%w: zero word count at word %d", ErrBadEncoded, pos)
		}
		if pos+wordCount > len(words) {
			return nil, fmt.Errorf("%w: %s at word %d needs %d words, %d remain",
				ErrTruncated, opcode, pos, wordCount, len(words)-pos)
		}
		p.Instructions = append(p.Instructions, Instruction{
			Opcode: opcode,
			Words:  words[pos+1 : pos+wordCount],
		})
		pos += wordCount
	}
	return p, nil
}

// ParseBytes decodes a module from little-endian bytes.
func ParseBytes(data []byte) (*ParsedModule, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of words", ErrTruncated, len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return Parse(words)
}
