package spv

// layoutRule selects the memory layout applied to a block struct.
// Uniform blocks use the extended alignment the graphics API mandates
// for them; storage buffers and push constants use the tighter base
// alignment.
type layoutRule uint8

const (
	layoutExtended layoutRule = iota // uniform blocks (std140)
	layoutBase                       // storage buffers, push constants (std430)
)

func roundUp(v, align uint32) uint32 {
	return (v + align - 1) / align * align
}

// alignOf returns the alignment of t under the given rule.
func alignOf(t Type, rule layoutRule) (uint32, error) {
	switch tt := t.(type) {
	case BoolType, IntType, FloatType:
		return 4, nil
	case VectorType:
		// vec2 aligns to two scalars, vec3 and vec4 to four.
		if tt.Size == 2 {
			return 8, nil
		}
		return 16, nil
	case MatrixType:
		return matrixStride(tt, rule), nil
	case ArrayType:
		return arrayStride(tt.Elem, rule)
	case RuntimeArrayType:
		return arrayStride(tt.Elem, rule)
	case StructType:
		align := uint32(4)
		for _, m := range tt.Members {
			a, err := alignOf(m.Type, rule)
			if err != nil {
				return 0, err
			}
			align = max(align, a)
		}
		if rule == layoutExtended {
			align = roundUp(align, 16)
		}
		return align, nil
	default:
		return 0, errf(ErrUnsupportedType, "%s has no memory layout", t.key())
	}
}

// sizeOf returns the size in bytes of t under the given rule. Runtime
// arrays have no size; only their stride is meaningful.
func sizeOf(t Type, rule layoutRule) (uint32, error) {
	switch tt := t.(type) {
	case BoolType, IntType, FloatType:
		return 4, nil
	case VectorType:
		return tt.Size * 4, nil
	case MatrixType:
		return tt.Cols * matrixStride(tt, rule), nil
	case ArrayType:
		stride, err := arrayStride(tt.Elem, rule)
		if err != nil {
			return 0, err
		}
		return tt.Length * stride, nil
	case StructType:
		_, size, err := structLayout(tt, rule)
		return size, err
	default:
		return 0, errf(ErrUnsupportedType, "%s has no memory layout", t.key())
	}
}

// matrixStride returns the byte distance between matrix columns. A
// column is a vector of Rows components; uniform layout rounds the
// column alignment up to 16.
func matrixStride(m MatrixType, rule layoutRule) uint32 {
	stride := uint32(16)
	if m.Rows == 2 {
		stride = 8
	}
	if rule == layoutExtended {
		stride = roundUp(stride, 16)
	}
	return stride
}

// arrayStride returns the byte distance between array elements.
func arrayStride(elem Type, rule layoutRule) (uint32, error) {
	size, err := sizeOf(elem, rule)
	if err != nil {
		return 0, err
	}
	align, err := alignOf(elem, rule)
	if err != nil {
		return 0, err
	}
	stride := roundUp(size, align)
	if rule == layoutExtended {
		stride = roundUp(stride, 16)
	}
	return stride, nil
}

// structLayout returns the byte offset of each member and the padded
// struct size.
func structLayout(t StructType, rule layoutRule) ([]uint32, uint32, error) {
	offsets := make([]uint32, len(t.Members))
	var cursor uint32
	for i, m := range t.Members {
		align, err := alignOf(m.Type, rule)
		if err != nil {
			return nil, 0, err
		}
		cursor = roundUp(cursor, align)
		offsets[i] = cursor

		if _, ok := m.Type.(RuntimeArrayType); ok {
			if i != len(t.Members)-1 {
				return nil, 0, errf(ErrUnsupportedType, "runtime array must be the last member")
			}
			continue
		}
		size, err := sizeOf(m.Type, rule)
		if err != nil {
			return nil, 0, err
		}
		cursor += size
	}
	align, err := alignOf(t, rule)
	if err != nil {
		return nil, 0, err
	}
	return offsets, roundUp(cursor, align), nil
}
