package spv

import (
	"fmt"
	"strings"

	"github.com/gogpu/spv/spirv"
)

// Type is the structural description of a shader value or variable. Two
// Type values describing the same shape are interchangeable: the builder
// interns them to a single type id by canonical key, never by pointer
// identity.
type Type interface {
	// key returns the canonical structural key used for interning and
	// diagnostics.
	key() string
}

// VoidType is the result type of the entry function.
type VoidType struct{}

// BoolType is a single boolean produced by comparisons.
type BoolType struct{}

// IntType is a 32-bit integer, signed or unsigned.
type IntType struct {
	Width  uint32
	Signed bool
}

// FloatType is an IEEE-754 floating point scalar.
type FloatType struct {
	Width uint32
}

// VectorType is a vector of 2 to 4 scalar components.
type VectorType struct {
	Elem Type
	Size uint32
}

// MatrixType is a column-major matrix of float columns.
type MatrixType struct {
	Cols uint32
	Rows uint32
	Elem Type
}

// ArrayType is a fixed-length array.
type ArrayType struct {
	Elem   Type
	Length uint32
}

// RuntimeArrayType is an unsized array, legal only as the last member of
// a storage block.
type RuntimeArrayType struct {
	Elem Type
}

// Member is one field of a StructType.
type Member struct {
	Name string
	Type Type
}

// StructType is an ordered member aggregate. Member names are debug
// information only; structural equality considers member types alone.
type StructType struct {
	Members []Member
}

// PointerType addresses a value in a storage class. Variables and
// access-chain results carry pointer types; loads and stores require
// them.
type PointerType struct {
	Storage spirv.StorageClass
	Elem    Type
}

// TextureDim selects the dimensionality of a sampled texture.
type TextureDim uint8

const (
	Texture1D TextureDim = iota
	Texture2D
	Texture3D
	TextureCube
)

// ImageType is a sampled texture of float texels.
type ImageType struct {
	Dim TextureDim
}

// SamplerType is an opaque sampler state object.
type SamplerType struct{}

// SampledImageType is a texture/sampler pair produced by CombineSample.
type SampledImageType struct {
	Image ImageType
}

// Canned types covering the shapes the builder supports directly.
var (
	Void    = VoidType{}
	Bool    = BoolType{}
	Float32 = FloatType{Width: 32}
	Int32   = IntType{Width: 32, Signed: true}
	UInt32  = IntType{Width: 32, Signed: false}

	Vec2 = VectorType{Elem: Float32, Size: 2}
	Vec3 = VectorType{Elem: Float32, Size: 3}
	Vec4 = VectorType{Elem: Float32, Size: 4}

	IVec2 = VectorType{Elem: Int32, Size: 2}
	IVec3 = VectorType{Elem: Int32, Size: 3}
	IVec4 = VectorType{Elem: Int32, Size: 4}

	UVec2 = VectorType{Elem: UInt32, Size: 2}
	UVec3 = VectorType{Elem: UInt32, Size: 3}
	UVec4 = VectorType{Elem: UInt32, Size: 4}

	Mat2 = MatrixType{Cols: 2, Rows: 2, Elem: Float32}
	Mat3 = MatrixType{Cols: 3, Rows: 3, Elem: Float32}
	Mat4 = MatrixType{Cols: 4, Rows: 4, Elem: Float32}
)

// VecOf returns a vector type with the given scalar element and size.
func VecOf(elem Type, size uint32) VectorType {
	return VectorType{Elem: elem, Size: size}
}

// ArrayOf returns a fixed-length array type.
func ArrayOf(elem Type, length uint32) ArrayType {
	return ArrayType{Elem: elem, Length: length}
}

// RuntimeArrayOf returns an unsized array type.
func RuntimeArrayOf(elem Type) RuntimeArrayType {
	return RuntimeArrayType{Elem: elem}
}

func (VoidType) key() string { return "void" }
func (BoolType) key() string { return "bool" }

func (t IntType) key() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Width)
	}
	return fmt.Sprintf("u%d", t.Width)
}

func (t FloatType) key() string {
	return fmt.Sprintf("f%d", t.Width)
}

func (t VectorType) key() string {
	return fmt.Sprintf("vec%d<%s>", t.Size, t.Elem.key())
}

func (t MatrixType) key() string {
	return fmt.Sprintf("mat%dx%d<%s>", t.Cols, t.Rows, t.Elem.key())
}

func (t ArrayType) key() string {
	return fmt.Sprintf("array<%s,%d>", t.Elem.key(), t.Length)
}

func (t RuntimeArrayType) key() string {
	return fmt.Sprintf("array<%s>", t.Elem.key())
}

func (t StructType) key() string {
	var sb strings.Builder
	sb.WriteString("struct{")
	for i, m := range t.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.Type.key())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (t PointerType) key() string {
	return fmt.Sprintf("ptr<%d,%s>", uint32(t.Storage), t.Elem.key())
}

func (t ImageType) key() string {
	return fmt.Sprintf("texture%d", t.Dim)
}

func (SamplerType) key() string { return "sampler" }

func (t SampledImageType) key() string {
	return fmt.Sprintf("sampled<%s>", t.Image.key())
}

// sameType reports structural equality.
func sameType(a, b Type) bool {
	return a.key() == b.key()
}

// scalarClass partitions scalar types for opcode selection.
type scalarClass uint8

const (
	classOther scalarClass = iota
	classBool
	classFloat
	classSInt
	classUInt
)

// classOf returns the scalar class of a scalar or vector type.
func classOf(t Type) scalarClass {
	switch tt := t.(type) {
	case BoolType:
		return classBool
	case FloatType:
		return classFloat
	case IntType:
		if tt.Signed {
			return classSInt
		}
		return classUInt
	case VectorType:
		return classOf(tt.Elem)
	default:
		return classOther
	}
}

// componentType returns the scalar element of a scalar or vector type.
func componentType(t Type) Type {
	if v, ok := t.(VectorType); ok {
		return v.Elem
	}
	return t
}

// componentCount returns 1 for scalars and the size for vectors.
func componentCount(t Type) uint32 {
	if v, ok := t.(VectorType); ok {
		return v.Size
	}
	return 1
}

// isScalar reports whether t is a bool, int, or float scalar.
func isScalar(t Type) bool {
	switch t.(type) {
	case BoolType, IntType, FloatType:
		return true
	}
	return false
}

// isNumeric reports whether t is a numeric scalar or vector.
func isNumeric(t Type) bool {
	switch classOf(t) {
	case classFloat, classSInt, classUInt:
		return true
	}
	return false
}

// checkSupported rejects type shapes outside the modeled subset.
func checkSupported(t Type) error {
	switch tt := t.(type) {
	case VoidType, BoolType, SamplerType, ImageType:
		return nil
	case SampledImageType:
		return nil
	case IntType:
		if tt.Width != 32 {
			return errf(ErrUnsupportedType, "%d-bit integers are not supported", tt.Width)
		}
	case FloatType:
		if tt.Width != 32 {
			return errf(ErrUnsupportedType, "%d-bit floats are not supported", tt.Width)
		}
	case VectorType:
		if tt.Size < 2 || tt.Size > 4 {
			return errf(ErrUnsupportedType, "vector size %d out of range", tt.Size)
		}
		if !isScalar(tt.Elem) {
			return errf(ErrUnsupportedType, "vector of %s", tt.Elem.key())
		}
		return checkSupported(tt.Elem)
	case MatrixType:
		if tt.Cols < 2 || tt.Cols > 4 || tt.Rows < 2 || tt.Rows > 4 {
			return errf(ErrUnsupportedType, "matrix shape %dx%d out of range", tt.Cols, tt.Rows)
		}
		if classOf(tt.Elem) != classFloat {
			return errf(ErrUnsupportedType, "matrix of %s", tt.Elem.key())
		}
		return checkSupported(tt.Elem)
	case ArrayType:
		if tt.Length == 0 {
			return errf(ErrUnsupportedType, "zero-length array")
		}
		return checkSupported(tt.Elem)
	case RuntimeArrayType:
		return checkSupported(tt.Elem)
	case StructType:
		for _, m := range tt.Members {
			if err := checkSupported(m.Type); err != nil {
				return err
			}
		}
	case PointerType:
		return checkSupported(tt.Elem)
	default:
		return errf(ErrUnsupportedType, "unknown type %T", t)
	}
	return nil
}
