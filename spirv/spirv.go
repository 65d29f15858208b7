// Package spirv implements the SPIR-V binary module format.
//
// SPIR-V is the word-based intermediate language consumed by Vulkan to
// create executable shader stages. This package models single
// instructions, the section-ordered module aggregate, and the
// serialization of both into the little-endian word stream the driver
// expects. It knows nothing about types or values; the builder package
// at the module root is responsible for producing well-formed
// instruction sequences.
package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Word returns the version encoded as a module header word.
func (v Version) Word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

// SPIR-V module header constants.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator

	// HeaderWords is the fixed size of the module header:
	// magic, version, generator, bound, schema.
	HeaderWords = 5
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical                    AddressingModel = 0
	AddressingModelPhysical32                 AddressingModel = 1
	AddressingModelPhysical64                 AddressingModel = 2
	AddressingModelPhysicalStorageBuffer64EXT AddressingModel = 5348
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityMatrix           Capability = 0
	CapabilityShader           Capability = 1
	CapabilityGeometry         Capability = 2
	CapabilityTessellation     Capability = 3
	CapabilityFloat64          Capability = 10
	CapabilityInt64            Capability = 11
	CapabilityImageCubeArray   Capability = 34
	CapabilitySampled1D        Capability = 43
	CapabilityImage1D          Capability = 44
	CapabilitySampledCubeArray Capability = 45
)

// ExecutionModel represents a SPIR-V execution model (shader stage).
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeOriginLowerLeft ExecutionMode = 8
	ExecutionModeDepthReplacing  ExecutionMode = 12
	ExecutionModeLocalSize       ExecutionMode = 17
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

const (
	DecorationBlock         Decoration = 2
	DecorationBufferBlock   Decoration = 3
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationNoPerspective Decoration = 13
	DecorationFlat          Decoration = 14
	DecorationNonWritable   Decoration = 24
	DecorationNonReadable   Decoration = 25
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// BuiltIn represents a SPIR-V built-in variable.
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInVertexId             BuiltIn = 5
	BuiltInInstanceId           BuiltIn = 6
	BuiltInPrimitiveId          BuiltIn = 7
	BuiltInInvocationId         BuiltIn = 8
	BuiltInLayer                BuiltIn = 9
	BuiltInTessCoord            BuiltIn = 13
	BuiltInFragCoord            BuiltIn = 15
	BuiltInPointCoord           BuiltIn = 16
	BuiltInFragDepth            BuiltIn = 22
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupId          BuiltIn = 26
	BuiltInLocalInvocationId    BuiltIn = 27
	BuiltInGlobalInvocationId   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// FunctionControl represents SPIR-V function control flags.
type FunctionControl uint32

const (
	FunctionControlNone   FunctionControl = 0
	FunctionControlInline FunctionControl = 1
	FunctionControlPure   FunctionControl = 4
	FunctionControlConst  FunctionControl = 8
)

// SelectionControl represents SPIR-V selection control flags.
type SelectionControl uint32

const (
	SelectionControlNone        SelectionControl = 0
	SelectionControlFlatten     SelectionControl = 1
	SelectionControlDontFlatten SelectionControl = 2
)

// LoopControl represents SPIR-V loop control flags.
type LoopControl uint32

const (
	LoopControlNone       LoopControl = 0
	LoopControlUnroll     LoopControl = 1
	LoopControlDontUnroll LoopControl = 2
)

// Dim represents a SPIR-V image dimensionality.
type Dim uint32

const (
	Dim1D   Dim = 0
	Dim2D   Dim = 1
	Dim3D   Dim = 2
	DimCube Dim = 3
)

// ImageFormat represents a SPIR-V image format.
type ImageFormat uint32

// ImageFormatUnknown is used for sampled images whose format is
// resolved by the descriptor, which is all this builder produces.
const ImageFormatUnknown ImageFormat = 0

// ImageOperands bits used by sampling instructions.
const (
	ImageOperandsBias uint32 = 0x01
	ImageOperandsLod  uint32 = 0x02
	ImageOperandsGrad uint32 = 0x04
)
