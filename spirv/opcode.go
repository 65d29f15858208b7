package spirv

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Instruction subset used by the builder. Numbers are from the SPIR-V
// unified specification.
const (
	OpNop           OpCode = 0
	OpUndef         OpCode = 1
	OpSource        OpCode = 3
	OpName          OpCode = 5
	OpMemberName    OpCode = 6
	OpString        OpCode = 7
	OpExtension     OpCode = 10
	OpExtInstImport OpCode = 11
	OpExtInst       OpCode = 12
	OpMemoryModel   OpCode = 14
	OpEntryPoint    OpCode = 15
	OpExecutionMode OpCode = 16
	OpCapability    OpCode = 17

	OpTypeVoid         OpCode = 19
	OpTypeBool         OpCode = 20
	OpTypeInt          OpCode = 21
	OpTypeFloat        OpCode = 22
	OpTypeVector       OpCode = 23
	OpTypeMatrix       OpCode = 24
	OpTypeImage        OpCode = 25
	OpTypeSampler      OpCode = 26
	OpTypeSampledImage OpCode = 27
	OpTypeArray        OpCode = 28
	OpTypeRuntimeArray OpCode = 29
	OpTypeStruct       OpCode = 30
	OpTypePointer      OpCode = 32
	OpTypeFunction     OpCode = 33

	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpConstantNull      OpCode = 46

	OpFunction          OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd       OpCode = 56
	OpFunctionCall      OpCode = 57
	OpVariable          OpCode = 59
	OpLoad              OpCode = 61
	OpStore             OpCode = 62
	OpAccessChain       OpCode = 65
	OpDecorate          OpCode = 71
	OpMemberDecorate    OpCode = 72

	OpVectorShuffle      OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract   OpCode = 81
	OpTranspose          OpCode = 84

	OpSampledImage           OpCode = 86
	OpImageSampleImplicitLod OpCode = 87
	OpImageSampleExplicitLod OpCode = 88
	OpImageFetch             OpCode = 95
	OpImageRead              OpCode = 98
	OpImageWrite             OpCode = 99
	OpImageQuerySize         OpCode = 104

	OpConvertFToU OpCode = 109
	OpConvertFToS OpCode = 110
	OpConvertSToF OpCode = 111
	OpConvertUToF OpCode = 112
	OpBitcast     OpCode = 124

	OpSNegate OpCode = 126
	OpFNegate OpCode = 127
	OpIAdd    OpCode = 128
	OpFAdd    OpCode = 129
	OpISub    OpCode = 130
	OpFSub    OpCode = 131
	OpIMul    OpCode = 132
	OpFMul    OpCode = 133
	OpUDiv    OpCode = 134
	OpSDiv    OpCode = 135
	OpFDiv    OpCode = 136
	OpUMod    OpCode = 137
	OpSRem    OpCode = 138
	OpSMod    OpCode = 139
	OpFRem    OpCode = 140
	OpFMod    OpCode = 141

	OpVectorTimesScalar OpCode = 142
	OpMatrixTimesScalar OpCode = 143
	OpVectorTimesMatrix OpCode = 144
	OpMatrixTimesVector OpCode = 145
	OpMatrixTimesMatrix OpCode = 146
	OpOuterProduct      OpCode = 147
	OpDot               OpCode = 148

	OpAny                  OpCode = 154
	OpAll                  OpCode = 155
	OpLogicalEqual         OpCode = 164
	OpLogicalNotEqual      OpCode = 165
	OpLogicalOr            OpCode = 166
	OpLogicalAnd           OpCode = 167
	OpLogicalNot           OpCode = 168
	OpSelect               OpCode = 169
	OpIEqual               OpCode = 170
	OpINotEqual            OpCode = 171
	OpUGreaterThan         OpCode = 172
	OpSGreaterThan         OpCode = 173
	OpUGreaterThanEqual    OpCode = 174
	OpSGreaterThanEqual    OpCode = 175
	OpULessThan            OpCode = 176
	OpSLessThan            OpCode = 177
	OpULessThanEqual       OpCode = 178
	OpSLessThanEqual       OpCode = 179
	OpFOrdEqual            OpCode = 180
	OpFOrdNotEqual         OpCode = 182
	OpFOrdLessThan         OpCode = 184
	OpFOrdGreaterThan      OpCode = 186
	OpFOrdLessThanEqual    OpCode = 188
	OpFOrdGreaterThanEqual OpCode = 190
	OpShiftRightLogical    OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical     OpCode = 196
	OpBitwiseOr            OpCode = 197
	OpBitwiseXor           OpCode = 198
	OpBitwiseAnd           OpCode = 199
	OpNot                  OpCode = 200

	OpPhi               OpCode = 245
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpUnreachable       OpCode = 255
)

// GLSL.std.450 extended instruction numbers used by the builder.
const (
	GLSLstd450Round       uint32 = 1
	GLSLstd450Trunc       uint32 = 3
	GLSLstd450FAbs        uint32 = 4
	GLSLstd450FSign       uint32 = 6
	GLSLstd450Floor       uint32 = 8
	GLSLstd450Ceil        uint32 = 9
	GLSLstd450Fract       uint32 = 10
	GLSLstd450Sin         uint32 = 13
	GLSLstd450Cos         uint32 = 14
	GLSLstd450Tan         uint32 = 15
	GLSLstd450Pow         uint32 = 26
	GLSLstd450Exp         uint32 = 27
	GLSLstd450Log         uint32 = 28
	GLSLstd450Exp2        uint32 = 29
	GLSLstd450Log2        uint32 = 30
	GLSLstd450Sqrt        uint32 = 31
	GLSLstd450InverseSqrt uint32 = 32
	GLSLstd450FMin        uint32 = 37
	GLSLstd450UMin        uint32 = 38
	GLSLstd450SMin        uint32 = 39
	GLSLstd450FMax        uint32 = 40
	GLSLstd450UMax        uint32 = 41
	GLSLstd450SMax        uint32 = 42
	GLSLstd450FClamp      uint32 = 43
	GLSLstd450UClamp      uint32 = 44
	GLSLstd450SClamp      uint32 = 45
	GLSLstd450FMix        uint32 = 46
	GLSLstd450Step        uint32 = 48
	GLSLstd450SmoothStep  uint32 = 49
	GLSLstd450Length      uint32 = 66
	GLSLstd450Distance    uint32 = 67
	GLSLstd450Cross       uint32 = 68
	GLSLstd450Normalize   uint32 = 69
	GLSLstd450Reflect     uint32 = 71
	GLSLstd450Refract     uint32 = 72
)

// GLSLstd450 is the import name of the standard extended instruction set.
const GLSLstd450 = "GLSL.std.450"
