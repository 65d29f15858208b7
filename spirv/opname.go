package spirv

import "fmt"

// opInfo describes the operand layout of an opcode as far as the
// serializer and disassembler need it: whether the first operand words
// are a result-type id and a result id.
type opInfo struct {
	name       string
	resultType bool
	result     bool
}

var opInfos = map[OpCode]opInfo{
	OpNop:           {name: "OpNop"},
	OpUndef:         {name: "OpUndef", resultType: true, result: true},
	OpSource:        {name: "OpSource"},
	OpName:          {name: "OpName"},
	OpMemberName:    {name: "OpMemberName"},
	OpString:        {name: "OpString", result: true},
	OpExtension:     {name: "OpExtension"},
	OpExtInstImport: {name: "OpExtInstImport", result: true},
	OpExtInst:       {name: "OpExtInst", resultType: true, result: true},
	OpMemoryModel:   {name: "OpMemoryModel"},
	OpEntryPoint:    {name: "OpEntryPoint"},
	OpExecutionMode: {name: "OpExecutionMode"},
	OpCapability:    {name: "OpCapability"},

	OpTypeVoid:         {name: "OpTypeVoid", result: true},
	OpTypeBool:         {name: "OpTypeBool", result: true},
	OpTypeInt:          {name: "OpTypeInt", result: true},
	OpTypeFloat:        {name: "OpTypeFloat", result: true},
	OpTypeVector:       {name: "OpTypeVector", result: true},
	OpTypeMatrix:       {name: "OpTypeMatrix", result: true},
	OpTypeImage:        {name: "OpTypeImage", result: true},
	OpTypeSampler:      {name: "OpTypeSampler", result: true},
	OpTypeSampledImage: {name: "OpTypeSampledImage", result: true},
	OpTypeArray:        {name: "OpTypeArray", result: true},
	OpTypeRuntimeArray: {name: "OpTypeRuntimeArray", result: true},
	OpTypeStruct:       {name: "OpTypeStruct", result: true},
	OpTypePointer:      {name: "OpTypePointer", result: true},
	OpTypeFunction:     {name: "OpTypeFunction", result: true},

	OpConstantTrue:      {name: "OpConstantTrue", resultType: true, result: true},
	OpConstantFalse:     {name: "OpConstantFalse", resultType: true, result: true},
	OpConstant:          {name: "OpConstant", resultType: true, result: true},
	OpConstantComposite: {name: "OpConstantComposite", resultType: true, result: true},
	OpConstantNull:      {name: "OpConstantNull", resultType: true, result: true},

	OpFunction:          {name: "OpFunction", resultType: true, result: true},
	OpFunctionParameter: {name: "OpFunctionParameter", resultType: true, result: true},
	OpFunctionEnd:       {name: "OpFunctionEnd"},
	OpFunctionCall:      {name: "OpFunctionCall", resultType: true, result: true},
	OpVariable:          {name: "OpVariable", resultType: true, result: true},
	OpLoad:              {name: "OpLoad", resultType: true, result: true},
	OpStore:             {name: "OpStore"},
	OpAccessChain:       {name: "OpAccessChain", resultType: true, result: true},
	OpDecorate:          {name: "OpDecorate"},
	OpMemberDecorate:    {name: "OpMemberDecorate"},

	OpVectorShuffle:      {name: "OpVectorShuffle", resultType: true, result: true},
	OpCompositeConstruct: {name: "OpCompositeConstruct", resultType: true, result: true},
	OpCompositeExtract:   {name: "OpCompositeExtract", resultType: true, result: true},
	OpTranspose:          {name: "OpTranspose", resultType: true, result: true},

	OpSampledImage:           {name: "OpSampledImage", resultType: true, result: true},
	OpImageSampleImplicitLod: {name: "OpImageSampleImplicitLod", resultType: true, result: true},
	OpImageSampleExplicitLod: {name: "OpImageSampleExplicitLod", resultType: true, result: true},
	OpImageFetch:             {name: "OpImageFetch", resultType: true, result: true},
	OpImageRead:              {name: "OpImageRead", resultType: true, result: true},
	OpImageWrite:             {name: "OpImageWrite"},
	OpImageQuerySize:         {name: "OpImageQuerySize", resultType: true, result: true},

	OpConvertFToU: {name: "OpConvertFToU", resultType: true, result: true},
	OpConvertFToS: {name: "OpConvertFToS", resultType: true, result: true},
	OpConvertSToF: {name: "OpConvertSToF", resultType: true, result: true},
	OpConvertUToF: {name: "OpConvertUToF", resultType: true, result: true},
	OpBitcast:     {name: "OpBitcast", resultType: true, result: true},

	OpSNegate: {name: "OpSNegate", resultType: true, result: true},
	OpFNegate: {name: "OpFNegate", resultType: true, result: true},
	OpIAdd:    {name: "OpIAdd", resultType: true, result: true},
	OpFAdd:    {name: "OpFAdd", resultType: true, result: true},
	OpISub:    {name: "OpISub", resultType: true, result: true},
	OpFSub:    {name: "OpFSub", resultType: true, result: true},
	OpIMul:    {name: "OpIMul", resultType: true, result: true},
	OpFMul:    {name: "OpFMul", resultType: true, result: true},
	OpUDiv:    {name: "OpUDiv", resultType: true, result: true},
	OpSDiv:    {name: "OpSDiv", resultType: true, result: true},
	OpFDiv:    {name: "OpFDiv", resultType: true, result: true},
	OpUMod:    {name: "OpUMod", resultType: true, result: true},
	OpSRem:    {name: "OpSRem", resultType: true, result: true},
	OpSMod:    {name: "OpSMod", resultType: true, result: true},
	OpFRem:    {name: "OpFRem", resultType: true, result: true},
	OpFMod:    {name: "OpFMod", resultType: true, result: true},

	OpVectorTimesScalar: {name: "OpVectorTimesScalar", resultType: true, result: true},
	OpMatrixTimesScalar: {name: "OpMatrixTimesScalar", resultType: true, result: true},
	OpVectorTimesMatrix: {name: "OpVectorTimesMatrix", resultType: true, result: true},
	OpMatrixTimesVector: {name: "OpMatrixTimesVector", resultType: true, result: true},
	OpMatrixTimesMatrix: {name: "OpMatrixTimesMatrix", resultType: true, result: true},
	OpOuterProduct:      {name: "OpOuterProduct", resultType: true, result: true},
	OpDot:               {name: "OpDot", resultType: true, result: true},

	OpAny:                  {name: "OpAny", resultType: true, result: true},
	OpAll:                  {name: "OpAll", resultType: true, result: true},
	OpLogicalEqual:         {name: "OpLogicalEqual", resultType: true, result: true},
	OpLogicalNotEqual:      {name: "OpLogicalNotEqual", resultType: true, result: true},
	OpLogicalOr:            {name: "OpLogicalOr", resultType: true, result: true},
	OpLogicalAnd:           {name: "OpLogicalAnd", resultType: true, result: true},
	OpLogicalNot:           {name: "OpLogicalNot", resultType: true, result: true},
	OpSelect:               {name: "OpSelect", resultType: true, result: true},
	OpIEqual:               {name: "OpIEqual", resultType: true, result: true},
	OpINotEqual:            {name: "OpINotEqual", resultType: true, result: true},
	OpUGreaterThan:         {name: "OpUGreaterThan", resultType: true, result: true},
	OpSGreaterThan:         {name: "OpSGreaterThan", resultType: true, result: true},
	OpUGreaterThanEqual:    {name: "OpUGreaterThanEqual", resultType: true, result: true},
	OpSGreaterThanEqual:    {name: "OpSGreaterThanEqual", resultType: true, result: true},
	OpULessThan:            {name: "OpULessThan", resultType: true, result: true},
	OpSLessThan:            {name: "OpSLessThan", resultType: true, result: true},
	OpULessThanEqual:       {name: "OpULessThanEqual", resultType: true, result: true},
	OpSLessThanEqual:       {name: "OpSLessThanEqual", resultType: true, result: true},
	OpFOrdEqual:            {name: "OpFOrdEqual", resultType: true, result: true},
	OpFOrdNotEqual:         {name: "OpFOrdNotEqual", resultType: true, result: true},
	OpFOrdLessThan:         {name: "OpFOrdLessThan", resultType: true, result: true},
	OpFOrdGreaterThan:      {name: "OpFOrdGreaterThan", resultType: true, result: true},
	OpFOrdLessThanEqual:    {name: "OpFOrdLessThanEqual", resultType: true, result: true},
	OpFOrdGreaterThanEqual: {name: "OpFOrdGreaterThanEqual", resultType: true, result: true},
	OpShiftRightLogical:    {name: "OpShiftRightLogical", resultType: true, result: true},
	OpShiftRightArithmetic: {name: "OpShiftRightArithmetic", resultType: true, result: true},
	OpShiftLeftLogical:     {name: "OpShiftLeftLogical", resultType: true, result: true},
	OpBitwiseOr:            {name: "OpBitwiseOr", resultType: true, result: true},
	OpBitwiseXor:           {name: "OpBitwiseXor", resultType: true, result: true},
	OpBitwiseAnd:           {name: "OpBitwiseAnd", resultType: true, result: true},
	OpNot:                  {name: "OpNot", resultType: true, result: true},

	OpPhi:               {name: "OpPhi", resultType: true, result: true},
	OpLoopMerge:         {name: "OpLoopMerge"},
	OpSelectionMerge:    {name: "OpSelectionMerge"},
	OpLabel:             {name: "OpLabel", result: true},
	OpBranch:            {name: "OpBranch"},
	OpBranchConditional: {name: "OpBranchConditional"},
	OpKill:              {name: "OpKill"},
	OpReturn:            {name: "OpReturn"},
	OpReturnValue:       {name: "OpReturnValue"},
	OpUnreachable:       {name: "OpUnreachable"},
}

// String returns the opcode mnemonic, or a numeric form for opcodes
// outside the supported subset.
func (op OpCode) String() string {
	if info, ok := opInfos[op]; ok {
		return info.name
	}
	return fmt.Sprintf("Op#%d", uint16(op))
}

// HasResult reports whether the opcode produces a result id.
func (op OpCode) HasResult() bool {
	return opInfos[op].result
}

// HasResultType reports whether the opcode's first operand word is a
// result-type id.
func (op OpCode) HasResultType() bool {
	return opInfos[op].resultType
}
