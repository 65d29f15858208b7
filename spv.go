// Package spv builds SPIR-V shader modules at runtime.
//
// spv is a small compiler back end: instead of compiling shader source
// text ahead of time, a host program constructs one shader stage
// programmatically through a Builder session and obtains the binary
// module the graphics API loads directly.
//
// A session owns all mutable state for one stage: the identifier
// allocator, the type and constant interners, the declared resources,
// and the entry function under construction. Operations return typed
// Values and validate their operands when called; an error aborts the
// session and no partial binary is ever produced. Sessions are not safe
// for concurrent use; build one module per goroutine.
//
// Basic usage:
//
//	b := spv.NewBuilder(spv.StageVertex)
//	pos, _ := b.Input(0, spv.Vec3, "position")
//	out, _ := b.BuiltinOutput(spv.BuiltinPosition, "")
//	s := b.Body()
//	p, _ := s.Load(pos)
//	one, _ := b.ConstFloat(1)
//	p4, _ := s.Construct(spv.Vec4, p, one)
//	_ = s.Store(out, p4)
//	bin, err := b.Build("main")
package spv

import "github.com/gogpu/spv/spirv"

// Stage identifies the pipeline stage a session builds.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// executionModel maps the stage to its binary execution model.
func (s Stage) executionModel() spirv.ExecutionModel {
	switch s {
	case StageFragment:
		return spirv.ExecutionModelFragment
	case StageCompute:
		return spirv.ExecutionModelGLCompute
	default:
		return spirv.ExecutionModelVertex
	}
}

// Options configures a Builder session.
type Options struct {
	// Version is the SPIR-V version written to the module header.
	// From 1.4 the entry point interface lists every module-scope
	// variable rather than only inputs and outputs, as the format
	// requires.
	Version spirv.Version

	// DebugNames emits OpName debug instructions for named variables.
	DebugNames bool
}

// DefaultOptions returns the default session configuration.
func DefaultOptions() Options {
	return Options{
		Version:    spirv.Version1_3,
		DebugNames: true,
	}
}

// Builtin identifies a stage built-in variable.
type Builtin uint8

const (
	BuiltinPosition Builtin = iota
	BuiltinPointSize
	BuiltinFragCoord
	BuiltinFragDepth
	BuiltinVertexIndex
	BuiltinInstanceIndex
	BuiltinGlobalInvocationID
)

// builtinInfo describes how a built-in is declared: its binary
// decoration value, its fixed type, the stage it belongs to, and
// whether it is an input or an output of that stage.
type builtinInfo struct {
	name    string
	spirv   spirv.BuiltIn
	typ     Type
	stage   Stage
	isInput bool
}

var builtins = map[Builtin]builtinInfo{
	BuiltinPosition:           {"position", spirv.BuiltInPosition, Vec4, StageVertex, false},
	BuiltinPointSize:          {"point_size", spirv.BuiltInPointSize, Float32, StageVertex, false},
	BuiltinFragCoord:          {"frag_coord", spirv.BuiltInFragCoord, Vec4, StageFragment, true},
	BuiltinFragDepth:          {"frag_depth", spirv.BuiltInFragDepth, Float32, StageFragment, false},
	BuiltinVertexIndex:        {"vertex_index", spirv.BuiltInVertexIndex, Int32, StageVertex, true},
	BuiltinInstanceIndex:      {"instance_index", spirv.BuiltInInstanceIndex, Int32, StageVertex, true},
	BuiltinGlobalInvocationID: {"global_invocation_id", spirv.BuiltInGlobalInvocationId, UVec3, StageCompute, true},
}

// String returns the built-in name.
func (b Builtin) String() string {
	if info, ok := builtins[b]; ok {
		return info.name
	}
	return "unknown"
}
