// spvdis disassembles SPIR-V binary modules into readable text.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gogpu/spv/spirv"
)

var rootCmd = &cobra.Command{
	Use:   "spvdis <file.spv>",
	Short: "SPIR-V disassembler",
	Long:  `spvdis decodes a SPIR-V binary module and prints one instruction per line.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDisassemble,
}

func main() {
	rootCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.Flags().Bool("no-header", false, "suppress the module header summary")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func configureColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (want auto|on|off)", mode)
	}
	return nil
}

func runDisassemble(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("color")
	if err := configureColor(mode); err != nil {
		return err
	}
	noHeader, _ := cmd.Flags().GetBool("no-header")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	mod, err := spirv.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if !noHeader {
		faint := color.New(color.Faint)
		faint.Printf("; SPIR-V %d.%d, generator 0x%08x, bound %d, schema %d\n",
			mod.Header.Version.Major, mod.Header.Version.Minor,
			mod.Header.Generator, mod.Header.Bound, mod.Header.Schema)
	}
	for _, inst := range mod.Instructions {
		fmt.Println(formatInstruction(inst))
	}
	return nil
}

var (
	idColor = color.New(color.FgCyan)
	opColor = color.New(color.FgYellow)
)

var storageClasses = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	9: "PushConstant", 11: "Image", 12: "StorageBuffer",
}

var decorations = map[uint32]string{
	2: "Block", 3: "BufferBlock", 4: "RowMajor", 5: "ColMajor",
	6: "ArrayStride", 7: "MatrixStride", 11: "BuiltIn",
	13: "NoPerspective", 14: "Flat", 24: "NonWritable", 25: "NonReadable",
	30: "Location", 33: "Binding", 34: "DescriptorSet", 35: "Offset",
}

var capabilities = map[uint32]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
	10: "Float64", 11: "Int64", 34: "ImageCubeArray",
	43: "Sampled1D", 44: "Image1D", 45: "SampledCubeArray",
}

var executionModels = map[uint32]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute",
}

var executionModes = map[uint32]string{
	7: "OriginUpperLeft", 8: "OriginLowerLeft", 12: "DepthReplacing",
	17: "LocalSize",
}

// stringStart returns the word index in inst.Words where an opcode's
// string literal begins, or -1.
func stringStart(op spirv.OpCode) int {
	switch op {
	case spirv.OpExtInstImport, spirv.OpName, spirv.OpString:
		return 1
	case spirv.OpMemberName, spirv.OpEntryPoint:
		return 2
	default:
		return -1
	}
}

// symbolic renders an operand as an enum name where the opcode gives it
// one.
func symbolic(op spirv.OpCode, pos int, word uint32) (string, bool) {
	lookup := func(m map[uint32]string) (string, bool) {
		name, ok := m[word]
		return name, ok
	}
	switch {
	case op == spirv.OpCapability && pos == 0:
		return lookup(capabilities)
	case op == spirv.OpEntryPoint && pos == 0:
		return lookup(executionModels)
	case op == spirv.OpExecutionMode && pos == 1:
		return lookup(executionModes)
	case op == spirv.OpDecorate && pos == 1:
		return lookup(decorations)
	case op == spirv.OpMemberDecorate && pos == 2:
		return lookup(decorations)
	case (op == spirv.OpTypePointer && pos == 1) || (op == spirv.OpVariable && pos == 2):
		return lookup(storageClasses)
	default:
		return "", false
	}
}

// formatInstruction renders one instruction as
// "%result = OpName operands".
func formatInstruction(inst spirv.Instruction) string {
	var sb strings.Builder

	start := 0
	prefix := ""
	if id, ok := inst.ResultID(); ok {
		prefix = idColor.Sprintf("%%%d", id) + " = "
		start = 1
		if inst.Opcode.HasResultType() {
			start = 2
		}
	}
	fmt.Fprintf(&sb, "%14s%s", prefix, opColor.Sprint(inst.Opcode.String()))

	if inst.Opcode.HasResultType() && len(inst.Words) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(idColor.Sprintf("%%%d", inst.Words[0]))
	}

	strPos := stringStart(inst.Opcode)
	for i := start; i < len(inst.Words); i++ {
		sb.WriteByte(' ')
		if i == strPos {
			s, used := inst.DecodeString(i)
			fmt.Fprintf(&sb, "%q", s)
			i += used - 1
			continue
		}
		if name, ok := symbolic(inst.Opcode, i, inst.Words[i]); ok {
			sb.WriteString(name)
			continue
		}
		fmt.Fprintf(&sb, "%d", inst.Words[i])
	}
	return sb.String()
}
