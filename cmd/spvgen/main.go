// spvgen builds a set of sample shader modules with the spv builder
// and writes the resulting .spv binaries to disk.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Manifest selects which samples to generate and where to put them.
type Manifest struct {
	// Out is the output directory for the generated binaries.
	Out string `toml:"out"`

	// Samples lists sample names to build; empty means all of them.
	Samples []string `toml:"samples"`
}

var rootCmd = &cobra.Command{
	Use:   "spvgen [manifest.toml]",
	Short: "Generate sample SPIR-V modules",
	Long:  `spvgen builds a set of sample shader modules and writes one .spv file per stage.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func main() {
	rootCmd.Flags().StringP("out", "o", "", "output directory (overrides the manifest)")
	rootCmd.Flags().Bool("list", false, "list available samples and exit")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadManifest(path string) (Manifest, error) {
	m := Manifest{Out: "out"}
	if path == "" {
		return m, nil
	}
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	if m.Out == "" {
		m.Out = "out"
	}
	return m, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, name := range sampleNames() {
			fmt.Println(name)
		}
		return nil
	}

	manifestPath := ""
	if len(args) == 1 {
		manifestPath = args[0]
	}
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		manifest.Out = out
	}

	selected := manifest.Samples
	if len(selected) == 0 {
		selected = sampleNames()
	}
	for _, name := range selected {
		if _, ok := samples[name]; !ok {
			return fmt.Errorf("unknown sample %q", name)
		}
	}

	if err := os.MkdirAll(manifest.Out, 0o755); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	var mu sync.Mutex
	var g errgroup.Group
	for _, name := range selected {
		name := name
		g.Go(func() error {
			artifacts, err := samples[name]()
			if err != nil {
				mu.Lock()
				red.Fprintf(os.Stderr, "FAIL %s: %v\n", name, err)
				mu.Unlock()
				return fmt.Errorf("sample %s: %w", name, err)
			}
			for file, bin := range artifacts {
				path := filepath.Join(manifest.Out, file)
				if err := os.WriteFile(path, bin, 0o644); err != nil {
					return err
				}
				mu.Lock()
				green.Printf("  ok %s (%d bytes)\n", path, len(bin))
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
