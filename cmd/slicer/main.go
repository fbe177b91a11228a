// slicer - FDM G-code slicer
//
// Reads one or more STL models and emits Marlin-dialect G-code.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/slicer/pkg/config"
	"github.com/taigrr/slicer/pkg/diag"
	"github.com/taigrr/slicer/pkg/pipeline"
	"github.com/taigrr/slicer/pkg/progress"
	"github.com/taigrr/slicer/pkg/stl"
)

var (
	outfile       string
	noValidation  bool
	guiDisplay    bool
	verbose       bool
	noRaft        bool
	raft          bool
	brim          bool
	noSupport     bool
	doSupport     bool
	supportAll    bool
	filament      string
	setOptions    []string
	queryOptions  []string
	writeConfigs  bool
	helpConfigs   bool
	showConfigs   bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "slicer <model.stl>...",
		Short: "FDM G-code slicer",
		Long:  "slicer reads one or more STL models and emits Marlin-dialect G-code.",
		Args:  cobra.ArbitraryArgs,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "Output G-code path (default: <model>.gcode)")
	cmd.Flags().BoolVarP(&noValidation, "no-validation", "n", false, "Skip the manifold-check abort on non-manifold input")
	cmd.Flags().BoolVarP(&guiDisplay, "gui-display", "g", false, "Display a live progress UI while slicing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every non-fatal diagnostic")

	cmd.Flags().BoolVar(&noRaft, "no-raft", false, "Disable bed adhesion")
	cmd.Flags().BoolVar(&raft, "raft", false, "Print a raft")
	cmd.Flags().BoolVar(&brim, "brim", false, "Print a brim")

	cmd.Flags().BoolVar(&noSupport, "no-support", false, "Disable support generation")
	cmd.Flags().BoolVar(&doSupport, "support", false, "Generate support under external overhangs only")
	cmd.Flags().BoolVar(&supportAll, "support-all", false, "Generate support under every overhang")

	cmd.Flags().StringVar(&filament, "filament", "", "Comma-separated material names, one per nozzle")
	cmd.Flags().StringArrayVar(&setOptions, "set-option", nil, "Set a config option as KEY=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&queryOptions, "query-option", nil, "Print a config option's current value (repeatable)")
	cmd.Flags().BoolVar(&writeConfigs, "write-configs", false, "Write the effective configuration to $HOME/.config/slicer")
	cmd.Flags().BoolVar(&helpConfigs, "help-configs", false, "Print every config option's name, type, default, and description")
	cmd.Flags().BoolVar(&showConfigs, "show-configs", false, "Print every config option's current value")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if helpConfigs {
		printConfigHelp()
		return nil
	}

	d := diag.NewCollector()
	cfg, err := loadConfig(d)
	if err != nil {
		return err
	}

	for _, kv := range setOptions {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			return fmt.Errorf("--set-option must be KEY=VALUE, got %q", kv)
		}
		cfg.Set(kv[:eq], kv[eq+1:], d)
	}

	applyAdhesionFlags(cfg, d)
	applySupportFlags(cfg, d)
	if filament != "" {
		names := strings.Split(filament, ",")
		for i, n := range names {
			names[i] = strings.TrimSpace(n)
		}
		if err := cfg.ApplyFilament(names); err != nil {
			return err
		}
	}

	for _, key := range queryOptions {
		fmt.Printf("%s=%s\n", key, cfg.Get(key))
	}

	if showConfigs {
		printConfigValues(cfg)
	}
	if writeConfigs {
		if err := cfg.Save(configPath()); err != nil {
			return fmt.Errorf("write configs: %w", err)
		}
	}

	if len(args) == 0 {
		if helpConfigs || showConfigs || writeConfigs || len(queryOptions) > 0 {
			return nil
		}
		return cmd.Help()
	}

	for _, path := range args {
		if err := sliceOne(path, cfg, d); err != nil {
			return err
		}
	}

	if verbose {
		for _, item := range d.Items() {
			fmt.Fprintln(os.Stderr, item.String())
		}
	}
	return nil
}

func sliceOne(path string, cfg *config.Config, d *diag.Collector) error {
	store, err := stl.ReadFile(path, d)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out := outfile
	if out == "" {
		out = strings.TrimSuffix(path, ".stl") + ".gcode"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	var p progress.Progress = progress.NoOp{}
	if guiDisplay {
		p = progress.NewThermometer(os.Stdout, 40)
	}

	items, err := pipeline.Slice(store, cfg, f, p, pipeline.Options{
		FailOnNonManifold: !noValidation,
		Rand:              rand.New(rand.NewSource(1)),
	})
	d.Extend(items)
	if err != nil {
		return err
	}
	return nil
}

func applyAdhesionFlags(cfg *config.Config, d *diag.Collector) error {
	switch {
	case noRaft:
		cfg.Set("adhesion_type", "None", d)
	case raft:
		cfg.Set("adhesion_type", "Raft", d)
	case brim:
		cfg.Set("adhesion_type", "Brim", d)
	}
	return nil
}

func applySupportFlags(cfg *config.Config, d *diag.Collector) error {
	switch {
	case noSupport:
		cfg.Set("support_type", "None", d)
	case doSupport:
		cfg.Set("support_type", "External", d)
	case supportAll:
		cfg.Set("support_type", "Everywhere", d)
	}
	return nil
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/slicer"
	}
	return home + "/.config/slicer"
}

func loadConfig(d *diag.Collector) (*config.Config, error) {
	path := configPath()
	if _, err := os.Stat(path); err != nil {
		return config.New(), nil
	}
	return config.Load(path, d)
}

func printConfigHelp() {
	section := ""
	for _, s := range config.Registry {
		if s.Section != section {
			fmt.Printf("\n# %s\n", s.Section)
			section = s.Section
		}
		fmt.Printf("  %-28s %-8v default=%-10s %s\n", s.Name, kindName(s), s.Default, s.Description)
	}
}

func kindName(s config.Spec) string {
	switch s.Kind {
	case config.KindBool:
		return "bool"
	case config.KindInt:
		return "int"
	case config.KindFloat:
		return "float"
	default:
		return "enum"
	}
}

func printConfigValues(cfg *config.Config) {
	for _, s := range config.Registry {
		fmt.Printf("%s=%s\n", s.Name, cfg.Get(s.Name))
	}
}
