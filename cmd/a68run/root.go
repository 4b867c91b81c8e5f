package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/a68core/a68"
	"github.com/a68core/a68/coerce"
)

// Global flags, mirroring cmd/hivectl's package-level flag variables.
var (
	verbose    bool
	jsonOut    bool
	verifyFlag bool

	heapSlots  int
	frameDepth int
	exprSlots  int
	gcEvery    int
)

var rootCmd = &cobra.Command{
	Use:   "a68run",
	Short: "Run and inspect Algol 68 semantic-core programs",
	Long: `a68run drives the a68 interpreter: it runs a named demonstration
program end to end, checks one statically without evaluating it, or
reports/forces garbage collection on a freshly started interpreter.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&verifyFlag, "verify", false, "run GC-completeness and scope-soundness checks after evaluation")

	rootCmd.PersistentFlags().IntVar(&heapSlots, "heap-slots", a68.DefaultConfig().HeapSlots, "heap capacity in slots")
	rootCmd.PersistentFlags().IntVar(&frameDepth, "frame-depth", a68.DefaultConfig().FrameDepth, "maximum frame-stack depth")
	rootCmd.PersistentFlags().IntVar(&exprSlots, "expr-slots", a68.DefaultConfig().ExprSlots, "expression-stack initial capacity")
	rootCmd.PersistentFlags().IntVar(&gcEvery, "gc-every", a68.DefaultConfig().GCEvery, "checkpoint-collect every N heap allocations (0 disables)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newInterpreter builds an *a68.Interpreter from the current flag values,
// logging at Info/Error per SPEC_FULL.md's ambient-stack logging
// convention (cmd/a68run is the one place in this module that owns a
// concrete slog.Handler rather than defaulting to a discarding one).
func newInterpreter() *a68.Interpreter {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)

	cfg := a68.Config{
		HeapSlots:  heapSlots,
		FrameDepth: frameDepth,
		ExprSlots:  exprSlots,
		GCEvery:    gcEvery,
		Deflex:     coerce.SafeDeflexing,
	}.WithLog(log)
	return a68.New(cfg)
}

func printInfo(format string, args ...any) { fmt.Fprintf(os.Stdout, format, args...) }
func printError(format string, args ...any) { fmt.Fprintf(os.Stderr, "Error: "+format, args...) }

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
