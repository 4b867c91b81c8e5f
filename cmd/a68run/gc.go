package main

import (
	"github.com/spf13/cobra"

	"github.com/a68core/a68"
	"github.com/a68core/a68/verify"
)

var gcDemoFlag string

func init() {
	gcCmd := &cobra.Command{
		Use:   "gc",
		Short: "Inspect or force the interpreter's heap collector",
	}
	gcCmd.PersistentFlags().StringVar(&gcDemoFlag, "demo", "", "run a named demonstration program first, to give the heap some occupancy")
	gcCmd.AddCommand(newGCStatsCmd(), newGCSweepCmd())
	rootCmd.AddCommand(gcCmd)
}

// primeHeap optionally runs gcDemoFlag to completion before the gc
// subcommand reports on or sweeps its heap, so `a68run gc stats --demo sum`
// shows occupancy from a real program rather than an empty interpreter.
func primeHeap(it *a68.Interpreter) error {
	if gcDemoFlag == "" {
		return nil
	}
	d, err := lookupDemo(gcDemoFlag)
	if err != nil {
		return err
	}
	_, err = it.Run(d.tree(it))
	return err
}

func newGCStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report heap occupancy without collecting",
		RunE: func(cmd *cobra.Command, args []string) error {
			it := newInterpreter()
			if err := primeHeap(it); err != nil {
				return err
			}
			stats := it.HeapStats()
			if jsonOut {
				return printJSON(stats)
			}
			printInfo("heap: %d/%d slots used\n", stats.Used, stats.Capacity)
			return nil
		},
	}
}

func newGCSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Force one mark-compact collection (spec.md §4.4 sweep heap)",
		RunE: func(cmd *cobra.Command, args []string) error {
			it := newInterpreter()
			if err := primeHeap(it); err != nil {
				return err
			}
			stats := it.SweepHeap()
			if verifyFlag {
				if err := verify.GCComplete(it.Frames, it.Expr, it.Heap); err != nil {
					return err
				}
			}
			if jsonOut {
				return printJSON(stats)
			}
			printInfo("collected: coloured=%d freed=%d live=%d\n", stats.Coloured, stats.Freed, stats.Live)
			return nil
		},
	}
}
