package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a68core/a68/verify"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <demo>",
		Short: "Run a named demonstration program to completion",
		Long: fmt.Sprintf(`run builds and evaluates a named demonstration program against a
fresh interpreter instance. Available programs: %v.`, demoNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args[0])
		},
	}
}

func runDemo(name string) error {
	d, err := lookupDemo(name)
	if err != nil {
		return err
	}

	it := newInterpreter()
	tree := d.tree(it)

	result, err := it.Run(tree)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if verifyFlag {
		if err := verify.AllInvariants(it.Frames, it.Expr, it.Heap); err != nil {
			return fmt.Errorf("%s: post-run verification failed: %w", name, err)
		}
	}

	stats := it.HeapStats()
	if jsonOut {
		return printJSON(map[string]any{
			"demo":      name,
			"result":    fmt.Sprint(result),
			"heapUsed":  stats.Used,
			"heapTotal": stats.Capacity,
		})
	}
	printInfo("\n%s: heap %d/%d slots used\n", name, stats.Used, stats.Capacity)
	return nil
}
