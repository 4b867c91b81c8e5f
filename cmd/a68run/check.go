package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <demo>",
		Short: "Build a named demonstration program without evaluating it",
		Long: `check builds a program tree and reports accumulated static
diagnostics (spec.md §7: "evaluation is attempted only if static error
count is zero") without calling Run, the static-only path
distinguishing this from the run subcommand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkDemo(args[0])
		},
	}
}

func checkDemo(name string) error {
	d, err := lookupDemo(name)
	if err != nil {
		return err
	}

	it := newInterpreter()
	_ = d.tree(it)

	if it.Diagnostics.Errors() {
		errs := it.Diagnostics.All()
		if jsonOut {
			return printJSON(map[string]any{"demo": name, "ok": false, "errors": errs})
		}
		for _, e := range errs {
			printError("%v\n", e)
		}
		return fmt.Errorf("%s: %d static error(s)", name, len(errs))
	}

	if jsonOut {
		return printJSON(map[string]any{"demo": name, "ok": true})
	}
	printInfo("%s: no static errors\n", name)
	return nil
}
