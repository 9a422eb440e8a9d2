// =============================================================================
// Catalogue Generator - Lookup Command
// =============================================================================
//
// This file defines the 'lookup' command, which translates model object IDs
// between engine generations using the catalogue table directly.
//
// COMMAND USAGE:
//   catgen lookup --from TR1 --to TR4 <id>...
//   catgen lookup --from TR1 --to TR4 --drop-missing <id>...
//
// OUTPUT:
//   One line per id: "<id> -> <converted>", where -1 means no counterpart.
//   With --drop-missing, one converted id per line; ids without a
//   counterpart are left out.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalogue-generator/internal/catalogue"
	"github.com/ginjaninja78/catalogue-generator/internal/generator"
)

// lookupOptions holds the lookup command's flag values.
type lookupOptions struct {
	from        string
	to          string
	dropMissing bool
}

// newLookupCmd builds the 'lookup' command.
func newLookupCmd(a *app) *cobra.Command {
	opts := &lookupOptions{}

	lookupCmd := &cobra.Command{
		Use:   "lookup --from <engine> --to <engine> <id>...",
		Short: "Translate model IDs between engine generations",
		Long: `The lookup command finds the first catalogue row whose --from column equals
each id and prints that row's --to column. Engines are named TR1..TR5 (or
1..5). An id with no counterpart prints -1; negative ids never match.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, a, opts, args)
		},
	}

	lookupCmd.Flags().StringVar(&opts.from, "from", "TR1", "Engine generation of the given ids")
	lookupCmd.Flags().StringVar(&opts.to, "to", "", "Engine generation to translate to")
	lookupCmd.Flags().BoolVar(&opts.dropMissing, "drop-missing", false, "Print only converted ids, leaving out those without a counterpart")
	_ = lookupCmd.MarkFlagRequired("to")

	return lookupCmd
}

// runLookup parses the engines and ids, then prints each conversion.
func runLookup(cmd *cobra.Command, a *app, opts *lookupOptions, args []string) error {
	from, err := catalogue.ParseEngine(opts.from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := catalogue.ParseEngine(opts.to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid id %q: must be an integer", arg)
		}
		ids = append(ids, id)
	}

	cat, err := generator.LoadCatalogue(a.cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dropMissing {
		for _, converted := range catalogue.ConvertIDs(cat, from, to, ids) {
			fmt.Fprintln(out, converted)
		}
		return nil
	}

	for _, id := range ids {
		fmt.Fprintf(out, "%d -> %d\n", id, catalogue.ConvertID(cat, from, to, id))
	}
	return nil
}
