package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a catalog and report usable and skipped rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			cat, err := e.loadCatalog(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:    %s\n", e.source.Describe())
			fmt.Fprintf(out, "version:   %s\n", cat.Version)
			fmt.Fprintf(out, "centers:   %d\n", cat.Len())
			fmt.Fprintf(out, "cities:    %d\n", len(cat.Cities))
			fmt.Fprintf(out, "provinces: %d\n", len(cat.Provinces))
			fmt.Fprintf(out, "skipped:   %d\n", len(cat.Skipped))
			for _, s := range cat.Skipped {
				fmt.Fprintf(out, "  row %d (id=%q code=%q): %s\n", s.Index, s.ID, s.Code, s.Reason)
			}

			if cat.Empty() {
				return fmt.Errorf("catalog has no usable centers")
			}
			if strict && len(cat.Skipped) > 0 {
				return fmt.Errorf("%d rows skipped", len(cat.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any row is skipped")
	return cmd
}
