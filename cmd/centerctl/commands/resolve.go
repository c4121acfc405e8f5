package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/center-locator/app/services"
)

func newResolveCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <message...>",
		Short: "Resolve a chat message against the catalog",
		Args:  cobra.MinimumNArgs(1),
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

			message := strings.Join(args, " ")
			answer := services.Present(e.resolver.Resolve(cat, message), cat.Version)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(answer)
			}

			fmt.Fprintf(out, "outcome: %s\n", answer.Outcome)
			fmt.Fprintf(out, "response: %s\n", answer.Message)
			for i, c := range answer.Centers {
				fmt.Fprintf(out, "%2d. %-8s %-8s %-30s %-24s score=%.4f\n", i+1, c.Code, c.ID, c.Name, c.City, c.Score)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured answer as JSON")
	return cmd
}
