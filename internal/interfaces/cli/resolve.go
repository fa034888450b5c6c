package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command, mapping a single
// ingredient name to its chemical identity.
func NewResolveCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve an ingredient name to a chemical identity",
		Args:  cobra.ExactArgs(1),
		Example: `  toxiscan resolve "methyl paraben"
  toxiscan resolve glycerine -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := newEngine(opts)
			if err != nil {
				return err
			}

			resolution, err := res.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if resolution == nil {
				return fmt.Errorf("no chemical identity found for %q", args[0])
			}

			return printResult(cmd, opts, resolution, func() string {
				var sb strings.Builder
				fmt.Fprintf(&sb, "CAS number:  %s\n", resolution.Identity.CASNumber)
				fmt.Fprintf(&sb, "Source:      %s\n", resolution.Source)
				fmt.Fprintf(&sb, "Confidence:  %.2f\n", resolution.Confidence)
				if resolution.MatchedName != "" {
					fmt.Fprintf(&sb, "Matched as:  %s\n", resolution.MatchedName)
				}
				return sb.String()
			})
		},
	}

	return cmd
}
