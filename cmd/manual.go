package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/trait"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Get job recommendations for explicitly chosen types",
	Example: `  job-matcher manual --primary I --secondary C
  job-matcher manual --primary A --primary-strength 1 --industry 互联网/电子商务`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sel, err := selectionFromFlags(cmd)
		if err != nil {
			return err
		}

		vector, err := profile.Manual(sel)
		if err != nil {
			return err
		}

		return recommendFor(cmd, newSession(cmd), vector)
	},
}

func init() {
	rootCmd.AddCommand(manualCmd)
	addRequestFlags(manualCmd)
	addSelectionFlags(manualCmd)
	manualCmd.MarkFlagRequired("primary")
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("primary", "", "primary type letter (R, I, A, S, E or C)")
	cmd.Flags().String("secondary", "", "optional secondary type letter")
	cmd.Flags().Float64("primary-strength", 0.8, "strength of the primary type, (0,1]")
	cmd.Flags().Float64("secondary-strength", 0.4, "strength of the secondary type, [0,primary]")
}

func selectionFromFlags(cmd *cobra.Command) (profile.Selection, error) {
	var sel profile.Selection

	primary, _ := cmd.Flags().GetString("primary")
	t, err := trait.ParseType(primary)
	if err != nil {
		return sel, fmt.Errorf("--primary: %w", err)
	}
	sel.Primary = t

	if secondary, _ := cmd.Flags().GetString("secondary"); secondary != "" {
		t, err := trait.ParseType(secondary)
		if err != nil {
			return sel, fmt.Errorf("--secondary: %w", err)
		}
		sel.Secondary = t
	}

	sel.PrimaryStrength, _ = cmd.Flags().GetFloat64("primary-strength")
	sel.SecondaryStrength, _ = cmd.Flags().GetFloat64("secondary-strength")
	return sel, nil
}
