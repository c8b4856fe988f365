package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/job-matcher/internal/trait"
)

var typesCmd = &cobra.Command{
	Use:   "types [letter...]",
	Short: "Describe the six Holland (RIASEC) types",
	RunE: func(cmd *cobra.Command, args []string) error {
		types := trait.Types[:]
		if len(args) > 0 {
			types = make([]trait.Type, 0, len(args))
			for _, arg := range args {
				t, err := trait.ParseType(arg)
				if err != nil {
					return err
				}
				types = append(types, t)
			}
		}

		w := cmd.OutOrStdout()
		for _, t := range types {
			info, ok := trait.Describe(t)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s %s\n  %s\n  特点: %s\n  典型职业: %s\n\n",
				t, info.Name, info.Description,
				strings.Join(info.Traits, "、"), strings.Join(info.Examples, "、"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
