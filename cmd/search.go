package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-matcher/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find catalog jobs whose title contains a term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)

		format, err := parseOutputFormat(viper.GetString("output"))
		if err != nil {
			return err
		}

		jobs := s.loadCatalog().Search(strings.Join(args, " "))

		w := cmd.OutOrStdout()
		if format == outputJSON {
			if jobs == nil {
				jobs = []catalog.Job{}
			}
			return writeJSON(w, jobs)
		}

		if len(jobs) == 0 {
			fmt.Fprintln(w, "没有找到相关职业。")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "职业\t薪资\t行业\t类型\t画像")
		for _, job := range jobs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				job.Title, job.SalaryDisplay, job.IndustryDisplay(), job.PrimaryType, job.Traits)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	searchCmd.PreRunE = bindOutputFlag
}

func bindOutputFlag(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlag("output", cmd.Flags().Lookup("output"))
}
