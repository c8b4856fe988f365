package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-matcher/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show catalog statistics, industries and normalization diagnostics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := newSession(cmd)

		format, err := parseOutputFormat(viper.GetString("output"))
		if err != nil {
			return err
		}

		cat := s.loadCatalog()
		summary := catalogSummary{
			Stats:      cat.Stats(),
			Report:     cat.Report(),
			Industries: cat.Industries(),
			Issues:     len(cat.Issues()),
			Checksum:   fmt.Sprintf("%016x", cat.Checksum()),
		}

		w := cmd.OutOrStdout()
		if format == outputJSON {
			return writeJSON(w, summary)
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "职业总数\t%d\n", summary.Stats.Total)
		fmt.Fprintf(tw, "平均薪资\t%.1f 千/月\n", summary.Stats.AverageSalary)
		fmt.Fprintf(tw, "原始记录\t%d\n", summary.Report.Input)
		fmt.Fprintf(tw, "合并重复\t%d\n", summary.Report.Removed)
		fmt.Fprintf(tw, "未知薪资\t%d\n", summary.Report.UnknownSalary)
		fmt.Fprintf(tw, "数据问题\t%d\n", summary.Issues)
		fmt.Fprintf(tw, "行业数量\t%d\n", len(summary.Industries))
		if err := tw.Flush(); err != nil {
			return err
		}

		for _, ind := range summary.Industries {
			fmt.Fprintf(w, "  - %s\n", ind)
		}
		return nil
	},
}

type catalogSummary struct {
	Stats      catalog.Stats  `json:"stats"`
	Report     catalog.Report `json:"report"`
	Industries []string       `json:"industries"`
	Issues     int            `json:"issues"`
	Checksum   string         `json:"checksum"`
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	catalogCmd.PreRunE = bindOutputFlag
}
