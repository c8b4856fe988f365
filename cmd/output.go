package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/trait"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func parseOutputFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", outputText:
		return outputText, nil
	case outputJSON:
		return outputJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text or json)", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type recommendationOutput struct {
	*recommend.Result
	Advice *ai.Advice `json:"advice,omitempty"`
}

func render(w io.Writer, format string, result *recommend.Result, advice *ai.Advice) error {
	if format == outputJSON {
		return writeJSON(w, recommendationOutput{Result: result, Advice: advice})
	}

	writeProfile(w, result.Profile)

	if len(result.Recommendations) == 0 {
		fmt.Fprintln(w, "\n没有找到符合条件的职业。")
		return nil
	}

	fmt.Fprintf(w, "\n推荐职业 (%d/%d):\n", len(result.Recommendations), result.Candidates)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t职业\t匹配度\t薪资\t行业\t类型")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%s\t%s\t%s\n",
			i+1, rec.Title, rec.Percent, rec.SalaryDisplay, rec.Industry, rec.PrimaryType)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if advice != nil {
		writeAdvice(w, advice)
	}
	return nil
}

func writeProfile(w io.Writer, profile trait.Vector) {
	fmt.Fprintf(w, "霍兰德画像: %s\n", profile)
	if profile.IsZero() {
		return
	}

	ranked := profile.Ranked()
	code := ""
	for _, t := range ranked[:3] {
		if profile.Get(t) > 0 {
			code += string(t)
		}
	}
	fmt.Fprintf(w, "霍兰德代码: %s\n", code)

	if info, ok := trait.Describe(ranked[0]); ok {
		fmt.Fprintf(w, "主要类型: %s (%s) %s\n", info.Name, ranked[0], info.Description)
	}
}

func writeAdvice(w io.Writer, advice *ai.Advice) {
	fmt.Fprintln(w, "\nAI 解读:")
	if advice.Summary != "" {
		fmt.Fprintln(w, advice.Summary)
	}
	for _, h := range advice.Highlights {
		fmt.Fprintf(w, "  - %s: %s\n", h.Title, h.Reason)
	}
	if len(advice.NextSteps) > 0 {
		fmt.Fprintln(w, "建议:")
		for _, step := range advice.NextSteps {
			fmt.Fprintf(w, "  * %s\n", step)
		}
	}
}
