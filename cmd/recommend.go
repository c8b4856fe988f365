package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/ai/gemini"
	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/secrets"
	"github.com/spigell/job-matcher/internal/trait"
)

// requestFlags maps the recommendation flags to their config keys.
var requestFlags = map[string]string{
	"top-n":      "recommend.top-n",
	"min-salary": "recommend.min-salary",
	"industry":   "recommend.industries",
	"explain":    "explain",
	"output":     "output",
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().Int("top-n", recommend.DefaultTopN, "number of jobs to recommend")
	cmd.Flags().Float64("min-salary", 0, "minimum average salary in thousands per month")
	cmd.Flags().StringSlice("industry", nil, "keep only jobs in these industries (repeatable)")
	cmd.Flags().Bool("explain", false, "ask the AI advisor to explain the shortlist")
	cmd.Flags().StringP("output", "o", outputText, "output format: text or json")

	// Several commands share these keys, so bind only the flags of the command being run.
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		for flag, key := range requestFlags {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
		return nil
	}
}

// recommendFor runs one recommendation request for profile and prints the result.
func recommendFor(cmd *cobra.Command, s *session, profile trait.Vector) error {
	format, err := parseOutputFormat(s.config.Output)
	if err != nil {
		return err
	}

	cat := s.loadCatalog()

	req := recommend.Request{
		Profile:    profile,
		TopN:       s.config.Recommend.TopN,
		MinSalary:  s.config.Recommend.MinSalary,
		Industries: s.config.Recommend.Industries,
	}

	result, err := recommend.New(s.logger).Recommend(s.ctx, cat, req)
	if err != nil {
		return err
	}

	var advice *ai.Advice
	if s.config.Explain || s.config.AI.Enabled {
		advice = explain(s, result)
	}

	return render(cmd.OutOrStdout(), format, result, advice)
}

// explain never fails the command: advisor problems are logged and the shortlist is
// printed without advice.
func explain(s *session, result *recommend.Result) *ai.Advice {
	if len(result.Recommendations) == 0 {
		return nil
	}

	advisor, err := newAdvisor(s)
	if err != nil {
		s.logger.Warn("skipping AI advice", zap.Error(err))
		return nil
	}

	advice, err := advisor.Advise(s.ctx, result.Profile, result.Recommendations)
	if err != nil {
		s.logger.Warn("AI advice failed", zap.String("request_id", result.RequestID), zap.Error(err))
		return nil
	}
	return advice
}

func newAdvisor(s *session) (ai.Advisor, error) {
	cfg := s.config.AI.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(s.ctx, apiKey, strings.TrimSpace(cfg.Model), cfg.MaxRetries, s.logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, s.logger, cfg.MaxLogLength), nil
}
