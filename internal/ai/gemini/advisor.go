package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/trait"
	"github.com/spigell/job-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Advisor asks Gemini to explain a finished shortlist.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	language  string
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultLanguage     = "Simplified Chinese"
)

var _ ai.Advisor = (*Advisor)(nil)

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithAdvisor(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
		language:  defaultLanguage,
	}
}

type dominantType struct {
	Type  trait.Type `json:"type"`
	Name  string     `json:"name"`
	Score float64    `json:"score"`
}

type advicePayload struct {
	Profile         trait.Vector               `json:"profile"`
	DominantTypes   []dominantType             `json:"dominant_types"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func (a *Advisor) Advise(ctx context.Context, profile trait.Vector, recs []recommend.Recommendation) (*ai.Advice, error) {
	if len(recs) == 0 {
		return nil, errors.New("no recommendations to explain")
	}

	payload := advicePayload{
		Profile:         profile,
		DominantTypes:   dominantTypes(profile, 2),
		Recommendations: recs,
	}
	message, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal advice payload: %w", err)
	}

	system := buildSystemPrompt(a.language)

	a.logger.Debug("gemini generate content request",
		zap.Int("recommendations", len(recs)),
		zap.Int("prompt_length", utf8.RuneCount(message)),
		zap.String("prompt_preview", utils.TruncateForLog(string(message), a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, system, string(message))
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	advice, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	advice.Highlights = knownHighlights(advice.Highlights, recs)
	advice.Raw = raw
	return advice, nil
}

func dominantTypes(profile trait.Vector, n int) []dominantType {
	var out []dominantType
	for _, t := range profile.Ranked() {
		if len(out) == n || profile.Get(t) == 0 {
			break
		}
		info, _ := trait.Describe(t)
		out = append(out, dominantType{Type: t, Name: info.Name, Score: profile.Get(t)})
	}
	return out
}

func buildSystemPrompt(language string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Explain the RIASEC profile and job shortlist in {{LANGUAGE}}. Respond with JSON."
	}
	return strings.ReplaceAll(template, "{{LANGUAGE}}", language)
}

// knownHighlights drops highlights for jobs that are not on the shortlist.
func knownHighlights(highlights []ai.Highlight, recs []recommend.Recommendation) []ai.Highlight {
	titles := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		titles[r.Title] = struct{}{}
	}

	out := highlights[:0]
	for _, h := range highlights {
		if _, ok := titles[h.Title]; ok && h.Reason != "" {
			out = append(out, h)
		}
	}
	return out
}

func parseResponse(raw string) (*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	advice := &ai.Advice{Summary: coerceString(data["summary"])}

	if items, ok := data["highlights"].([]any); ok {
		for _, item := range items {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			advice.Highlights = append(advice.Highlights, ai.Highlight{
				Title:  coerceString(fields["title"]),
				Reason: coerceString(fields["reason"]),
			})
		}
	}

	advice.NextSteps = coerceStrings(data["next_steps"])

	if advice.Summary == "" && len(advice.Highlights) == 0 {
		return nil, errors.New("gemini response has neither summary nor highlights")
	}
	return advice, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
