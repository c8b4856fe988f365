package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/trait"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func shortlist() []recommend.Recommendation {
	return []recommend.Recommendation{
		{Title: "数据分析师", SalaryDisplay: "15.0-25.0千/月", Industry: "互联网/电子商务", Percent: 94.9, PrimaryType: trait.Investigative},
		{Title: "机械工程师", SalaryDisplay: "10.0-18.0千/月", Industry: "机械/设备/重工", Percent: 50, PrimaryType: trait.Realistic},
	}
}

func TestAdvisorAdvise(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{
		"summary": "你偏好研究与分析。",
		"highlights": [
			{"title": "数据分析师", "reason": "需要大量分析"},
			{"title": "不存在的职位", "reason": "invented"},
			{"title": "机械工程师", "reason": ""}
		],
		"next_steps": ["学习 SQL", "", 3]
	}` + "\n```"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	profile := trait.FromMap(map[trait.Type]float64{trait.Investigative: 1, trait.Realistic: 0.5})
	advice, err := advisor.Advise(context.Background(), profile, shortlist())
	require.NoError(t, err)

	assert.Equal(t, "你偏好研究与分析。", advice.Summary)
	require.Len(t, advice.Highlights, 1)
	assert.Equal(t, "数据分析师", advice.Highlights[0].Title)
	assert.Equal(t, []string{"学习 SQL", "3"}, advice.NextSteps)
	assert.NotEmpty(t, advice.Raw)

	assert.Contains(t, stub.lastSystem, "Simplified Chinese")
	assert.NotContains(t, stub.lastSystem, "{{LANGUAGE}}")

	var sent advicePayload
	require.NoError(t, json.Unmarshal([]byte(stub.lastMessage), &sent))
	assert.Equal(t, profile, sent.Profile)
	require.Len(t, sent.DominantTypes, 2)
	assert.Equal(t, trait.Investigative, sent.DominantTypes[0].Type)
	assert.Equal(t, "研究型", sent.DominantTypes[0].Name)
	assert.Equal(t, trait.Realistic, sent.DominantTypes[1].Type)
	assert.Len(t, sent.Recommendations, 2)
}

func TestAdvisorErrors(t *testing.T) {
	t.Run("empty shortlist", func(t *testing.T) {
		_, err := NewAdvisor(&stubGenerator{}, nil, 0).Advise(context.Background(), trait.Vector{}, nil)
		require.Error(t, err)
	})

	t.Run("generator failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewAdvisor(&stubGenerator{err: boom}, nil, 0).Advise(context.Background(), trait.Vector{}, shortlist())
		require.ErrorIs(t, err, boom)
	})

	t.Run("malformed response", func(t *testing.T) {
		_, err := NewAdvisor(&stubGenerator{response: "not json"}, nil, 0).Advise(context.Background(), trait.Vector{}, shortlist())
		require.ErrorContains(t, err, "parse gemini response")
	})

	t.Run("empty advice", func(t *testing.T) {
		_, err := NewAdvisor(&stubGenerator{response: `{"summary": "  "}`}, nil, 0).Advise(context.Background(), trait.Vector{}, shortlist())
		require.Error(t, err)
	})
}

func TestDominantTypesSkipsZeroScores(t *testing.T) {
	t.Parallel()

	got := dominantTypes(trait.FromMap(map[trait.Type]float64{trait.Social: 1}), 2)
	require.Len(t, got, 1)
	assert.Equal(t, trait.Social, got[0].Type)

	assert.Empty(t, dominantTypes(trait.Vector{}, 2))
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, extractJSON(in))
	}
}
