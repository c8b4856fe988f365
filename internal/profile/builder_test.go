package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-matcher/internal/trait"
)

func TestQuestionsCatalog(t *testing.T) {
	t.Parallel()

	qs, err := Questions()
	require.NoError(t, err)
	require.Len(t, qs, 20)

	for _, q := range qs {
		assert.NotEmpty(t, q.Text)
		require.Len(t, q.Options, OptionsPerQuestion)
		for _, opt := range q.Options {
			total := 0
			for _, w := range opt.Weights {
				total += w
			}
			assert.Equal(t, 3, total, q.Text+" / "+opt.Text)
		}
	}

	inc, err := qs[0].Answer(1)
	require.NoError(t, err)
	assert.Equal(t, trait.Increment{trait.Investigative: 2, trait.Conventional: 1}, inc)

	_, err = qs[0].Answer(6)
	assert.ErrorIs(t, err, ErrNoSuchOption)
}

func TestParseQuestionsValidates(t *testing.T) {
	t.Parallel()

	_, err := ParseQuestions([]byte("questions:\n  - text: q\n    options:\n      - text: a\n        weights: {R: 2}\n"))
	assert.ErrorContains(t, err, "expected 6 options")

	doc := "questions:\n  - text: q\n    options:\n"
	for i := 0; i < OptionsPerQuestion; i++ {
		doc += "      - text: a\n        weights: {Z: 2}\n"
	}
	_, err = ParseQuestions([]byte(doc))
	assert.ErrorIs(t, err, trait.ErrUnknownType)
}

func TestFromQuiz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers []trait.Increment
		want    trait.Vector
	}{
		{name: "no answers", answers: nil, want: trait.Vector{}},
		{name: "all zero", answers: []trait.Increment{{trait.Social: 0}}, want: trait.Vector{}},
		{
			name: "accumulates and normalizes",
			answers: []trait.Increment{
				{trait.Investigative: 2, trait.Conventional: 1},
				{trait.Investigative: 2, trait.Realistic: 1},
				{trait.Artistic: 2, trait.Investigative: 1},
			},
			want: trait.FromMap(map[trait.Type]float64{
				trait.Investigative: 1, trait.Conventional: 0.2, trait.Realistic: 0.2, trait.Artistic: 0.4,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromQuiz(tt.answers)
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestFromQuizFullRunIsNormalized(t *testing.T) {
	t.Parallel()

	qs, err := Questions()
	require.NoError(t, err)

	answers := make([]trait.Increment, 0, len(qs))
	for i, q := range qs {
		inc, err := q.Answer(i % OptionsPerQuestion)
		require.NoError(t, err)
		answers = append(answers, inc)
	}

	v := FromQuiz(answers)
	assert.Equal(t, 1.0, v.Max())
	for _, w := range v {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
	}
}

func TestManual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sel  Selection
		want map[trait.Type]float64
	}{
		{
			name: "primary only",
			sel:  Selection{Primary: trait.Social, PrimaryStrength: 0.8},
			want: map[trait.Type]float64{trait.Social: 1},
		},
		{
			name: "primary and secondary",
			sel:  Selection{Primary: trait.Investigative, Secondary: trait.Artistic, PrimaryStrength: 0.8, SecondaryStrength: 0.4},
			want: map[trait.Type]float64{trait.Investigative: 1, trait.Artistic: 0.5},
		},
		{
			name: "secondary equal to primary is ignored",
			sel:  Selection{Primary: trait.Enterprising, Secondary: trait.Enterprising, PrimaryStrength: 0.9, SecondaryStrength: 0.2},
			want: map[trait.Type]float64{trait.Enterprising: 1},
		},
		{
			name: "secondary clamped to primary",
			sel:  Selection{Primary: trait.Realistic, Secondary: trait.Conventional, PrimaryStrength: 0.5, SecondaryStrength: 0.9},
			want: map[trait.Type]float64{trait.Realistic: 1, trait.Conventional: 1},
		},
		{
			name: "non-positive primary treated as full strength",
			sel:  Selection{Primary: trait.Artistic, Secondary: trait.Social, PrimaryStrength: 0, SecondaryStrength: 0.25},
			want: map[trait.Type]float64{trait.Artistic: 1, trait.Social: 0.25},
		},
		{
			name: "negative secondary becomes zero",
			sel:  Selection{Primary: trait.Conventional, Secondary: trait.Investigative, PrimaryStrength: 2, SecondaryStrength: -1},
			want: map[trait.Type]float64{trait.Conventional: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Manual(tt.sel)
			require.NoError(t, err)
			want := trait.FromMap(tt.want)
			for i := range got {
				assert.InDelta(t, want[i], got[i], 1e-12)
			}
		})
	}
}

func TestManualRejectsUnknownTypes(t *testing.T) {
	t.Parallel()

	_, err := Manual(Selection{Primary: "Q", PrimaryStrength: 1})
	assert.ErrorIs(t, err, trait.ErrUnknownType)

	_, err = Manual(Selection{Primary: trait.Social, Secondary: "Z", PrimaryStrength: 1})
	assert.ErrorIs(t, err, trait.ErrUnknownType)
}
