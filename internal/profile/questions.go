package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/spigell/job-matcher/internal/trait"
)

// OptionsPerQuestion is the number of options every quiz question offers.
const OptionsPerQuestion = 6

var ErrNoSuchOption = errors.New("no such option")

//go:embed questions.yaml
var questionsYAML []byte

// Option is one selectable answer with the weights it contributes.
type Option struct {
	Text    string          `yaml:"text" json:"text"`
	Weights trait.Increment `yaml:"weights" json:"weights"`
}

// Question is a quiz question with its ordered options.
type Question struct {
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Answer returns the increment of the chosen option.
func (q Question) Answer(option int) (trait.Increment, error) {
	if option < 0 || option >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchOption, option, len(q.Options))
	}
	return q.Options[option].Weights, nil
}

var (
	loadOnce  sync.Once
	questions []Question
	loadErr   error
)

// Questions returns the static question catalog. The slice is shared and must not be
// modified.
func Questions() ([]Question, error) {
	loadOnce.Do(func() {
		questions, loadErr = ParseQuestions(questionsYAML)
	})
	return questions, loadErr
}

// ParseQuestions decodes and validates a question catalog document.
func ParseQuestions(data []byte) ([]Question, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	for i, q := range doc.Questions {
		if len(q.Options) != OptionsPerQuestion {
			return nil, fmt.Errorf("question %d: expected %d options, got %d", i+1, OptionsPerQuestion, len(q.Options))
		}
		for j, opt := range q.Options {
			for t, w := range opt.Weights {
				if !t.Valid() {
					return nil, fmt.Errorf("question %d option %d: %w: %q", i+1, j+1, trait.ErrUnknownType, t)
				}
				if w < 0 {
					return nil, fmt.Errorf("question %d option %d: negative weight for %s", i+1, j+1, t)
				}
			}
		}
	}
	return doc.Questions, nil
}
