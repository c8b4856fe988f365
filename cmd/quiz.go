package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/trait"
)

const promptBack = "◀ 上一题"

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer the interest questionnaire and get job recommendations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runQuiz(cmd)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	addRequestFlags(quizCmd)
}

// quizSession owns the answers given so far and supports going back one question.
type quizSession struct {
	questions []profile.Question
	answers   []trait.Increment
}

func newQuizSession(questions []profile.Question) *quizSession {
	return &quizSession{
		questions: questions,
		answers:   make([]trait.Increment, 0, len(questions)),
	}
}

func (q *quizSession) done() bool { return len(q.answers) >= len(q.questions) }

// current returns the index of the question awaiting an answer.
func (q *quizSession) current() int { return len(q.answers) }

func (q *quizSession) answer(option int) error {
	if q.done() {
		return errors.New("quiz is already complete")
	}
	inc, err := q.questions[q.current()].Answer(option)
	if err != nil {
		return err
	}
	q.answers = append(q.answers, inc)
	return nil
}

// back discards the last answer. It reports false on the first question.
func (q *quizSession) back() bool {
	if len(q.answers) == 0 {
		return false
	}
	q.answers = q.answers[:len(q.answers)-1]
	return true
}

func (q *quizSession) profile() trait.Vector {
	return profile.FromQuiz(q.answers)
}

// items returns the prompt entries for the current question; the back entry, when
// present, follows the options.
func (q *quizSession) items() []string {
	question := q.questions[q.current()]
	items := make([]string, 0, len(question.Options)+1)
	for _, opt := range question.Options {
		items = append(items, opt.Text)
	}
	if q.current() > 0 {
		items = append(items, promptBack)
	}
	return items
}

func runQuiz(cmd *cobra.Command) error {
	s := newSession(cmd)

	questions, err := profile.Questions()
	if err != nil {
		s.logger.Fatal("loading questions", zap.Error(err))
	}

	quiz := newQuizSession(questions)
	for !quiz.done() {
		i := quiz.current()
		items := quiz.items()

		selectPrompt := promptui.Select{
			Label: fmt.Sprintf("(%d/%d) %s", i+1, len(questions), questions[i].Text),
			Items: items,
			Size:  len(items),
		}

		idx, _, err := selectPrompt.Run()
		if err != nil {
			return fmt.Errorf("quiz aborted: %w", err)
		}

		if idx == len(questions[i].Options) {
			quiz.back()
			continue
		}
		if err := quiz.answer(idx); err != nil {
			return err
		}
	}

	s.logger.Debug("quiz complete", zap.Int("answers", len(quiz.answers)))

	return recommendFor(cmd, s, quiz.profile())
}
