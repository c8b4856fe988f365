package filtering

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/spigell/job-matcher/internal/catalog"
)

// MinSalaryName identifies the minimum salary filter.
const MinSalaryName = "min_salary"

type salaryFilter struct {
	disabled bool
	reason   string
	min      float64
}

// NewMinSalary creates a filter that keeps jobs whose average salary is at least minimum.
// Jobs with an unknown salary pass only when minimum is not positive.
func NewMinSalary(minimum float64) Filter {
	return &salaryFilter{min: minimum}
}

func (f *salaryFilter) Name() string { return MinSalaryName }

func (f *salaryFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *salaryFilter) IsEnabled() bool { return !f.disabled }

func (f *salaryFilter) Validate() error {
	if math.IsNaN(f.min) || math.IsInf(f.min, 0) {
		return fmt.Errorf("minimum salary must be a finite number, got %v", f.min)
	}
	return nil
}

func (f *salaryFilter) Apply(_ context.Context, jobs []catalog.Job) ([]catalog.Job, Step, error) {
	initial := len(jobs)
	if f.min <= 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := keep(jobs, func(j *catalog.Job) bool {
		return j.SalaryKnown && j.AverageSalary >= f.min
	})

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *salaryFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_salary": strconv.FormatFloat(f.min, 'f', -1, 64)},
	}
}
