package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/job-matcher/internal/catalog"
)

// IndustriesName identifies the industry filter.
const IndustriesName = "industries"

type industryFilter struct {
	disabled bool
	reason   string
	wanted   []string
	set      map[string]struct{}
}

// NewIndustries creates a filter that keeps jobs sharing at least one industry with
// wanted. An empty list disables filtering.
func NewIndustries(wanted []string) Filter {
	set := make(map[string]struct{}, len(wanted))
	for _, ind := range wanted {
		set[ind] = struct{}{}
	}

	return &industryFilter{
		wanted: append([]string(nil), wanted...),
		set:    set,
	}
}

func (f *industryFilter) Name() string { return IndustriesName }

func (f *industryFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *industryFilter) IsEnabled() bool { return !f.disabled }

func (f *industryFilter) Validate() error {
	for _, ind := range f.wanted {
		if strings.TrimSpace(ind) == "" {
			return fmt.Errorf("industry labels must not be blank")
		}
	}
	return nil
}

func (f *industryFilter) Apply(_ context.Context, jobs []catalog.Job) ([]catalog.Job, Step, error) {
	initial := len(jobs)
	if len(f.set) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := keep(jobs, func(j *catalog.Job) bool {
		return j.HasAnyIndustry(f.set)
	})

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *industryFilter) Status() Status {
	details := map[string]string{}
	if len(f.wanted) > 0 {
		details["industries"] = strings.Join(f.wanted, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
