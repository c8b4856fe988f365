package catalog

import (
	"strings"

	"github.com/spigell/job-matcher/internal/trait"
)

// IndustrySeparator joins industry labels for display.
const IndustrySeparator = ", "

// Job is a single catalog record. It is built once at load time and never mutated.
type Job struct {
	Title         string         `json:"title"`
	SalaryDisplay string         `json:"salary_display"`
	AverageSalary float64        `json:"average_salary"`
	SalaryKnown   bool           `json:"salary_known"`
	Industries    []string       `json:"industries"`
	PrimaryType   trait.Type     `json:"primary_type"`
	Traits        trait.Vector   `json:"trait_vector"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// IndustryDisplay returns the industries joined for display.
func (j *Job) IndustryDisplay() string {
	return strings.Join(j.Industries, IndustrySeparator)
}

// HasAnyIndustry reports whether the job belongs to at least one of wanted.
func (j *Job) HasAnyIndustry(wanted map[string]struct{}) bool {
	for _, ind := range j.Industries {
		if _, ok := wanted[ind]; ok {
			return true
		}
	}
	return false
}
