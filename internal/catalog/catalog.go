package catalog

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Catalog is the deduplicated, read-only set of jobs shared by recommendation requests.
type Catalog struct {
	jobs     []Job
	report   Report
	issues   []RecordIssue
	checksum uint64
}

// Stats summarizes a catalog for display.
type Stats struct {
	Total         int     `json:"total"`
	AverageSalary float64 `json:"average_salary"`
	TopIndustry   string  `json:"top_industry,omitempty"`
}

// Build decodes raw rows and normalizes them into a catalog. Data-quality issues are
// logged and kept on the catalog; they never fail the build.
func Build(rows []map[string]any, normalizer *Normalizer, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil, logger)
	}

	jobs, issues := Decode(rows)
	for _, issue := range issues {
		logger.Warn("record data quality issue",
			zap.Int("index", issue.Index),
			zap.String("field", issue.Field),
			zap.Error(issue.Err),
		)
	}

	deduped, report := normalizer.Normalize(jobs)

	return &Catalog{jobs: deduped, report: report, issues: issues}
}

// New wraps already normalized jobs.
func New(jobs []Job) *Catalog {
	return &Catalog{
		jobs:   append([]Job(nil), jobs...),
		report: Report{Input: len(jobs), Distinct: len(jobs)},
	}
}

// Jobs returns the catalog records. Callers must not modify them.
func (c *Catalog) Jobs() []Job {
	if c == nil {
		return nil
	}
	return c.jobs
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.jobs)
}

// Report returns the normalization diagnostics.
func (c *Catalog) Report() Report { return c.report }

// Issues returns the data-quality issues found while decoding.
func (c *Catalog) Issues() []RecordIssue { return c.issues }

// Checksum identifies the source the catalog was built from; zero when unknown.
func (c *Catalog) Checksum() uint64 { return c.checksum }

// Industries returns the sorted distinct industry labels.
func (c *Catalog) Industries() []string {
	set := make(map[string]struct{})
	for _, job := range c.Jobs() {
		for _, ind := range job.Industries {
			set[ind] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for ind := range set {
		out = append(out, ind)
	}
	sort.Strings(out)
	return out
}

// Search returns jobs whose title contains term, ignoring case, in catalog order.
func (c *Catalog) Search(term string) []Job {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []Job
	for _, job := range c.Jobs() {
		if strings.Contains(strings.ToLower(job.Title), term) {
			out = append(out, job)
		}
	}
	return out
}

// Stats computes the catalog summary. The average only covers known salaries.
func (c *Catalog) Stats() Stats {
	stats := Stats{Total: c.Len()}

	sum, known := 0.0, 0
	for _, job := range c.Jobs() {
		if job.SalaryKnown {
			sum += job.AverageSalary
			known++
		}
	}
	if known > 0 {
		stats.AverageSalary = sum / float64(known)
	}

	if industries := c.Industries(); len(industries) > 0 {
		stats.TopIndustry = industries[0]
	}
	return stats
}
