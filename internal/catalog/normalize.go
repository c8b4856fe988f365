package catalog

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultWelfareWords are benefit keywords stripped from titles before grouping.
// Matching is an exact, case-sensitive substring replace applied in this order.
var DefaultWelfareWords = []string{
	"双休", "周末双休", "单休", "大小周", "五险一金", "社保", "公积金",
	"包吃", "包住", "餐补", "房补", "交通补助", "话补", "加班补助",
	"弹性工作", "年终奖", "绩效奖金", "全勤奖", "股票期权", "提成",
	"奖金", "补贴", "补助", "福利", "待遇优厚", "薪资面议",
}

const (
	minKeyLength   = 2
	fallbackPrefix = 8
)

var (
	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\p{Nd}+\.?\p{Nd}*[kK]`),
		regexp.MustCompile(`\p{Nd}+\.?\p{Nd}*千`),
		regexp.MustCompile(`\p{Nd}+\.?\p{Nd}*万`),
		regexp.MustCompile(`\p{Nd}+-\p{Nd}+`),
		regexp.MustCompile(`\p{Nd}+\.?\p{Nd}*`),
	}
	bracketPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\([^)]*\)`),
		regexp.MustCompile(`（[^）]*）`),
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`【[^】]*】`),
	}
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\x{4e00}-\x{9fff}]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	cjkRunPattern     = regexp.MustCompile(`[\x{4e00}-\x{9fff}]+`)
)

// Report carries the diagnostics of one normalization run.
type Report struct {
	Input    int `json:"input"`
	Distinct int `json:"distinct"`
	Removed  int `json:"removed"`
	// UnknownSalary counts records whose average salary could not be compared.
	UnknownSalary int `json:"unknown_salary"`
}

// Normalizer canonicalizes job titles and collapses near-duplicate records.
type Normalizer struct {
	welfare []string
	logger  *zap.Logger
}

// NewNormalizer creates a normalizer. An empty welfare list selects DefaultWelfareWords.
func NewNormalizer(welfare []string, logger *zap.Logger) *Normalizer {
	if len(welfare) == 0 {
		welfare = DefaultWelfareWords
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Normalizer{
		welfare: append([]string(nil), welfare...),
		logger:  logger,
	}
}

// Canonicalize derives the grouping key of a raw title. It never fails: when full
// normalization leaves fewer than two characters it falls back to the CJK runs of the
// raw title, then to its first eight characters.
func (n *Normalizer) Canonicalize(title string) string {
	key := title

	for _, re := range salaryPatterns {
		key = re.ReplaceAllString(key, "")
	}

	for _, word := range n.welfare {
		key = strings.ReplaceAll(key, word, "")
	}

	for _, re := range bracketPatterns {
		key = re.ReplaceAllString(key, "")
	}

	key = nonWordPattern.ReplaceAllString(key, " ")
	key = whitespacePattern.ReplaceAllString(key, " ")
	key = strings.TrimSpace(key)

	if utf8.RuneCountInString(key) >= minKeyLength {
		return key
	}

	if runs := cjkRunPattern.FindAllString(title, -1); len(runs) > 0 {
		return strings.Join(runs, " ")
	}

	return prefix(title, fallbackPrefix)
}

// Normalize deduplicates jobs by canonical title. Within each group the record with the
// highest average salary survives whole; ties keep input order. Records with an unknown
// salary rank below every record with a known one. The output is ordered by salary.
func (n *Normalizer) Normalize(jobs []Job) ([]Job, Report) {
	sorted := make([]Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SalaryKnown != b.SalaryKnown {
			return a.SalaryKnown
		}
		return a.AverageSalary > b.AverageSalary
	})

	report := Report{Input: len(jobs)}
	seen := make(map[string]struct{}, len(sorted))
	out := make([]Job, 0, len(sorted))

	for _, job := range sorted {
		if !job.SalaryKnown {
			report.UnknownSalary++
		}

		key := n.Canonicalize(job.Title)
		if _, ok := seen[key]; ok {
			n.logger.Debug("dropping duplicate job",
				zap.String("title", job.Title),
				zap.String("canonical", key),
			)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}

	report.Distinct = len(seen)
	report.Removed = report.Input - len(out)

	n.logger.Info("catalog normalized",
		zap.Int("input", report.Input),
		zap.Int("distinct", report.Distinct),
		zap.Int("removed", report.Removed),
		zap.Int("unknown_salary", report.UnknownSalary),
	)

	return out, report
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
