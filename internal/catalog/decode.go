package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/job-matcher/internal/trait"
)

const (
	FieldRecord        = "record"
	FieldTitle         = "title"
	FieldSalaryDisplay = "salary_display"
	FieldAverageSalary = "average_salary"
	FieldIndustries    = "industries"
	FieldPrimaryType   = "primary_type"
	FieldTraitVector   = "trait_vector"
)

// columnAliases maps the Chinese column names of spreadsheet exports.
var columnAliases = map[string]string{
	"职业":     FieldTitle,
	"薪资":     FieldSalaryDisplay,
	"平均薪资_千": FieldAverageSalary,
	"行业列表":   FieldIndustries,
	"主要类型":   FieldPrimaryType,
	"霍兰德得分":  FieldTraitVector,
}

// RecordIssue is a data-quality problem found in one raw record.
// Issues never abort a load.
type RecordIssue struct {
	Index int
	Field string
	Err   error
}

func (i RecordIssue) Error() string {
	return fmt.Sprintf("record %d: %s: %v", i.Index, i.Field, i.Err)
}

type rawRecord struct {
	Title         string         `mapstructure:"title"`
	SalaryDisplay string         `mapstructure:"salary_display"`
	AverageSalary any            `mapstructure:"average_salary"`
	Industries    any            `mapstructure:"industries"`
	PrimaryType   string         `mapstructure:"primary_type"`
	TraitVector   any            `mapstructure:"trait_vector"`
	Extra         map[string]any `mapstructure:",remain"`
}

// Decode converts loosely typed rows from the record source into jobs.
// Malformed fields degrade per field; a row that cannot be decoded at all is skipped.
func Decode(rows []map[string]any) ([]Job, []RecordIssue) {
	jobs := make([]Job, 0, len(rows))
	var issues []RecordIssue

	for idx, row := range rows {
		var raw rawRecord
		cfg := &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &raw,
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			issues = append(issues, RecordIssue{Index: idx, Field: FieldRecord, Err: err})
			continue
		}
		if err := decoder.Decode(withAliases(row)); err != nil {
			issues = append(issues, RecordIssue{Index: idx, Field: FieldRecord, Err: err})
			continue
		}

		job, jobIssues := raw.toJob()
		for _, issue := range jobIssues {
			issue.Index = idx
			issues = append(issues, issue)
		}
		jobs = append(jobs, job)
	}

	return jobs, issues
}

func withAliases(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if alias, ok := columnAliases[k]; ok {
			k = alias
		}
		out[k] = v
	}
	return out
}

func (r *rawRecord) toJob() (Job, []RecordIssue) {
	var issues []RecordIssue

	job := Job{
		Title:         strings.TrimSpace(r.Title),
		SalaryDisplay: strings.TrimSpace(r.SalaryDisplay),
		Extra:         r.Extra,
	}
	if job.Title == "" {
		issues = append(issues, RecordIssue{Field: FieldTitle, Err: fmt.Errorf("empty title")})
	}

	industries, err := parseIndustryValue(r.Industries)
	if err != nil {
		issues = append(issues, RecordIssue{Field: FieldIndustries, Err: err})
	}
	job.Industries = industries

	salary, err := parseNumber(r.AverageSalary)
	if err != nil {
		issues = append(issues, RecordIssue{Field: FieldAverageSalary, Err: err})
	} else {
		job.AverageSalary = salary
		job.SalaryKnown = true
	}

	traits, err := parseTraits(r.TraitVector)
	if err != nil {
		issues = append(issues, RecordIssue{Field: FieldTraitVector, Err: err})
	}
	job.Traits = traits

	primary, err := trait.ParseType(r.PrimaryType)
	if err != nil {
		primary = traits.Dominant()
		issues = append(issues, RecordIssue{
			Field: FieldPrimaryType,
			Err:   fmt.Errorf("%w, using dominant type %s", err, primary),
		})
	}
	job.PrimaryType = primary

	return job, issues
}

// parseIndustryValue accepts text, or a list of scalar labels. Any other shape becomes
// one opaque label and is reported.
func parseIndustryValue(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return ParseIndustries(val), nil
	case []string:
		return cleanLabels(val), nil
	case []any:
		labels := make([]string, 0, len(val))
		for _, item := range val {
			if !isScalar(item) {
				return opaqueLabel(v), fmt.Errorf("unsupported list item of type %T", item)
			}
			labels = append(labels, fmt.Sprint(item))
		}
		return cleanLabels(labels), nil
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.String {
			return ParseIndustries(rv.String()), nil
		}
		return opaqueLabel(v), fmt.Errorf("unsupported value of type %T", v)
	}
}

func isScalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func opaqueLabel(v any) []string {
	label := strings.TrimSpace(fmt.Sprint(v))
	if label == "" {
		return nil
	}
	return []string{label}
}

// ParseIndustries reads an industry field stored as text. A bracketed list literal is
// parsed as a list; a literal that does not parse becomes one opaque label. Plain text
// is split on commas.
func ParseIndustries(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var items []any
		if err := json.Unmarshal([]byte(pythonQuotes(s)), &items); err != nil {
			return []string{s}
		}
		labels := make([]string, 0, len(items))
		for _, item := range items {
			labels = append(labels, fmt.Sprint(item))
		}
		return cleanLabels(labels)
	}

	return cleanLabels(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，'
	}))
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.Trim(strings.TrimSpace(label), `'"`)
		label = strings.TrimSpace(label)
		if label != "" {
			out = append(out, label)
		}
	}
	return out
}

// pythonQuotes rewrites a single-quoted list or dict literal into JSON.
func pythonQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `"`)
}

func parseNumber(v any) (float64, error) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing")
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", val, err)
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, fmt.Errorf("missing")
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", trimmed, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid value %v", f)
	}
	return f, nil
}

// parseTraits accepts a map or a map literal string. Missing types are zero.
// An unusable value yields the zero vector together with an error.
func parseTraits(v any) (trait.Vector, error) {
	var m map[string]any
	switch val := v.(type) {
	case nil:
		return trait.Vector{}, fmt.Errorf("missing")
	case map[string]any:
		m = val
	case map[string]float64:
		m = make(map[string]any, len(val))
		for k, w := range val {
			m[k] = w
		}
	case map[any]any:
		m = make(map[string]any, len(val))
		for k, w := range val {
			m[fmt.Sprint(k)] = w
		}
	case string:
		if err := json.Unmarshal([]byte(pythonQuotes(strings.TrimSpace(val))), &m); err != nil {
			return trait.Vector{}, fmt.Errorf("parse literal: %w", err)
		}
	default:
		return trait.Vector{}, fmt.Errorf("unsupported type %T", v)
	}

	weights := make(map[trait.Type]float64, len(m))
	for k, raw := range m {
		t, err := trait.ParseType(k)
		if err != nil {
			continue
		}
		w, err := parseNumber(raw)
		if err != nil {
			return trait.Vector{}, fmt.Errorf("weight %s: %w", k, err)
		}
		weights[t] = w
	}
	return trait.FromMap(weights), nil
}
