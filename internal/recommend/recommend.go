package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/filtering"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/trait"
)

var ErrInvalidRequest = errors.New("invalid recommendation request")

// Request describes one recommendation request.
type Request struct {
	Profile trait.Vector
	// TopN is the shortlist size; zero selects DefaultTopN.
	TopN       int      `validate:"gte=0"`
	MinSalary  float64  `validate:"gte=0"`
	Industries []string `validate:"dive,required"`
}

// Recommendation is one shortlisted job as exposed to the presentation layer.
type Recommendation struct {
	Title         string     `json:"title"`
	SalaryDisplay string     `json:"salary_display"`
	Industry      string     `json:"industry"`
	Similarity    float64    `json:"similarity"`
	Percent       float64    `json:"percent"`
	PrimaryType   trait.Type `json:"primary_type"`
	AverageSalary float64    `json:"average_salary"`
	CoreName      string     `json:"core_name"`
}

// Result is the outcome of one request.
type Result struct {
	RequestID       string           `json:"request_id"`
	Profile         trait.Vector     `json:"profile"`
	Recommendations []Recommendation `json:"recommendations"`
	Candidates      int              `json:"candidates"`
	Passes          PassStats        `json:"passes"`
}

// Recommender ranks a catalog against a profile and selects a diverse shortlist.
// It holds no per-request state and is safe for concurrent use.
type Recommender struct {
	logger   *zap.Logger
	selector *Selector
	validate *validator.Validate
}

// New creates a recommender.
func New(logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Recommender{
		logger:   logger,
		selector: NewSelector(logger),
		validate: validator.New(),
	}
}

// Recommend filters the catalog, scores the remaining jobs and selects the shortlist.
// An empty catalog or a filter that removes every job yields an empty result.
func (r *Recommender) Recommend(ctx context.Context, cat *catalog.Catalog, req Request) (*Result, error) {
	if err := r.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topN := req.TopN
	if topN == 0 {
		topN = DefaultTopN
	}

	id := uuid.NewString()
	log := logger.WithRequest(r.logger, id)

	pipeline := filtering.New([]filtering.Filter{
		filtering.NewMinSalary(req.MinSalary),
		filtering.NewIndustries(req.Industries),
	}, log)
	if req.MinSalary <= 0 {
		pipeline.DisableByName(filtering.MinSalaryName, "no minimum salary requested")
	}
	if len(req.Industries) == 0 {
		pipeline.DisableByName(filtering.IndustriesName, "no industries requested")
	}
	log.Debug("filters prepared", zap.Any("filters", pipeline.Describe()))

	jobs, err := pipeline.RunFilters(ctx, cat.Jobs())
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}

	ranked := Score(req.Profile, jobs)
	selected, passes := r.selector.Select(ranked, topN)

	result := &Result{
		RequestID:       id,
		Profile:         req.Profile,
		Recommendations: make([]Recommendation, 0, len(selected)),
		Candidates:      len(ranked),
		Passes:          passes,
	}
	for _, e := range selected {
		result.Recommendations = append(result.Recommendations, toRecommendation(e))
	}

	log.Info("recommendation ready",
		zap.Int("catalog", cat.Len()),
		zap.Int("candidates", result.Candidates),
		zap.Int("selected", len(result.Recommendations)),
	)

	return result, nil
}

func toRecommendation(e Entry) Recommendation {
	return Recommendation{
		Title:         e.Job.Title,
		SalaryDisplay: e.Job.SalaryDisplay,
		Industry:      e.Job.IndustryDisplay(),
		Similarity:    e.Similarity,
		Percent:       e.Percent,
		PrimaryType:   e.Job.PrimaryType,
		AverageSalary: e.Job.AverageSalary,
		CoreName:      e.CoreName,
	}
}
