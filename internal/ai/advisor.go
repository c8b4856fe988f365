package ai

import (
	"context"

	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/trait"
)

// Highlight explains why one shortlisted job suits the profile.
type Highlight struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Advice is a short narrative about a finished shortlist.
type Advice struct {
	Summary    string      `json:"summary"`
	Highlights []Highlight `json:"highlights,omitempty"`
	NextSteps  []string    `json:"next_steps,omitempty"`
	Raw        string      `json:"-"`
}

// Advisor writes advice for a profile and its recommendations. Advice never changes
// the shortlist itself.
type Advisor interface {
	Advise(ctx context.Context, profile trait.Vector, recs []recommend.Recommendation) (*Advice, error)
}
