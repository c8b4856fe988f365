package profile

import (
	"fmt"
	"math"

	"github.com/spigell/job-matcher/internal/trait"
)

// FromQuiz sums the answer increments and normalizes the totals by their maximum.
// No answers, or only zero weights, yield the zero vector.
func FromQuiz(answers []trait.Increment) trait.Vector {
	var raw trait.Vector
	for _, inc := range answers {
		raw.Add(inc)
	}
	return raw.Normalize()
}

// Selection is an explicit manual choice of types.
type Selection struct {
	Primary           trait.Type
	Secondary         trait.Type // empty for none
	PrimaryStrength   float64
	SecondaryStrength float64
}

// Manual builds a normalized vector from a manual selection.
// The primary strength is clamped to (0,1] with non-positive values treated as 1, and the
// secondary strength to [0, primary]. A secondary equal to the primary is ignored.
func Manual(sel Selection) (trait.Vector, error) {
	if !sel.Primary.Valid() {
		return trait.Vector{}, fmt.Errorf("primary: %w: %q", trait.ErrUnknownType, sel.Primary)
	}
	if sel.Secondary != "" && !sel.Secondary.Valid() {
		return trait.Vector{}, fmt.Errorf("secondary: %w: %q", trait.ErrUnknownType, sel.Secondary)
	}

	primary := sel.PrimaryStrength
	if primary <= 0 || math.IsNaN(primary) {
		primary = 1
	}
	if primary > 1 {
		primary = 1
	}

	secondary := sel.SecondaryStrength
	if secondary < 0 || math.IsNaN(secondary) {
		secondary = 0
	}
	if secondary > primary {
		secondary = primary
	}

	var v trait.Vector
	v.Set(sel.Primary, primary)
	if sel.Secondary != "" && sel.Secondary != sel.Primary {
		v.Set(sel.Secondary, secondary)
	}
	return v.Normalize(), nil
}
