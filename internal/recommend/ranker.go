package recommend

import (
	"math"
	"sort"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/trait"
)

// Entry is a scored job. It lives only for the duration of one request.
type Entry struct {
	Job        *catalog.Job
	Similarity float64
	Percent    float64
	CoreName   string

	// position in the filtered catalog, used for stable tie-breaking and identity
	index int
}

// Score computes the cosine similarity of every job against profile and returns the
// entries sorted by similarity, descending. Ties keep catalog order.
func Score(profile trait.Vector, jobs []catalog.Job) []Entry {
	entries := make([]Entry, 0, len(jobs))
	for i := range jobs {
		sim := trait.Cosine(profile, jobs[i].Traits)
		entries = append(entries, Entry{
			Job:        &jobs[i],
			Similarity: sim,
			Percent:    roundPercent(sim),
			CoreName:   CoreName(jobs[i].Title),
			index:      i,
		})
	}

	sortBySimilarity(entries)
	return entries
}

func sortBySimilarity(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Similarity != entries[j].Similarity {
			return entries[i].Similarity > entries[j].Similarity
		}
		return entries[i].index < entries[j].index
	})
}

// roundPercent converts a similarity to a percentage with one decimal place.
func roundPercent(sim float64) float64 {
	return math.Round(sim*1000) / 10
}
