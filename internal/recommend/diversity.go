package recommend

import "go.uber.org/zap"

// DefaultTopN is the shortlist size used when a request does not set one.
const DefaultTopN = 10

// maxPerCore bounds how many entries share a core name before the unconditional pass.
const maxPerCore = 2

// PassStats counts the entries accepted by each selection pass.
type PassStats struct {
	Primary   int `json:"primary"`
	Bounded   int `json:"bounded"`
	Unbounded int `json:"unbounded"`
}

// Selector reduces a ranked list to a shortlist with bounded repetition of core names.
type Selector struct {
	logger *zap.Logger
}

// NewSelector creates a selector.
func NewSelector(logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{logger: logger}
}

type selection struct {
	accepted []Entry
	taken    map[int]struct{}
	perCore  map[string]int
}

func (s *selection) add(e Entry) {
	s.accepted = append(s.accepted, e)
	s.taken[e.index] = struct{}{}
	s.perCore[e.CoreName]++
}

func (s *selection) has(e Entry) bool {
	_, ok := s.taken[e.index]
	return ok
}

// Select picks at most topN entries from ranked, which must be sorted by similarity.
//
// The primary pass accepts every unseen core name and, for a seen core name, an entry
// with an unseen industry string while fewer than two entries share that core name. The
// bounded pass backfills entries whose core name has fewer than two representatives.
// The unbounded pass backfills in rank order without limits. The result is re-sorted by
// similarity and truncated to topN.
func (s *Selector) Select(ranked []Entry, topN int) ([]Entry, PassStats) {
	var stats PassStats
	if topN <= 0 || len(ranked) == 0 {
		return nil, stats
	}

	sel := &selection{
		taken:   make(map[int]struct{}, topN),
		perCore: make(map[string]int),
	}

	seenIndustries := make(map[string]struct{})
	for _, e := range ranked {
		industry := e.Job.IndustryDisplay()
		if sel.perCore[e.CoreName] == 0 {
			sel.add(e)
			seenIndustries[industry] = struct{}{}
			stats.Primary++
			continue
		}
		if _, seen := seenIndustries[industry]; !seen && sel.perCore[e.CoreName] < maxPerCore {
			sel.add(e)
			seenIndustries[industry] = struct{}{}
			stats.Primary++
		}
	}

	if len(sel.accepted) < topN {
		for _, e := range ranked {
			if len(sel.accepted) >= topN {
				break
			}
			if sel.has(e) || sel.perCore[e.CoreName] >= maxPerCore {
				continue
			}
			sel.add(e)
			stats.Bounded++
		}
	}

	if len(sel.accepted) < topN {
		for _, e := range ranked {
			if len(sel.accepted) >= topN {
				break
			}
			if sel.has(e) {
				continue
			}
			sel.add(e)
			stats.Unbounded++
		}
	}

	out := sel.accepted
	sortBySimilarity(out)
	if len(out) > topN {
		out = out[:topN]
	}

	s.logger.Debug("diversity selection",
		zap.Int("ranked", len(ranked)),
		zap.Int("top_n", topN),
		zap.Int("primary_pass", stats.Primary),
		zap.Int("bounded_pass", stats.Bounded),
		zap.Int("unbounded_pass", stats.Unbounded),
		zap.Int("selected", len(out)),
	)

	return out, stats
}
