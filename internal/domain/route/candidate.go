package route

import "sort"

// duplicateToleranceSeconds is the duration window inside which two
// candidates are considered the same road taken.
const duplicateToleranceSeconds = 60

// maxRankedRoutes caps how many distinct routes a plan returns.
const maxRankedRoutes = 3

// Step is a single turn-by-turn instruction from the routing engine.
type Step struct {
	Name     string
	Location Point
}

// Leg is one segment of a route (origin→via, via→destination, or the whole
// route when no via-point was used).
type Leg struct {
	Steps []Step
}

// Candidate is one raw route from the routing engine, identified only by
// content until it is assembled.
type Candidate struct {
	Geometry        []Point
	DistanceMeters  float64
	DurationSeconds float64
	Legs            []Leg
}

// DedupAndRank collapses near-duplicate candidates and orders the survivors
// by duration ascending, keeping at most three.
//
// Candidates must arrive in request order (direct, via1, via2, via3): the
// first candidate seen inside a duration window wins, so the direct route is
// always kept. Returns nil when the input is empty.
func DedupAndRank(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	unique := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, kept := range unique {
			diff := kept.DurationSeconds - c.DurationSeconds
			if diff < 0 {
				diff = -diff
			}
			if diff < duplicateToleranceSeconds {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, c)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].DurationSeconds < unique[j].DurationSeconds
	})

	if len(unique) > maxRankedRoutes {
		unique = unique[:maxRankedRoutes]
	}
	return unique
}
