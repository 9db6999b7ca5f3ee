package route

import (
	"fmt"
	"math"
)

// Label classifies a route relative to the other ranked candidates.
type Label struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Badges      []string `json:"badges"`
}

// Classify labels the candidate at index idx within the ranked set. The
// ranked set is sorted by duration, so index 0 is the fastest. Branches are
// checked in a fixed order and the first match wins: a route that is both
// fastest and shortest is labelled fastest.
func Classify(ranked []Candidate, idx int) Label {
	fastest := ranked[0]
	c := ranked[idx]

	minDist, maxDist := math.Inf(1), math.Inf(-1)
	for _, r := range ranked {
		minDist = math.Min(minDist, r.DistanceMeters)
		maxDist = math.Max(maxDist, r.DistanceMeters)
	}

	switch {
	case idx == 0:
		return Label{
			Name:        "Fastest Route",
			Description: "Shortest travel time",
			Badges:      []string{"Recommended", "Fast"},
		}
	case c.DistanceMeters == minDist:
		return Label{
			Name:        "Shortest Route",
			Description: "Least distance travelled",
			Badges:      []string{"Efficient"},
		}
	case c.DistanceMeters == maxDist:
		return Label{
			Name:        "Scenic Route",
			Description: "Longer but less congested",
			Badges:      []string{"Scenic"},
		}
	default:
		pct := 0.0
		if fastest.DurationSeconds > 0 {
			pct = (c.DurationSeconds - fastest.DurationSeconds) / fastest.DurationSeconds * 100
		}
		return Label{
			Name:        "Alternate Route",
			Description: fmt.Sprintf("~%d%% longer, different path", int(pct)),
			Badges:      []string{"Alternate"},
		}
	}
}
