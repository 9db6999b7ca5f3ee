package route

import "math"

// SafetyFactor is one named sub-score of a safety assessment.
type SafetyFactor struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SafetyAssessment is the heuristic safety estimate for one route. It is a
// synthetic blend of trip speed-density and rank among the alternatives, not
// a measured safety statistic.
type SafetyAssessment struct {
	Score   int            `json:"score"`
	Factors []SafetyFactor `json:"factors"`
}

// base scores by rank in the ranked candidate list; ranks beyond the table
// fall back to 55. The pipeline returns at most three routes, so the
// fallback is only reachable if that cap ever changes.
var rankBaseScores = [3]float64{82, 71, 60}

// ScoreSafety computes the deterministic safety heuristic for a route given
// its 0-based rank among the ranked candidates. Slower trips relative to
// their length read as urban driving and score higher; long distances shave
// up to 8 points. The overall score clamps to [30, 96] and every sub-factor
// to [28, 98].
func ScoreSafety(c Candidate, rank int) SafetyAssessment {
	distKm := c.DistanceMeters / 1000
	durationMin := c.DurationSeconds / 60

	urbanFactor := math.Min(15, durationMin/math.Max(distKm, 0.1)*3)

	base := 55.0
	if rank >= 0 && rank < len(rankBaseScores) {
		base = rankBaseScores[rank]
	}
	base += urbanFactor * 0.5

	raw := base - math.Min(8, distKm/60)
	score := int(math.Round(math.Max(30, math.Min(96, raw))))

	return SafetyAssessment{
		Score: score,
		Factors: []SafetyFactor{
			{Name: "Lighting Coverage", Score: clampFactor(score + 9)},
			{Name: "Crowd Density", Score: clampFactor(score + 3)},
			{Name: "CCTV Coverage", Score: clampFactor(score - 4)},
			{Name: "Emergency Access", Score: clampFactor(score + 6)},
			{Name: "Incident History", Score: clampFactor(score - 7)},
		},
	}
}

func clampFactor(v int) int {
	if v < 28 {
		return 28
	}
	if v > 98 {
		return 98
	}
	return v
}
