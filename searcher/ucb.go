package searcher

import "math"

// ucb1 precomputes the exploration numerator c^2 * ln(N) for one parent,
// so scoring each child costs one division and one sqrt.
type ucb1 struct {
	numerator float64
}

func newUCB1(cParam float64, parentVisits int) ucb1 {
	if parentVisits == 0 {
		panic("cannot compute UCB1: parent has 0 visits")
	}
	return ucb1{numerator: cParam * cParam * math.Log(float64(parentVisits))}
}

// evaluate scores one child: q/n + sqrt(c^2*ln(N)/n). An unvisited child
// scores +Inf so it is explored before any visited sibling.
func (u ucb1) evaluate(score float64, visits int) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return score/float64(visits) + math.Sqrt(u.numerator/float64(visits))
}
