package rating

import "math"

// kFactor is the baseline rating swing for a decisive result. A player's
// volatility tau scales it up: a freshly reset player (tau=1) moves at
// twice the baseline, and repeated decay brings the swing back down
// toward kFactor.
const kFactor = 32

// Engine computes rating deltas for resolved matches. It holds nothing but
// its tuning and performs no I/O.
type Engine struct {
	deltaTau float64
}

// New creates an Engine with the given volatility decay factor.
// deltaTau must sit strictly between 0 and 1.
func New(deltaTau float64) *Engine {
	return &Engine{deltaTau: deltaTau}
}

// TeamRating reduces a team's individual ratings to a single representative
// value: the mean.
func (e *Engine) TeamRating(elos ...float64) float64 {
	if len(elos) == 0 {
		return 0
	}
	var sum float64
	for _, elo := range elos {
		sum += elo
	}
	return sum / float64(len(elos))
}

// ExpectedScore is the standard logistic win expectancy of side A against
// side B.
func (e *Engine) ExpectedScore(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/400))
}

// SinglesChange returns the signed rating delta for side A of a singles
// match. outcome is 1 for a win and 0 for a loss; tau is side A's current
// volatility. The delta vanishes when the outcome matches the expectancy,
// and a win over a much weaker opponent moves the rating less than a win
// over an equal.
func (e *Engine) SinglesChange(ratingA, ratingB, tau, outcome float64) float64 {
	return kFactor * (1 + tau) * (outcome - e.ExpectedScore(ratingA, ratingB))
}

// DoublesChange returns the signed rating delta for a player on side A of a
// doubles match, using the sides' representative team ratings and that
// player's own volatility.
func (e *Engine) DoublesChange(teamRatingA, teamRatingB, tau, outcome float64) float64 {
	return kFactor * (1 + tau) * (outcome - e.ExpectedScore(teamRatingA, teamRatingB))
}

// DecayTau shrinks a player's volatility after a resolved match, so
// established ratings stabilize over time.
func (e *Engine) DecayTau(tau float64) float64 {
	return tau * e.deltaTau
}
