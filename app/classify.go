package app

import (
	"example/chess-dashboard/app/models"
)

// Quality thresholds in pawns of color-adjusted evaluation. A played move
// qualifies only when it equals the evaluator's best move; the thresholds then
// decide how loudly to celebrate it.
const (
	GreatThreshold     = 2.0
	BrilliantThreshold = 5.0

	// A forced mate is always at least great. It is brilliant only when the
	// mate is short; longer mates are routine conversions.
	BrilliantMateMax = 3

	// Rating adjustment bounds, see RatingAdjustment.
	maxRatingAdjustment = 0.25
	baselineRating      = 1500
)

// RatingAdjustment returns the threshold shift (in pawns) for a player rating.
// Lower-rated players get a slightly more generous bar, higher-rated players a
// stricter one. Linear in rating, clamped to ±maxRatingAdjustment. A rating of
// 0 means unknown and gets no adjustment.
func RatingAdjustment(rating int) float64 {
	if rating <= 0 {
		return 0
	}
	adj := float64(baselineRating-rating) / 2000.0
	if adj > maxRatingAdjustment {
		adj = maxRatingAdjustment
	}
	if adj < -maxRatingAdjustment {
		adj = -maxRatingAdjustment
	}
	return adj
}

// Classify labels a played move given the evaluator's verdict for the position
// the move was played from. playedUCI is the move in UCI; side is "w" or "b"
// for the mover; ratingAdj shifts both thresholds down (more generous) when
// positive.
//
// Pure function: identical inputs always produce the identical label.
func Classify(playedUCI string, res models.EvaluationResult, side string, ratingAdj float64) models.Quality {
	if !res.Success || res.BestMove == "" {
		return models.QualityNormal
	}
	if playedUCI == "" || playedUCI != res.BestMove {
		return models.QualityNormal
	}

	// A forced mate takes precedence over the score.
	if res.Mate != nil {
		mate := *res.Mate
		// The mate must favor the mover: positive is White mating.
		if (side == "w" && mate > 0) || (side == "b" && mate < 0) {
			if abs(mate) <= BrilliantMateMax {
				return models.QualityBrilliant
			}
			return models.QualityGreat
		}
		return models.QualityNormal
	}

	if res.Eval == nil {
		return models.QualityNormal
	}

	// Normalize to the mover's POV: White's good moves have positive score,
	// Black's negative.
	score := *res.Eval
	if side == "b" {
		score = -score
	}

	if score >= BrilliantThreshold-ratingAdj {
		return models.QualityBrilliant
	}
	if score >= GreatThreshold-ratingAdj {
		return models.QualityGreat
	}
	return models.QualityNormal
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
