// --- analyze.go ---
package app

import (
	"context"

	"github.com/rs/zerolog"

	"example/chess-dashboard/app/models"
)

// Analyzer walks a batch of games and flags the target player's great and
// brilliant moves. Games and plies are processed strictly sequentially: the
// evaluator service gives no concurrent-throughput guarantee and every call
// must respect the pacing interval. Each run owns its board state, so
// concurrent runs for different usernames are independent.
type Analyzer struct {
	eval  Evaluator
	pacer Pacer
	depth int
	log   zerolog.Logger
}

func NewAnalyzer(eval Evaluator, pacer Pacer, depth int, log zerolog.Logger) *Analyzer {
	return &Analyzer{eval: eval, pacer: pacer, depth: depth, log: log}
}

// AnalyzeGames returns one summary per input game, in input order. A failure
// inside one game skips that game (zero counts, reason recorded) and never
// aborts the batch; evaluator hiccups skip only the affected ply. Batch totals
// are the caller's job.
//
// rating is an optional hint for the target player (0 = unknown); it shifts
// the classification thresholds slightly, see RatingAdjustment.
func (a *Analyzer) AnalyzeGames(ctx context.Context, games []models.GameLite, username string, rating int) []models.GameAnalysisSummary {
	ratingAdj := RatingAdjustment(rating)

	summaries := make([]models.GameAnalysisSummary, 0, len(games))
	for _, g := range games {
		summary, err := a.analyzeGame(ctx, g, ratingAdj)
		if err != nil {
			// Consistency over partial credit: drop anything classified so far.
			summary = skeletonSummary(g)
			summary.Skipped = true
			summary.SkipReason = err.Error()
			a.log.Warn().Str("game", g.URL).Str("user", username).
				Err(err).Msg("game skipped")
		}
		summaries = append(summaries, summary)

		if ctx.Err() != nil {
			// Caller gave up; mark the games we never reached and stop.
			for _, rest := range games[len(summaries):] {
				s := skeletonSummary(rest)
				s.Skipped = true
				s.SkipReason = ctx.Err().Error()
				summaries = append(summaries, s)
			}
			break
		}
	}
	return summaries
}

func (a *Analyzer) analyzeGame(ctx context.Context, g models.GameLite, ratingAdj float64) (models.GameAnalysisSummary, error) {
	summary := skeletonSummary(g)

	if g.PGN == "" {
		return summary, &MalformedGameError{Reason: "no move transcript"}
	}
	if g.CustomStart {
		return summary, &MalformedGameError{Reason: "custom starting position"}
	}

	var side string
	switch g.Color {
	case "white":
		side = "w"
	case "black":
		side = "b"
	default:
		return summary, &MalformedGameError{Reason: "target player is on neither side"}
	}

	replay, err := PositionsForGame(g.PGN)
	if err != nil {
		return summary, err
	}

	for i, move := range replay.Moves {
		// Cancellation between plies, not just between games: one game can
		// hold dozens of qualifying plies.
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		mover := "b"
		if IsEven(i) {
			mover = "w"
		}
		if mover != side {
			continue
		}

		// Pace only actual evaluator calls.
		if err := a.pacer.Wait(ctx); err != nil {
			return summary, err
		}

		result := a.eval.Evaluate(ctx, replay.FENs[i], a.depth)
		if !result.Success {
			// One evaluator hiccup never sinks the game; the ply just stays
			// unclassified. A dead context is not a hiccup though.
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			a.log.Debug().Str("game", g.URL).Int("ply", i+1).
				Str("fen", replay.FENs[i]).Str("error", result.Error).
				Msg("ply skipped: evaluation failed")
			continue
		}

		quality := Classify(move.UCI, result, side, ratingAdj)
		if quality == models.QualityNormal {
			continue
		}

		cm := models.ClassifiedMove{
			GameURL:   g.URL,
			Ply:       i + 1,
			MoveSAN:   move.SAN,
			MoveUCI:   move.UCI,
			FENBefore: replay.FENs[i],
			FENAfter:  replay.FENs[i+1],
			Eval:      result.Eval,
			Mate:      result.Mate,
			Quality:   quality,
		}
		summary.Moves = append(summary.Moves, cm)
		switch quality {
		case models.QualityGreat:
			summary.GreatCount++
		case models.QualityBrilliant:
			summary.BrilliantCount++
		}
		a.log.Info().Str("game", g.URL).Int("ply", i+1).
			Str("move", move.SAN).Str("quality", quality.String()).
			Msg("move flagged")
	}

	return summary, nil
}

func skeletonSummary(g models.GameLite) models.GameAnalysisSummary {
	return models.GameAnalysisSummary{
		URL:       g.URL,
		When:      g.When,
		Color:     g.Color,
		Opponent:  g.Opponent,
		OppRating: g.OppRating,
		Result:    g.Result,
		ECO:       g.ECO,
		Moves:     []models.ClassifiedMove{},
	}
}
