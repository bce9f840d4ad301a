// One-shot local analysis: fetch a username's recent games, run the
// brilliance pipeline against the evaluator service, and print what it found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"example/chess-dashboard/app"
	"example/chess-dashboard/app/config"
	"example/chess-dashboard/app/logx"
)

func main() {
	user := flag.String("user", "", "chess.com username to analyze")
	months := flag.Int("months", 0, "months of archives to pull (0 = config default)")
	limit := flag.Int("limit", 0, "max games to analyze (0 = config default)")
	flag.Parse()

	if *user == "" {
		log.Fatal("missing -user")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *months <= 0 {
		*months = cfg.Analysis.Months
	}
	if *limit <= 0 {
		*limit = cfg.Analysis.NumGames
	}

	logger := logx.NewLogger(cfg.Logs.Style, cfg.Logs.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	games, err := app.GamesForUser(ctx, *user, *months, *limit, cfg.Analysis.TimeClass)
	if err != nil {
		log.Fatalf("fetch games: %v", err)
	}
	if len(games) == 0 {
		log.Printf("no %s games found for %s", cfg.Analysis.TimeClass, *user)
		return
	}

	evalClient := app.NewEvaluatorClient(cfg.Evaluator.URL, cfg.Evaluator.MaxDepth, cfg.Evaluator.Timeout, logger)
	analyzer := app.NewAnalyzer(evalClient, app.NewPacer(cfg.Analysis.Pace), cfg.Evaluator.Depth, logger)

	summaries := analyzer.AnalyzeGames(ctx, games, *user, games[0].MyRating)

	totalGreat, totalBrilliant := 0, 0
	for _, s := range summaries {
		totalGreat += s.GreatCount
		totalBrilliant += s.BrilliantCount
		if s.Skipped {
			fmt.Printf("%s  skipped: %s\n", s.URL, s.SkipReason)
			continue
		}
		fmt.Printf("%s  vs %s (%d)  great=%d brilliant=%d\n",
			s.URL, s.Opponent, s.OppRating, s.GreatCount, s.BrilliantCount)
		for _, m := range s.Moves {
			fmt.Printf("    ply %d  %s  [%s]\n", m.Ply, m.MoveSAN, m.Quality)
		}
	}

	fmt.Printf("\n%d games, %d great, %d brilliant moves (took %s)\n",
		len(summaries), totalGreat, totalBrilliant, time.Since(start))
}
