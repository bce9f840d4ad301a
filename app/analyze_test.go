package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"example/chess-dashboard/app/models"
)

// fakeEvaluator pops scripted results in call order and records when and for
// which position each call happened.
type fakeEvaluator struct {
	queue []models.EvaluationResult
	fens  []string
	times []time.Time
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, fen string, depth int) models.EvaluationResult {
	f.fens = append(f.fens, fen)
	f.times = append(f.times, time.Now())
	if len(f.queue) == 0 {
		return models.EvaluationResult{Success: false, Error: "fake evaluator: no scripted result"}
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res
}

// countingPacer records Wait calls without sleeping.
type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func newTestAnalyzer(eval Evaluator, pacer Pacer) *Analyzer {
	return NewAnalyzer(eval, pacer, 12, zerolog.Nop())
}

func whiteGame(url, pgn string) models.GameLite {
	return models.GameLite{URL: url, Color: "white", Opponent: "bob", OppRating: 1400, Result: "win", PGN: pgn}
}

func TestAnalyzeGamesFlagsBestMoves(t *testing.T) {
	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: true, Eval: floatPtr(3.0), BestMove: "e2e4"}, // ply 1: played, great
		{Success: true, Eval: floatPtr(3.0), BestMove: "d2d4"}, // ply 3: not played
	}}
	pacer := &countingPacer{}
	a := newTestAnalyzer(eval, pacer)

	games := []models.GameLite{whiteGame("https://game/1", "1. e4 e5 2. Nf3 Nc6 1-0")}
	summaries := a.AnalyzeGames(context.Background(), games, "alice", 0)

	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	s := summaries[0]
	if s.Skipped {
		t.Fatalf("game unexpectedly skipped: %s", s.SkipReason)
	}
	if s.GreatCount != 1 || s.BrilliantCount != 0 || len(s.Moves) != 1 {
		t.Fatalf("counts = great %d brilliant %d moves %d, want 1/0/1", s.GreatCount, s.BrilliantCount, len(s.Moves))
	}

	m := s.Moves[0]
	if m.Ply != 1 || m.MoveUCI != "e2e4" || m.Quality != models.QualityGreat {
		t.Fatalf("flagged move unexpected: %+v", m)
	}
	if m.FENBefore != StartFEN {
		t.Fatalf("FENBefore = %q, want initial position", m.FENBefore)
	}
	if m.GameURL != "https://game/1" {
		t.Fatalf("GameURL = %q", m.GameURL)
	}

	// Only the target player's plies reach the evaluator, each behind one
	// pacer wait.
	if len(eval.fens) != 2 || pacer.waits != 2 {
		t.Fatalf("evaluator calls = %d, pacer waits = %d, want 2 and 2", len(eval.fens), pacer.waits)
	}
}

func TestAnalyzeGamesBlackPOV(t *testing.T) {
	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: true, Eval: floatPtr(-6.0), BestMove: "e7e5"}, // ply 2, black's move
	}}
	a := newTestAnalyzer(eval, &countingPacer{})

	g := models.GameLite{URL: "https://game/2", Color: "black", Opponent: "bob", PGN: "1. e4 e5 1-0"}
	summaries := a.AnalyzeGames(context.Background(), []models.GameLite{g}, "alice", 0)

	s := summaries[0]
	if s.BrilliantCount != 1 || len(s.Moves) != 1 || s.Moves[0].Ply != 2 {
		t.Fatalf("black brilliant not flagged: %+v", s)
	}
	if len(eval.fens) != 1 {
		t.Fatalf("evaluator called %d times, want 1 (black plies only)", len(eval.fens))
	}
}

func TestAnalyzeGamesBatchFaultIsolation(t *testing.T) {
	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: true, Eval: floatPtr(3.0), BestMove: "e2e4"},
		{Success: true, Eval: floatPtr(0.1), BestMove: "g1f3"},
	}}
	a := newTestAnalyzer(eval, &countingPacer{})

	games := []models.GameLite{
		whiteGame("https://game/empty", ""),                      // malformed: no transcript
		whiteGame("https://game/corrupt", "1. e4 e4 2. Nf3 1-0"), // illegal move mid-replay
		whiteGame("https://game/ok", "1. e4 e5 2. Nf3 Nc6 1-0"),  // fully valid
	}

	summaries := a.AnalyzeGames(context.Background(), games, "alice", 0)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	if !summaries[0].Skipped || summaries[0].GreatCount != 0 || len(summaries[0].Moves) != 0 {
		t.Fatalf("empty game not skipped cleanly: %+v", summaries[0])
	}
	if !summaries[1].Skipped || len(summaries[1].Moves) != 0 {
		t.Fatalf("corrupt game not skipped cleanly: %+v", summaries[1])
	}
	if summaries[2].Skipped || summaries[2].GreatCount != 1 {
		t.Fatalf("valid game mishandled: %+v", summaries[2])
	}

	// Order must match input order.
	for i, url := range []string{"https://game/empty", "https://game/corrupt", "https://game/ok"} {
		if summaries[i].URL != url {
			t.Fatalf("summary %d is %s, want %s", i, summaries[i].URL, url)
		}
	}
}

func TestAnalyzeGamesSkipsCustomStartWithoutReplaying(t *testing.T) {
	eval := &fakeEvaluator{}
	a := newTestAnalyzer(eval, &countingPacer{})

	g := whiteGame("https://game/960", "1. e4 e5 1-0")
	g.CustomStart = true
	summaries := a.AnalyzeGames(context.Background(), []models.GameLite{g}, "alice", 0)

	s := summaries[0]
	if !s.Skipped || s.SkipReason != "malformed game: custom starting position" {
		t.Fatalf("custom-start game not skipped: %+v", s)
	}
	if len(eval.fens) != 0 {
		t.Fatalf("evaluator must not be called for a skipped game")
	}
}

func TestAnalyzeGamesEvaluatorHiccupSkipsOnlyThePly(t *testing.T) {
	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: false, Error: "evaluator unreachable: connection refused"}, // ply 1
		{Success: true, Eval: floatPtr(6.0), BestMove: "g1f3"},               // ply 3
	}}
	a := newTestAnalyzer(eval, &countingPacer{})

	games := []models.GameLite{whiteGame("https://game/3", "1. e4 e5 2. Nf3 Nc6 1-0")}
	summaries := a.AnalyzeGames(context.Background(), games, "alice", 0)

	s := summaries[0]
	if s.Skipped {
		t.Fatalf("one evaluator hiccup must not skip the game: %+v", s)
	}
	if s.BrilliantCount != 1 || len(s.Moves) != 1 || s.Moves[0].Ply != 3 {
		t.Fatalf("later ply not classified after hiccup: %+v", s)
	}
}

func TestAnalyzeGamesMateIsAtLeastGreat(t *testing.T) {
	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: true, Eval: floatPtr(999), Mate: intPtr(5), BestMove: "e2e4"},
		{Success: true, Eval: floatPtr(999), Mate: intPtr(2), BestMove: "g1f3"},
	}}
	a := newTestAnalyzer(eval, &countingPacer{})

	games := []models.GameLite{whiteGame("https://game/4", "1. e4 e5 2. Nf3 Nc6 1-0")}
	s := a.AnalyzeGames(context.Background(), games, "alice", 0)[0]

	if s.GreatCount != 1 || s.BrilliantCount != 1 {
		t.Fatalf("mate classification: great %d brilliant %d, want 1/1", s.GreatCount, s.BrilliantCount)
	}
}

func TestAnalyzeGamesStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eval := &fakeEvaluator{}
	a := newTestAnalyzer(eval, &countingPacer{})

	games := []models.GameLite{
		whiteGame("https://game/5", "1. e4 e5 1-0"),
		whiteGame("https://game/6", "1. d4 d5 1-0"),
	}
	summaries := a.AnalyzeGames(ctx, games, "alice", 0)

	if len(summaries) != len(games) {
		t.Fatalf("got %d summaries, want one per input game", len(summaries))
	}
	for i, s := range summaries {
		if !s.Skipped {
			t.Fatalf("summary %d not marked skipped after cancellation: %+v", i, s)
		}
	}
	if len(eval.fens) != 0 {
		t.Fatalf("evaluator called %d times after cancellation, want 0", len(eval.fens))
	}
}

func TestAnalyzeGamesPacesEvaluatorCalls(t *testing.T) {
	const interval = 30 * time.Millisecond

	eval := &fakeEvaluator{queue: []models.EvaluationResult{
		{Success: true, Eval: floatPtr(0.1), BestMove: "e2e4"},
		{Success: true, Eval: floatPtr(0.1), BestMove: "g1f3"},
		{Success: true, Eval: floatPtr(0.1), BestMove: "f1c4"},
	}}
	a := NewAnalyzer(eval, NewPacer(interval), 12, zerolog.Nop())

	games := []models.GameLite{whiteGame("https://game/7", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Nf6 1-0")}
	a.AnalyzeGames(context.Background(), games, "alice", 0)

	if len(eval.times) != 3 {
		t.Fatalf("evaluator called %d times, want 3", len(eval.times))
	}
	// Every call after the first must be spaced by at least the interval
	// (small scheduling slack allowed).
	for i := 1; i < len(eval.times); i++ {
		gap := eval.times[i].Sub(eval.times[i-1])
		if gap < interval-5*time.Millisecond {
			t.Fatalf("calls %d and %d only %v apart, want >= %v", i-1, i, gap, interval)
		}
	}
}
