package app

import (
	"fmt"

	"github.com/notnil/chess"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MalformedGameError marks a game that cannot be analyzed at all: no usable
// transcript, a custom starting position, or a transcript that replays legally
// but does not reach the recorded final position.
type MalformedGameError struct {
	Reason string
}

func (e *MalformedGameError) Error() string {
	return "malformed game: " + e.Reason
}

// ReplayError marks the first ply whose move could not be legally applied.
type ReplayError struct {
	Ply  int    // 1-indexed
	Move string // SAN token as it appeared in the transcript
	Err  error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay failed at ply %d (%s): %v", e.Ply, e.Move, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// ReplayedMove is one ply of a replayed game in both notations we need:
// SAN for display, UCI for comparison against the evaluator's best move.
type ReplayedMove struct {
	SAN string
	UCI string
}

// Replay is the reconstructed position sequence for one game.
// len(FENs) == len(Moves)+1; FENs[0] is the initial position and FENs[i] the
// position after move i.
type Replay struct {
	FENs  []string
	Moves []ReplayedMove
}

// PositionsForGame replays a PGN transcript from the initial position and
// returns every intermediate position. Pure: no I/O, owns its board state.
//
// Custom-start games are rejected up front from the SetUp/FEN header tags,
// before any move is applied. When the transcript carries a CurrentPosition
// tag, the final replayed position must match it (normalized compare), or the
// transcript is considered corrupt.
func PositionsForGame(pgn string) (*Replay, error) {
	if NormalizeChessDotComPGN(pgn) == "" {
		return nil, &MalformedGameError{Reason: "empty move transcript"}
	}

	tags := parseTags(pgn)
	if tags["SetUp"] == "1" {
		return nil, &MalformedGameError{Reason: "custom starting position"}
	}
	if fen, ok := tags["FEN"]; ok && NormalizeFEN(fen) != NormalizeFEN(StartFEN) {
		return nil, &MalformedGameError{Reason: "custom starting position"}
	}

	tokens := movetextTokens(NormalizeChessDotComPGN(pgn))
	if len(tokens) == 0 {
		return nil, &MalformedGameError{Reason: "no moves in transcript"}
	}

	g := chess.NewGame()
	for i, san := range tokens {
		if err := g.MoveStr(san); err != nil {
			return nil, &ReplayError{Ply: i + 1, Move: san, Err: err}
		}
	}

	positions := g.Positions()
	moves := g.Moves()

	replay := &Replay{
		FENs:  make([]string, 0, len(positions)),
		Moves: make([]ReplayedMove, 0, len(moves)),
	}
	for _, p := range positions {
		replay.FENs = append(replay.FENs, p.String())
	}
	for i, m := range moves {
		replay.Moves = append(replay.Moves, ReplayedMove{
			SAN: chess.AlgebraicNotation{}.Encode(positions[i], m),
			UCI: chess.UCINotation{}.Encode(nil, m),
		})
	}

	if recorded := tags["CurrentPosition"]; recorded != "" {
		last := replay.FENs[len(replay.FENs)-1]
		if NormalizeFEN(recorded) != NormalizeFEN(last) {
			return nil, &MalformedGameError{Reason: "transcript does not reach recorded final position"}
		}
	}

	return replay, nil
}
