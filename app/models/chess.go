package models

type player struct {
	Username string `json:"username"`
	Result   string `json:"result"`
	Rating   int    `json:"rating"`
}

// Model received from chess.com
type Game struct {
	URL          string `json:"url"`
	PGN          string `json:"pgn"`
	FEN          string `json:"fen"` // final position as reported by chess.com
	InitialSetup string `json:"initial_setup"`
	TimeControl  string `json:"time_control"`
	TimeClass    string `json:"time_class"`
	Rated        bool   `json:"rated"`
	EndTime      int64  `json:"end_time"`
	Rules        string `json:"rules"` // "chess", "chess960", ...
	White        player `json:"white"`
	Black        player `json:"black"`
	ECO          string `json:"eco"`
}

// What we hand to the analyzer and return to the frontend (trimmed POV DTO)
type GameLite struct {
	URL         string `json:"url"`
	When        int64  `json:"when_unix"`
	Color       string `json:"color"` // "white" or "black"
	Opponent    string `json:"opponent"`
	OppRating   int    `json:"opponent_rating"`
	MyRating    int    `json:"my_rating"`
	Result      string `json:"result"` // "win","checkmated","resigned", etc. (as Chess.com reports)
	Rated       bool   `json:"rated"`
	TimeClass   string `json:"time_class"`   // blitz/rapid/bullet/daily
	TimeControl string `json:"time_control"` // e.g. "300+0"
	PGN         string `json:"pgn"`
	ECO         string `json:"eco"`
	CustomStart bool   `json:"custom_start,omitempty"` // game began from a non-standard setup
}

// ClassifiedMove is one ply that matched the engine's best move and cleared a
// quality threshold. Plies that don't qualify are never materialized.
type ClassifiedMove struct {
	GameURL   string   `json:"game_url"`
	Ply       int      `json:"ply"` // 1-indexed
	MoveSAN   string   `json:"move_san"`
	MoveUCI   string   `json:"move_uci"`
	FENBefore string   `json:"fen_before"`
	FENAfter  string   `json:"fen_after"`
	Eval      *float64 `json:"eval,omitempty"` // pawns, White's POV
	Mate      *int     `json:"mate,omitempty"`
	Quality   Quality  `json:"quality"`
}

// GameAnalysisSummary is the per-game aggregate, one per input game.
type GameAnalysisSummary struct {
	URL            string           `json:"url"`
	When           int64            `json:"when_unix"`
	Color          string           `json:"color"`
	Opponent       string           `json:"opponent"`
	OppRating      int              `json:"opponent_rating"`
	Result         string           `json:"result"`
	ECO            string           `json:"eco"`
	GreatCount     int              `json:"great_count"`
	BrilliantCount int              `json:"brilliant_count"`
	Moves          []ClassifiedMove `json:"moves"`
	Skipped        bool             `json:"skipped,omitempty"`
	SkipReason     string           `json:"skip_reason,omitempty"`
}

// AnalysisReport is the whole-request payload: every summary plus the batch
// totals the handler sums up. This is also what the response cache stores.
type AnalysisReport struct {
	Username       string                `json:"username"`
	Count          int                   `json:"count"`
	TotalGreat     int                   `json:"total_great"`
	TotalBrilliant int                   `json:"total_brilliant"`
	Games          []GameAnalysisSummary `json:"games"`
	AnalyzedAt     int64                 `json:"analyzed_at_unix"`
}
