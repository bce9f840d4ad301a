package models

import "strings"

// EvaluationResult is the evaluator service's answer for one position.
// Success is the discriminant: when it is false the other fields carry no
// signal beyond Error. Exactly one of Eval/Mate is the active score — when
// Mate is set it takes precedence (the service still fills Eval with a ±999
// sentinel in that case, which callers must ignore).
type EvaluationResult struct {
	FEN      string   `json:"fen"`
	Success  bool     `json:"success"`
	Eval     *float64 `json:"evaluation"` // pawns, positive favors White
	Mate     *int     `json:"mate"`       // plies to mate, positive means White mates
	BestMove string   `json:"bestmove"`   // UCI, e.g. "e2e4"
	Error    string   `json:"error,omitempty"`
}

// Quality is the label assigned to a played move.
type Quality int

const (
	QualityNormal Quality = iota
	QualityGreat
	QualityBrilliant
)

func (q Quality) String() string {
	switch q {
	case QualityGreat:
		return "great"
	case QualityBrilliant:
		return "brilliant"
	default:
		return "normal"
	}
}

// MarshalJSON emits the label, which is what the frontend renders on badges.
func (q Quality) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}

// UnmarshalJSON accepts the label form, so cached reports round-trip.
func (q *Quality) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(b), `"`) {
	case "great":
		*q = QualityGreat
	case "brilliant":
		*q = QualityBrilliant
	default:
		*q = QualityNormal
	}
	return nil
}
