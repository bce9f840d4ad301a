// Talks to the external stockfish evaluation service over HTTP and normalizes
// every failure mode into an EvaluationResult with Success=false.

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"example/chess-dashboard/app/models"
)

// Evaluator is the one call the analyzer needs from the evaluation service.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string, depth int) models.EvaluationResult
}

// EvaluatorClient sends single positions to the stockfish server's /analyze
// endpoint. One request per call, no retry; the caller decides what a failed
// evaluation means for the ply in question.
type EvaluatorClient struct {
	baseURL  string
	maxDepth int
	httpc    *http.Client
	log      zerolog.Logger
}

func NewEvaluatorClient(baseURL string, maxDepth int, timeout time.Duration, log zerolog.Logger) *EvaluatorClient {
	if maxDepth <= 0 {
		maxDepth = 15
	}
	return &EvaluatorClient{
		baseURL:  baseURL,
		maxDepth: maxDepth,
		httpc:    &http.Client{Timeout: timeout},
		log:      log,
	}
}

type analyzeRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

// Evaluate scores one position. It never returns a Go error: transport
// failures, non-2xx statuses, and responses without a best move all come back
// as Success=false with a descriptive Error, so callers treat every return
// value uniformly.
func (c *EvaluatorClient) Evaluate(ctx context.Context, fen string, depth int) models.EvaluationResult {
	if depth < 1 {
		depth = 1
	}
	if depth > c.maxDepth {
		depth = c.maxDepth
	}

	body, err := json.Marshal(analyzeRequest{FEN: fen, Depth: depth})
	if err != nil {
		return c.failure(fen, fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return c.failure(fen, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return c.failure(fen, fmt.Sprintf("evaluator unreachable: %v", err))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return c.failure(fen, fmt.Sprintf("read response: %v", err))
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn().Str("fen", fen).Int("depth", depth).
			Int("status", res.StatusCode).Bytes("body", truncate(raw, 512)).
			Msg("evaluator returned undecodable body")
		return c.failure(fen, fmt.Sprintf("decode response (http %d): %v", res.StatusCode, err))
	}

	if res.StatusCode != http.StatusOK || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("evaluator rejected position (http %d)", res.StatusCode)
		}
		c.log.Warn().Str("fen", fen).Int("depth", depth).
			Int("status", res.StatusCode).Str("error", msg).
			Msg("evaluation failed")
		return c.failure(fen, msg)
	}

	if result.BestMove == "" {
		c.log.Warn().Str("fen", fen).Int("depth", depth).
			Bytes("body", truncate(raw, 512)).
			Msg("evaluator response missing best move")
		return c.failure(fen, "evaluator response missing best move")
	}

	c.log.Debug().Str("fen", fen).Int("depth", depth).
		Str("bestmove", result.BestMove).
		Msg("position evaluated")
	result.FEN = fen
	return result
}

func (c *EvaluatorClient) failure(fen, msg string) models.EvaluationResult {
	return models.EvaluationResult{FEN: fen, Success: false, Error: msg}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
