// Read-only client for the Chess.com public game archive.

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"example/chess-dashboard/app/models"
)

var httpc = &http.Client{Timeout: 15 * time.Second}

var errUserNotFound = errors.New("user not found")

type archiveIndex struct {
	Archives []string `json:"archives"`
}

type monthlyGames struct {
	Games []models.Game `json:"games"`
}

// GamesForUser pulls the user's games from the last `months` monthly archives,
// newest first, filtered to standard-rules games of the given time class
// (empty = all), capped at `limit`. A month that fails to download is soft-
// skipped; only a failing archive index is a hard error.
func GamesForUser(ctx context.Context, username string, months, limit int, timeClass string) ([]models.GameLite, error) {
	archives, err := fetchArchives(ctx, username)
	if err != nil {
		return nil, err
	}

	// Take last N months (archives are chronological)
	start := len(archives) - months
	if start < 0 {
		start = 0
	}
	target := archives[start:]

	var out []models.GameLite
	for i := len(target) - 1; i >= 0; i-- { // newest first
		mg, err := fetchMonthly(ctx, target[i])
		if err != nil {
			// soft-fail a month; the remaining months still count
			continue
		}
		for j := len(mg.Games) - 1; j >= 0; j-- {
			g := mg.Games[j]
			if g.Rules != "" && g.Rules != "chess" {
				continue
			}
			if timeClass != "" && g.TimeClass != timeClass {
				continue
			}
			color, opp, oppRating, myRating, result, ok := derivePOV(username, g)
			if !ok {
				continue
			}
			customStart := g.InitialSetup != "" && NormalizeFEN(g.InitialSetup) != NormalizeFEN(StartFEN)
			out = append(out, models.GameLite{
				URL:         g.URL,
				When:        g.EndTime,
				Color:       color,
				Opponent:    opp,
				OppRating:   oppRating,
				MyRating:    myRating,
				Result:      result,
				Rated:       g.Rated,
				TimeClass:   g.TimeClass,
				TimeControl: g.TimeControl,
				PGN:         g.PGN,
				ECO:         NormalizeECO(g.ECO),
				CustomStart: customStart,
			})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func fetchArchives(ctx context.Context, username string) ([]string, error) {
	u := fmt.Sprintf("https://api.chess.com/pub/player/%s/games/archives", strings.ToLower(username))
	var idx archiveIndex
	if err := getJSON(ctx, u, &idx); err != nil {
		if httpErr, ok := err.(httpError); ok && httpErr.Status == http.StatusNotFound {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return idx.Archives, nil
}

func fetchMonthly(ctx context.Context, monthURL string) (*monthlyGames, error) {
	var mg monthlyGames
	if err := getJSON(ctx, monthURL, &mg); err != nil {
		return nil, err
	}
	return &mg, nil
}

type httpError struct {
	Status int
	Body   string
}

func (e httpError) Error() string { return fmt.Sprintf("http %d: %s", e.Status, e.Body) }

func getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	// Friendly UA per Chess.com guidelines
	req.Header.Set("User-Agent", "BrilliancyBoard/0.1")

	// basic retry for 429/5xx
	var last httpError
	for attempt := 0; attempt < 3; attempt++ {
		res, err := httpc.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode == http.StatusOK {
			return json.NewDecoder(res.Body).Decode(v)
		}

		// capture body (truncated) for error clarity
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		last = httpError{Status: res.StatusCode, Body: msg.Message}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			time.Sleep(time.Duration(250*(attempt+1)) * time.Millisecond)
			continue
		}
		break
	}
	return last
}
