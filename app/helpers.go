package app

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"example/chess-dashboard/app/models"
)

var (
	reTags     = regexp.MustCompile(`(?m)^\[.*?\]\s*`)            // [Tag "Value"] lines
	reTagPair  = regexp.MustCompile(`(?m)^\[(\w+)\s+"([^"]*)"\]`) // tag name + value
	reComments = regexp.MustCompile(`\{[^}]*\}`)                  // {...} comments (incl. [%clk ...])
	reNAG      = regexp.MustCompile(`\$\d+`)                      // $1, $2, etc.
	reSpaces   = regexp.MustCompile(`\s+`)
	reMoveNum  = regexp.MustCompile(`^\d+\.+`)                    // "1." / "3..." prefixes
	reEcoMoves = regexp.MustCompile(`-\d.*`)
)

// NormalizeChessDotComPGN removes headers/comments/NAGs and collapses whitespace.
func NormalizeChessDotComPGN(pgn string) string {
	pgn = reTags.ReplaceAllString(pgn, "")
	pgn = reComments.ReplaceAllString(pgn, "")
	pgn = reNAG.ReplaceAllString(pgn, "")
	pgn = reSpaces.ReplaceAllString(strings.TrimSpace(pgn), " ")
	return pgn
}

// parseTags extracts the PGN header tags into a map.
func parseTags(pgn string) map[string]string {
	tags := make(map[string]string)
	for _, m := range reTagPair.FindAllStringSubmatch(pgn, -1) {
		tags[m[1]] = m[2]
	}
	return tags
}

// movetextTokens returns the bare SAN tokens of a normalized movetext,
// dropping move numbers and the game result marker.
func movetextTokens(movetext string) []string {
	var tokens []string
	for _, tok := range strings.Fields(movetext) {
		switch tok {
		case "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		tok = reMoveNum.ReplaceAllString(tok, "")
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// derivePOV resolves the target player's side of a game by case-insensitive
// username comparison. ok is false when the username matches neither side.
func derivePOV(username string, g models.Game) (color, opponent string, oppRating, myRating int, result string, ok bool) {
	u := strings.ToLower(username)
	if strings.ToLower(g.White.Username) == u {
		return "white", g.Black.Username, g.Black.Rating, g.White.Rating, g.White.Result, true
	}
	if strings.ToLower(g.Black.Username) == u {
		return "black", g.White.Username, g.White.Rating, g.Black.Rating, g.Black.Result, true
	}
	return "", "", 0, 0, "", false
}

// NormalizeECO turns an ECO URL or slug into a readable opening name without move suffixes.
func NormalizeECO(ecoURL string) string {
	ecoURL = strings.TrimSpace(ecoURL)
	if ecoURL == "" {
		return ""
	}

	// Trim to slug after "openings/" or last slash.
	if idx := strings.LastIndex(ecoURL, "openings/"); idx != -1 {
		ecoURL = ecoURL[idx+len("openings/"):]
	} else if idx := strings.LastIndex(ecoURL, "/"); idx != -1 {
		ecoURL = ecoURL[idx+1:]
	}

	// Drop query params if any.
	if idx := strings.Index(ecoURL, "?"); idx != -1 {
		ecoURL = ecoURL[:idx]
	}

	// Remove move sequence suffix starting at first "-<digit>"
	if loc := reEcoMoves.FindStringIndex(ecoURL); loc != nil {
		ecoURL = ecoURL[:loc[0]]
	}

	// Replace separators and collapse whitespace.
	ecoURL = strings.ReplaceAll(ecoURL, "...", " ")
	ecoURL = strings.ReplaceAll(ecoURL, "-", " ")
	ecoURL = reSpaces.ReplaceAllString(ecoURL, " ")

	// Drop any trailing tokens that look like move numbers (e.g., "7.h3", "5...Bb6")
	fields := strings.Fields(ecoURL)
	for i, tok := range fields {
		if strings.Contains(tok, "...") {
			fields = fields[:i]
			break
		}
		if strings.IndexFunc(tok, unicode.IsDigit) != -1 {
			fields = fields[:i]
			break
		}
	}

	return strings.TrimSpace(strings.Join(fields, " "))
}

// converts string to int safely
func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func IsEven(number int) bool {
	return number%2 == 0
}

// NormalizeFEN strips move counters and keeps only the structural position:
// <pieces> <side> <castling> <en-passant>
func NormalizeFEN(fen string) string {
	parts := strings.Split(fen, " ")
	if len(parts) < 4 {
		// malformed FEN, return original
		return fen
	}

	pieces := parts[0]
	side := parts[1]
	castling := parts[2]
	ep := parts[3]

	if castling == "" {
		castling = "-"
	}
	if ep == "" {
		ep = "-"
	}

	return pieces + " " + side + " " + castling + " " + ep
}
