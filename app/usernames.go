// Spreadsheet-backed username source: a published Google Sheet exposed as a
// CSV export URL, first column = candidate usernames.

package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
)

// FetchUsernames downloads the sheet's CSV export and returns the first-column
// usernames, skipping blanks and a leading header row.
func FetchUsernames(ctx context.Context, csvURL string) ([]string, error) {
	if csvURL == "" {
		return nil, fmt.Errorf("username sheet URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", csvURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, httpError{Status: res.StatusCode, Body: "fetching username sheet"}
	}

	reader := csv.NewReader(res.Body)
	reader.FieldsPerRecord = -1 // sheets pad rows unevenly

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse username sheet: %w", err)
	}

	var usernames []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 && strings.EqualFold(name, "username") {
			continue
		}
		usernames = append(usernames, name)
	}
	return usernames, nil
}
