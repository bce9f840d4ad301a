package app

import (
	"testing"
	"time"

	"example/chess-dashboard/app/models"
)

func TestAnalysisCacheRoundtrip(t *testing.T) {
	cache, err := NewAnalysisCache(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewAnalysisCache: %v", err)
	}

	report := models.AnalysisReport{
		Username:       "alice",
		Count:          2,
		TotalGreat:     1,
		TotalBrilliant: 1,
		Games: []models.GameAnalysisSummary{
			{URL: "https://game/1", GreatCount: 1},
			{URL: "https://game/2", BrilliantCount: 1},
		},
	}
	if err := cache.Put("Alice", report); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Lookup is case-insensitive via key sanitization.
	got, ok := cache.Get("alice")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.Username != "alice" || got.TotalGreat != 1 || len(got.Games) != 2 {
		t.Fatalf("cached report mismatch: %+v", got)
	}
}

func TestAnalysisCacheMissForUnknownUser(t *testing.T) {
	cache, err := NewAnalysisCache(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewAnalysisCache: %v", err)
	}
	if _, ok := cache.Get("nobody"); ok {
		t.Fatalf("expected miss for unknown user")
	}
}

func TestAnalysisCacheExpiry(t *testing.T) {
	// Negative TTL means everything is already expired.
	cache, err := NewAnalysisCache(t.TempDir(), -time.Second)
	if err != nil {
		t.Fatalf("NewAnalysisCache: %v", err)
	}
	if err := cache.Put("alice", models.AnalysisReport{Username: "alice"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := cache.Get("alice"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestSanitizeKey(t *testing.T) {
	if got := sanitizeKey("Alice"); got != "alice" {
		t.Fatalf("sanitizeKey(Alice) = %q", got)
	}
	if got := sanitizeKey("../etc/passwd"); got != "~~~etc~passwd" {
		t.Fatalf("sanitizeKey path traversal = %q", got)
	}
}
