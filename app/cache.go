// File-based TTL cache for analysis reports, keyed by username. Consulted and
// updated by the HTTP handler; the analyzer itself never touches it.

package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"example/chess-dashboard/app/models"
)

type AnalysisCache struct {
	dir string
	ttl time.Duration
}

type cacheEntry struct {
	StoredAt int64                 `json:"stored_at_unix"`
	Report   models.AnalysisReport `json:"report"`
}

func NewAnalysisCache(dir string, ttl time.Duration) (*AnalysisCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &AnalysisCache{dir: dir, ttl: ttl}, nil
}

// Get returns the cached report for a username, or ok=false on a miss.
// Expired or unreadable entries count as misses and will be overwritten by the
// next Put.
func (c *AnalysisCache) Get(username string) (*models.AnalysisReport, bool) {
	raw, err := os.ReadFile(c.path(username))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if time.Since(time.Unix(entry.StoredAt, 0)) > c.ttl {
		return nil, false
	}
	return &entry.Report, true
}

func (c *AnalysisCache) Put(username string, report models.AnalysisReport) error {
	entry := cacheEntry{
		StoredAt: time.Now().Unix(),
		Report:   report,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	// Write-then-rename so a concurrent Get never sees a torn file.
	tmp, err := os.CreateTemp(c.dir, "analysis-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(username))
}

func (c *AnalysisCache) path(username string) string {
	return filepath.Join(c.dir, sanitizeKey(username)+".json")
}

// sanitizeKey keeps cache filenames safe regardless of what arrives in the URL.
func sanitizeKey(username string) string {
	username = strings.ToLower(username)
	var b strings.Builder
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('~')
		}
	}
	return b.String()
}
