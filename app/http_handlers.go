package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"example/chess-dashboard/app/config"
	"example/chess-dashboard/app/logx"
	"example/chess-dashboard/app/models"
)

// Package-level wiring shared by every handler, set once by MustInit.
var (
	appCfg        *config.Config
	appLog        zerolog.Logger
	analyzer      *Analyzer
	responseCache *AnalysisCache
)

// MustInit loads config and builds the analyzer, evaluator client, and
// response cache. It returns the loaded config so main can pick up the listen
// address; any failure is fatal since the server is useless without them.
func MustInit() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	appCfg = cfg
	appLog = logx.NewLogger(cfg.Logs.Style, cfg.Logs.Level)

	evalClient := NewEvaluatorClient(cfg.Evaluator.URL, cfg.Evaluator.MaxDepth, cfg.Evaluator.Timeout, appLog)
	analyzer = NewAnalyzer(evalClient, NewPacer(cfg.Analysis.Pace), cfg.Evaluator.Depth, appLog)

	cache, err := NewAnalysisCache(cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		appLog.Fatal().Err(err).Str("dir", cfg.Cache.Dir).Msg("failed to create cache dir")
	}
	responseCache = cache

	return cfg
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetChessGames fetches a user's recent games, runs the brilliance analysis,
// and returns one summary per game plus batch totals. Responses are served
// from the file cache when a fresh entry exists (bypass with ?nocache=1).
func GetChessGames(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}

	if c.Query("nocache") == "" {
		if report, ok := responseCache.Get(username); ok {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, report)
			return
		}
	}
	c.Header("X-Cache", "MISS")

	// Optional: allow ?months=6 (default from config)
	months := appCfg.Analysis.Months
	if m := c.Query("months"); m != "" {
		if v, err := parsePositiveInt(m); err == nil && v > 0 && v <= 24 {
			months = v
		}
	}
	limit := appCfg.Analysis.NumGames
	if q := c.Query("limit"); q != "" {
		if v, err := parsePositiveInt(q); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	// Paced evaluator calls make analysis slow by construction; give the run
	// room while still honoring client disconnects.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	games, err := GamesForUser(ctx, username, months, limit, appCfg.Analysis.TimeClass)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, errUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// Rating hint from the most recent game; 0 leaves thresholds untouched.
	rating := 0
	if len(games) > 0 {
		rating = games[0].MyRating
	}

	summaries := analyzer.AnalyzeGames(ctx, games, username, rating)

	report := models.AnalysisReport{
		Username:   username,
		Count:      len(summaries),
		Games:      summaries,
		AnalyzedAt: time.Now().Unix(),
	}
	for _, s := range summaries {
		report.TotalGreat += s.GreatCount
		report.TotalBrilliant += s.BrilliantCount
	}

	if err := responseCache.Put(username, report); err != nil {
		appLog.Warn().Err(err).Str("user", username).Msg("failed to cache report")
		// not fatal for the endpoint, we still return a 200 w/ the report
	}

	c.JSON(http.StatusOK, report)
}

// GetUsernames returns the candidate usernames from the configured sheet.
func GetUsernames(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	usernames, err := FetchUsernames(ctx, appCfg.Sheets.CSVURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(usernames),
		"usernames": usernames,
	})
}
