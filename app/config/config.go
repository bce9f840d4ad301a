package config

import (
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Logs      LogConfig
	Server    ServerConfig
	Evaluator EvaluatorConfig
	Analysis  AnalysisConfig
	Cache     CacheConfig
	Sheets    SheetsConfig
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

type ServerConfig struct {
	Addr string
}

type EvaluatorConfig struct {
	// Base URL of the stockfish evaluation service, e.g. http://localhost:5000
	URL      string
	Timeout  time.Duration
	Depth    int
	MaxDepth int // the service rejects anything above its own ceiling
}

type AnalysisConfig struct {
	Months    int           // how many monthly archives to pull
	NumGames  int           // cap on games per analysis run
	TimeClass string        // blitz/rapid/bullet/daily, empty = all
	Pace      time.Duration // minimum spacing between evaluator calls
}

type CacheConfig struct {
	Dir string
	TTL time.Duration
}

type SheetsConfig struct {
	// CSV export URL of the published usernames sheet
	CSVURL string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Logs: LogConfig{
			Style: envStr("LOG_STYLE", "console"),
			Level: envStr("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Addr: envStr("SERVER_ADDR", "0.0.0.0:8080"),
		},
		Evaluator: EvaluatorConfig{
			URL:      envStr("EVALUATOR_URL", "http://localhost:5000"),
			Timeout:  time.Duration(envInt("EVALUATOR_TIMEOUT_MS", 10000)) * time.Millisecond,
			Depth:    envInt("EVALUATOR_DEPTH", 12),
			MaxDepth: envInt("EVALUATOR_MAX_DEPTH", 15),
		},
		Analysis: AnalysisConfig{
			Months:    envInt("ANALYSIS_MONTHS", 1),
			NumGames:  envInt("ANALYSIS_NUM_GAMES", 10),
			TimeClass: envStr("ANALYSIS_TIME_CLASS", "blitz"),
			Pace:      time.Duration(envInt("ANALYSIS_PACE_MS", 500)) * time.Millisecond,
		},
		Cache: CacheConfig{
			Dir: envStr("CACHE_DIR", "./cache"),
			TTL: time.Duration(envInt("CACHE_TTL_MIN", 60)) * time.Minute,
		},
		Sheets: SheetsConfig{
			CSVURL: os.Getenv("SHEET_CSV_URL"),
		},
	}

	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
