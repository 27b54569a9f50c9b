package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	defaultSubreddits = []string{"RobotVacuums", "homeautomation", "BuyItForLife", "Frugal"}

	defaultBrands = []string{
		"roomba", "roborock", "shark", "eufy", "neato", "bissell",
		"dreame", "mova", "narwal", "yeedi", "evovacs", "lefant", "xiaomi",
	}

	defaultKeywords = append(append([]string{}, defaultBrands...),
		"robot vacuum", "robot mop", "vacuum robot", "mop combo")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	OutputDir   string
	SnapshotDir string
	CorpusPath  string
	ReportPath  string

	NavigationTimeout time.Duration
	ReadyTimeout      time.Duration
	Headless          bool
	ChromeBin         string
	ProfileDir        string
	UserAgent         string
	CloudflareBypass  bool

	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	RedditLimit        int
	Subreddits         []string
	Keywords           []string
	Brands             []string

	AmazonURL       string
	BestBuyURL      string
	VacuumWarsURL   string
	ScoreTableLabel string
	SitemapURL      string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OutputDir:   getEnv("OUTPUT_DIR", "./data/raw"),
		SnapshotDir: getEnv("SNAPSHOT_DIR", "."),
		CorpusPath:  getEnv("CORPUS_PATH", "vacuum_discussions.json"),
		ReportPath:  getEnv("REPORT_PATH", "brand_sentiment.csv"),

		NavigationTimeout: getEnvDuration("NAVIGATION_TIMEOUT", 60*time.Second),
		ReadyTimeout:      getEnvDuration("READY_TIMEOUT", 15*time.Second),
		Headless:          getEnvBool("HEADLESS", true),
		ChromeBin:         getEnv("CHROME_BIN", ""),
		ProfileDir:        getEnv("BROWSER_PROFILE_DIR", "./browser_profile"),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"),
		CloudflareBypass: getEnvBool("CLOUDFLARE_BYPASS", true),

		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		RedditLimit:        getEnvInt("REDDIT_LIMIT", 200),
		Subreddits:         getEnvList("REDDIT_SUBREDDITS", defaultSubreddits),
		Keywords:           getEnvList("REDDIT_KEYWORDS", defaultKeywords),
		Brands:             getEnvList("BRANDS", defaultBrands),

		AmazonURL:       getEnv("AMAZON_URL", "https://www.amazon.com/Mova-Self-Cleaning-Navigation-Overcoming-DuoSolution/dp/B0F3WQTM9Q/"),
		BestBuyURL:      getEnv("BESTBUY_URL", ""),
		VacuumWarsURL:   getEnv("VACUUMWARS_URL", "https://vacuumwars.com/mova-v50-ultra-complete-review/"),
		ScoreTableLabel: getEnv("SCORE_TABLE_LABEL", "Vacuum Wars Scores"),
		SitemapURL:      getEnv("SITEMAP_URL", "https://vacuumwars.com/sitemap/"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
