package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config configures the ideas API server
type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	SessionSalt    string
	UploadDir      string
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	LogFormat      string
}

// BoardConfig configures the board presentation server
type BoardConfig struct {
	Port         int
	APIURL       string
	SessionToken string
	UserID       string
	TruncateAt   int
	Debounce     time.Duration
	DefaultImage string
	LogFormat    string
	Dump         bool
}

// ParseFlags validates flags for the ideas API server
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ideas-api", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Directory for uploaded images")
	fs.Float64Var(&cfg.RateLimitRPS, "rps", -1, "Requests per second per client (0 disables)")
	fs.IntVar(&cfg.RateLimitBurst, "burst", 0, "Rate limit burst size")
	fs.StringVar(&cfg.LogFormat, "log", "", "Log format (auto, text or json)")
	origins := fs.String("origins", "", "Comma separated browser origins allowed to call the API with credentials")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	port, err := intFromEnv(cfg.Port, "PORT", 3318)
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = stringFromEnv(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	cfg.UploadDir = stringFromEnv(cfg.UploadDir, "UPLOAD_DIR", "uploads")
	cfg.LogFormat = stringFromEnv(cfg.LogFormat, "LOG_FORMAT", "auto")

	if cfg.RateLimitRPS < 0 {
		cfg.RateLimitRPS = 0
		if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
			rps, err := strconv.ParseFloat(v, 64)
			if err != nil || rps < 0 {
				return Config{}, errors.New("invalid RATE_LIMIT_RPS env variable")
			}
			cfg.RateLimitRPS = rps
		}
	}
	burst, err := intFromEnv(cfg.RateLimitBurst, "RATE_LIMIT_BURST", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitBurst = burst

	cfg.AllowedOrigins = splitList(stringFromEnv(*origins, "CORS_ORIGINS", "http://localhost:3319"))

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

// ParseBoardFlags validates flags for the board presentation server
func ParseBoardFlags(args []string) (BoardConfig, error) {
	var cfg BoardConfig
	var debounceMS int

	fs := flag.NewFlagSet("ideaboard", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.APIURL, "api", "", "Ideas API base URL")
	fs.StringVar(&cfg.SessionToken, "session", "", "Session token (prefer env)")
	fs.StringVar(&cfg.UserID, "user", "", "Session user id (defaults to the id in the session token)")
	fs.IntVar(&cfg.TruncateAt, "truncate", 0, "Card description length")
	fs.IntVar(&debounceMS, "debounce", 0, "Filter debounce window in milliseconds")
	fs.StringVar(&cfg.DefaultImage, "default-image", "", "Image shown for ideas without one")
	fs.StringVar(&cfg.LogFormat, "log", "", "Log format (auto, text or json)")
	fs.BoolVar(&cfg.Dump, "dump", false, "Load the board once, print it and exit")

	if err := fs.Parse(args); err != nil {
		return BoardConfig{}, err
	}

	port, err := intFromEnv(cfg.Port, "PORT", 3319)
	if err != nil {
		return BoardConfig{}, err
	}
	cfg.Port = port

	cfg.APIURL = stringFromEnv(cfg.APIURL, "IDEAS_API_URL", "")
	if cfg.APIURL == "" {
		return BoardConfig{}, errors.New("ideas API URL required (use -api or IDEAS_API_URL env)")
	}

	cfg.SessionToken = stringFromEnv(cfg.SessionToken, "IDEAS_SESSION", "")
	cfg.UserID = stringFromEnv(cfg.UserID, "IDEAS_USER_ID", "")
	cfg.DefaultImage = stringFromEnv(cfg.DefaultImage, "IDEAS_DEFAULT_IMAGE", "/uploads/default.png")
	cfg.LogFormat = stringFromEnv(cfg.LogFormat, "LOG_FORMAT", "auto")

	cfg.TruncateAt, err = intFromEnv(cfg.TruncateAt, "IDEAS_TRUNCATE", 180)
	if err != nil {
		return BoardConfig{}, err
	}
	if cfg.TruncateAt < 2 {
		return BoardConfig{}, errors.New("truncate length must be at least 2")
	}

	debounceMS, err = intFromEnv(debounceMS, "IDEAS_DEBOUNCE_MS", 250)
	if err != nil {
		return BoardConfig{}, err
	}
	cfg.Debounce = time.Duration(debounceMS) * time.Millisecond

	return cfg, nil
}

// splitList splits a comma separated list, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func stringFromEnv(v, key, def string) string {
	if v != "" {
		return v
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return def
}

func intFromEnv(v int, key string, def int) (int, error) {
	if v != 0 {
		return v, nil
	}
	env := os.Getenv(key)
	if env == "" {
		return def, nil
	}
	n, err := strconv.Atoi(env)
	if err != nil {
		return 0, errors.New("invalid " + key + " env variable")
	}
	return n, nil
}
