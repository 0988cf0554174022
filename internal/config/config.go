// Package config loads the configuration surface of spec.md §6.5, the
// way internal/gateway/config/config.go loads the teacher's Config:
// godotenv for a local .env file (ignored if absent), flag for process
// overrides, then environment variables, with firstNonEmpty-style
// defaulting.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the single configuration record recognized by the host
// (§6.5).
type Config struct {
	// DefaultSpace supplies space context when neither flag nor
	// pipeline provides one.
	DefaultSpace string
	// CacheTTL is the per-entry TTL for all resolver indexes.
	CacheTTL time.Duration
	// CaseInsensitive enables Unicode case-folding on cache keys.
	CaseInsensitive bool
	// APIEndpoint is the base URL for all requests.
	APIEndpoint string
	// RequestTimeout is the per-request timeout.
	RequestTimeout time.Duration
	// AppName is sent in the challenge request body (original_source/
	// supplement to §6.5, not present in spec.md's table).
	AppName string
}

const (
	defaultCacheTTL        = 300 * time.Second
	defaultAPIEndpoint     = "http://localhost:31009"
	defaultRequestTimeout  = 30 * time.Second
	defaultAppName         = "kbclient"
)

// Load builds a Config from (in ascending priority) built-in defaults,
// a local .env file, environment variables, and process flags.
func Load() (*Config, error) {
	_ = godotenv.Load()

	defaultSpace := flag.String("default-space", os.Getenv("KB_DEFAULT_SPACE"), "space used when no --space flag or piped context is given")
	cacheTTL := flag.String("cache-ttl", firstNonEmpty(os.Getenv("KB_CACHE_TTL"), defaultCacheTTL.String()), "resolver cache entry TTL, e.g. 300s")
	caseInsensitive := flag.Bool("case-insensitive", parseBoolDefault(os.Getenv("KB_CASE_INSENSITIVE"), true), "fold cache keys with Unicode case-folding")
	apiEndpoint := flag.String("api-endpoint", firstNonEmpty(os.Getenv("KB_API_ENDPOINT"), defaultAPIEndpoint), "base URL of the local service")
	requestTimeout := flag.String("request-timeout", firstNonEmpty(os.Getenv("KB_REQUEST_TIMEOUT"), defaultRequestTimeout.String()), "per-request timeout, e.g. 30s")
	appName := flag.String("app-name", firstNonEmpty(os.Getenv("KB_APP_NAME"), defaultAppName), "app name sent to the challenge endpoint")

	if !flag.Parsed() {
		flag.Parse()
	}

	ttl, err := time.ParseDuration(*cacheTTL)
	if err != nil {
		ttl = defaultCacheTTL
	}
	timeout, err := time.ParseDuration(*requestTimeout)
	if err != nil {
		timeout = defaultRequestTimeout
	}

	return &Config{
		DefaultSpace:    strings.TrimSpace(*defaultSpace),
		CacheTTL:        ttl,
		CaseInsensitive: *caseInsensitive,
		APIEndpoint:     strings.TrimSpace(*apiEndpoint),
		RequestTimeout:  timeout,
		AppName:         strings.TrimSpace(*appName),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseBoolDefault(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
