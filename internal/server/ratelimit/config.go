package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route. Path is matched exactly,
// or as a prefix when it ends in "/". Limit counts requests per Window and 0
// means unlimited. Burst defaults to Limit when 0.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL   time.Duration
	Whitelist map[string]bool
	Blacklist map[string]bool
	Endpoints []EndpointConfig
}

// AnalysisRoutes are the routes that reach the LLM and share the strict tier.
var AnalysisRoutes = []struct{ Method, Path string }{
	{"POST", "/api/roast"},
	{"POST", "/api/roast/upload"},
	{"POST", "/roast"},
}

// LoadConfig reads RATE_LIMIT_* environment variables over the defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         envDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Endpoints: AnalysisEndpoints(
			envInt("RATE_LIMIT_ANALYSIS_LIMIT", 10),
			envDuration("RATE_LIMIT_ANALYSIS_WINDOW", time.Minute),
			envInt("RATE_LIMIT_ANALYSIS_BURST", 3),
		),
	}
}

// AnalysisEndpoints applies one limit to every analysis route.
func AnalysisEndpoints(limit int, window time.Duration, burst int) []EndpointConfig {
	configs := make([]EndpointConfig, 0, len(AnalysisRoutes))
	for _, r := range AnalysisRoutes {
		configs = append(configs, EndpointConfig{
			Path:   r.Path,
			Method: r.Method,
			Limit:  limit,
			Window: window,
			Burst:  burst,
		})
	}
	return configs
}

// MatchEndpoint finds the configuration for a request. Exact paths win over
// prefixes. GET /health is always unlimited. Returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
