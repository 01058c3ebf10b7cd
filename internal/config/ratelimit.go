package config

import "time"

// RateLimitConfig drives the Redis token-bucket limiter.  Capacity is
// the bucket size, RefillTokens/RefillInterval the refill rate, TTL
// how long idle buckets survive in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig builds a RateLimitConfig from the environment.
// Values are clamped to sane minimums so a misconfigured limiter
// never blocks all traffic or expires its own state mid-window.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiDef(getenv("RATE_LIMIT_CAPACITY", ""), 60),
		RefillTokens:   atoiDef(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
		RefillInterval: durDef(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
		TTL:            durDef(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	if n := atoi(s); n != 0 || s == "0" {
		return n
	}
	return def
}

func durDef(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
