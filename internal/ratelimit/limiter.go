package ratelimit

import (
	"context"
	"math"
	"time"

	"basegraph.app/roster/core/config"
)

type Tier string

const (
	// TierStrict gates invitation creation.
	TierStrict Tier = "strict"
	// TierNormal gates ordinary API reads such as invitation listing.
	TierNormal  Tier = "normal"
	TierLiberal Tier = "liberal"
)

type Rule struct {
	Limit  int
	Window time.Duration
}

// Decision describes one request against its tier.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until the window resets, set only when denied.
	RetryAfter int
}

type Limiter struct {
	store Store
	rules map[Tier]Rule
	now   func() time.Time
}

func NewLimiter(store Store, cfg config.RateLimitConfig) *Limiter {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		store: store,
		rules: map[Tier]Rule{
			TierStrict:  {Limit: orDefault(cfg.Strict, 5), Window: window},
			TierNormal:  {Limit: orDefault(cfg.Normal, 100), Window: window},
			TierLiberal: {Limit: orDefault(cfg.Liberal, 1000), Window: window},
		},
		now: time.Now,
	}
}

// Allow counts one request from client against tier. Tiers keep separate
// counters for the same client. Unknown tiers are always allowed.
func (l *Limiter) Allow(ctx context.Context, tier Tier, client string) (Decision, error) {
	rule, ok := l.rules[tier]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	res, err := l.store.Increment(ctx, Key(tier, client), rule.Window)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{
		Allowed:   res.Count <= int64(rule.Limit),
		Limit:     rule.Limit,
		Remaining: max(0, rule.Limit-int(res.Count)),
		ResetAt:   res.ResetAt,
	}
	if !d.Allowed {
		d.RetryAfter = retryAfter(res.ResetAt.Sub(l.now()))
	}
	return d, nil
}

func (l *Limiter) Rule(tier Tier) (Rule, bool) {
	r, ok := l.rules[tier]
	return r, ok
}

func Key(tier Tier, client string) string {
	if client == "" {
		client = "unknown"
	}
	return string(tier) + ":" + client
}

func retryAfter(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
