package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/rule34/cache"
)

// CacheStatser exposes per-namespace entry counts.
type CacheStatser interface {
	Stats() cache.Stats
}

// CacheCheckerConfig configures the cache size checker.
type CacheCheckerConfig struct {
	// WarningEntries is the total entry count that triggers degraded status.
	// Default: 100000
	WarningEntries int

	// CriticalEntries is the total entry count that triggers unhealthy status.
	// Zero disables the critical level.
	CriticalEntries int
}

// CacheChecker watches the size of a cache that never evicts.
type CacheChecker struct {
	cache  CacheStatser
	config CacheCheckerConfig
}

// NewCacheChecker creates a cache size checker.
func NewCacheChecker(c CacheStatser, config CacheCheckerConfig) *CacheChecker {
	if config.WarningEntries <= 0 {
		config.WarningEntries = 100000
	}
	if config.CriticalEntries > 0 && config.CriticalEntries < config.WarningEntries {
		config.CriticalEntries = config.WarningEntries
	}
	return &CacheChecker{cache: c, config: config}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "cache"
}

// Check reports the current entry counts.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	stats := c.cache.Stats()
	total := stats.Total()
	details := map[string]any{
		cache.NamespaceID:     stats.IDs,
		cache.NamespaceChange: stats.Changes,
		cache.NamespaceTags:   stats.Tags,
		"total":               total,
	}

	switch {
	case c.config.CriticalEntries > 0 && total >= c.config.CriticalEntries:
		return Unhealthy(fmt.Sprintf("cache holds %d entries", total), ErrCheckFailed).WithDetails(details)
	case total >= c.config.WarningEntries:
		return Degraded(fmt.Sprintf("cache holds %d entries", total)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("cache holds %d entries", total)).WithDetails(details)
	}
}
