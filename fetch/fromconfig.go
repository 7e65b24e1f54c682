package fetch

import (
	cfg "github.com/quillforge/go-fetch/config"
)

// FromConfig applies loaded HTTP defaults to the builder. A zero timeout
// keeps the current default; a zero retry count leaves retries disabled.
func (b *Builder) FromConfig(c *cfg.HTTPConfig) *Builder {
	if c == nil {
		return b
	}
	if c.Timeout > 0 {
		b.config.Timeout = c.Timeout
	}
	if c.Retry.Count > 0 {
		b.config.Retry = &RetryPolicy{
			Count:   c.Retry.Count,
			Backoff: FixedBackoff(c.Retry.Delay),
		}
	}
	return b
}
