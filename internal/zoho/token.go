package zoho

import (
	"sync"
	"time"
)

// expirySkew refreshes slightly early so a token never expires mid-call.
const expirySkew = 60 * time.Second

// TokenCache holds the current access token and its expiry, in memory
// only. Empty at process start; repopulated on demand from the refresh
// token. Get and Set lock individually but the refresh itself does not:
// two callers that both miss may both refresh, which is harmless since
// refresh grants are idempotent and the later Set wins.
type TokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time

	// Now is injectable so tests can drive expiry deterministically.
	Now func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{Now: time.Now}
}

// Get returns the cached token if its expiry is more than expirySkew
// away from now.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return "", false
	}
	if c.Now().After(c.expiry.Add(-expirySkew)) {
		return "", false
	}
	return c.token, true
}

// Set stores a freshly issued token with its lifetime.
func (c *TokenCache) Set(token string, expiresIn time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expiry = c.Now().Add(expiresIn)
}
