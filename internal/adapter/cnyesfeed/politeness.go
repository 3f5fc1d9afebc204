package cnyesfeed

import (
	"math/rand"
	"time"

	"github.com/user/stocknews-service/internal/repository"
)

const (
	feedOrigin = "https://news.cnyes.com/"

	minRetryBackoff = 5 * time.Second
	maxRetryBackoff = 10 * time.Second
	minPageDelay    = 3 * time.Second
	maxPageDelay    = 7 * time.Second
)

// Browser identities rotated across requests to reduce naive blocking.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.159 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36",
}

// RandomPoliteness is the default Politeness strategy: a pseudo-random
// identity per call and uniform jitter in the reference delay bands.
type RandomPoliteness struct {
	userAgents []string
}

// NewRandomPoliteness creates the default strategy with the built-in
// user-agent pool.
func NewRandomPoliteness() repository.Politeness {
	return &RandomPoliteness{userAgents: defaultUserAgents}
}

func (p *RandomPoliteness) IdentityHeaders() map[string]string {
	return map[string]string{
		"Origin":     feedOrigin,
		"Referer":    feedOrigin,
		"User-Agent": p.userAgents[rand.Intn(len(p.userAgents))],
	}
}

func (p *RandomPoliteness) RetryBackoff() time.Duration {
	return uniformDuration(minRetryBackoff, maxRetryBackoff)
}

func (p *RandomPoliteness) PageDelay() time.Duration {
	return uniformDuration(minPageDelay, maxPageDelay)
}

func uniformDuration(min, max time.Duration) time.Duration {
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
