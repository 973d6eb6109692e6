package source

import (
	"fmt"
	"log"
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// Chain tries fetchers in priority order and returns the first non-empty
// result. One call uses a single source's full response; results from
// different sources are never merged.
type Chain struct {
	Fetchers []Fetcher
}

// NewChain creates a fallback chain over the given fetchers.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{Fetchers: fetchers}
}

// FetchDraws walks the chain. Every failure is logged and the next source
// is tried; ErrAllSourcesFailed is returned once the chain is exhausted.
// An incremental fetch (non-zero since) that succeeds but finds nothing
// newer is a success with zero draws, not a failure. The name of the source
// that produced the result is returned alongside it.
func (c *Chain) FetchDraws(since time.Time) ([]model.Draw, string, error) {
	for _, f := range c.Fetchers {
		draws, err := f.FetchDraws(since)
		if err != nil {
			log.Printf("[WARN] source %s failed: %v", f.Name(), err)
			continue
		}
		if len(draws) == 0 {
			if since.IsZero() {
				// An empty full-history response means the source is broken.
				log.Printf("[WARN] source %s returned no draws", f.Name())
				continue
			}
			// A successful incremental fetch with nothing newer than since
			// means the history is already up to date.
			log.Printf("[INFO] source %s has no draws newer than %s", f.Name(), since.Format("2006-01-02"))
			return nil, f.Name(), nil
		}
		log.Printf("[INFO] loaded %d draws from %s", len(draws), f.Name())
		return draws, f.Name(), nil
	}
	return nil, "", fmt.Errorf("%w: tried %d sources", ErrAllSourcesFailed, len(c.Fetchers))
}
