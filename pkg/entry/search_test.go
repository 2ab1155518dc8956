package entry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultCollector struct {
	mu      sync.Mutex
	results []SearchResult
}

func (c *resultCollector) add(r SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *resultCollector) snapshot() []SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SearchResult, len(c.results))
	copy(out, c.results)
	return out
}

func TestSearcher_DebouncesKeystrokes(t *testing.T) {
	api := &fakeAPI{
		searchFn: func(query string, limit int) ([]Customer, error) {
			return []Customer{namedCustomer(query)}, nil
		},
	}
	collector := &resultCollector{}
	s := NewSearcher(api, scopedSession(), 20*time.Millisecond, collector.add)
	defer s.Close()

	ctx := context.Background()
	s.SetQuery(ctx, "a")
	s.SetQuery(ctx, "al")
	s.SetQuery(ctx, "ali")

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Only the last keystroke made it to the server.
	searches, _, _, _, _ := api.calls()
	assert.Equal(t, 1, searches)
	assert.Equal(t, "ali", collector.snapshot()[0].Query)
}

func TestSearcher_DropsStaleResponses(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan string, 2)
	api := &fakeAPI{
		searchFn: func(query string, limit int) ([]Customer, error) {
			entered <- query
			if query == "old" {
				<-release
			}
			return []Customer{namedCustomer(query)}, nil
		},
	}
	collector := &resultCollector{}
	s := NewSearcher(api, scopedSession(), time.Millisecond, collector.add)
	defer s.Close()

	ctx := context.Background()

	// The first query stalls in flight; a newer one is issued and lands first.
	go s.Flush(ctx, "old")
	require.Equal(t, "old", <-entered)

	s.Flush(ctx, "new")
	require.Equal(t, "new", <-entered)
	close(release)

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) >= 1
	}, time.Second, 5*time.Millisecond)

	// Give the stale response time to arrive, then confirm it was dropped.
	time.Sleep(50 * time.Millisecond)
	results := collector.snapshot()
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Query)
}

func TestSearcher_CloseDropsPendingWork(t *testing.T) {
	api := &fakeAPI{}
	collector := &resultCollector{}
	s := NewSearcher(api, scopedSession(), 10*time.Millisecond, collector.add)

	s.SetQuery(context.Background(), "ali")
	s.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, collector.snapshot())
	searches, _, _, _, _ := api.calls()
	assert.Zero(t, searches)
}
