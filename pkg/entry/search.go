package entry

import (
	"context"
	"sync"
	"time"
)

// DefaultSearchDebounce is how long the searcher waits after the last
// keystroke before issuing a remote query.
const DefaultSearchDebounce = 300 * time.Millisecond

// SearchResult is delivered to the searcher's callback when a remote query
// lands and is still the latest one issued.
type SearchResult struct {
	Query     string
	Customers []Customer
	Err       error
}

// Searcher debounces keystrokes into remote customer searches. Responses are
// applied last-issued-wins: a slow response for an old query is discarded
// once a newer query has been issued, no matter the arrival order.
type Searcher struct {
	api      API
	sess     Session
	delay    time.Duration
	onResult func(SearchResult)

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
}

// NewSearcher creates a debounced searcher. onResult is called from the
// goroutine that completes the remote call.
func NewSearcher(api API, sess Session, delay time.Duration, onResult func(SearchResult)) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Searcher{
		api:      api,
		sess:     sess,
		delay:    delay,
		onResult: onResult,
	}
}

// SetQuery registers the latest typed query. The remote call fires only after
// the debounce window passes with no newer input.
func (s *Searcher) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Each keystroke invalidates everything issued before it.
	s.gen++
	gen := s.gen

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.issue(ctx, gen, query)
	})
}

func (s *Searcher) issue(ctx context.Context, gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	customers, err := s.api.SearchCustomers(ctx, s.sess, query, 10)

	s.mu.Lock()
	stale := s.closed || gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}

	if s.onResult != nil {
		s.onResult(SearchResult{Query: query, Customers: customers, Err: err})
	}
}

// Flush cancels the pending debounce and issues the query immediately. Used
// when the user confirms input before the window elapses.
func (s *Searcher) Flush(ctx context.Context, query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.issue(ctx, gen, query)
}

// Close stops the searcher; pending and in-flight responses are dropped.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
