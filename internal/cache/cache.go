package cache

import (
	"context"
	"time"

	"github.com/kmutua/dukabook-api/internal/domain/entity"
)

// SearchCache caches customer search results per shop and query. A miss is
// never an error; callers fall through to the database.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]*entity.Customer, bool, error)
	Set(ctx context.Context, key string, customers []*entity.Customer, ttl time.Duration) error
	Invalidate(ctx context.Context, prefix string) error
}

type NoopSearchCache struct{}

func (NoopSearchCache) Get(_ context.Context, _ string) ([]*entity.Customer, bool, error) {
	return nil, false, nil
}

func (NoopSearchCache) Set(_ context.Context, _ string, _ []*entity.Customer, _ time.Duration) error {
	return nil
}

func (NoopSearchCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
