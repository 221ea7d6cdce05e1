package advising

import (
	"context"
	"slices"
	"sync"

	"github.com/alexanderramin/compass/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResourceFeed holds the resource list the dashboard shows. A failed or
// malformed fetch never clears it; the previous list stays on screen.
type ResourceFeed struct {
	fetcher ResourceFetcher
	log     *zap.Logger
	group   singleflight.Group

	mu        sync.Mutex
	resources []domain.Resource
	gen       uint64
}

// NewResourceFeed creates an empty feed backed by fetcher.
func NewResourceFeed(fetcher ResourceFetcher, log *zap.Logger) *ResourceFeed {
	return &ResourceFeed{
		fetcher:   fetcher,
		log:       log.Named("resources"),
		resources: []domain.Resource{},
	}
}

// Current returns a copy of the displayed list.
func (f *ResourceFeed) Current() []domain.Resource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.resources)
}

// Refresh fetches resources for major and query and returns the list to
// display. Identical concurrent refreshes share one request. A result that
// settles after a newer refresh was issued is dropped. The returned error
// is informational; the list is always usable.
func (f *ResourceFeed) Refresh(ctx context.Context, major, query string) ([]domain.Resource, error) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	v, err, _ := f.group.Do(major+"\x00"+query, func() (any, error) {
		return f.fetcher.FetchResources(ctx, major, query)
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.log.Warn("resource fetch discarded",
			zap.String("major", major),
			zap.String("query", query),
			zap.Error(err))
		return slices.Clone(f.resources), err
	}
	if gen != f.gen {
		f.log.Debug("stale resource response dropped", zap.String("major", major))
		return slices.Clone(f.resources), nil
	}
	f.resources = slices.Clone(v.([]domain.Resource))
	return slices.Clone(f.resources), nil
}
