package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"pockd/internal/domain"
	"pockd/internal/pocket"
)

// SyncService rebuilds the local mirror from the remote source of truth.
// Full wipe-and-replace is the only reconciliation strategy: recomputing the
// entire mirror on every sync sidesteps reconciling partial remote edits
// against stale local rows.
type SyncService struct {
	gateway  Gateway
	articles ArticleStore
	tags     TagStore
	links    ArticleTagStore
	logger   *slog.Logger

	syncing atomic.Bool
}

func NewSyncService(
	gateway Gateway,
	articles ArticleStore,
	tags TagStore,
	links ArticleTagStore,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		gateway:  gateway,
		articles: articles,
		tags:     tags,
		links:    links,
		logger:   logger.With("component", "sync"),
	}
}

// Sync performs a full resynchronization and reports what was stored. The
// guard is advisory single-flight: a call that finds a sync already in flight
// returns (nil, nil) without fetching or touching the mirror.
//
// The previous mirror survives any failure before the wipe step. A write
// failure after the wipe leaves the mirror partial; the error is surfaced and
// the next successful sync repairs it.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug("sync already in flight, skipping")
		return nil, nil
	}
	defer s.syncing.Store(false)

	start := time.Now()
	s.logger.Info("starting full resync")

	remote, err := s.gateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	// One unmappable record aborts the whole sync, before any local write.
	articles := make([]domain.Article, 0, len(remote))
	for _, r := range remote {
		article, err := pocket.ToArticle(r)
		if err != nil {
			return nil, fmt.Errorf("map article %s: %w", r.ItemID, err)
		}
		articles = append(articles, article)
	}

	tags, links := deriveTagTables(articles)

	if err := s.articles.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear articles: %w", err)
	}
	if err := s.tags.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear tags: %w", err)
	}
	if err := s.links.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear article tags: %w", err)
	}

	if err := s.articles.BulkPut(ctx, articles); err != nil {
		return nil, fmt.Errorf("store articles: %w", err)
	}
	if err := s.tags.BulkPut(ctx, tags); err != nil {
		return nil, fmt.Errorf("store tags: %w", err)
	}
	if err := s.links.BulkPut(ctx, links); err != nil {
		return nil, fmt.Errorf("store article tags: %w", err)
	}

	stats := &domain.SyncStats{
		Articles: len(articles),
		Tags:     len(tags),
		Links:    len(links),
		Duration: time.Since(start),
	}

	s.logger.Info("sync completed",
		"articles", stats.Articles,
		"tags", stats.Tags,
		"links", stats.Links,
		"duration", stats.Duration,
	)

	return stats, nil
}

// deriveTagTables normalizes the denormalized per-article tag lists into the
// tag universe and the full association set. Each referenced tag appears
// exactly once; each (article, tag) pair yields exactly one association.
func deriveTagTables(articles []domain.Article) ([]domain.Tag, []domain.ArticleTagMap) {
	seen := make(map[string]struct{})
	var tags []domain.Tag
	var links []domain.ArticleTagMap

	for _, article := range articles {
		for _, tagID := range article.Tags {
			if _, ok := seen[tagID]; !ok {
				seen[tagID] = struct{}{}
				tags = append(tags, domain.Tag{ID: tagID, Value: tagID})
			}
			links = append(links, domain.ArticleTagMap{ItemID: article.ID, TagID: tagID})
		}
	}

	return tags, links
}
