package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pockd/internal/domain"
	"pockd/internal/pocket"
)

// LibraryService answers reads over the local mirror and applies dual-write
// mutations: the remote gateway commits first, the mirror reconciles only on
// confirmed success. A remote failure aborts with no local write.
type LibraryService struct {
	gateway  Gateway
	articles ArticleStore
	tags     TagStore
	links    ArticleTagStore
	logger   *slog.Logger
}

func NewLibraryService(
	gateway Gateway,
	articles ArticleStore,
	tags TagStore,
	links ArticleTagStore,
	logger *slog.Logger,
) *LibraryService {
	return &LibraryService{
		gateway:  gateway,
		articles: articles,
		tags:     tags,
		links:    links,
		logger:   logger.With("component", "library"),
	}
}

// Get returns one article with its tag ids attached.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.links.TagIDsByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Tags = tags
	return article, nil
}

// Query runs a filtered, sorted, paginated read. A tag filter is resolved
// through the association table into an id set (intersected with an explicit
// id filter) before the article store is consulted.
func (s *LibraryService) Query(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	if q.TagID != "" {
		itemIDs, err := s.links.ItemIDsByTag(ctx, q.TagID)
		if err != nil {
			return nil, fmt.Errorf("resolve tag filter: %w", err)
		}
		if itemIDs == nil {
			itemIDs = []string{}
		}
		if q.IDs != nil {
			itemIDs = intersect(q.IDs, itemIDs)
		}
		q.IDs = itemIDs
		q.TagID = ""
	}

	return s.articles.Query(ctx, q)
}

// Archive marks an article read on the remote service, then mirrors the flag
// and its read timestamp locally.
func (s *LibraryService) Archive(ctx context.Context, id string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionArchive, id, nil); err != nil {
		return err
	}
	return s.articles.Update(ctx, id, domain.ArticlePatch{
		"is_archived": 1,
		"read_at":     domain.NowTimestamp(),
	})
}

// Unarchive puts an article back into the unread list.
func (s *LibraryService) Unarchive(ctx context.Context, id string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionReadd, id, nil); err != nil {
		return err
	}
	return s.articles.Update(ctx, id, domain.ArticlePatch{
		"is_archived": 0,
		"read_at":     nil,
	})
}

// Favorite sets the favorite flag and stamps its dependent timestamp.
func (s *LibraryService) Favorite(ctx context.Context, id string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionFavorite, id, nil); err != nil {
		return err
	}
	return s.articles.Update(ctx, id, domain.ArticlePatch{
		"is_favorite":  1,
		"favorited_at": domain.NowTimestamp(),
	})
}

// Unfavorite clears the favorite flag and its timestamp.
func (s *LibraryService) Unfavorite(ctx context.Context, id string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionUnfavorite, id, nil); err != nil {
		return err
	}
	return s.articles.Update(ctx, id, domain.ArticlePatch{
		"is_favorite":  0,
		"favorited_at": nil,
	})
}

// AddTag attaches one tag to an article, lazily materializing the tag row.
func (s *LibraryService) AddTag(ctx context.Context, id, tagID string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionTagsAdd, id, map[string]any{"tags": tagID}); err != nil {
		return err
	}
	if err := s.tags.Ensure(ctx, tagID); err != nil {
		return err
	}
	return s.links.Add(ctx, id, tagID)
}

// RemoveTag detaches one tag from an article. The tag row itself stays.
func (s *LibraryService) RemoveTag(ctx context.Context, id, tagID string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionTagsRemove, id, map[string]any{"tags": tagID}); err != nil {
		return err
	}
	return s.links.DeleteByPair(ctx, id, tagID)
}

// ReplaceTags swaps an article's tag set wholesale: clear, then re-add. Every
// introduced tag goes through the same ensure step AddTag uses.
func (s *LibraryService) ReplaceTags(ctx context.Context, id string, tagIDs []string) error {
	err := s.gateway.SendAction(ctx, pocket.ActionTagsReplace, id,
		map[string]any{"tags": strings.Join(tagIDs, ",")})
	if err != nil {
		return err
	}

	if _, err := s.links.DeleteByItem(ctx, id); err != nil {
		return err
	}

	links := make([]domain.ArticleTagMap, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if err := s.tags.Ensure(ctx, tagID); err != nil {
			return err
		}
		links = append(links, domain.ArticleTagMap{ItemID: id, TagID: tagID})
	}
	return s.links.BulkPut(ctx, links)
}

// Delete removes an article remotely and locally, cascading its association
// rows so no orphans survive.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.SendAction(ctx, pocket.ActionDelete, id, nil); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.links.DeleteByItem(ctx, id)
	if err != nil {
		// The article is gone either way; orphaned rows heal on the next sync.
		s.logger.Warn("article deleted but associations remain", "id", id, "error", err)
		return nil
	}
	if removed > 0 {
		s.logger.Debug("cascaded association delete", "id", id, "count", removed)
	}
	return nil
}

// DeleteTag removes a tag everywhere: remote, the tag row, and every
// association referencing it.
func (s *LibraryService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.gateway.DeleteTag(ctx, tagID); err != nil {
		return err
	}

	if err := s.tags.Delete(ctx, tagID); err != nil {
		return err
	}

	if _, err := s.links.DeleteByTag(ctx, tagID); err != nil {
		s.logger.Warn("tag deleted but associations remain", "tag", tagID, "error", err)
	}
	return nil
}

// ListTags returns every tag with its derived item count.
func (s *LibraryService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx, true)
}

// Wipe clears all three collections. Used on logout.
func (s *LibraryService) Wipe(ctx context.Context) error {
	if err := s.articles.Clear(ctx); err != nil {
		return err
	}
	if err := s.tags.Clear(ctx); err != nil {
		return err
	}
	return s.links.Clear(ctx)
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	out := []string{}
	for _, v := range b {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
