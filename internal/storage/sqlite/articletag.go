package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"pockd/internal/domain"
)

type ArticleTagStore struct {
	db *sqlx.DB
}

func NewArticleTagStore(db *sqlx.DB) *ArticleTagStore {
	return &ArticleTagStore{db: db}
}

// Add creates one association edge. An existing (item, tag) pair is left
// alone so repeated adds never accumulate duplicate rows.
func (s *ArticleTagStore) Add(ctx context.Context, itemID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO article_tags (item_id, tag_id)
		SELECT ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM article_tags WHERE item_id = ? AND tag_id = ?
		)`, itemID, tagID, itemID, tagID)
	if err != nil {
		return fmt.Errorf("add article tag: %w", err)
	}
	return nil
}

// BulkPut inserts all given associations in one statement. Callers are
// expected to have cleared any rows the insert would duplicate.
func (s *ArticleTagStore) BulkPut(ctx context.Context, links []domain.ArticleTagMap) error {
	if len(links) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO article_tags (item_id, tag_id) VALUES ")
	args := make([]any, 0, len(links)*2)
	for i, link := range links {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, link.ItemID, link.TagID)
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk put article tags: %w", err)
	}
	return nil
}

// DeleteByPair removes the association between one article and one tag.
func (s *ArticleTagStore) DeleteByPair(ctx context.Context, itemID, tagID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM article_tags WHERE item_id = ? AND tag_id = ?", itemID, tagID)
	if err != nil {
		return fmt.Errorf("delete article tag: %w", err)
	}
	return nil
}

// DeleteByItem removes every association of one article and reports how many
// rows went away.
func (s *ArticleTagStore) DeleteByItem(ctx context.Context, itemID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM article_tags WHERE item_id = ?", itemID)
	if err != nil {
		return 0, fmt.Errorf("delete article tags by item: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByTag removes every association referencing one tag.
func (s *ArticleTagStore) DeleteByTag(ctx context.Context, tagID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM article_tags WHERE tag_id = ?", tagID)
	if err != nil {
		return 0, fmt.Errorf("delete article tags by tag: %w", err)
	}
	return res.RowsAffected()
}

// TagIDsByItem returns the tag ids associated with one article, ordered by
// value.
func (s *ArticleTagStore) TagIDsByItem(ctx context.Context, itemID string) ([]string, error) {
	ids := []string{}
	err := s.db.SelectContext(ctx, &ids,
		"SELECT tag_id FROM article_tags WHERE item_id = ? ORDER BY tag_id", itemID)
	if err != nil {
		return nil, fmt.Errorf("list tags by item: %w", err)
	}
	return ids, nil
}

// ItemIDsByTag returns the article ids associated with one tag.
func (s *ArticleTagStore) ItemIDsByTag(ctx context.Context, tagID string) ([]string, error) {
	ids := []string{}
	err := s.db.SelectContext(ctx, &ids,
		"SELECT item_id FROM article_tags WHERE tag_id = ? ORDER BY item_id", tagID)
	if err != nil {
		return nil, fmt.Errorf("list items by tag: %w", err)
	}
	return ids, nil
}

// Clear removes every association.
func (s *ArticleTagStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM article_tags"); err != nil {
		return fmt.Errorf("clear article tags: %w", err)
	}
	return nil
}
