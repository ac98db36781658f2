package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"pockd/internal/domain"
)

type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// Put inserts or replaces one tag.
func (s *TagStore) Put(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO tags (id, value) VALUES (?, ?)", tag.ID, tag.Value)
	if err != nil {
		return fmt.Errorf("put tag: %w", err)
	}
	return nil
}

// BulkPut inserts or replaces all given tags in one statement.
func (s *TagStore) BulkPut(ctx context.Context, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO tags (id, value) VALUES ")
	args := make([]any, 0, len(tags)*2)
	for i, tag := range tags {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, tag.ID, tag.Value)
	}
	sb.WriteString(" ON CONFLICT (id) DO UPDATE SET value = excluded.value")

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk put tags: %w", err)
	}
	return nil
}

// Ensure lazily materializes a tag row for id, leaving an existing row (and
// anything denormalized onto it) untouched. Every mutation path that
// introduces a tag value goes through here.
func (s *TagStore) Ensure(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (id, value) VALUES (?, ?) ON CONFLICT (id) DO NOTHING", id, id)
	if err != nil {
		return fmt.Errorf("ensure tag: %w", err)
	}
	return nil
}

// Get returns the tag or domain.ErrNotFound. With withCount the ItemCount
// field carries the number of associated articles.
func (s *TagStore) Get(ctx context.Context, id string, withCount bool) (*domain.Tag, error) {
	query := "SELECT id, value, 0 AS item_count FROM tags WHERE id = ?"
	if withCount {
		query = `
			SELECT t.id, t.value, COUNT(at.id) AS item_count
			FROM tags t
			LEFT JOIN article_tags at ON at.tag_id = t.id
			WHERE t.id = ?
			GROUP BY t.id, t.value`
	}

	var tag domain.Tag
	err := s.db.GetContext(ctx, &tag, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

// List returns all tags ordered by value.
func (s *TagStore) List(ctx context.Context, withCount bool) ([]domain.Tag, error) {
	query := "SELECT id, value, 0 AS item_count FROM tags ORDER BY value"
	if withCount {
		query = `
			SELECT t.id, t.value, COUNT(at.id) AS item_count
			FROM tags t
			LEFT JOIN article_tags at ON at.tag_id = t.id
			GROUP BY t.id, t.value
			ORDER BY t.value`
	}

	tags := []domain.Tag{}
	if err := s.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Delete removes one tag. Absent keys are ignored.
func (s *TagStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// Clear removes every tag.
func (s *TagStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags"); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	return nil
}
