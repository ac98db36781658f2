package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"pockd/internal/domain"
)

const articleColumns = `id, url, title, excerpt, full_text, word_count, time_to_read, image_url,
	is_archived, is_favorite, favorited_at, read_at, created_at, updated_at`

// sortColumns maps query sort keys to indexed columns.
var sortColumns = map[string]string{
	domain.SortByID:          "id",
	domain.SortByTimeToRead:  "time_to_read",
	domain.SortByIsArchived:  "is_archived",
	domain.SortByIsFavorite:  "is_favorite",
	domain.SortByCreatedAt:   "created_at",
	domain.SortByUpdatedAt:   "updated_at",
	domain.SortByReadAt:      "read_at",
	domain.SortByFavoritedAt: "favorited_at",
}

// patchColumns is the set of columns Update accepts. updated_at is excluded
// on purpose: the store stamps it itself.
var patchColumns = map[string]struct{}{
	"url":          {},
	"title":        {},
	"excerpt":      {},
	"full_text":    {},
	"word_count":   {},
	"time_to_read": {},
	"image_url":    {},
	"is_archived":  {},
	"is_favorite":  {},
	"favorited_at": {},
	"read_at":      {},
}

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Put inserts or replaces one article by primary key.
func (s *ArticleStore) Put(ctx context.Context, article *domain.Article) error {
	_, err := s.db.ExecContext(ctx, putArticleQuery, putArticleArgs(article)...)
	if err != nil {
		return fmt.Errorf("put article: %w", err)
	}
	return nil
}

// BulkPut inserts or replaces all given articles in one transaction. Either
// every record is stored or the call fails with no partial application.
func (s *ArticleStore) BulkPut(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk put: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, putArticleQuery)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare bulk put: %w", err)
	}

	for i := range articles {
		if _, err := stmt.ExecContext(ctx, putArticleArgs(&articles[i])...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put article %s: %w", articles[i].ID, err)
		}
	}

	return tx.Commit()
}

const putArticleQuery = `
	INSERT OR REPLACE INTO articles (` + articleColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func putArticleArgs(a *domain.Article) []any {
	return []any{
		a.ID, a.URL, a.Title, a.Excerpt, a.FullText, a.WordCount, a.TimeToRead, a.ImageURL,
		a.IsArchived, a.IsFavorite, a.FavoritedAt, a.ReadAt, a.CreatedAt, a.UpdatedAt,
	}
}

// Get returns the article or domain.ErrNotFound.
func (s *ArticleStore) Get(ctx context.Context, id string) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &article, nil
}

// Update merges changes into an existing article and stamps updated_at in the
// same statement. A missing key fails with domain.ErrNotFound.
func (s *ArticleStore) Update(ctx context.Context, id string, changes domain.ArticlePatch) error {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		if _, ok := patchColumns[k]; !ok {
			return fmt.Errorf("update article: column %q is not patchable", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sets strings.Builder
	args := make([]any, 0, len(keys)+2)
	for _, k := range keys {
		sets.WriteString(k)
		sets.WriteString(" = ?, ")
		args = append(args, changes[k])
	}
	sets.WriteString("updated_at = ?")
	args = append(args, domain.NowTimestamp(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE articles SET "+sets.String()+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes one article. Deleting an absent key is not an error.
func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// BulkDelete removes articles by id, silently ignoring absent keys.
func (s *ArticleStore) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In("DELETE FROM articles WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("bulk delete articles: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("bulk delete articles: %w", err)
	}
	return nil
}

// Clear removes every article.
func (s *ArticleStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM articles"); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}
	return nil
}

// Query returns articles matching the filter, sorted and paginated. The TagID
// filter is resolved into an id set by the query engine before it reaches the
// store; Query only honors IDs, IsArchived, and IsFavorite. Ties on the sort
// column break by id ascending so results are deterministic.
func (s *ArticleStore) Query(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	if q.IDs != nil && len(q.IDs) == 0 {
		return []domain.Article{}, nil
	}

	var where []string
	var args []any
	if q.IDs != nil {
		where = append(where, "id IN (?)")
		args = append(args, q.IDs)
	}
	if q.IsArchived != nil {
		where = append(where, "is_archived = ?")
		args = append(args, *q.IsArchived)
	}
	if q.IsFavorite != nil {
		where = append(where, "is_favorite = ?")
		args = append(args, *q.IsFavorite)
	}

	sortKey := q.SortKey
	if sortKey == "" {
		sortKey = domain.SortByCreatedAt
	}
	column, ok := sortColumns[sortKey]
	if !ok {
		return nil, fmt.Errorf("unsupported sort key %q", q.SortKey)
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultQueryLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	query := "SELECT " + articleColumns + " FROM articles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT ? OFFSET ?", column, direction)
	args = append(args, limit, offset)

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, expanded...); err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	return articles, nil
}
