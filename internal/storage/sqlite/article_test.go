package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"pockd/internal/domain"
)

type ArticleStoreTestSuite struct {
	suite.Suite
	store *ArticleStore
	ctx   context.Context
}

func (s *ArticleStoreTestSuite) SetupTest() {
	s.store = NewArticleStore(newTestDB(s.T()))
	s.ctx = context.Background()
}

func TestArticleStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleStoreTestSuite))
}

func newArticle(id, createdAt string) domain.Article {
	created := createdAt
	return domain.Article{
		ID:        id,
		URL:       "https://example.com/" + id,
		Title:     "Article " + id,
		CreatedAt: &created,
	}
}

func (s *ArticleStoreTestSuite) TestPutGet() {
	image := "https://example.com/cover.png"
	created := "2024-01-01T00:00:00Z"
	article := domain.Article{
		ID:         "10",
		URL:        "https://example.com/10",
		Title:      "Ten",
		Excerpt:    "excerpt",
		WordCount:  900,
		TimeToRead: 4,
		ImageURL:   &image,
		IsFavorite: 1,
		CreatedAt:  &created,
	}

	s.Require().NoError(s.store.Put(s.ctx, &article))

	got, err := s.store.Get(s.ctx, "10")
	s.Require().NoError(err)
	s.Equal("Ten", got.Title)
	s.Equal(900, got.WordCount)
	s.Equal(1, got.IsFavorite)
	s.Require().NotNil(got.ImageURL)
	s.Equal(image, *got.ImageURL)
	s.Nil(got.ReadAt)
	s.Nil(got.UpdatedAt)
}

func (s *ArticleStoreTestSuite) TestPut_ReplacesExisting() {
	article := newArticle("10", "2024-01-01T00:00:00Z")
	s.Require().NoError(s.store.Put(s.ctx, &article))

	article.Title = "Renamed"
	s.Require().NoError(s.store.Put(s.ctx, &article))

	got, err := s.store.Get(s.ctx, "10")
	s.Require().NoError(err)
	s.Equal("Renamed", got.Title)
}

func (s *ArticleStoreTestSuite) TestGet_NotFound() {
	_, err := s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ArticleStoreTestSuite) TestUpdate() {
	article := newArticle("10", "2024-01-01T00:00:00Z")
	s.Require().NoError(s.store.Put(s.ctx, &article))

	readAt := domain.NowTimestamp()
	err := s.store.Update(s.ctx, "10", domain.ArticlePatch{
		"is_archived": 1,
		"read_at":     readAt,
	})
	s.Require().NoError(err)

	got, err := s.store.Get(s.ctx, "10")
	s.Require().NoError(err)
	s.Equal(1, got.IsArchived)
	s.Require().NotNil(got.ReadAt)
	s.Equal(readAt, *got.ReadAt)
	s.NotNil(got.UpdatedAt, "update must stamp updated_at")
}

func (s *ArticleStoreTestSuite) TestUpdate_ClearsTimestamp() {
	favAt := "2024-02-01T00:00:00Z"
	article := newArticle("10", "2024-01-01T00:00:00Z")
	article.IsFavorite = 1
	article.FavoritedAt = &favAt
	s.Require().NoError(s.store.Put(s.ctx, &article))

	err := s.store.Update(s.ctx, "10", domain.ArticlePatch{
		"is_favorite":  0,
		"favorited_at": nil,
	})
	s.Require().NoError(err)

	got, err := s.store.Get(s.ctx, "10")
	s.Require().NoError(err)
	s.Equal(0, got.IsFavorite)
	s.Nil(got.FavoritedAt)
}

func (s *ArticleStoreTestSuite) TestUpdate_NotFound() {
	err := s.store.Update(s.ctx, "missing", domain.ArticlePatch{"is_archived": 1})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ArticleStoreTestSuite) TestUpdate_RejectsUnknownColumn() {
	article := newArticle("10", "2024-01-01T00:00:00Z")
	s.Require().NoError(s.store.Put(s.ctx, &article))

	err := s.store.Update(s.ctx, "10", domain.ArticlePatch{"updated_at": "2024-01-01T00:00:00Z"})
	s.Error(err)
}

func (s *ArticleStoreTestSuite) TestDelete() {
	article := newArticle("10", "2024-01-01T00:00:00Z")
	s.Require().NoError(s.store.Put(s.ctx, &article))

	s.Require().NoError(s.store.Delete(s.ctx, "10"))

	_, err := s.store.Get(s.ctx, "10")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ArticleStoreTestSuite) TestDelete_AbsentKey() {
	s.NoError(s.store.Delete(s.ctx, "missing"))
}

func (s *ArticleStoreTestSuite) TestBulkPut() {
	articles := []domain.Article{
		newArticle("10", "2024-01-01T00:00:00Z"),
		newArticle("20", "2024-01-02T00:00:00Z"),
		newArticle("30", "2024-01-03T00:00:00Z"),
	}
	s.Require().NoError(s.store.BulkPut(s.ctx, articles))

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{})
	s.Require().NoError(err)
	s.Len(got, 3)
}

func (s *ArticleStoreTestSuite) TestBulkPut_Empty() {
	s.NoError(s.store.BulkPut(s.ctx, nil))
}

func (s *ArticleStoreTestSuite) TestBulkDelete() {
	s.Require().NoError(s.store.BulkPut(s.ctx, []domain.Article{
		newArticle("10", "2024-01-01T00:00:00Z"),
		newArticle("20", "2024-01-02T00:00:00Z"),
		newArticle("30", "2024-01-03T00:00:00Z"),
	}))

	s.Require().NoError(s.store.BulkDelete(s.ctx, []string{"10", "30", "missing"}))

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("20", got[0].ID)
}

func (s *ArticleStoreTestSuite) TestClear() {
	s.Require().NoError(s.store.BulkPut(s.ctx, []domain.Article{
		newArticle("10", "2024-01-01T00:00:00Z"),
		newArticle("20", "2024-01-02T00:00:00Z"),
	}))

	s.Require().NoError(s.store.Clear(s.ctx))

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ArticleStoreTestSuite) seedQueryFixtures() {
	a1 := newArticle("10", "2024-01-01T00:00:00Z")
	a1.IsArchived = 1
	a1.IsFavorite = 1
	a1.TimeToRead = 3

	a2 := newArticle("20", "2024-01-02T00:00:00Z")
	a2.IsArchived = 0
	a2.IsFavorite = 1
	a2.TimeToRead = 9

	a3 := newArticle("30", "2024-01-03T00:00:00Z")
	a3.IsArchived = 1
	a3.IsFavorite = 0
	a3.TimeToRead = 3

	s.Require().NoError(s.store.BulkPut(s.ctx, []domain.Article{a1, a2, a3}))
}

func (s *ArticleStoreTestSuite) TestQuery_FlagFilters() {
	s.seedQueryFixtures()

	archived := 1
	favorite := 1

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{IsArchived: &archived})
	s.Require().NoError(err)
	s.Len(got, 2)

	// filters combine with AND
	got, err = s.store.Query(s.ctx, domain.ArticleQuery{IsArchived: &archived, IsFavorite: &favorite})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("10", got[0].ID)
}

func (s *ArticleStoreTestSuite) TestQuery_IDFilter() {
	s.seedQueryFixtures()

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{IDs: []string{"10", "30"}})
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *ArticleStoreTestSuite) TestQuery_EmptyIDSet() {
	s.seedQueryFixtures()

	// nil means no filter, empty means no candidates
	got, err := s.store.Query(s.ctx, domain.ArticleQuery{IDs: []string{}})
	s.Require().NoError(err)
	s.Empty(got)

	got, err = s.store.Query(s.ctx, domain.ArticleQuery{IDs: nil})
	s.Require().NoError(err)
	s.Len(got, 3)
}

func (s *ArticleStoreTestSuite) TestQuery_Sort() {
	s.seedQueryFixtures()

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{SortKey: domain.SortByCreatedAt, SortDesc: true})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("30", got[0].ID)
	s.Equal("10", got[2].ID)

	// ties on the sort column break by id ascending
	got, err = s.store.Query(s.ctx, domain.ArticleQuery{SortKey: domain.SortByTimeToRead})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("10", got[0].ID)
	s.Equal("30", got[1].ID)
	s.Equal("20", got[2].ID)
}

func (s *ArticleStoreTestSuite) TestQuery_UnknownSortKey() {
	_, err := s.store.Query(s.ctx, domain.ArticleQuery{SortKey: "title"})
	s.Error(err)
}

func (s *ArticleStoreTestSuite) TestQuery_Pagination() {
	s.seedQueryFixtures()

	got, err := s.store.Query(s.ctx, domain.ArticleQuery{Offset: 1, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("20", got[0].ID)

	// window past the end yields the remainder
	got, err = s.store.Query(s.ctx, domain.ArticleQuery{Offset: 2, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("30", got[0].ID)

	// offset beyond the result set is empty, not an error
	got, err = s.store.Query(s.ctx, domain.ArticleQuery{Offset: 10})
	s.Require().NoError(err)
	s.Empty(got)
}
