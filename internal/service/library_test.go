package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pockd/internal/domain"
	"pockd/internal/service/mocks"
)

type LibraryServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	gateway  *mocks.MockGateway
	articles *mocks.MockArticleStore
	tags     *mocks.MockTagStore
	links    *mocks.MockArticleTagStore

	service *LibraryService
}

func (s *LibraryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.gateway = mocks.NewMockGateway(s.ctrl)
	s.articles = mocks.NewMockArticleStore(s.ctrl)
	s.tags = mocks.NewMockTagStore(s.ctrl)
	s.links = mocks.NewMockArticleTagStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewLibraryService(s.gateway, s.articles, s.tags, s.links, logger)
}

func (s *LibraryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLibraryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LibraryServiceTestSuite))
}

func (s *LibraryServiceTestSuite) TestGet_AttachesTags() {
	ctx := context.Background()

	s.articles.EXPECT().Get(ctx, "10").Return(&domain.Article{ID: "10"}, nil)
	s.links.EXPECT().TagIDsByItem(ctx, "10").Return([]string{"news", "tech"}, nil)

	article, err := s.service.Get(ctx, "10")

	s.Require().NoError(err)
	s.Equal([]string{"news", "tech"}, article.Tags)
}

func (s *LibraryServiceTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.articles.EXPECT().Get(ctx, "missing").Return(nil, domain.ErrNotFound)

	_, err := s.service.Get(ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *LibraryServiceTestSuite) TestArchive_StampsReadTimestamp() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "archive", "10", nil).Return(nil)
	s.articles.EXPECT().Update(ctx, "10", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, changes domain.ArticlePatch) error {
			s.Equal(1, changes["is_archived"])
			s.IsType("", changes["read_at"])
			s.NotEmpty(changes["read_at"])
			return nil
		})

	s.Require().NoError(s.service.Archive(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestArchive_RemoteFailureAborts() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "archive", "10", nil).Return(errors.New("remote rejected"))

	err := s.service.Archive(ctx, "10")
	s.Require().Error(err)
}

func (s *LibraryServiceTestSuite) TestUnarchive_ClearsReadTimestamp() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "readd", "10", nil).Return(nil)
	s.articles.EXPECT().Update(ctx, "10", domain.ArticlePatch{
		"is_archived": 0,
		"read_at":     nil,
	}).Return(nil)

	s.Require().NoError(s.service.Unarchive(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestFavorite_CouplesFlagAndTimestamp() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "favorite", "10", nil).Return(nil)
	s.articles.EXPECT().Update(ctx, "10", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, changes domain.ArticlePatch) error {
			s.Equal(1, changes["is_favorite"])
			s.NotEmpty(changes["favorited_at"])
			return nil
		})

	s.Require().NoError(s.service.Favorite(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestUnfavorite_CouplesFlagAndTimestamp() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "unfavorite", "10", nil).Return(nil)
	s.articles.EXPECT().Update(ctx, "10", domain.ArticlePatch{
		"is_favorite":  0,
		"favorited_at": nil,
	}).Return(nil)

	s.Require().NoError(s.service.Unfavorite(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestAddTag_EnsuresTagRow() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "tags_add", "10", map[string]any{"tags": "tech"}).Return(nil)
	s.tags.EXPECT().Ensure(ctx, "tech").Return(nil)
	s.links.EXPECT().Add(ctx, "10", "tech").Return(nil)

	s.Require().NoError(s.service.AddTag(ctx, "10", "tech"))
}

func (s *LibraryServiceTestSuite) TestAddTag_RemoteFailureAborts() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "tags_add", "10", map[string]any{"tags": "tech"}).
		Return(errors.New("remote rejected"))

	s.Require().Error(s.service.AddTag(ctx, "10", "tech"))
}

func (s *LibraryServiceTestSuite) TestRemoveTag() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "tags_remove", "10", map[string]any{"tags": "tech"}).Return(nil)
	s.links.EXPECT().DeleteByPair(ctx, "10", "tech").Return(nil)

	s.Require().NoError(s.service.RemoveTag(ctx, "10", "tech"))
}

func (s *LibraryServiceTestSuite) TestReplaceTags() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "tags_replace", "10", map[string]any{"tags": "news,tech"}).Return(nil)
	s.links.EXPECT().DeleteByItem(ctx, "10").Return(int64(1), nil)
	s.tags.EXPECT().Ensure(ctx, "news").Return(nil)
	s.tags.EXPECT().Ensure(ctx, "tech").Return(nil)
	s.links.EXPECT().BulkPut(ctx, []domain.ArticleTagMap{
		{ItemID: "10", TagID: "news"},
		{ItemID: "10", TagID: "tech"},
	}).Return(nil)

	s.Require().NoError(s.service.ReplaceTags(ctx, "10", []string{"news", "tech"}))
}

func (s *LibraryServiceTestSuite) TestReplaceTags_EmptySetClears() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "tags_replace", "10", map[string]any{"tags": ""}).Return(nil)
	s.links.EXPECT().DeleteByItem(ctx, "10").Return(int64(2), nil)
	s.links.EXPECT().BulkPut(ctx, []domain.ArticleTagMap{}).Return(nil)

	s.Require().NoError(s.service.ReplaceTags(ctx, "10", nil))
}

func (s *LibraryServiceTestSuite) TestDelete_CascadesAssociations() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "delete", "10", nil).Return(nil)
	s.articles.EXPECT().Delete(ctx, "10").Return(nil)
	s.links.EXPECT().DeleteByItem(ctx, "10").Return(int64(2), nil)

	s.Require().NoError(s.service.Delete(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestDelete_CascadeFailureIsNotFatal() {
	ctx := context.Background()

	s.gateway.EXPECT().SendAction(ctx, "delete", "10", nil).Return(nil)
	s.articles.EXPECT().Delete(ctx, "10").Return(nil)
	s.links.EXPECT().DeleteByItem(ctx, "10").Return(int64(0), errors.New("disk error"))

	s.Require().NoError(s.service.Delete(ctx, "10"))
}

func (s *LibraryServiceTestSuite) TestDeleteTag_CascadesAssociations() {
	ctx := context.Background()

	s.gateway.EXPECT().DeleteTag(ctx, "tech").Return(nil)
	s.tags.EXPECT().Delete(ctx, "tech").Return(nil)
	s.links.EXPECT().DeleteByTag(ctx, "tech").Return(int64(3), nil)

	s.Require().NoError(s.service.DeleteTag(ctx, "tech"))
}

func (s *LibraryServiceTestSuite) TestQuery_PassthroughWithoutTagFilter() {
	ctx := context.Background()
	q := domain.ArticleQuery{SortKey: domain.SortByCreatedAt, SortDesc: true}

	s.articles.EXPECT().Query(ctx, q).Return([]domain.Article{{ID: "10"}}, nil)

	got, err := s.service.Query(ctx, q)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *LibraryServiceTestSuite) TestQuery_ResolvesTagFilter() {
	ctx := context.Background()

	s.links.EXPECT().ItemIDsByTag(ctx, "tech").Return([]string{"10", "20"}, nil)
	s.articles.EXPECT().Query(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
			s.Equal([]string{"10", "20"}, q.IDs)
			s.Empty(q.TagID, "tag filter must be resolved before the store")
			return []domain.Article{{ID: "10"}, {ID: "20"}}, nil
		})

	got, err := s.service.Query(ctx, domain.ArticleQuery{TagID: "tech"})
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *LibraryServiceTestSuite) TestQuery_TagWithoutAssociations() {
	ctx := context.Background()

	s.links.EXPECT().ItemIDsByTag(ctx, "ghost").Return(nil, nil)
	s.articles.EXPECT().Query(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
			s.Require().NotNil(q.IDs, "an unmatched tag must not collapse into an unfiltered query")
			s.Empty(q.IDs)
			return []domain.Article{}, nil
		})

	got, err := s.service.Query(ctx, domain.ArticleQuery{TagID: "ghost"})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *LibraryServiceTestSuite) TestQuery_IntersectsTagAndIDFilters() {
	ctx := context.Background()

	s.links.EXPECT().ItemIDsByTag(ctx, "tech").Return([]string{"10", "20"}, nil)
	s.articles.EXPECT().Query(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
			s.Equal([]string{"10"}, q.IDs)
			return []domain.Article{{ID: "10"}}, nil
		})

	got, err := s.service.Query(ctx, domain.ArticleQuery{TagID: "tech", IDs: []string{"10", "30"}})
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *LibraryServiceTestSuite) TestListTags() {
	ctx := context.Background()

	s.tags.EXPECT().List(ctx, true).Return([]domain.Tag{{ID: "tech", Value: "tech", ItemCount: 2}}, nil)

	tags, err := s.service.ListTags(ctx)
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Equal(2, tags[0].ItemCount)
}

func (s *LibraryServiceTestSuite) TestWipe() {
	ctx := context.Background()

	s.articles.EXPECT().Clear(ctx).Return(nil)
	s.tags.EXPECT().Clear(ctx).Return(nil)
	s.links.EXPECT().Clear(ctx).Return(nil)

	s.Require().NoError(s.service.Wipe(ctx))
}
