package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"pockd/internal/domain"
	"pockd/internal/pocket"
)

type ArticleStore interface {
	BulkPut(ctx context.Context, articles []domain.Article) error
	Get(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, id string, changes domain.ArticlePatch) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Query(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error)
}

type TagStore interface {
	BulkPut(ctx context.Context, tags []domain.Tag) error
	Ensure(ctx context.Context, id string) error
	Get(ctx context.Context, id string, withCount bool) (*domain.Tag, error)
	List(ctx context.Context, withCount bool) ([]domain.Tag, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type ArticleTagStore interface {
	Add(ctx context.Context, itemID, tagID string) error
	BulkPut(ctx context.Context, links []domain.ArticleTagMap) error
	DeleteByPair(ctx context.Context, itemID, tagID string) error
	DeleteByItem(ctx context.Context, itemID string) (int64, error)
	DeleteByTag(ctx context.Context, tagID string) (int64, error)
	TagIDsByItem(ctx context.Context, itemID string) ([]string, error)
	ItemIDsByTag(ctx context.Context, tagID string) ([]string, error)
	Clear(ctx context.Context) error
}

type Gateway interface {
	FetchAll(ctx context.Context) ([]pocket.RemoteArticle, error)
	SendAction(ctx context.Context, action, itemID string, params map[string]any) error
	DeleteTag(ctx context.Context, tagID string) error
}
