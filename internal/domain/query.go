package domain

// ArticleQuery describes one filtered, sorted, paginated read over the
// article collection. Filter fields combine with logical AND; a nil IDs slice
// means "no id filter" while an empty one means "no candidates". TagID is
// resolved into an id set by the query engine before the store sees it.
type ArticleQuery struct {
	IDs        []string
	TagID      string
	IsArchived *int
	IsFavorite *int
	SortKey    string
	SortDesc   bool
	Offset     int
	Limit      int
}

// Sort keys accepted by ArticleQuery.
const (
	SortByID          = "id"
	SortByTimeToRead  = "timeToRead"
	SortByIsArchived  = "isArchived"
	SortByIsFavorite  = "isFavorite"
	SortByCreatedAt   = "createdAt"
	SortByUpdatedAt   = "updatedAt"
	SortByReadAt      = "readAt"
	SortByFavoritedAt = "favoritedAt"
)

// DefaultQueryLimit applies when an ArticleQuery carries no explicit limit.
const DefaultQueryLimit = 50

// ArticlePatch is a partial update keyed by column name. A nil value clears
// the column. The store rejects keys outside its whitelist.
type ArticlePatch map[string]any
