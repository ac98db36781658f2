package domain

import "time"

// Article is one saved page in the local mirror. The ID is assigned by the
// remote service and never reassigned locally. Timestamp fields hold RFC3339
// strings so they sort lexicographically; nil means "unset".
type Article struct {
	ID          string   `db:"id" json:"id"`
	URL         string   `db:"url" json:"url"`
	Title       string   `db:"title" json:"title"`
	Excerpt     string   `db:"excerpt" json:"excerpt"`
	FullText    *string  `db:"full_text" json:"fullText,omitempty"`
	WordCount   int      `db:"word_count" json:"wordCount"`
	TimeToRead  int      `db:"time_to_read" json:"timeToRead"`
	ImageURL    *string  `db:"image_url" json:"imageUrl,omitempty"`
	IsArchived  int      `db:"is_archived" json:"isArchived"`
	IsFavorite  int      `db:"is_favorite" json:"isFavorite"`
	FavoritedAt *string  `db:"favorited_at" json:"favoritedAt"`
	ReadAt      *string  `db:"read_at" json:"readAt"`
	CreatedAt   *string  `db:"created_at" json:"createdAt"`
	UpdatedAt   *string  `db:"updated_at" json:"updatedAt"`
	Tags        []string `db:"-" json:"tags,omitempty"`
}

// Tag is a user-defined label. Tags are identified by their text: ID always
// equals Value. ItemCount is derived from the association table on demand and
// never stored.
type Tag struct {
	ID        string `db:"id" json:"id"`
	Value     string `db:"value" json:"value"`
	ItemCount int    `db:"item_count" json:"itemCount"`
}

// ArticleTagMap is one article-tag edge. ID is a storage surrogate with no
// meaning outside the local database.
type ArticleTagMap struct {
	ID     int64  `db:"id" json:"id"`
	ItemID string `db:"item_id" json:"itemId"`
	TagID  string `db:"tag_id" json:"tagId"`
}

// FormatTimestamp renders t in the canonical sortable form used throughout
// the mirror.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NowTimestamp returns the current time in canonical form.
func NowTimestamp() string {
	return FormatTimestamp(time.Now())
}
