package pocket

import (
	"sort"
	"strconv"
	"time"

	"pockd/internal/domain"
)

// ToArticle translates one remote record into the canonical local article
// shape. The only failure mode is an unrecognized flag value, which surfaces
// as a domain.ValidationError naming the field.
func ToArticle(src RemoteArticle) (domain.Article, error) {
	archived, err := parseFlag("status", src.Status)
	if err != nil {
		return domain.Article{}, err
	}
	favorite, err := parseFlag("favorite", src.Favorite)
	if err != nil {
		return domain.Article{}, err
	}

	wordCount, _ := strconv.Atoi(src.WordCount)
	if wordCount < 0 {
		wordCount = 0
	}

	article := domain.Article{
		ID:          src.ItemID,
		URL:         src.ResolvedURL,
		Title:       src.ResolvedTitle,
		Excerpt:     src.Excerpt,
		WordCount:   wordCount,
		TimeToRead:  src.TimeToRead,
		IsArchived:  archived,
		IsFavorite:  favorite,
		FavoritedAt: parseTimestamp(src.TimeFavorited),
		ReadAt:      parseTimestamp(src.TimeRead),
		CreatedAt:   parseTimestamp(src.TimeAdded),
		UpdatedAt:   parseTimestamp(src.TimeUpdated),
		Tags:        flattenTags(src.Tags),
	}

	if src.TopImageURL != "" {
		article.ImageURL = &src.TopImageURL
	}

	return article, nil
}

// parseFlag coerces the boolean-like representations the remote schema uses
// into 0/1. Anything else is a validation failure.
func parseFlag(field, value string) (int, error) {
	switch value {
	case "1", "true":
		return 1, nil
	case "0", "false":
		return 0, nil
	default:
		return 0, &domain.ValidationError{Field: field, Value: value}
	}
}

// parseTimestamp converts epoch seconds to the canonical timestamp string.
// The sentinel "0" (and anything unparseable) maps to unset, not the epoch.
func parseTimestamp(seconds string) *string {
	if seconds == "" || seconds == "0" {
		return nil
	}
	n, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return nil
	}
	ts := domain.FormatTimestamp(time.Unix(n, 0))
	return &ts
}

// flattenTags turns the keyed tag set into a sorted slice of tag ids.
func flattenTags(tags map[string]RemoteTag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for id := range tags {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
