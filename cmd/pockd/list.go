package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"pockd/internal/domain"
)

func newListCmd() *cobra.Command {
	var (
		archived bool
		favorite bool
		tagID    string
		sortKey  string
		desc     bool
		offset   int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles in the local mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			q := domain.ArticleQuery{
				TagID:    tagID,
				SortKey:  sortKey,
				SortDesc: desc,
				Offset:   offset,
				Limit:    limit,
			}
			if cmd.Flags().Changed("archived") {
				v := boolToFlag(archived)
				q.IsArchived = &v
			}
			if cmd.Flags().Changed("favorite") {
				v := boolToFlag(favorite)
				q.IsFavorite = &v
			}

			articles, err := app.library.Query(cmd.Context(), q)
			if err != nil {
				return err
			}

			renderArticleTable(cmd, articles)
			return nil
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "Only archived articles (--archived=false for unarchived)")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Only favorited articles (--favorite=false for unfavorited)")
	cmd.Flags().StringVar(&tagID, "tag", "", "Only articles carrying this tag")
	cmd.Flags().StringVar(&sortKey, "sort", domain.SortByCreatedAt, "Sort key: id, createdAt, updatedAt, readAt, favoritedAt, timeToRead, isArchived, isFavorite")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many articles")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultQueryLimit, "Return at most this many articles")

	return cmd
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func renderArticleTable(cmd *cobra.Command, articles []domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "", "Added"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 60},
		{Name: "Added", Align: text.AlignLeft},
	})

	for _, a := range articles {
		var marks []string
		if a.IsArchived == 1 {
			marks = append(marks, "A")
		}
		if a.IsFavorite == 1 {
			marks = append(marks, "*")
		}

		added := ""
		if a.CreatedAt != nil {
			added = *a.CreatedAt
		}

		t.AppendRow(table.Row{
			a.ID,
			a.Title,
			strings.Join(marks, ""),
			added,
		})
	}

	t.Render()
}
