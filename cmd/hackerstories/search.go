package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/stories"
)

var (
	searchPages   int
	searchSort    string
	searchReverse bool
	searchFilter  string
)

// errReverseNeedsSort is returned for --reverse without a sort key.
var errReverseNeedsSort = errors.New("--reverse needs --sort with a key other than none")

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search and print results",
	Long: `Search Hacker News and print the results.

Pages are fetched concurrently and appended in order. Loading stops at the
first page that fails; the pages loaded before it are still printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 1, "Number of result pages to load")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "none", "Sort by: none, title, author, comments, points")
	searchCmd.Flags().BoolVarP(&searchReverse, "reverse", "r", false, "Reverse the sort order")
	searchCmd.Flags().StringVarP(&searchFilter, "filter", "f", "", "Only show titles containing this text")
}

func runSearch(cmd *cobra.Command, args []string) error {
	initCLILogging()

	key, ok := stories.ParseSortKey(searchSort)
	if !ok {
		return fmt.Errorf("unknown sort key %q", searchSort)
	}
	if key == stories.SortNone && searchReverse {
		return errReverseNeedsSort
	}

	d, err := openDeps(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := loadPages(cmd.Context(), d, strings.Join(args, " "), searchPages)
	if err != nil {
		return err
	}

	if s, err = applySort(s, key, searchReverse); err != nil {
		return err
	}

	printStories(cmd.OutOrStdout(), s.Visible(searchFilter), s.CommentTotal())

	if s.State().IsError {
		return errors.New("something went wrong while loading results")
	}
	return nil
}

// loadPages runs a fresh search for term and loads the given number of pages.
func loadPages(ctx context.Context, d *deps, term string, pages int) (app.Session, error) {
	s := app.NewSession(d.endpoint, term)
	return d.coordinator.SearchPages(ctx, s, pages)
}

// applySort selects key, selecting it twice for a reversed order.
func applySort(s app.Session, key stories.SortKey, reverse bool) (app.Session, error) {
	if key == stories.SortNone {
		if reverse {
			return s, errReverseNeedsSort
		}
		return s, nil
	}
	s, _, err := s.Update(app.SortSelected{Key: key})
	if err != nil || !reverse {
		return s, err
	}
	s, _, err = s.Update(app.SortSelected{Key: key})
	return s, err
}
