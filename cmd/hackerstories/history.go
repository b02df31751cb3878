package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/search"
	"github.com/abelbrown/hackerstories/internal/store"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of searches to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the search log")
}

func runHistory(cmd *cobra.Command, args []string) error {
	initCLILogging()

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if historyClear {
		n, err := st.ClearSearches()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d searches.\n", n)
		return nil
	}

	if term, ok, err := st.Get(app.SearchKey); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "%s %q\n", summaryStyle.Render("Current term:"), term)
	}

	searches, err := st.RecentSearches(historyLimit)
	if err != nil {
		return err
	}
	printSearches(out, searches)

	urls := make([]string, len(searches))
	for i, sr := range searches {
		urls[i] = sr.URL
	}
	printLastSearches(out, search.LastSearches(urls))
	return nil
}
