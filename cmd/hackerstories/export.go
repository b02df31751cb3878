package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/hackerstories/internal/export"
	"github.com/abelbrown/hackerstories/internal/logging"
)

var (
	exportFormat string
	exportPages  int
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <term>",
	Short: "Write search results as a feed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "atom", "Feed format: atom, rss, json")
	exportCmd.Flags().IntVarP(&exportPages, "pages", "p", 1, "Number of result pages to include")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	initCLILogging()

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	d, err := openDeps(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	term := strings.Join(args, " ")
	s, err := loadPages(cmd.Context(), d, term, exportPages)
	if err != nil {
		return err
	}
	if s.State().IsError {
		return errors.New("something went wrong while loading results")
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, term, s.State().Data, time.Now()); err != nil {
		return err
	}
	logging.Info("feed exported", "term", term, "format", format, "stories", len(s.State().Data))
	return nil
}
