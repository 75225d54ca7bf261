package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/colorprofile"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/chanforum/internal/tui/theme"
	"github.com/spf13/cobra"
)

var boardsFlags struct {
	json    bool
	refresh bool
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List discussion boards",
	Long: `List the discussion boards of your channels.

The list is served from the cache when present. Use --refresh to drop the
cached copy first.`,
	RunE: runBoards,
}

func init() {
	boardsCmd.Flags().BoolVar(&boardsFlags.json, "json", false, "Print boards as JSON")
	boardsCmd.Flags().BoolVarP(&boardsFlags.refresh, "refresh", "r", false, "Refetch instead of using the cached list")
}

func runBoards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if boardsFlags.refresh {
		if err := e.store.Invalidate(ctx, e.boards.Key()); err != nil {
			return fmt.Errorf("failed to drop cached boards: %w", err)
		}
	}

	boards, err := e.listBoards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}

	out := cmd.OutOrStdout()
	if boardsFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(boards)
	}

	if len(boards) == 0 {
		fmt.Fprintln(out, "No boards yet. Run `chanforum create --handle <handle>` to add one.")
		return nil
	}
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSLUG\tCHANNEL\tSUBSCRIBERS")
	for _, b := range boards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, b.Slug, b.ChannelID, humanize.Comma(b.Subscribers))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Style after alignment; the writer downgrades colors for the terminal.
	s := theme.Current().S()
	header, rows, _ := strings.Cut(buf.String(), "\n")
	w := colorprofile.NewWriter(out, os.Environ())
	_, err = fmt.Fprintf(w, "%s\n%s", s.HeaderTitle.Render(header), rows)
	return err
}
