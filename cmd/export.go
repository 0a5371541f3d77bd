package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/readeck-contrib/readeckctl/readeck"
)

const exportConcurrency = 5

var (
	exportFormat string
	exportDir    string
	exportParsed bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [ID...]",
	Short: "Export bookmark articles as markdown or EPUB",
	Long: `Download the article content of one or more bookmarks, selected by ID or
by a filter expression. A single markdown export without --output prints
to stdout; everything else is written as one file per bookmark into the
output directory.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "export bookmarks matching a filter expression")
	exportCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "export format (md or epub)")
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "output directory (default from config)")
	exportCmd.Flags().BoolVar(&exportParsed, "parsed", false, "split frontmatter and print a metadata summary (md only)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := readeck.ExportFormat(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("invalid format %q (must be md or epub)", exportFormat)
	}
	if exportParsed && format != readeck.FormatMarkdown {
		return fmt.Errorf("--parsed only applies to markdown exports")
	}

	ctx := cmd.Context()

	if len(args) == 0 {
		if filterExpr == "" && preset == "" {
			return fmt.Errorf("specify bookmark IDs or a --filter/--preset expression")
		}
		ids, err := selectBookmarkIDs(cmd)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No bookmarks matched the filter criteria.")
			return nil
		}
		args = ids
	}

	// Single markdown export without an explicit output goes to stdout
	if len(args) == 1 && !cmd.Flags().Changed("output") && format == readeck.FormatMarkdown {
		return exportToStdout(cmd, args[0])
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Directory
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Info().
		Int("count", len(args)).
		Str("format", string(format)).
		Str("directory", dir).
		Msg("Exporting bookmarks")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	var mu sync.Mutex
	var failed []string

	for _, id := range args {
		id := id
		g.Go(func() error {
			if err := exportToFile(ctx, id, format, dir); err != nil {
				logger.Error().Err(err).Str("bookmark_id", id).Msg("Export failed")
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				// Continue exporting the remaining bookmarks
				return nil
			}
			fmt.Printf("✓ Exported %s\n", id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to export %d of %d bookmarks: %s",
			len(failed), len(args), strings.Join(failed, ", "))
	}

	fmt.Printf("\n✓ Exported %d bookmarks to %s\n", len(args), dir)
	return nil
}

// selectBookmarkIDs resolves a filter expression into the IDs of the
// matching bookmarks.
func selectBookmarkIDs(cmd *cobra.Command) ([]string, error) {
	match, err := buildFilter()
	if err != nil {
		return nil, err
	}

	bookmarks, err := client.ListBookmarks(cmd.Context(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	var ids []string
	for _, b := range bookmarks {
		if match(b) {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func exportToStdout(cmd *cobra.Command, id string) error {
	if exportParsed {
		result, err := client.ExportBookmarkParsed(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to export bookmark: %w", err)
		}
		if result.Metadata != nil {
			printMetadata(result.Metadata)
		}
		fmt.Print(result.Content)
		return nil
	}

	export, err := client.ExportBookmark(cmd.Context(), id, readeck.FormatMarkdown)
	if err != nil {
		return fmt.Errorf("failed to export bookmark: %w", err)
	}
	fmt.Print(export.Text)
	return nil
}

func exportToFile(ctx context.Context, id string, format readeck.ExportFormat, dir string) error {
	export, err := client.ExportBookmark(ctx, id, format)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", id, format))
	var data []byte
	if format == readeck.FormatEPUB {
		data = export.Data
	} else {
		data = []byte(export.Text)
	}

	return os.WriteFile(path, data, 0o644)
}

func printMetadata(meta *readeck.MarkdownMetadata) {
	fmt.Println(strings.Repeat("-", 80))
	if meta.Title != "" {
		fmt.Printf("Title:     %s\n", meta.Title)
	}
	if len(meta.Authors) > 0 {
		fmt.Printf("Authors:   %s\n", strings.Join(meta.Authors, ", "))
	}
	if meta.Website != "" {
		fmt.Printf("Website:   %s\n", meta.Website)
	}
	if meta.Source != "" {
		fmt.Printf("Source:    %s\n", meta.Source)
	}
	if meta.Published != "" {
		fmt.Printf("Published: %s\n", meta.Published)
	}
	if meta.Saved != "" {
		fmt.Printf("Saved:     %s\n", meta.Saved)
	}
	if len(meta.Labels) > 0 {
		fmt.Printf("Labels:    %s\n", strings.Join(meta.Labels, ", "))
	}
	fmt.Println(strings.Repeat("-", 80))
}
