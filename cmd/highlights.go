package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readeck-contrib/readeckctl/readeck"
)

var (
	highlightsLimit  int
	highlightsOffset int
)

// highlightsCmd represents the highlights command
var highlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "List text highlights across all bookmarks",
	RunE:  runHighlights,
}

func init() {
	rootCmd.AddCommand(highlightsCmd)

	highlightsCmd.Flags().IntVar(&highlightsLimit, "limit", 0, "maximum number of highlights to fetch")
	highlightsCmd.Flags().IntVar(&highlightsOffset, "offset", 0, "pagination offset")
}

func runHighlights(cmd *cobra.Command, args []string) error {
	page, err := client.GetHighlights(cmd.Context(), &readeck.HighlightListParams{
		Limit:  highlightsLimit,
		Offset: highlightsOffset,
	})
	if err != nil {
		return fmt.Errorf("failed to list highlights: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No highlights found.")
		return nil
	}

	fmt.Printf("\nHighlights (page %d of %d, %d total):\n", page.Page, page.TotalPages, page.TotalCount)
	fmt.Println(strings.Repeat("-", 80))

	for _, h := range page.Items {
		fmt.Printf("• %q\n", h.Text)
		fmt.Printf("  from %s", h.BookmarkTitle)
		if h.BookmarkSiteName != "" {
			fmt.Printf(" (%s)", h.BookmarkSiteName)
		}
		fmt.Println()
		fmt.Printf("  %s\n", h.Created.Format("2006-01-02"))
	}

	if page.HasMorePages() {
		fmt.Printf("\nMore highlights available; use --offset %d to continue.\n",
			highlightsOffset+len(page.Items))
	}

	return nil
}
