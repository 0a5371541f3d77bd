package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readeck-contrib/readeckctl/readeck"
)

var (
	listLimit  int
	listOffset int
	listSearch string
	listLabels string
	listSort   []string

	addTitle  string
	addLabels []string

	deleteNoConfirm bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks matching the filter criteria",
	Long: `List bookmarks from your Readeck instance. Pagination and search are
applied server-side; the filter expression is evaluated locally on the
returned page.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of bookmarks to fetch")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "pagination offset")
	listCmd.Flags().StringVar(&listSearch, "search", "", "full-text search query")
	listCmd.Flags().StringVar(&listLabels, "labels", "", "filter by labels server-side")
	listCmd.Flags().StringSliceVar(&listSort, "sort", nil, "sort fields (e.g. -created, title)")
}

func runList(cmd *cobra.Command, args []string) error {
	match, err := buildFilter()
	if err != nil {
		return err
	}

	params := &readeck.BookmarkListParams{
		Limit:  listLimit,
		Offset: listOffset,
		Search: listSearch,
		Labels: listLabels,
		Sort:   listSort,
	}

	bookmarks, err := client.ListBookmarks(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}

	var matched []readeck.Bookmark
	for _, b := range bookmarks {
		if match(b) {
			matched = append(matched, b)
		}
	}

	if len(matched) == 0 {
		fmt.Println("No bookmarks found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d bookmarks:\n", len(matched))
	fmt.Println(strings.Repeat("-", 80))

	for _, b := range matched {
		printBookmarkLine(b)
	}

	return nil
}

func printBookmarkLine(b readeck.Bookmark) {
	fmt.Printf("• %s [%s]", b.Title, b.ID)
	if b.IsMarked {
		fmt.Printf(" ★")
	}
	if b.IsArchived {
		fmt.Printf(" [ARCHIVED]")
	}
	fmt.Println()
	fmt.Printf("  %s\n", b.URL)
	if len(b.Labels) > 0 {
		fmt.Printf("  Labels: %s\n", strings.Join(b.Labels, ", "))
	}
	fmt.Printf("  Added: %s", b.Created.Format("2006-01-02"))
	if b.ReadingTime > 0 {
		fmt.Printf("  Reading time: %d min", b.ReadingTime)
	}
	fmt.Println()
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add URL",
	Short: "Add a new bookmark",
	Long: `Submit a URL to your Readeck instance. The server fetches and processes
the page asynchronously; the command prints the ID assigned to the new
bookmark.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "override the bookmark title")
	addCmd.Flags().StringSliceVarP(&addLabels, "label", "l", nil, "label to attach (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	result, err := client.CreateBookmark(cmd.Context(), readeck.BookmarkCreateRequest{
		URL:    args[0],
		Title:  addTitle,
		Labels: addLabels,
	})
	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	fmt.Printf("✓ Bookmark created: %s\n", result.BookmarkID)
	if result.Response.Message != "" {
		fmt.Printf("  %s\n", result.Response.Message)
	}
	if result.Location != "" {
		fmt.Printf("  Location: %s\n", result.Location)
	}

	return nil
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show details for a single bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	b, err := client.GetBookmark(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get bookmark: %w", err)
	}

	fmt.Printf("%s\n", b.Title)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("ID:          %s\n", b.ID)
	fmt.Printf("URL:         %s\n", b.URL)
	if b.SiteName != "" {
		fmt.Printf("Site:        %s (%s)\n", b.SiteName, b.Site)
	} else {
		fmt.Printf("Site:        %s\n", b.Site)
	}
	if len(b.Authors) > 0 {
		fmt.Printf("Authors:     %s\n", strings.Join(b.Authors, ", "))
	}
	if b.Description != "" {
		fmt.Printf("Description: %s\n", b.Description)
	}
	fmt.Printf("Type:        %s\n", b.Type)
	if len(b.Labels) > 0 {
		fmt.Printf("Labels:      %s\n", strings.Join(b.Labels, ", "))
	}
	fmt.Printf("Added:       %s\n", b.Created.Format("2006-01-02 15:04"))
	if b.Published != nil {
		fmt.Printf("Published:   %s\n", b.Published.Format("2006-01-02"))
	}
	if b.WordCount > 0 {
		fmt.Printf("Words:       %d (%d min)\n", b.WordCount, b.ReadingTime)
	}
	fmt.Printf("Progress:    %.0f%%\n", b.ReadProgress)
	fmt.Printf("Marked:      %s\n", boolToStatus(b.IsMarked))
	fmt.Printf("Archived:    %s\n", boolToStatus(b.IsArchived))

	return nil
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&deleteNoConfirm, "no-confirm", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	b, err := client.GetBookmark(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get bookmark: %w", err)
	}

	if !deleteNoConfirm {
		fmt.Printf("Delete \"%s\" (%s)? [y/N]: ", b.Title, b.URL)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := client.DeleteBookmark(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	fmt.Printf("✓ Deleted %s\n", id)
	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
