package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the authenticated user profile",
	RunE:  runProfile,
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Readeck",
	Long:  `Test the connection to your Readeck instance and display basic information.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(testCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	profile, err := client.GetUserProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	fmt.Printf("User:     %s", profile.User.Username)
	if profile.User.Email != "" {
		fmt.Printf(" <%s>", profile.User.Email)
	}
	fmt.Println()
	fmt.Printf("Provider: %s", profile.Provider.Name)
	if profile.Provider.Application != "" {
		fmt.Printf(" (%s)", profile.Provider.Application)
	}
	fmt.Println()
	if len(profile.Provider.Roles) > 0 {
		fmt.Printf("Roles:    %s\n", strings.Join(profile.Provider.Roles, ", "))
	}
	if len(profile.Provider.Permissions) > 0 {
		fmt.Printf("Permissions:\n")
		for _, perm := range profile.Provider.Permissions {
			fmt.Printf("  • %s\n", perm)
		}
	}

	reader := profile.User.Settings.ReaderSettings
	if reader.Font != "" {
		fmt.Printf("\nReader settings:\n")
		fmt.Printf("- Font: %s (size %d)\n", reader.Font, reader.FontSize)
		fmt.Printf("- Line height: %d, width: %d\n", reader.LineHeight, reader.Width)
	}

	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to Readeck at %s...\n", cfg.Readeck.URL)

	profile, err := client.GetUserProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nAuthenticated as: %s\n", profile.User.Username)
	fmt.Printf("- Provider: %s\n", profile.Provider.Name)

	// A quick listing shows the token has bookmark access
	bookmarks, err := client.ListBookmarks(cmd.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}
	fmt.Printf("- Bookmarks visible on first page: %d\n", len(bookmarks))

	return nil
}
