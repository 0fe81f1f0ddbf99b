package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fetchpress/internal/config"
	"fetchpress/internal/newsapi"
)

var errCheckFailed = errors.New("news API check failed")

type newsChecker interface {
	FetchNews(ctx context.Context, q newsapi.Query) *newsapi.Result
	Configured() bool
}

var rootCmd = &cobra.Command{
	Use:           "newsapi-check",
	Short:         "Check the NewsAPI configuration used by FetchPress",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the client configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), newsapi.NewClient(cfg).Status())
		return nil
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Fetch a few live requests from NewsAPI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runCheck(cmd.Context(), cmd.OutOrStdout(), newsapi.NewClient(cfg))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(testCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printStatus(w io.Writer, s newsapi.APIStatus) {
	fmt.Fprintf(w, "API key configured: %t\n", s.APIKeyConfigured)
	fmt.Fprintf(w, "Base URL:           %s\n", s.BaseURL)
	fmt.Fprintf(w, "Timeout:            %.0fs\n", s.DefaultTimeout)
	fmt.Fprintf(w, "Max retries:        %d\n", s.MaxRetries)
	fmt.Fprintf(w, "Categories:         %d\n", len(s.SupportedCategories))
	fmt.Fprintf(w, "Languages:          %d\n", len(s.SupportedLanguages))
	fmt.Fprintf(w, "Version:            %s\n", s.Version)
}

// runCheck performs a category fetch and a search fetch and reports both
func runCheck(ctx context.Context, w io.Writer, client newsChecker) error {
	if !client.Configured() {
		fmt.Fprintln(w, "NEWS_API_KEY not found in environment")
		fmt.Fprintln(w, "Get your free API key from https://newsapi.org/")
		return errCheckFailed
	}

	checks := []struct {
		name  string
		query newsapi.Query
	}{
		{"technology headlines", newsapi.Query{Category: "technology", Language: "en", PageSize: 5}},
		{"search \"artificial intelligence\"", newsapi.Query{Search: "artificial intelligence", Language: "en", PageSize: 3}},
	}

	for _, check := range checks {
		fmt.Fprintf(w, "Testing %s...\n", check.name)
		result := client.FetchNews(ctx, check.query)
		if !result.OK() {
			fmt.Fprintf(w, "  failed: %s (%s)\n", result.Error, result.Status)
			if result.Help != "" {
				fmt.Fprintf(w, "  %s\n", result.Help)
			}
			return errCheckFailed
		}

		fmt.Fprintf(w, "  got %d articles\n", len(result.Articles))
		if len(result.Articles) > 0 {
			printSample(w, result.Articles[0])
		}
	}

	fmt.Fprintln(w, "All checks passed")
	return nil
}

func printSample(w io.Writer, a newsapi.Article) {
	source := ""
	if a.Source != nil {
		source = a.Source.Name
	}
	fmt.Fprintf(w, "  sample: %s\n", truncate(a.Title, 60))
	fmt.Fprintf(w, "  source: %s\n", source)
	fmt.Fprintf(w, "  published: %s\n", a.PublishedAt)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
