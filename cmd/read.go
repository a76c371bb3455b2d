package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdeck/internal/browser"
)

var flagReadOpen bool

var readCmd = &cobra.Command{
	Use:   "read <url>",
	Short: "Show the readable text of an article",
	Long: `Extract and print the readable content of an article. Extractions are
cached, so re-reading the same url within the cache TTL is instant.
With --open the url is opened in the system browser instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]

		if flagReadOpen {
			return browser.Open(url)
		}

		a, db, err := openApp()
		if err != nil {
			return err
		}
		defer db.Close()

		article, err := a.ReadArticle(context.Background(), url)
		if err != nil {
			return fmt.Errorf("reading article: %w", err)
		}

		fmt.Println(titleStyle.Render(article.Title))
		if article.Byline != "" {
			fmt.Println(sourceStyle.Render(article.Byline))
		}
		fmt.Println()
		fmt.Println(article.TextContent)
		return nil
	},
}

func init() {
	readCmd.Flags().BoolVar(&flagReadOpen, "open", false, "open in the system browser instead of extracting")
}
