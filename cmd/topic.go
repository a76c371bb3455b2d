package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdeck/internal/topic"
)

var (
	flagTopicQuery  string
	flagTopicSector bool
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage subscribed topics",
}

var topicAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Subscribe to a topic",
	Long: `Subscribe to a topic by label. The search query defaults to the label;
override it with --query. Sector topics (--sector) get their own id namespace
so they never collide with a custom topic of the same label.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, db, err := openApp()
		if err != nil {
			return err
		}
		defer db.Close()

		typ := topic.TypeCustom
		if flagTopicSector {
			typ = topic.TypeSector
		}

		label := strings.Join(args, " ")
		t, ok := a.AddTopic(label, flagTopicQuery, typ)
		if !ok {
			fmt.Printf("Topic %q already exists.\n", topic.Slug(label))
			return nil
		}
		fmt.Printf("Added topic %s (query: %q).\n", t.ID, t.Query)
		return nil
	},
}

var topicRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Unsubscribe from a topic",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, db, err := openApp()
		if err != nil {
			return err
		}
		defer db.Close()

		a.RemoveTopic(args[0])
		fmt.Printf("Removed topic %s.\n", args[0])
		return nil
	},
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribed topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, db, err := openApp()
		if err != nil {
			return err
		}
		defer db.Close()

		topics := a.Topics()
		if len(topics) == 0 {
			fmt.Println("No topics. Add one with: newsdeck topic add <label>")
			return nil
		}
		for _, t := range topics {
			fmt.Printf("%-30s %-8s %q\n", t.ID, t.Type, t.Query)
		}
		return nil
	},
}

func init() {
	topicAddCmd.Flags().StringVar(&flagTopicQuery, "query", "", "search query (defaults to the label)")
	topicAddCmd.Flags().BoolVar(&flagTopicSector, "sector", false, "mark as an industry-sector topic")

	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicRemoveCmd)
	topicCmd.AddCommand(topicListCmd)
}
