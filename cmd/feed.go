package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdeck/internal/notify"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sourceStyle = lipgloss.NewStyle().Foreground(colorGreen)
	timeStyle   = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	urlStyle    = lipgloss.NewStyle().Foreground(colorDim)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// terminalSink prints new-item alerts as they are detected during a refresh.
type terminalSink struct{}

func (terminalSink) Emit(n notify.Notification) {
	fmt.Printf("%s %s\n", alertStyle.Render("new:"), n.Title)
}

func runFeed(cmd *cobra.Command, args []string) error {
	a, db, err := openApp()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := a.Refresh(context.Background(), flagForce); err != nil {
		// Keep showing the last-known-good feed with an error indicator.
		fmt.Println(alertStyle.Render("refresh failed:"), err)
	}

	items := a.Items()
	if len(items) == 0 {
		if len(a.Topics()) == 0 {
			fmt.Println("No topics yet. Add one with: newsdeck topic add <label>")
		} else {
			fmt.Println("No items yet. Try: newsdeck refresh --force")
		}
		return nil
	}

	if flagLimit > 0 && len(items) > flagLimit {
		items = items[:flagLimit]
	}

	for _, it := range items {
		line := fmt.Sprintf("%s  %s %s",
			titleStyle.Render(it.Title),
			sourceStyle.Render(it.Source),
			timeStyle.Render(humanize.Time(it.PublishedAt)),
		)
		if len(it.Labels) > 0 {
			line += " " + labelStyle.Render("["+strings.Join(it.Labels, ", ")+"]")
		}
		fmt.Println(line)
		fmt.Println("  " + urlStyle.Render(it.URL))
	}

	if last := a.LastUpdated(); last != nil {
		fmt.Println(timeStyle.Render("updated " + humanize.Time(*last)))
	}
	return nil
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one aggregation cycle now",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, db, err := openApp()
		if err != nil {
			return err
		}
		defer db.Close()

		before := a.LastUpdated()
		if err := a.Refresh(context.Background(), flagRefreshForce); err != nil {
			return err
		}
		after := a.LastUpdated()
		if after == nil || (before != nil && after.Equal(*before)) {
			fmt.Println("Skipped: inside the throttle window. Use --force to override.")
			return nil
		}
		fmt.Printf("Refreshed %d items at %s.\n", len(a.Items()), after.Format(time.Kitchen))
		return nil
	},
}

var flagRefreshForce bool

func init() {
	refreshCmd.Flags().BoolVar(&flagRefreshForce, "force", false, "refresh even inside the throttle window")
}
