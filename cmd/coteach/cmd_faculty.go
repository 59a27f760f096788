package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coteach/internal/classify"
	"coteach/internal/tui"
)

// dashboardCmd launches the interactive faculty view.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the faculty insights dashboard",
	Long: `Opens the interactive faculty view: question totals, the dominant
learning gap with a recommended action, the topic distribution and the
filterable question log with urgency markers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()
		return tui.RunDashboard(svc, cfg.Dashboard.PageSize)
	},
}

// logCmd prints one page of the question log.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print a page of the question log",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("topic")
		page, _ := cmd.Flags().GetInt("page")

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := svc.GetPage(filter, page, cfg.Dashboard.PageSize)
		if err != nil {
			return err
		}

		if len(res.Entries) == 0 {
			fmt.Println("No questions match this filter.")
			return nil
		}
		for _, e := range res.Entries {
			marker := " "
			if e.Urgent {
				marker = "!"
			}
			fmt.Printf("%s #%-4d %s  %-10s  %s\n",
				marker, e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Topic, e.Text)
		}
		fmt.Printf("page %d/%d (filter: %s)\n", res.PageIndex+1, res.TotalPages, filter)
		return nil
	},
}

// exportCmd writes the full log as CSV.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the question log as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		rows, err := svc.Export(out)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			fmt.Printf("exported %d rows to %s\n", rows, args[0])
		}
		return nil
	},
}

// resetCmd deletes every stored interaction.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete ALL stored interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete all data without --yes")
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Reset(); err != nil {
			return err
		}
		fmt.Println("all interactions deleted")
		return nil
	},
}

// statusCmd prints the summary without the TUI.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show classroom log status",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		dash, err := svc.GetDashboard()
		if err != nil {
			return err
		}

		fmt.Printf("database:  %s\n", cfg.Database.Path)
		fmt.Printf("questions: %d\n", dash.Summary.Total)
		if !dash.Summary.HasData() {
			fmt.Println("no data yet")
			return nil
		}
		fmt.Printf("top topic: %s\n", dash.Summary.TopTopic)
		fmt.Printf("last seen: %s\n", dash.Summary.LastActivity.Format("2006-01-02 15:04:05"))
		for _, topic := range classify.AllTopics() {
			fmt.Printf("  %-10s %d\n", topic, dash.Counts[topic])
		}
		fmt.Printf("advice:    %s\n", dash.Recommendation)
		return nil
	},
}

func init() {
	logCmd.Flags().String("topic", classify.FilterAll, "filter by topic (All, Computing, Humanities, Science, Education, General)")
	logCmd.Flags().Int("page", 0, "page index (0-based)")
	resetCmd.Flags().Bool("yes", false, "confirm deletion of all data")
}
