package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"coteach/internal/tui"
)

// chatCmd launches the interactive student view.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the student chat interface",
	Long: `Opens the interactive student view. Every question is classified
into a topic and saved to the classroom log for the instructor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()
		return tui.RunChat(svc)
	},
}

// askCmd submits a single question without the TUI.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Submit one question from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		question := strings.Join(args, " ")
		rec, reply, err := svc.Submit(uuid.NewString(), question)
		if err != nil {
			return err
		}

		fmt.Printf("[%s] #%d %s\n", rec.Topic, rec.ID, reply)
		return nil
	},
}
