package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past study sessions",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the transcript of a past session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of sessions to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		fmt.Println("History is disabled. Enable it in .studymate.yml to record sessions.")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	sessions, err := store.ListSessions(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No recorded sessions yet.")
		return nil
	}
	for _, sess := range sessions {
		scope := ""
		if sess.Company != "" {
			scope += " company=" + sess.Company
		}
		if sess.Topic != "" {
			scope += " topic=" + sess.Topic
		}
		fmt.Printf("%s  %-17s %s%s\n", sess.StartedAt.Format("2006-01-02 15:04"), sess.Mode, sess.ID, scope)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		fmt.Println("History is disabled.")
		return nil
	}

	ctx := context.Background()
	sessionID := args[0]

	messages, err := store.Transcript(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		fmt.Printf("[%s] %s\n\n", msg.Role, msg.Content)
	}

	rounds, err := store.Rounds(ctx, sessionID)
	if err != nil {
		return err
	}
	for i, r := range rounds {
		verdict := "incorrect"
		if r.IsCorrect {
			verdict = "correct"
		}
		fmt.Printf("Round %d (%s, %d/100)\n  Q: %s\n  A: %s\n\n", i+1, verdict, r.Score, r.Question, r.UserAnswer)
	}

	if len(messages) == 0 && len(rounds) == 0 {
		fmt.Println("No records for that session.")
	}
	return nil
}
