package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/chat"
	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/history"
	"github.com/tanmaysane/studymate/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant about your uploaded materials",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().String("mode", "", "chat mode: general, mock_interview, resume_review, company_specific")
	chatCmd.Flags().String("company", "", "company filter for company_specific mode")
	chatCmd.Flags().String("topic", "", "topic filter")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := cfg.Mode
	if flagMode, _ := cmd.Flags().GetString("mode"); flagMode != "" {
		mode = gateway.Mode(flagMode)
	}
	if !mode.Valid() || !mode.Chat() {
		return fmt.Errorf("%q is not a chat mode", mode)
	}

	ctx := context.Background()
	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	if company, _ := cmd.Flags().GetString("company"); company != "" {
		ctrl.SetCompany(company)
	}
	if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
		ctrl.SetTopic(topic)
	}
	if err := ctrl.SetMode(mode); err != nil {
		return err
	}
	if ctrl.View() == session.ViewUpload {
		fmt.Println("No documents uploaded yet. Run `studymate docs upload <files>` first.")
		return nil
	}

	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return runChatLoop(ctx, ctrl, store)
}

// runChatLoop is the interactive chat REPL, shared with `studymate study`.
func runChatLoop(ctx context.Context, ctrl *session.Controller, store *history.Store) error {
	var sessionID string
	if store != nil {
		sess, err := store.CreateSession(ctx, ctrl.Mode(), ctrl.Company(), ctrl.Topic())
		if err != nil {
			return err
		}
		sessionID = sess.ID
	}

	thread := ctrl.Chat()
	for _, msg := range thread.Messages() {
		printMessage(msg)
		record(ctx, store, sessionID, msg)
	}
	fmt.Println(`Type your question, or "exit" to finish.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}

		before := thread.Len()
		err := thread.Send(ctx, line, ctrl.Scope())
		switch {
		case errors.Is(err, chat.ErrBlankMessage):
			continue
		case errors.Is(err, chat.ErrRequestPending):
			fmt.Println("Still waiting for the previous answer.")
			continue
		case err != nil:
			connectivityNotice(err)
		}

		// Print and record whatever the exchange appended.
		for _, msg := range thread.Messages()[before:] {
			if msg.Role == chat.RoleAssistant {
				printMessage(msg)
			}
			record(ctx, store, sessionID, msg)
		}
	}
	return scanner.Err()
}

func printMessage(msg chat.Message) {
	fmt.Printf("\n%s\n", msg.Content)
	if len(msg.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range msg.Sources {
			fmt.Printf("  - %s (page %d): %s\n", src.Source, src.Page, src.Content)
		}
	}
	fmt.Println()
}

func record(ctx context.Context, store *history.Store, sessionID string, msg chat.Message) {
	if store == nil {
		return
	}
	if err := store.AppendMessage(ctx, sessionID, string(msg.Role), msg.Content); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
	}
}
