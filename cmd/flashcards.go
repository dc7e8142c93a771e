package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/session"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Review flashcards generated from your materials",
	RunE:  runFlashcards,
}

func init() {
	flashcardsCmd.Flags().String("topic", "", "restrict cards to a topic")
	flashcardsCmd.Flags().Int("count", 0, "number of cards")
	rootCmd.AddCommand(flashcardsCmd)
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
		ctrl.SetTopic(topic)
	}
	if err := ctrl.SetMode(gateway.ModeFlashcard); err != nil {
		return err
	}
	if ctrl.View() == session.ViewUpload {
		fmt.Println("No documents uploaded yet. Run `studymate docs upload <files>` first.")
		return nil
	}

	count := cfg.NumCards
	if flagCount, _ := cmd.Flags().GetInt("count"); flagCount > 0 {
		count = flagCount
	}

	return runFlashcardLoop(ctx, ctrl, count)
}

// runFlashcardLoop drives an interactive review of one generated deck,
// shared with `studymate study`.
func runFlashcardLoop(ctx context.Context, ctrl *session.Controller, count int) error {
	eng := ctrl.Flashcards()

	fmt.Printf("Generating %d flashcards", count)
	if ctrl.Topic() != "" {
		fmt.Printf(" on %s", ctrl.Topic())
	}
	fmt.Println("...")

	if err := eng.Generate(ctx, ctrl.Topic(), count); err != nil {
		connectivityNotice(err)
		return fmt.Errorf("could not generate flashcards")
	}

	fmt.Println(`Commands: [f]lip  [n]ext  [p]revious  [g N] go to card N  [q]uit`)
	showCard(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("flashcards> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "q" || input == "quit":
			return nil
		case input == "f" || input == "flip":
			eng.Flip()
		case input == "n" || input == "next":
			eng.Next()
		case input == "p" || input == "prev":
			eng.Previous()
		case strings.HasPrefix(input, "g "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "g ")))
			if err != nil {
				fmt.Println("Usage: g <card number>")
				continue
			}
			eng.JumpTo(n - 1)
		case input == "":
			continue
		default:
			fmt.Println("Unknown command. Use f, n, p, g N or q.")
			continue
		}
		showCard(ctrl)
	}
}

func showCard(ctrl *session.Controller) {
	eng := ctrl.Flashcards()
	card, ok := eng.Current()
	if !ok {
		return
	}
	side, text := "Question", card.Front
	if eng.Flipped() {
		side, text = "Answer", card.Back
	}
	fmt.Printf("\nCard %d of %d — %s\n%s\n\n", eng.Index()+1, eng.Total(), side, text)
}
