package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/history"
	"github.com/tanmaysane/studymate/internal/quiz"
	"github.com/tanmaysane/studymate/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a graded quiz generated from your materials",
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().String("topic", "", "restrict questions to a topic")
	quizCmd.Flags().String("difficulty", "", "easy, medium or hard")
	quizCmd.Flags().Int("count", 0, "number of questions")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
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
	if err := ctrl.SetMode(gateway.ModeQuiz); err != nil {
		return err
	}
	if ctrl.View() == session.ViewUpload {
		fmt.Println("No documents uploaded yet. Run `studymate docs upload <files>` first.")
		return nil
	}

	difficulty := cfg.Difficulty
	if flagDiff, _ := cmd.Flags().GetString("difficulty"); flagDiff != "" {
		difficulty = gateway.Difficulty(flagDiff)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", difficulty)
	}
	count := cfg.NumQuestions
	if flagCount, _ := cmd.Flags().GetInt("count"); flagCount > 0 {
		count = flagCount
	}

	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return runQuizLoop(ctx, ctrl, store, difficulty, count)
}

// runQuizLoop drives one full quiz run, shared with `studymate study`.
func runQuizLoop(ctx context.Context, ctrl *session.Controller, store *history.Store, difficulty gateway.Difficulty, count int) error {
	eng := ctrl.Quiz()

	fmt.Printf("Generating %d %s questions", count, difficulty)
	if ctrl.Topic() != "" {
		fmt.Printf(" on %s", ctrl.Topic())
	}
	fmt.Println("...")

	if err := eng.Generate(ctx, ctrl.Topic(), difficulty, count); err != nil {
		connectivityNotice(err)
		return fmt.Errorf("could not start the quiz")
	}

	var sessionID string
	if store != nil {
		sess, err := store.CreateSession(ctx, gateway.ModeQuiz, ctrl.Company(), ctrl.Topic())
		if err != nil {
			return err
		}
		sessionID = sess.ID
	}

	scanner := bufio.NewScanner(os.Stdin)
	for eng.Phase() != quiz.Complete {
		q, ok := eng.Current()
		if !ok {
			break
		}
		fmt.Printf("\nQ%d/%d [%s]: %s\n", eng.Index()+1, eng.Total(), q.Difficulty, q.Question)
		fmt.Print("Your answer: ")
		if !scanner.Scan() {
			fmt.Println("\nQuiz abandoned.")
			return scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())

		result, err := eng.SubmitAnswer(ctx, answer)
		switch {
		case errors.Is(err, quiz.ErrBlankAnswer):
			fmt.Println("Please enter an answer.")
			continue
		case err != nil:
			connectivityNotice(err)
			fmt.Println("Your answer was not graded; edit it and try again.")
			continue
		}

		if result.IsCorrect {
			fmt.Printf("\nCorrect! Score: %d/100\n", result.Score)
		} else {
			fmt.Printf("\nIncorrect. Score: %d/100\n", result.Score)
			fmt.Printf("Expected answer: %s\n", result.CorrectAnswer)
		}
		fmt.Printf("Feedback: %s\n", result.Feedback)
		fmt.Printf("Running score: %d/100 (%d of %d answered)\n",
			eng.AverageScore(), eng.AnsweredCount(), eng.Total())

		if store != nil {
			if err := store.RecordRound(ctx, sessionID, q.Question, answer, *result); err != nil && verbose {
				fmt.Fprintf(os.Stderr, "history: %v\n", err)
			}
		}

		if err := eng.Advance(); err != nil {
			return err
		}
	}

	fmt.Printf("\nQuiz complete! Final score: %d/100 over %d questions.\n",
		eng.AverageScore(), eng.Total())
	return nil
}

// promptDifficulty asks the user to pick a difficulty interactively.
func promptDifficulty() (gateway.Difficulty, error) {
	sel := promptui.Select{
		Label: "Select difficulty",
		Items: []string{"easy", "medium", "hard"},
	}
	_, choice, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("difficulty selection: %w", err)
	}
	return gateway.Difficulty(choice), nil
}
