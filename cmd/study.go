package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start an interactive study session",
	Long: `Opens an interactive session where you can switch between chat,
quiz and flashcard activities. Switching activities discards any
in-progress quiz or flashcard run.`,
	RunE: runStudy,
}

func init() {
	rootCmd.AddCommand(studyCmd)
}

// activityChoices maps the picker labels to activity modes.
var activityChoices = []struct {
	Label string
	Mode  gateway.Mode
}{
	{"General Chat", gateway.ModeGeneral},
	{"Take Quiz", gateway.ModeQuiz},
	{"Flashcards", gateway.ModeFlashcard},
	{"Mock Interview", gateway.ModeMockInterview},
	{"Resume Review", gateway.ModeResumeReview},
	{"Company Prep", gateway.ModeCompanySpecific},
}

func runStudy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	if !ctrl.Corpus().Connected() {
		connectivityNotice(fmt.Errorf("refresh failed"))
	}

	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	for {
		if ctrl.View() == session.ViewUpload {
			fmt.Println("No documents uploaded yet. Run `studymate docs upload <files>` in another terminal, then choose Refresh.")
		}

		labels := make([]string, 0, len(activityChoices)+2)
		for _, choice := range activityChoices {
			labels = append(labels, choice.Label)
		}
		labels = append(labels, "Refresh documents", "Quit")

		sel := promptui.Select{Label: "Choose an activity", Items: labels}
		idx, _, err := sel.Run()
		if err != nil {
			return nil
		}
		switch {
		case idx == len(activityChoices): // Refresh documents
			if err := ctrl.Corpus().Refresh(ctx); err != nil {
				return err
			}
			fmt.Printf("%d documents in the corpus.\n", len(ctrl.Corpus().Documents()))
			continue
		case idx > len(activityChoices): // Quit
			return nil
		}
		mode := activityChoices[idx].Mode

		if ctrl.Corpus().Empty() {
			fmt.Println("Upload documents before starting an activity.")
			continue
		}
		if mode == gateway.ModeCompanySpecific && ctrl.Company() == "" {
			prompt := promptui.Prompt{Label: "Company to prepare for"}
			company, err := prompt.Run()
			if err != nil {
				continue
			}
			ctrl.SetCompany(company)
		}
		if err := ctrl.SetMode(mode); err != nil {
			return err
		}

		switch ctrl.View() {
		case session.ViewQuiz:
			difficulty, err := promptDifficulty()
			if err != nil {
				continue
			}
			if err := runQuizLoop(ctx, ctrl, store, difficulty, cfg.NumQuestions); err != nil {
				fmt.Println(err)
			}
		case session.ViewFlashcards:
			if err := runFlashcardLoop(ctx, ctrl, cfg.NumCards); err != nil {
				fmt.Println(err)
			}
		case session.ViewChat:
			if err := runChatLoop(ctx, ctrl, store); err != nil {
				fmt.Println(err)
			}
		}
	}
}
