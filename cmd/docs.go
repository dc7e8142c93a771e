package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/corpus"
	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/progress"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage the uploaded document corpus",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runDocsList,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload [patterns...]",
	Short: "Upload study documents",
	Long:  `Uploads the files matching the given paths or glob patterns (e.g. notes/**/*.pdf) to the assistant service.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsUpload,
}

var docsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every uploaded document",
	RunE:  runDocsClear,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsClearCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	docs, err := newGateway(cfg).ListDocuments(context.Background())
	if err != nil {
		connectivityNotice(err)
		return nil
	}
	if len(docs) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}
	for _, doc := range docs {
		fmt.Println(doc)
	}
	return nil
}

// expandPatterns resolves each argument as a doublestar glob, falling
// back to a literal path when it contains no glob characters.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// A literal path that exists but matched nothing as a glob.
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			} else {
				return nil, fmt.Errorf("no files match %q", pattern)
			}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to upload")
	}

	reporter := progress.NewReporter()
	reporter.Start(len(paths))

	var files []gateway.File
	var handles []*os.File
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		handles = append(handles, f)
		files = append(files, gateway.File{Name: filepath.Base(path), Reader: f})
		reporter.Update(i+1, filepath.Base(path))
	}

	state := corpus.New(newGateway(cfg))
	err = state.Upload(context.Background(), files)
	reporter.Finish()
	if err != nil {
		connectivityNotice(err)
		return fmt.Errorf("upload failed")
	}

	fmt.Printf("Uploaded %d files. Corpus now has %d documents.\n", len(files), len(state.Documents()))
	return nil
}

func runDocsClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	confirm := promptui.Prompt{
		Label:     "Clear all uploaded documents",
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		fmt.Println("Aborted.")
		return nil
	}

	state := corpus.New(newGateway(cfg))
	if err := state.ClearAll(context.Background()); err != nil {
		connectivityNotice(err)
		return fmt.Errorf("clear failed")
	}
	fmt.Println("All documents cleared.")
	return nil
}
