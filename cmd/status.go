package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the assistant service",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	gw := newGateway(cfg)

	if err := gw.CheckHealth(ctx); err != nil {
		fmt.Printf("Disconnected: %s is not reachable\n", cfg.ServerURL)
		if verbose {
			fmt.Printf("  %v\n", err)
		}
		return nil
	}
	fmt.Printf("Connected to %s\n", cfg.ServerURL)

	docs, err := gw.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Println("No documents uploaded yet. Run `studymate docs upload <files>` to get started.")
		return nil
	}
	fmt.Printf("%d documents in the corpus\n", len(docs))
	return nil
}
