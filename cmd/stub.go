package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tanmaysane/studymate/internal/stub"
)

var stubCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run a local stand-in for the assistant service",
	Long: `Starts a local HTTP server implementing the assistant API with
deterministic canned content. Useful for trying the client without
the real backend.`,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().Int("port", 8000, "port to listen on")
	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	return stub.New().ListenAndServe(port)
}
