package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tanmaysane/studymate/internal/config"
	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/history"
	"github.com/tanmaysane/studymate/internal/session"
)

// loadConfig reads the config file named by the --config flag and
// validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newGateway creates the assistant service client for the configured
// server address and timeout.
func newGateway(cfg *config.Config) *gateway.Client {
	hc := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return gateway.NewWithHTTPClient(cfg.ServerURL, hc)
}

// newController builds a session controller with the configured scope
// filters applied and the document corpus refreshed.
func newController(ctx context.Context, cfg *config.Config) (*session.Controller, error) {
	ctrl := session.New(newGateway(cfg))
	ctrl.SetCompany(cfg.Company)
	ctrl.SetTopic(cfg.Topic)
	if err := ctrl.Corpus().Refresh(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// openHistory opens the transcript store when history is enabled.
// It returns a nil store when disabled; callers must handle that.
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(db), func() { db.Close() }, nil
}

// connectivityNotice prints the standard warning for a failed gateway
// call, distinguishing service errors from unreachability.
func connectivityNotice(err error) {
	if apiErr, ok := gateway.AsAPIError(err); ok {
		fmt.Printf("The assistant service reported an error: %s\n", apiErr.Detail)
		return
	}
	fmt.Println("Could not reach the assistant service. Check that it is running and try again.")
}
