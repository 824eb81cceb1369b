// Package main starts the OAuth2 dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	dashboardcmd "github.com/louisbranch/oauthflow/internal/cmd/dashboard"
	"github.com/louisbranch/oauthflow/internal/platform/config"
)

func main() {
	cfg, err := dashboardcmd.LoadConfig(".env")
	if err != nil {
		config.Exit("dashboard", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = dashboardcmd.NewRootCommand(cfg).ExecuteContext(ctx)
	stop()
	config.Exit("dashboard", err)
}
