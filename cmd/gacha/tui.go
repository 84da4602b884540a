package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the gacha in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, sheetClient := newCatalog(cfg)
		defer sheetClient.Close()

		return tui.Run(ctx, catalog, tui.Options{SpinDelay: cfg.SpinDelay()})
	},
}
