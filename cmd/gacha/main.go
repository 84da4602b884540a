// Package main is the gourmet gacha command line: the server, the terminal
// UI and a one-shot draw.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gourmet-gacha/gacha/internal/client"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/gacha"
	"github.com/gourmet-gacha/gacha/internal/parser"
	"github.com/gourmet-gacha/gacha/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "gacha",
	Short: "Draw random restaurants from the Nara gourmet sheet",
	Long: `奈良グルメガチャ: picks up to five random restaurants from a shared
spreadsheet, optionally filtered by genre, area or station.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(drawCmd)
}

// newCatalog wires the sheet client, parser and draw engine from cfg.
func newCatalog(cfg *config.Config) (services.Catalog, client.Client) {
	c := client.NewClient(cfg)
	return services.NewCatalog(c, parser.NewListingParser(), gacha.NewEngine(nil)), c
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
