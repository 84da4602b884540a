package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gourmet-gacha/gacha/internal/config"
	grpcserver "github.com/gourmet-gacha/gacha/internal/grpc"
	"github.com/gourmet-gacha/gacha/internal/models"
)

var (
	drawRemote  string
	drawJSON    bool
	drawTimeout time.Duration
)

var drawCmd = &cobra.Command{
	Use:   "draw [query]",
	Short: "Draw once and print the picked restaurants",
	Long: `Draw up to five restaurants matching the query and print them.
Without --remote the sheet is fetched locally; with --remote the draw runs on
a gacha server over gRPC.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDraw,
}

func init() {
	drawCmd.Flags().StringVar(&drawRemote, "remote", "", "gRPC address of a gacha server (host:port)")
	drawCmd.Flags().BoolVar(&drawJSON, "json", false, "Print the result as JSON")
	drawCmd.Flags().DurationVar(&drawTimeout, "timeout", 30*time.Second, "Overall timeout")
}

func runDraw(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = strings.TrimSpace(args[0])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), drawTimeout)
	defer cancel()

	result, err := drawOnce(ctx, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if drawJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(out, result)
	return nil
}

func drawOnce(ctx context.Context, query string) (models.DrawResult, error) {
	if drawRemote != "" {
		remote, err := grpcserver.Dial(drawRemote)
		if err != nil {
			return models.DrawResult{}, err
		}
		defer remote.Close()
		return remote.Draw(ctx, query)
	}

	catalog, sheetClient := newCatalog(config.GetConfig())
	defer sheetClient.Close()
	if err := catalog.Load(ctx); err != nil {
		return models.DrawResult{}, err
	}
	return catalog.Draw(ctx, query)
}

func printResult(w io.Writer, result models.DrawResult) {
	if result.Empty() {
		fmt.Fprintln(w, "該当するお店が見つかりませんでした")
		fmt.Fprintln(w, "違う条件で試してみてください")
		return
	}

	fmt.Fprintf(w, "🎉 当たり！%d件ヒット！\n", len(result.Listings))
	for i, l := range result.Listings {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, l.Name, l.Genre)
		if place := l.Place(); place != "" {
			fmt.Fprintf(w, "   📍 %s\n", place)
		}
		if l.HasLink() {
			fmt.Fprintf(w, "   %s\n", l.Link)
		}
	}
}
