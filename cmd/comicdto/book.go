package cmd

import (
	"fmt"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/kerbaras/comicdto/pkg/payload"
	"github.com/spf13/cobra"
)

var bookFormat string

var bookCmd = &cobra.Command{
	Use:   "book [file]",
	Short: "Show the book info of a comic detail response",
	Long: `Read a comic detail response (results.comic) from a file or stdin and print
the series metadata used for packaging: authors and themes joined by name.

Examples:
  comicdto book detail.json
  curl -s https://api.mangacopy.com/api/v3/comic2/one | comicdto book --format table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if payload.RateLimited(body) {
			log.Warn("Backend throttled this request, the payload may hold no records")
		}

		info, err := payload.BookInfo(body)
		if err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}

		out, err := data.Hydrate(hydrate.FromAny(info), data.ShapeBookInfo)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), out, bookFormat, false)
	},
}

func init() {
	bookCmd.Flags().StringVarP(&bookFormat, "format", "f", formatJSON, "Output format: json, yaml or table")
	rootCmd.AddCommand(bookCmd)
}
