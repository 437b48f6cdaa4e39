package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/kerbaras/comicdto/pkg/payload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var hydrateOpts struct {
	shape  string
	asMap  bool
	path   string
	format string
	reveal bool
}

var hydrateCmd = &cobra.Command{
	Use:   "hydrate [file]",
	Short: "Hydrate a JSON payload into typed records",
	Long: `Read a JSON payload from a file (or stdin when the file is "-" or omitted),
hydrate it against a record shape and print the result.

Unknown keys are dropped, missing keys stay missing and primitive values are
kept as sent. Use --map when the payload is an object keyed by id.

Examples:
  comicdto hydrate search.json --path results.list --shape Comic
  comicdto hydrate users.json --shape User --map --format table
  cat progress.json | comicdto hydrate --shape DownloaderSingle --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHydrate,
}

func runHydrate(cmd *cobra.Command, args []string) error {
	if _, ok := data.Registry.Lookup(hydrateOpts.shape); !ok {
		return fmt.Errorf("unknown shape %q, see 'comicdto shapes'", hydrateOpts.shape)
	}

	body, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if payload.RateLimited(body) {
		log.Warn("Backend throttled this request, the payload may hold no records")
	}

	in, err := payload.Extract(body, hydrateOpts.path)
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	var opts []hydrate.Option
	if hydrateOpts.asMap {
		opts = append(opts, hydrate.AsMap())
	}
	out, err := data.Hydrate(in, hydrateOpts.shape, opts...)
	if err != nil {
		return fmt.Errorf("hydrate failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"shape": hydrateOpts.shape,
		"kind":  out.Kind(),
		"size":  out.Len(),
	}).Debug("Hydrated payload")

	return render(cmd.OutOrStdout(), out, hydrateOpts.format, hydrateOpts.reveal)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return body, nil
}

func init() {
	hydrateCmd.Flags().StringVarP(&hydrateOpts.shape, "shape", "s", "", "Record shape to hydrate into")
	hydrateCmd.Flags().BoolVar(&hydrateOpts.asMap, "map", false, "Treat the payload object as a map of records")
	hydrateCmd.Flags().StringVarP(&hydrateOpts.path, "path", "p", "", "Path of the records inside the payload, e.g. results.list")
	hydrateCmd.Flags().StringVarP(&hydrateOpts.format, "format", "f", formatJSON, "Output format: json, yaml or table")
	hydrateCmd.Flags().BoolVar(&hydrateOpts.reveal, "reveal", false, "Show passwords and tokens")
	hydrateCmd.MarkFlagRequired("shape")

	rootCmd.AddCommand(hydrateCmd)
}
