package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/kerbaras/comicdto/pkg/config"
	"github.com/kerbaras/comicdto/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	packageTypes = []string{"cbz", "zip", "epub"}
	namingStyles = []string{"title", "index-title", "02d-index-title", "03d-index-title"}
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the downloader config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored config with credentials masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stored := config.Load(configPath, log)
		for _, u := range stored.UserList {
			log.WithFields(logger.UserFields(u)).Debug("Stored account")
		}

		cfg := stored.Redacted()
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check config: %w", err)
		}

		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", configPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update config settings",
	Long: `Update one or more settings. Accounts in the user list are kept as stored.

Examples:
  comicdto config set --url-base copymanga.tv
  comicdto config set --package-type epub --naming-style 02d-index-title`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath, log)
		flags := cmd.Flags()

		if flags.Changed("url-base") {
			cfg.URLBase, _ = flags.GetString("url-base")
		}
		if flags.Changed("output-path") {
			cfg.OutputPath, _ = flags.GetString("output-path")
		}
		if flags.Changed("package-type") {
			v, _ := flags.GetString("package-type")
			if !slices.Contains(packageTypes, v) {
				return fmt.Errorf("invalid package type %q, expected one of %v", v, packageTypes)
			}
			cfg.PackageType = v
		}
		if flags.Changed("naming-style") {
			v, _ := flags.GetString("naming-style")
			if !slices.Contains(namingStyles, v) {
				return fmt.Errorf("invalid naming style %q, expected one of %v", v, namingStyles)
			}
			cfg.NamingStyle = v
		}

		if _, err := config.Replace(configPath, cfg, log); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config")

	configSetCmd.Flags().String("url-base", "", "Backend host, e.g. mangacopy.com")
	configSetCmd.Flags().String("output-path", "", "Directory downloads are written to")
	configSetCmd.Flags().String("package-type", "", "Package format: cbz, zip or epub")
	configSetCmd.Flags().String("naming-style", "", "Chapter file naming style")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
