package pmpatch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type CLIConfig struct {
	Reverse     bool
	DryRun      bool
	JSON        bool
	NoColor     bool
	Verbose     bool
	ConfigFile  string
	IncludeDirs []string
	Completion  string
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "pmpatch [flags] <patches_dir>",
	Short: "Apply or reverse a directory of patches against installed Perl modules.",
	Long: `Apply or reverse a directory of pm-<Module-Name>-<version>-<topic>.patch
files against the locally installed Perl modules they target. Patches whose
module is not installed, or that are already in the requested state, are
skipped.

Example: pmpatch -R patches/`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("error: exactly one patches_dir argument is required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "pmpatch",
		})
		if cfg.Verbose {
			logger.SetLevel(log.DebugLevel)
		}

		app, err := NewApp(&Config{
			PatchesDir:  args[0],
			Reverse:     cfg.Reverse,
			DryRun:      cfg.DryRun,
			IncludeDirs: cfg.IncludeDirs,
			ConfigFile:  cfg.ConfigFile,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		env, err := app.Execute()
		if err != nil {
			return err
		}

		if cfg.JSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(env)
		}

		fmt.Fprint(cmd.OutOrStdout(), RenderEnvelope(env, !cfg.NoColor))
		return nil
	},
}

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().BoolVarP(&cfg.Reverse, "reverse", "R", false, "Reverse-apply patches")
	rootCmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Report what would be done without applying")
	rootCmd.Flags().BoolVar(&cfg.JSON, "json", false, "Emit the result envelope as JSON")
	rootCmd.Flags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log skipped files")
	rootCmd.Flags().StringVar(&cfg.ConfigFile, "config", "", "Settings file")
	rootCmd.Flags().StringSliceVarP(&cfg.IncludeDirs, "include", "I", []string{}, "Extra module search directory")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
