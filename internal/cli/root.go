package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pumlicons",
	Short: "PlantUML icon libraries from the AWS Architecture Icons",
	Long: `pumlicons turns an AWS Architecture Icons release into PlantUML icon
libraries, a Markdown symbol sheet, a Structurizr theme, a Mermaid icon pack
and an icon catalog. It also upgrades diagrams written against older library
versions.

Settings are read from .env and PUMLICONS_* environment variables; flags
override both.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid curated config or release rules
  11 - Capture pattern did not match a source path
  12 - User denied overwrite approval
  13 - Rasterizer or sprite encoder failed
  14 - check-env found missing prerequisites`,
	SilenceUsage: true,
}

type rootFlagValues struct {
	verbose    bool
	envFile    string
	configPath string
	rulesPath  string
	sourceDir  string
	distDir    string
}

var rootFlags rootFlagValues

// Execute runs the root command. Ctrl+C and SIGTERM cancel the command context.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	pf.StringVar(&rootFlags.envFile, "env-file", ".env", "Environment file with PUMLICONS_* settings (missing file is ignored)")
	pf.StringVar(&rootFlags.configPath, "config", "",
		"Curated config file\n"+
			"Precedence: --config > $PUMLICONS_CONFIG > config.yml")
	pf.StringVar(&rootFlags.rulesPath, "rules", "",
		"Release rules TOML file (default: built-in rules of the current release)")
	pf.StringVar(&rootFlags.sourceDir, "source", "",
		"Source directory with the vendor icons and library files\n"+
			"Precedence: --source > $PUMLICONS_SOURCE_DIR > source")
	pf.StringVar(&rootFlags.distDir, "dist", "",
		"Output directory, removed and recreated by build\n"+
			"Precedence: --dist > $PUMLICONS_DIST_DIR > dist")
}

// loadSettings applies the persistent flags over the environment settings.
func loadSettings() (config.Settings, error) {
	s, err := config.LoadSettings(rootFlags.envFile)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load %s: %w", rootFlags.envFile, err)
	}
	overrides := []struct {
		flag  string
		field *string
	}{
		{rootFlags.configPath, &s.ConfigPath},
		{rootFlags.rulesPath, &s.RulesPath},
		{rootFlags.sourceDir, &s.SourceDir},
		{rootFlags.distDir, &s.DistDir},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.field = o.flag
		}
	}
	return s, nil
}
