package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/build"
	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/tui"
)

var checkEnvCmd = &cobra.Command{
	Use:   "check-env",
	Short: "Verify the build prerequisites",
	Long: `Check-env verifies that a build can run:

  - the library files (AWSCommon.puml, ...) exist in the source directory
  - <source>/official contains icon folders
  - the rasterizer jar exists (unless --rasterizer native)
  - java runs the PlantUML jar

Every problem is reported, not only the first.`,
	Args: cobra.NoArgs,
	RunE: runCheckEnv,
}

var checkEnvRasterizer string

func init() {
	rootCmd.AddCommand(checkEnvCmd)
	checkEnvCmd.Flags().StringVar(&checkEnvRasterizer, "rasterizer", rasterizerBatik,
		"Rasterizer the build will use: batik or native")
}

func runCheckEnv(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return checkEnv(cmd.Context(), filesystem.NewOSFileSystem(), settings, checkEnvRasterizer, build.ExecCommand, tui.NewPrinter(os.Stderr))
}

func checkEnv(ctx context.Context, fs filesystem.FileSystemProvider, s config.Settings, rasterizer string, run build.CommandRunner, printer *tui.Printer) error {
	check := build.EnvCheck{
		SourceDir: s.SourceDir,
		PlantUML:  build.JavaTool{Name: "plantuml", Java: s.Java, Jar: s.PlantUMLJar, Run: run},
	}
	if rasterizer != rasterizerNative {
		check.RasterizerJar = s.RasterizerJar
	}
	if err := build.CheckEnv(ctx, fs, check); err != nil {
		printer.Failure("Environment is not ready")
		return err
	}
	printer.Success("Environment is ready")
	return nil
}
