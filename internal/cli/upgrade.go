package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/logging"
	"github.com/vvka-141/pumlicons/internal/tui"
	"github.com/vvka-141/pumlicons/internal/ui"
	"github.com/vvka-141/pumlicons/internal/upgrade"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <file|glob>...",
	Short: "Upgrade diagrams to the latest icon library version",
	Long: `Upgrade rewrites PlantUML documents written against an older release of the
icon library. The version is read from the header line

  !define AWSPuml https://raw.githubusercontent.com/awslabs/aws-icons-for-plantuml/v14.0/dist

and every include, icon macro and color macro is updated for the renames,
moves, replacements and removals of the later releases. Removed icons are
commented out.

Without --overwrite the changes are only shown. Files without a header are
left alone; files declaring an unknown version are reported and skipped
while the rest of the batch continues.

Arguments may be files or globs; ** matches any number of directories.

Examples:
  # Show what would change
  pumlicons upgrade 'docs/**/*.puml'

  # Write the changes after confirming
  pumlicons upgrade 'docs/**/*.puml' --overwrite

  # Non-interactive (CI)
  pumlicons upgrade docs/arch.puml --overwrite --force`,
	Args: RequireFiles,
	RunE: runUpgrade,
}

type upgradeFlagValues struct {
	overwrite, force bool
}

var upgradeFlags upgradeFlagValues

func init() {
	rootCmd.AddCommand(upgradeCmd)

	upgradeCmd.Flags().BoolVar(&upgradeFlags.overwrite, "overwrite", false,
		"Write upgraded documents in place\n"+
			"Requires interactive confirmation unless --force is used")
	upgradeCmd.Flags().BoolVar(&upgradeFlags.force, "force", false,
		"Skip the interactive approval prompt\n"+
			"Use with --overwrite for CI/CD pipelines")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	if upgradeFlags.force && !upgradeFlags.overwrite {
		return fmt.Errorf("invalid argument: --force requires --overwrite")
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	engine, err := upgrade.NewEngine()
	if err != nil {
		return err
	}
	u := &upgrader{
		fs:      filesystem.NewOSFileSystem(),
		engine:  engine,
		printer: tui.NewPrinter(os.Stderr),
		logger:  logging.NewConsoleLogger(rootFlags.verbose),
	}

	var approver pumlicons.Approver
	switch {
	case !upgradeFlags.overwrite:
	case upgradeFlags.force:
		approver = ui.NewForcedApprover(rootFlags.verbose)
	case tui.IsInteractive():
		approver = ui.NewInteractiveApprover(rootFlags.verbose)
	default:
		return fmt.Errorf("%w: --overwrite in a non-interactive session requires --force", pumlicons.ErrApprovalDenied)
	}
	return u.Run(cmd.Context(), paths, approver)
}

// expandGlobs resolves every argument with doublestar semantics. Arguments
// without glob characters are kept as given so a missing file is reported.
func expandGlobs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if hasMeta(arg) {
				return nil, fmt.Errorf("invalid argument %q: no files match", arg)
			}
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func hasMeta(p string) bool {
	for _, r := range p {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// pendingWrite is an upgraded document waiting for approval.
type pendingWrite struct {
	path string
	text string
}

// upgrader rewrites a batch of documents, each independently.
type upgrader struct {
	fs      filesystem.FileSystemProvider
	engine  *upgrade.Engine
	printer *tui.Printer
	logger  pumlicons.Logger
}

// Plan rewrites every document in memory, printing the diffs. It returns the
// changed documents and the number of documents that could not be upgraded.
func (u *upgrader) Plan(paths []string) ([]pendingWrite, int) {
	var (
		writes []pendingWrite
		failed int
	)
	for _, p := range paths {
		data, err := u.fs.ReadFile(p)
		if err != nil {
			u.printer.Failure("%s: %v", p, err)
			failed++
			continue
		}

		res, err := u.engine.RewriteDocument(upgrade.SplitLines(string(data)))
		var unsupported *pumlicons.UnsupportedVersionError
		switch {
		case errors.As(err, &unsupported):
			u.printer.Failure("%s: version %s is not supported", p, unsupported.Version)
			failed++
			continue
		case err != nil:
			u.printer.Failure("%s: %v", p, err)
			failed++
			continue
		case res == nil:
			u.logger.Verbose("%s: no version header, skipped", p)
			continue
		case !res.Changed():
			u.logger.Verbose("%s: already up to date", p)
			continue
		}

		u.printer.FileHeader(p, res.DeclaredVersion, u.engine.Latest())
		for _, c := range res.Changes {
			u.printer.Diff(c.Number, c.Before, c.After)
		}
		writes = append(writes, pendingWrite{path: p, text: res.Text()})
	}
	return writes, failed
}

// Run plans the batch and, when approver is non-nil, writes the changed
// documents after approval. A nil approver only shows the changes.
func (u *upgrader) Run(ctx context.Context, paths []string, approver pumlicons.Approver) error {
	writes, failed := u.Plan(paths)

	switch {
	case len(writes) == 0:
		u.printer.Success("No documents need upgrading")
	case approver == nil:
		u.printer.Success("%d document(s) can be upgraded; run with --overwrite to write them", len(writes))
	default:
		files := make([]string, len(writes))
		for i, w := range writes {
			files[i] = w.path
		}
		approved, err := approver.RequestApproval(ctx, files)
		if err != nil {
			return err
		}
		if !approved {
			return pumlicons.ErrApprovalDenied
		}
		for _, w := range writes {
			if err := u.fs.WriteFile(w.path, []byte(w.text)); err != nil {
				return fmt.Errorf("write %s: %w", w.path, err)
			}
		}
		u.printer.Success("Upgraded %d document(s) to %s", len(writes), u.engine.Latest())
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) could not be upgraded", failed)
	}
	return nil
}
