package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/pumlicons/internal/checksum"
	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/files/scanner"
	"github.com/vvka-141/pumlicons/internal/report"
	"github.com/vvka-141/pumlicons/internal/resolve"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// releaseDateLayout is the date format of release rule files ("2024.06.07").
const releaseDateLayout = "2006.01.02"

func loadRuleSet(s config.Settings) (*config.RuleSet, error) {
	if s.RulesPath == "" {
		return config.DefaultRules()
	}
	return config.LoadRules(s.RulesPath)
}

func releaseOf(rs *config.RuleSet) (report.Release, error) {
	release := report.Release{Version: rs.Version}
	if rs.Date == "" {
		return release, nil
	}
	date, err := time.Parse(releaseDateLayout, rs.Date)
	if err != nil {
		return report.Release{}, fmt.Errorf("%w: release date %q: %v", pumlicons.ErrInvalidRule, rs.Date, err)
	}
	release.Date = date
	return release, nil
}

// discover scans the source directory with every rule of the release.
func discover(fs filesystem.FileSystemProvider, s config.Settings, rs *config.RuleSet) ([]resolve.Source, error) {
	rules, err := rs.Compile(s.SourceDir)
	if err != nil {
		return nil, err
	}
	scanned, err := scanner.NewScannerWithFS(checksum.New(), fs).ScanAll(rules)
	if err != nil {
		return nil, err
	}
	return resolve.Sources(rules, scanned), nil
}

// resolution is the resolved icon set of a release.
type resolution struct {
	release report.Release
	result  *resolve.Result
}

// resolveRelease loads the curated config and the release rules, scans the
// sources and resolves every icon. Any error aborts before output is written.
func resolveRelease(ctx context.Context, fs filesystem.FileSystemProvider, s config.Settings, logger pumlicons.Logger) (*resolution, error) {
	curated, err := config.LoadCurated(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Loaded %d curated icons from %s", curated.IconCount(), s.ConfigPath)

	rs, err := loadRuleSet(s)
	if err != nil {
		return nil, err
	}
	release, err := releaseOf(rs)
	if err != nil {
		return nil, err
	}

	sources, err := discover(fs, s, rs)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Found %d source files for release %s", len(sources), rs.Release())

	result, err := resolve.NewResolver(curated, logger).ResolveAll(ctx, sources)
	if err != nil {
		return nil, err
	}
	return &resolution{release: release, result: result}, nil
}
