package build

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// RequiredLibraryFiles must exist in the source directory.
var RequiredLibraryFiles = []string{
	"AWSC4Integration.puml",
	"AWSCommon.puml",
	"AWSRaw.puml",
	"AWSSimplified.puml",
}

// EnvCheck describes what a build needs.
type EnvCheck struct {
	SourceDir string

	// PlantUML is probed with -version.
	PlantUML JavaTool

	// RasterizerJar must exist unless the native rasterizer is used.
	RasterizerJar string
}

// CheckEnv verifies the build prerequisites and reports every problem found.
func CheckEnv(ctx context.Context, fs filesystem.FileSystemProvider, check EnvCheck) error {
	var problems []string

	for _, name := range RequiredLibraryFiles {
		if !filesystem.Exists(fs, path.Join(check.SourceDir, name)) {
			problems = append(problems, fmt.Sprintf("file %s not found in %s", name, check.SourceDir))
		}
	}

	official := path.Join(check.SourceDir, "official")
	entries, err := fs.ReadDir(official)
	if err != nil || !hasDir(entries) {
		problems = append(problems, official+" must contain folders of AWS icons to process")
	}

	if check.RasterizerJar != "" && !filesystem.Exists(fs, check.RasterizerJar) {
		problems = append(problems, "rasterizer jar "+check.RasterizerJar+" not found")
	}

	if !filesystem.Exists(fs, check.PlantUML.Jar) {
		problems = append(problems, "plantuml jar "+check.PlantUML.Jar+" not found")
	} else if _, err := check.PlantUML.Version(ctx); err != nil {
		problems = append(problems, fmt.Sprintf("cannot run plantuml: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", pumlicons.ErrEnvironment, strings.Join(problems, "; "))
	}
	return nil
}

func hasDir(entries []filesystem.FileInfo) bool {
	for _, e := range entries {
		if e.IsDir() {
			return true
		}
	}
	return false
}
