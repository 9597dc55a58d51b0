package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pumlicons/internal/config"
)

const fixtureCurated = `Defaults:
  Colors:
    Endor: "#7AA116"
    Squid: "#232F3E"
  Category:
    Color: Squid
  Group:
    BorderStyle: plain
    Label: Generic group
  TargetMaxSize: 64
Categories:
  Storage:
    Color: Endor
    Icons:
      - Source: Res_Amazon-Simple-Storage-Service_Bucket_48.svg
        Target: SimpleStorageServiceBucket
`

const fixtureRules = `version = "19.0"
date = "2024.06.07"

[[rule]]
name = "resource"
dir = "official"
glob = "Res_*/*.svg"
category_regex = '[^.]*\/(?:Res_)(.*)\/(?:.*$)'
filename_regex = '[^.]*Res_(?:Amazon.|AWS.)?(.*)_\d*\.svg$'
`

const fixtureSVG = `<svg width="48" height="48" viewBox="0 0 48 48" xmlns="http://www.w3.org/2000/svg"><title>Bucket</title><g id="Icon-Resource/Storage/Bucket"><path d="M1,1 L2,2" fill="#7AA116"/></g></svg>`

// newWorkspace lays out a source tree, curated config and release rules in
// a temp dir and returns settings pointing at it.
func newWorkspace(t *testing.T) config.Settings {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	write("config.yml", fixtureCurated)
	write("rules.toml", fixtureRules)
	write("source/AWSCommon.puml", "' common\n")
	write("source/official/Res_Storage/Res_Amazon-Simple-Storage-Service_Bucket_48.svg", fixtureSVG)

	s := config.DefaultSettings()
	s.SourceDir = filepath.Join(root, "source")
	s.DistDir = filepath.Join(root, "dist")
	s.ConfigPath = filepath.Join(root, "config.yml")
	s.RulesPath = filepath.Join(root, "rules.toml")
	s.SymbolsFile = filepath.Join(root, "AWSSymbols.md")
	return s
}

type stubRasterizer struct{}

func (stubRasterizer) Rasterize(ctx context.Context, svg []byte, size int) ([]byte, error) {
	return []byte("png"), nil
}

type stubEncoder struct{}

func (stubEncoder) Encode(ctx context.Context, name string, png []byte) (string, error) {
	return "sprite $" + name + " [64x64/16z] {\nxyz\n}\n", nil
}
