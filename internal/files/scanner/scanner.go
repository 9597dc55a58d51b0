package scanner

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/pumlicons/internal/checksum"
	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Scanner discovers the vendor files governed by an icon rule.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new file scanner with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// Scan walks rule.Dir and returns the files whose slash-separated relative
// path matches rule.Glob, ordered case-insensitively by path.
func (s *Scanner) Scan(rule pumlicons.IconRule) ([]pumlicons.SourceDescriptor, error) {
	dir, err := s.fsProvider.Open(rule.Dir)
	if err != nil {
		return nil, &pumlicons.RuleError{Rule: rule.Name, Message: fmt.Sprintf("cannot open %s: %v", rule.Dir, err)}
	}

	var sources []pumlicons.SourceDescriptor
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}

		rel := file.RelativePath()
		matched, err := doublestar.Match(rule.Glob, rel)
		if err != nil {
			return &pumlicons.RuleError{Rule: rule.Name, Message: fmt.Sprintf("glob %q: %v", rule.Glob, err)}
		}
		if !matched {
			return nil
		}

		desc, err := s.describe(rule, file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", rel, err)
		}
		sources = append(sources, desc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return strings.ToLower(sources[i].Path) < strings.ToLower(sources[j].Path)
	})
	return sources, nil
}

// ScanAll scans every rule, keeping rule order.
func (s *Scanner) ScanAll(rules []pumlicons.IconRule) ([][]pumlicons.SourceDescriptor, error) {
	out := make([][]pumlicons.SourceDescriptor, len(rules))
	for i, rule := range rules {
		sources, err := s.Scan(rule)
		if err != nil {
			return nil, err
		}
		out[i] = sources
	}
	return out, nil
}

func (s *Scanner) describe(rule pumlicons.IconRule, file filesystem.File) (pumlicons.SourceDescriptor, error) {
	content, err := file.ReadContent()
	if err != nil {
		return pumlicons.SourceDescriptor{}, fmt.Errorf("failed to read file: %w", err)
	}

	rel := file.RelativePath()
	kind := pumlicons.KindFromName(rel)

	sum := s.calculator.Sum(content)
	if kind == pumlicons.FileKindSVG {
		sum = s.calculator.SumSVG(content)
	}

	relDir := path.Dir(rel)
	if relDir == "." {
		relDir = ""
	}

	return pumlicons.SourceDescriptor{
		Path:        path.Join(rule.Dir, rel),
		RelativeDir: relDir,
		Name:        path.Base(rel),
		Kind:        kind,
		Checksum:    sum,
	}, nil
}
