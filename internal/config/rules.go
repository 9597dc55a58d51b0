package config

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

//go:embed release-19.0.toml
var defaultRules []byte

// RuleDef is one [[rule]] table of a release rule file.
type RuleDef struct {
	Name              string            `toml:"name"`
	Dir               string            `toml:"dir"`
	Glob              string            `toml:"glob"`
	CategoryRegex     string            `toml:"category_regex"`
	FilenameRegex     string            `toml:"filename_regex"`
	CategoryMappings  map[string]string `toml:"category_mappings"`
	FilenameMappings  map[string]string `toml:"filename_mappings"`
	FilenameMappings2 map[string]string `toml:"filename_mappings2"`
}

// RuleSet is the source layout of one vendor release.
type RuleSet struct {
	Version string    `toml:"version"`
	Date    string    `toml:"date"`
	Rules   []RuleDef `toml:"rule"`
}

// Release returns the "version-date" label of the release.
func (rs *RuleSet) Release() string {
	if rs.Date == "" {
		return rs.Version
	}
	return rs.Version + "-" + rs.Date
}

// DefaultRules returns the built-in rules of the current release.
func DefaultRules() (*RuleSet, error) {
	return ParseRules(defaultRules)
}

// LoadRules reads a rule file, falling back to DefaultRules for an empty path.
func LoadRules(filePath string) (*RuleSet, error) {
	if filePath == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filePath)
		}
		return nil, err
	}
	rs, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return rs, nil
}

// ParseRules decodes rule file TOML.
func ParseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if _, err := toml.Decode(string(data), &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", pumlicons.ErrInvalidRule, err)
	}
	if len(rs.Rules) == 0 {
		return nil, &pumlicons.RuleError{Rule: "-", Message: "rule file defines no [[rule]] tables"}
	}
	return &rs, nil
}

// Compile turns every rule into an IconRule rooted at sourceDir. It fails on
// the first rule whose glob or patterns are unusable.
func (rs *RuleSet) Compile(sourceDir string) ([]pumlicons.IconRule, error) {
	rules := make([]pumlicons.IconRule, 0, len(rs.Rules))
	for i, def := range rs.Rules {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		rule, err := def.compile(name, sourceDir)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (def RuleDef) compile(name, sourceDir string) (pumlicons.IconRule, error) {
	if def.Dir == "" {
		return pumlicons.IconRule{}, &pumlicons.RuleError{Rule: name, Message: "dir is required"}
	}
	if def.Glob == "" || !doublestar.ValidatePattern(def.Glob) {
		return pumlicons.IconRule{}, &pumlicons.RuleError{Rule: name, Message: fmt.Sprintf("invalid glob %q", def.Glob)}
	}
	category, err := compileCapture(name, "category_regex", def.CategoryRegex)
	if err != nil {
		return pumlicons.IconRule{}, err
	}
	identifier, err := compileCapture(name, "filename_regex", def.FilenameRegex)
	if err != nil {
		return pumlicons.IconRule{}, err
	}

	return pumlicons.IconRule{
		Name:                name,
		Dir:                 path.Join(filepath.ToSlash(sourceDir), def.Dir),
		Glob:                def.Glob,
		CategoryPattern:     category,
		IdentifierPattern:   identifier,
		CategoryOverrides:   copyMap(def.CategoryMappings),
		IdentifierOverrides: copyMap(def.FilenameMappings),
		SecondaryOverrides:  copyMap(def.FilenameMappings2),
	}, nil
}

func compileCapture(rule, field, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, &pumlicons.RuleError{Rule: rule, Message: field + " is required"}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &pumlicons.RuleError{Rule: rule, Message: fmt.Sprintf("%s: %v", field, err)}
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, &pumlicons.RuleError{Rule: rule, Message: fmt.Sprintf("%s must have exactly one capture group, has %d", field, n)}
	}
	return re, nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
