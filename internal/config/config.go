// Package config loads the curated icon configuration (YAML), the release
// rules describing the vendor source layout (TOML) and the environment
// settings of a build.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the default curated config file.
const ConfigFileName = "config.yml"

// GroupSettings are the rendering settings of a group container.
type GroupSettings struct {
	BorderStyle string `yaml:"BorderStyle,omitempty"`
	Label       string `yaml:"Label,omitempty"`
	Alignment   string `yaml:"Alignment,omitempty"`
}

// IconEntry is one curated icon.
type IconEntry struct {
	Source        string         `yaml:"Source"`
	SourceDir     string         `yaml:"SourceDir,omitempty"`
	Target        string         `yaml:"Target"`
	Target2       string         `yaml:"Target2,omitempty"`
	Color         string         `yaml:"Color,omitempty"`
	SourceDark    string         `yaml:"SourceDark,omitempty"`
	SourceDirDark string         `yaml:"SourceDirDark,omitempty"`
	Label         string         `yaml:"Label,omitempty"`
	Group         *GroupSettings `yaml:"Group,omitempty"`
}

// HasDarkVariant reports whether the entry declares a dark image.
func (e IconEntry) HasDarkVariant() bool {
	return e.SourceDark != "" && e.SourceDirDark != ""
}

// CategoryEntry is one curated category with its icons.
type CategoryEntry struct {
	Name  string      `yaml:"-"`
	Color string      `yaml:"Color,omitempty"`
	Icons []IconEntry `yaml:"Icons"`
}

// CategoryDefaults holds the fallback category settings.
type CategoryDefaults struct {
	Color string `yaml:"Color"`
}

// Defaults is the mandatory Defaults section.
type Defaults struct {
	Colors        map[string]string `yaml:"Colors"`
	Category      CategoryDefaults  `yaml:"Category"`
	Group         GroupSettings     `yaml:"Group"`
	TargetMaxSize int               `yaml:"TargetMaxSize,omitempty"`
}

type lookupKey struct {
	category string
	source   string
}

type lookupRef struct {
	category int
	icon     int
}

// Curated is the parsed curated configuration. Categories keep the order of
// the file. It is read-only after parsing.
type Curated struct {
	Categories []CategoryEntry
	Defaults   *Defaults

	index map[lookupKey]lookupRef
}

type curatedDocument struct {
	Categories yaml.Node `yaml:"Categories"`
	Defaults   *Defaults `yaml:"Defaults"`
}

// NewCurated builds a validated, indexed config from already decoded parts.
func NewCurated(defaults *Defaults, categories ...CategoryEntry) (*Curated, error) {
	cfg := &Curated{Defaults: defaults, Categories: categories}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.buildIndex()
	return cfg, nil
}

// LoadCurated reads and validates the curated config at path.
func LoadCurated(path string) (*Curated, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	cfg, err := ParseCurated(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseCurated parses and validates curated config YAML.
func ParseCurated(data []byte) (*Curated, error) {
	var doc curatedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", pumlicons.ErrInvalidConfig, err)
	}

	cfg := &Curated{Defaults: doc.Defaults}
	if err := cfg.decodeCategories(&doc.Categories); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.buildIndex()
	return cfg, nil
}

func (c *Curated) decodeCategories(node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &pumlicons.ConfigShapeError{Key: "Categories", Hint: "must be a mapping of category name to entry"}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var entry CategoryEntry
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return &pumlicons.ConfigShapeError{Key: "Categories." + name, Hint: err.Error()}
		}
		entry.Name = name
		c.Categories = append(c.Categories, entry)
	}
	return nil
}

// Validate checks the keys every build depends on.
func (c *Curated) Validate() error {
	if c.Defaults == nil {
		return &pumlicons.ConfigShapeError{Key: "Defaults"}
	}
	if len(c.Defaults.Colors) == 0 {
		return &pumlicons.ConfigShapeError{Key: "Defaults.Colors"}
	}
	if c.Defaults.Category.Color == "" {
		return &pumlicons.ConfigShapeError{Key: "Defaults.Category.Color"}
	}
	for _, category := range c.Categories {
		for i, icon := range category.Icons {
			key := fmt.Sprintf("Categories.%s.Icons[%d]", category.Name, i)
			if icon.Source == "" {
				return &pumlicons.ConfigShapeError{Key: key + ".Source"}
			}
			if icon.Target == "" {
				return &pumlicons.ConfigShapeError{Key: key + ".Target"}
			}
			if icon.SourceDark != "" && (icon.SourceDirDark == "" || icon.SourceDir == "") {
				return &pumlicons.ConfigShapeError{Key: key, Hint: "SourceDark requires SourceDir and SourceDirDark"}
			}
		}
	}
	return nil
}

func (c *Curated) buildIndex() {
	c.index = make(map[lookupKey]lookupRef)
	for ci, category := range c.Categories {
		for ii, icon := range category.Icons {
			key := lookupKey{category: category.Name, source: icon.Source}
			if _, exists := c.index[key]; exists {
				continue
			}
			c.index[key] = lookupRef{category: ci, icon: ii}
		}
	}
}

// Lookup finds the first icon entry declared for source within category.
func (c *Curated) Lookup(source, category string) (IconEntry, CategoryEntry, bool) {
	ref, ok := c.index[lookupKey{category: category, source: source}]
	if !ok && c.index == nil {
		ref, ok = c.scan(source, category)
	}
	if !ok {
		return IconEntry{}, CategoryEntry{}, false
	}
	cat := c.Categories[ref.category]
	return cat.Icons[ref.icon], cat, true
}

func (c *Curated) scan(source, category string) (lookupRef, bool) {
	for ci, cat := range c.Categories {
		if cat.Name != category {
			continue
		}
		for ii, icon := range cat.Icons {
			if icon.Source == source {
				return lookupRef{category: ci, icon: ii}, true
			}
		}
	}
	return lookupRef{}, false
}

// ColorByName resolves a palette name through Defaults.Colors.
func (c *Curated) ColorByName(name string) (string, bool) {
	if c.Defaults == nil {
		return "", false
	}
	hex, ok := c.Defaults.Colors[name]
	return hex, ok
}

// CategoryNames returns the category names in file order.
func (c *Curated) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, category := range c.Categories {
		names[i] = category.Name
	}
	return names
}

// IconCount is the number of curated icon entries.
func (c *Curated) IconCount() int {
	n := 0
	for _, category := range c.Categories {
		n += len(category.Icons)
	}
	return n
}
