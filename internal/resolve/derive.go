package resolve

import (
	"regexp"
	"strings"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

var (
	nonAlphanumeric     = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonAlphanumericRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// DeriveCategory extracts the category from path using the rule's category
// pattern, strips non-alphanumeric characters and applies the category
// overrides. Unmapped categories are returned as derived.
func DeriveCategory(rule pumlicons.IconRule, path string) (string, error) {
	captured, err := capture(rule, rule.CategoryPattern, "category", path)
	if err != nil {
		return "", err
	}
	return override(rule.CategoryOverrides, alphanumeric(captured)), nil
}

// DeriveIdentifier extracts the primary and secondary identifiers from path
// using the rule's identifier pattern.
//
// The primary identifier is the capture with every non-alphanumeric character
// removed ("Simple-Storage-Service_Bucket" becomes "SimpleStorageServiceBucket").
// The secondary identifier is its kebab form ("simple-storage-service-bucket").
// Each is looked up in its own override map.
func DeriveIdentifier(rule pumlicons.IconRule, path string) (string, string, error) {
	captured, err := capture(rule, rule.IdentifierPattern, "identifier", path)
	if err != nil {
		return "", "", err
	}
	primary := override(rule.IdentifierOverrides, alphanumeric(captured))
	secondary := override(rule.SecondaryOverrides, kebab(captured))
	return primary, secondary, nil
}

func capture(rule pumlicons.IconRule, pattern *regexp.Regexp, field, path string) (string, error) {
	if pattern == nil {
		return "", &pumlicons.RuleError{Rule: rule.Name, Message: field + " pattern is not compiled"}
	}
	m := pattern.FindStringSubmatch(path)
	if m == nil || len(m) < 2 {
		return "", &pumlicons.PatternMismatchError{Field: field, Pattern: pattern.String(), Path: path}
	}
	return m[1], nil
}

func alphanumeric(s string) string {
	return nonAlphanumeric.ReplaceAllString(s, "")
}

func kebab(s string) string {
	return strings.Trim(nonAlphanumericRuns.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func override(overrides map[string]string, name string) string {
	if mapped, ok := overrides[name]; ok {
		return mapped
	}
	return name
}
