package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Calculator computes content checksums of vendor source files.
type Calculator interface {
	// Sum hashes the exact bytes.
	Sum(content []byte) string

	// SumSVG hashes SVG markup after dropping the XML prolog, comments and
	// layout whitespace, so re-exports of an unchanged drawing compare equal.
	SumSVG(content []byte) string
}

var (
	svgProlog     = regexp.MustCompile(`<\?xml[^>]*\?>`)
	svgComment    = regexp.MustCompile(`(?s)<!--.*?-->`)
	svgBetweenTag = regexp.MustCompile(`>\s+<`)
	svgSpaceRun   = regexp.MustCompile(`\s+`)
)

// SHA256 is the SHA-256 Calculator. Attribute names and values keep their
// case since SVG is case-sensitive.
type SHA256 struct{}

// New returns the SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

func (SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) SumSVG(content []byte) string {
	return c.Sum([]byte(NormalizeSVG(content)))
}

// NormalizeSVG returns the markup SumSVG hashes.
func NormalizeSVG(content []byte) string {
	s := svgProlog.ReplaceAllString(string(content), "")
	s = svgComment.ReplaceAllString(s, "")
	s = svgBetweenTag.ReplaceAllString(s, "><")
	s = svgSpaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
