// Package extract turns free-form post HTML into typed records. The post
// bodies it consumes are written by humans, mix Turkish and English and
// carry entity-encoded pseudo-markup (e.g. "&lt;&lt;&lt; Alternatif:
// Link1 &gt;&gt;&gt;") that must survive tag stripping, so everything here
// is heuristic by nature: extractors degrade to empty values, they never
// fail.
package extract

import (
	"regexp"
	"strings"
)

var (
	brRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	pCloseRe = regexp.MustCompile(`(?i)</p\s*>`)
	// matches only tags following the standard tag-name grammar, so that
	// decoded "<<<"/">>>" pseudo-markers are left alone
	tagRe   = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// entities is the fixed decode table; the site emits these and nothing
// else of note in rendered fields.
var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&#8211;", "–",
	"&#8230;", "…",
	"&#8217;", "’",
	"&#8220;", "“",
	"&#8221;", "”",
	"&quot;", `"`,
	"&#038;", "&",
	"&amp;", "&",
)

// Normalize strips an HTML fragment down to plain text: block separators
// become newlines, remaining tags are dropped, entities are decoded and
// whitespace is collapsed. Idempotent once the input has converged to
// plain text.
func Normalize(html string) string {
	s := brRe.ReplaceAllString(html, "\n")
	s = pCloseRe.ReplaceAllString(s, "\n\n")
	s = tagRe.ReplaceAllString(s, "")
	s = entities.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
