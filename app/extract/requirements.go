package extract

import (
	"regexp"
	"strings"

	"github.com/gamefeed/gamefeed/app/store"
	"github.com/samber/lo"
)

// maxSectionLen caps the requirements slice when no delimiter follows the
// heading; without a bound one field's pattern can swallow the rest of
// the document.
const maxSectionLen = 3000

var (
	// heading meaning "(PC) Sistem (vb) Gereksinimleri" / "System
	// Requirements"; the character classes cover the Turkish dotted and
	// dotless i forms that (?i) does not fold
	reqHeadingRe = regexp.MustCompile(`(?i)s[iıİy]stem[^<>]{0,40}?(?:gereks[iıİ]n[iıİ]m\w*|requirements?)`)

	// the section ends at a horizontal rule or at a paragraph opening
	// with bold text (the next section's title)
	reqEndRe = regexp.MustCompile(`(?i)<hr[^>]*>|<p[^>]*>\s*<strong`)

	nlRe     = regexp.MustCompile(`\n\s*\n+`)
	hspaceRe = regexp.MustCompile(`[ \t]+`)
)

// fieldRule is one prioritized pattern for a single requirements field.
// pick post-processes the submatches into the field value.
type fieldRule struct {
	re   *regexp.Regexp
	pick func(m []string) string
}

func first(m []string) string { return m[1] }

func applyRules(text string, rules []fieldRule) string {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(r.pick(m)); v != "" {
			return v
		}
	}
	return ""
}

// cutKeywordsRe trims a captured value at the point where the next
// field's keyword begins, for bodies that run all fields on one line.
var cutKeywordsRe = regexp.MustCompile(`(?i)\s*(?:[iıİ]şlem[cç][iı]|processor|cpu|ekran kart[ıi]\w*|graphics|gpu|video|bellek|ram|memory|depolama|storage|disk|directx|ek notlar|additional notes?)\b.*$`)

func cutAtKeyword(s string) string {
	return strings.TrimSpace(strings.Trim(cutKeywordsRe.ReplaceAllString(s, ""), " :-"))
}

// firstOption reduces "A / B" alternatives to A; when the span listed two
// options the first option is cut down to its first two tokens.
func firstOption(s string) string {
	if !strings.Contains(s, "/") {
		return strings.TrimSpace(s)
	}
	opt := strings.TrimSpace(strings.SplitN(s, "/", 2)[0])
	tokens := strings.Fields(opt)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

var (
	gpuBrands = []string{"GeForce", "Radeon", "Arc"}
	gpuSeries = []string{"GTX", "RTX", "RX", "HD", "GT"}
)

// gpuName picks the card name out of a free-form span, preferring a
// recognized brand token over a bare series token when both are present.
func gpuName(s string) string {
	opt := strings.TrimSpace(strings.SplitN(s, "/", 2)[0])
	tokens := strings.Fields(opt)

	idx := indexOfAny(tokens, gpuBrands)
	if idx < 0 {
		idx = indexOfAny(tokens, gpuSeries)
	}
	if idx < 0 {
		if len(tokens) > 2 {
			tokens = tokens[:2]
		}
		return strings.Join(tokens, " ")
	}

	end := idx + 3
	if end > len(tokens) {
		end = len(tokens)
	}
	return strings.Join(tokens[idx:end], " ")
}

func indexOfAny(tokens, wanted []string) int {
	for i, tok := range tokens {
		if lo.ContainsBy(wanted, func(w string) bool { return strings.EqualFold(w, tok) }) {
			return i
		}
	}
	return -1
}

// quantity normalizes "8GB"/"8 gb" spans to "8 GB".
var quantityRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(GB|MB|TB)`)

func quantity(s string) string {
	m := quantityRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1] + " " + strings.ToUpper(m[2])
}

var (
	osRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)(?:[iıİ]şlet[iı]m s[iıİ]stem[iıİ]|operating system|\bos\b)\s*[:=]?\s*([^\n]+)`),
			pick: func(m []string) string { return cutAtKeyword(m[1]) }},
		{re: regexp.MustCompile(`(?i)\b(windows\s*(?:xp|vista|[0-9]+(?:\.[0-9]+)?)[^\n,(]*)`),
			pick: func(m []string) string { return cutAtKeyword(m[1]) }},
	}

	cpuRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)(?:[iıİ]şlemc[iı]|processor|\bcpu\b)\s*[:=]?\s*([^\n]+)`),
			pick: func(m []string) string { return firstOption(cutAtKeyword(m[1])) }},
		{re: regexp.MustCompile(`(?i)([^\n:]+?)\s+(?:[iıİ]şlemc[iı]|processor)\b`),
			pick: func(m []string) string { return firstOption(m[1]) }},
	}

	gpuRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)(?:ekran kart[ıi]\w*|graphics(?: card)?|\bgpu\b|video card)\s*[:=]?\s*([^\n]+)`),
			pick: func(m []string) string { return gpuName(cutAtKeyword(m[1])) }},
		{re: regexp.MustCompile(`(?i)([^\n:]+?)\s+(?:ekran kart[ıi]\w*|graphics card|\bgpu\b)`),
			pick: func(m []string) string { return gpuName(m[1]) }},
	}

	ramRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)(\d+[ \t]*(?:GB|MB|TB))[ \t]*(?:s[iıİ]stem[ \t]+)?(?:ram|belle[kğ]\w*|memory)\b`),
			pick: func(m []string) string { return quantity(m[1]) }},
		{re: regexp.MustCompile(`(?i)(?:\bram\b|belle[kğ]\w*|memory)\s*[:=]?\s*(\d+\s*(?:GB|MB|TB))`),
			pick: func(m []string) string { return quantity(m[1]) }},
	}

	storageRules = []fieldRule{
		// keyword must follow the quantity on the same authored line, or
		// a quantity from another field would be swallowed
		{re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?[ \t]*(?:GB|MB|TB))[ \t]*(?:[^\s]+[ \t]+){0,3}?(?:depolama|depo\b|disk|alan\w*|storage)`),
			pick: func(m []string) string { return quantity(m[1]) }},
		{re: regexp.MustCompile(`(?i)(?:depolama|storage|disk|alan)\s*[:=]?\s*(\d+(?:[.,]\d+)?\s*(?:GB|MB|TB))`),
			pick: func(m []string) string { return quantity(m[1]) }},
		{re: regexp.MustCompile(`(?i)oyun\w*\s+boyutu\s*[:=]?\s*(\d+(?:[.,]\d+)?\s*(?:GB|MB|TB))`),
			pick: func(m []string) string { return quantity(m[1]) }},
		{re: regexp.MustCompile(`(\d+\.\d+)\s*(?i:(GB|MB|TB))`),
			pick: func(m []string) string { return m[1] + " " + strings.ToUpper(m[2]) }},
	}

	directXRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)\b(?:directx|dx)\s*[:=]?\s*v?(\d+(?:\.\d+)?)`),
			pick: func(m []string) string { return "DirectX " + m[1] }},
	}

	additionalRules = []fieldRule{
		{re: regexp.MustCompile(`(?i)(?:ek notlar|additional notes?)\s*[:=]?\s*([^\n]+)`), pick: first},
	}
)

// Requirements pulls the system-requirements block out of a post body.
// Returns nil when no requirements heading exists or when no field could
// be extracted from the section that follows it.
func Requirements(html string) *store.Requirements {
	loc := reqHeadingRe.FindStringIndex(html)
	if loc == nil {
		return nil
	}

	section := html[loc[1]:]
	if end := reqEndRe.FindStringIndex(section); end != nil {
		section = section[:end[0]]
	}
	if len(section) > maxSectionLen {
		section = section[:maxSectionLen]
	}

	text := sectionText(section)

	req := &store.Requirements{
		OS:         applyRules(text, osRules),
		CPU:        applyRules(text, cpuRules),
		GPU:        applyRules(text, gpuRules),
		RAM:        applyRules(text, ramRules),
		Storage:    applyRules(text, storageRules),
		DirectX:    applyRules(text, directXRules),
		Additional: applyRules(text, additionalRules),
	}
	if req.Empty() {
		return nil
	}
	return req
}

// sectionText flattens a requirements slice to line-oriented plain text:
// <br> and </p> become line breaks (so one field per authored line),
// remaining tags become single spaces, entities are decoded and the
// en-dash is normalized to a hyphen.
func sectionText(s string) string {
	s = brRe.ReplaceAllString(s, "\n")
	s = pCloseRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, " ")
	s = entities.Replace(s)
	s = strings.ReplaceAll(s, "–", "-")
	s = hspaceRe.ReplaceAllString(s, " ")
	s = nlRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
