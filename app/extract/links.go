package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gamefeed/gamefeed/app/store"
)

var altLinkNumRe = regexp.MustCompile(`(?i)link\s*([1-3])`)

// Links scans post HTML for download anchors. Anchors without an href or
// whose label collapses to nothing are skipped; anchors wrapped in a
// <del> element are kept but marked unavailable. Zero links is a valid
// result.
func Links(html string) []store.DownloadLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []store.DownloadLink
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		// the tokenizer decodes entities before assembling the text, so
		// literal "<<<" markers survive while real inline tags are gone
		label := strings.TrimSpace(sel.Text())
		if label == "" {
			return
		}

		struck := sel.ParentsFiltered("del").Length() > 0 || sel.Find("del").Length() > 0

		links = append(links, store.DownloadLink{
			Kind:      Classify(label, href),
			URL:       href,
			Label:     label,
			Available: !struck,
		})
	})

	return links
}

// Classify maps a link's label and target URL onto a kind. Deterministic:
// rules are tried in a fixed priority order and the first match wins.
func Classify(label, url string) store.LinkKind {
	labelLower := strings.ToLower(label)

	switch {
	case strings.Contains(labelLower, "torrent"):
		return store.KindTorrent
	case strings.Contains(url, "turbobit"):
		// turbobit is recognized by URL alone, whatever the label says
		return store.KindTurbobit
	case strings.Contains(labelLower, "alternatif"):
		if m := altLinkNumRe.FindStringSubmatch(label); m != nil {
			return store.LinkKind("direct" + m[1])
		}
		return store.KindDirect
	}

	switch {
	case strings.Contains(url, "pixeldrain"):
		return store.KindPixeldrain
	case strings.Contains(url, "mediafire"):
		return store.KindMediafire
	case strings.Contains(url, "drive.google.com"):
		return store.KindGoogleDrive
	case strings.Contains(strings.ToLower(url), "torrent"):
		return store.KindTorrent
	}

	return store.KindDirect
}
