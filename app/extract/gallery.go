package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// Gallery collects distinct image URLs referenced in post HTML, in order
// of first appearance. Avatar images are not part of the gallery.
func Gallery(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" || strings.Contains(src, "avatar") {
			return
		}
		urls = append(urls, src)
	})

	return lo.Uniq(urls)
}
