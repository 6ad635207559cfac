package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field extraction is best-effort: a missing element degrades to the
// documented sentinel, never to an error.

// extractName returns the app display name from the product header, or
// UnknownName when the page lacks the expected element.
func extractName(doc *goquery.Document) string {
	sel := doc.Find("h1.product-header__title").First()
	if sel.Length() == 0 {
		return UnknownName
	}
	name := strings.TrimSpace(ownText(sel))
	if name == "" {
		return UnknownName
	}
	return name
}

// extractRanking reads the category ranking from the first inline-list
// link ("#12 in Finance" style). Only digit characters count; an absent
// element or digit-free text yields RankingSentinel.
func extractRanking(doc *goquery.Document) Ranking {
	sel := doc.Find("a.inline-list__item").First()
	if sel.Length() == 0 {
		return RankingSentinel
	}
	n := 0
	seen := false
	for _, c := range sel.Text() {
		if c < '0' || c > '9' {
			continue
		}
		seen = true
		n = n*10 + int(c-'0')
		if n >= int(RankingSentinel) {
			return RankingSentinel
		}
	}
	if !seen {
		return RankingSentinel
	}
	return Ranking(n)
}

// extractVersion reads the latest version from the "What's New" block.
// The localized "版本" / "Version" label is stripped; absence yields an
// empty string, which the loader stores as-is.
func extractVersion(doc *goquery.Document) string {
	sel := doc.Find("p.whats-new__latest__version").First()
	if sel.Length() == 0 {
		return ""
	}
	v := strings.TrimSpace(sel.Text())
	for _, label := range []string{"版本", "Version"} {
		v = strings.TrimSpace(strings.TrimPrefix(v, label))
	}
	return v
}

// ownText collects the direct text of a selection, excluding badge or
// icon child elements that the product header sometimes carries.
func ownText(sel *goquery.Selection) string {
	var parts []string
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return strings.Join(parts, " ")
}
