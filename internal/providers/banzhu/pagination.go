package banzhu

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	pagerSelector   = "center.chapterPages"
	currentSelector = "span.curr"
)

var nextKeywords = []string{"下一页", "下一章", "下页"}

// NextPageURL finds the link to the page after pageURL. It tries, in order,
// the page number after the current marker, a "next" labelled link, and the
// element right after the current marker. ok is false when there is no
// pager, nothing matched, or the link points back at pageURL.
func NextPageURL(doc *goquery.Document, pageURL string) (string, bool) {
	pager := doc.Find(pagerSelector).First()
	if pager.Length() == 0 {
		return "", false
	}

	current := pager.Find(currentSelector).First()

	for _, find := range []func(pager, current *goquery.Selection) string{
		nextByNumber,
		nextByText,
		nextBySibling,
	} {
		href := find(pager, current)
		if href == "" {
			continue
		}

		next := resolveURL(pageURL, href)
		if next == pageURL {
			return "", false
		}

		return next, true
	}

	return "", false
}

func nextByNumber(pager, current *goquery.Selection) string {
	if current.Length() == 0 {
		return ""
	}

	n, ok := pageNumber(current.Text())
	if !ok {
		return ""
	}

	var href string
	pager.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if m, ok := pageNumber(a.Text()); ok && m == n+1 {
			href, _ = usableHref(a)
		}
		return href == ""
	})

	return href
}

func nextByText(pager, _ *goquery.Selection) string {
	var href string
	pager.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := a.Text()
		for _, kw := range nextKeywords {
			if strings.Contains(text, kw) {
				href, _ = usableHref(a)
				break
			}
		}
		return href == ""
	})

	return href
}

func nextBySibling(_, current *goquery.Selection) string {
	if current.Length() == 0 {
		return ""
	}

	next := current.Next()
	if !next.Is("a") {
		return ""
	}

	href, _ := usableHref(next)

	return href
}

func usableHref(a *goquery.Selection) (string, bool) {
	href, ok := a.Attr("href")
	if !ok {
		return "", false
	}

	href = strings.TrimSpace(href)
	if href == "" || href == "#" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}

	return href, true
}

// pageNumber keeps only the ASCII digits of s, so "[3]" and "第3页" both read
// as 3.
func pageNumber(s string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	return n, true
}
