package banzhu

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	contentID     = "nr1"
	noiseSelector = `font[color="blue"], center.chapterPages`
)

// ExtractContent returns the cleaned text of the page's content element,
// followed by a blank line. The document itself is left untouched.
func ExtractContent(doc *goquery.Document) (string, bool) {
	content := doc.Find("#" + contentID).First()
	if content.Length() == 0 {
		return "", false
	}

	clean := content.Clone()
	clean.Find(noiseSelector).Remove()

	return strings.TrimSpace(clean.Text()) + "\n\n", true
}
