package banzhu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/util"
)

const (
	chapterListSelector = ".mod.block.update.chapter-list"
	titleSelector       = "h1, h2, .title, .novel-title"
)

var (
	ErrNoChapterList  = errors.New("chapter list container not found")
	ErrNoChapterLinks = errors.New("chapter list container has no links")
)

// ParseChapterList reads the chapter links of a list page. The first
// matching container holds the "latest chapters" teaser, so the second one
// is used.
func ParseChapterList(doc *goquery.Document, baseURL string) (*providers.ChapterList, error) {
	containers := doc.Find(chapterListSelector)
	if containers.Length() < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNoChapterList, containers.Length())
	}

	links := containers.Eq(1).Find("a")
	if links.Length() == 0 {
		return nil, ErrNoChapterLinks
	}

	list := &providers.ChapterList{
		Title:    pageTitle(doc),
		Chapters: make([]providers.Chapter, 0, links.Length()),
	}

	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		list.Chapters = append(list.Chapters, providers.Chapter{
			Title: strings.TrimSpace(a.Text()),
			URL:   resolveURL(baseURL, strings.TrimSpace(href)),
		})
	})

	return list, nil
}

// ParseChapterListFile parses a list page saved to disk. Relative links are
// resolved against baseURL.
func ParseChapterListFile(path, baseURL string) (*providers.ChapterList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	body, err := util.HTMLReader(f, "")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return ParseChapterList(doc, baseURL)
}

func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(titleSelector).First().Text()); t != "" {
		return t
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}
