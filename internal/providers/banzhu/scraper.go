package banzhu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/util"
)

const (
	DefaultMaxPages  = 50
	DefaultPageDelay = 800 * time.Millisecond
)

type logger interface {
	Debugf(string, ...any)
	Warnf(string, ...any)
}

type Options struct {
	// MaxPages caps the sub-pages fetched for one chapter.
	MaxPages  int
	PageDelay time.Duration
}

type Scraper struct {
	client    *http.Client
	log       logger
	maxPages  int
	pageDelay time.Duration
}

var _ providers.Scraper = (*Scraper)(nil)

func NewScraper(c *http.Client, log logger, opts Options) *Scraper {
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.PageDelay < 0 {
		opts.PageDelay = 0
	}

	return &Scraper{
		client:    c,
		log:       log,
		maxPages:  opts.MaxPages,
		pageDelay: opts.PageDelay,
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := util.CheckStatus(resp); err != nil {
		return nil, err
	}

	body, err := util.HTMLReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	return doc, nil
}

func (s *Scraper) GetChapters(ctx context.Context, listURL string) (*providers.ChapterList, error) {
	doc, err := s.fetchDOM(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("chapter list: %w", err)
	}

	return ParseChapterList(doc, listURL)
}

// GetChapterText fetches a chapter and every sub-page reachable through its
// pagination bar, returning the joined text and the number of pages read.
// Any fetch error aborts the chapter; pages without a content element only
// produce a warning.
func (s *Scraper) GetChapterText(ctx context.Context, chapterURL string) (string, int, error) {
	var text strings.Builder

	pageURL := chapterURL
	pages := 0
	capped := true

	for pages < s.maxPages {
		if pages > 0 {
			if err := util.Sleep(ctx, s.pageDelay); err != nil {
				return "", pages, err
			}
		}

		doc, err := s.fetchDOM(ctx, pageURL)
		if err != nil {
			return "", pages, fmt.Errorf("page %d: %w", pages+1, err)
		}
		pages++

		content, ok := ExtractContent(doc)
		if !ok {
			s.log.Warnf("No content element (#%s) on %s", contentID, pageURL)
		}
		text.WriteString(content)

		next, ok := NextPageURL(doc, pageURL)
		if !ok {
			s.log.Debugf("Chapter ends after %d page(s): %s", pages, chapterURL)
			capped = false
			break
		}

		s.log.Debugf("Next page: %s", next)
		pageURL = next
	}

	if capped {
		s.log.Debugf("Page cap (%d) reached for %s", s.maxPages, chapterURL)
	}

	return text.String(), pages, nil
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
