package providers

import "context"

// Chapter is a chapter link as discovered on a novel's chapter-list page.
type Chapter struct {
	Title string
	URL   string
}

// ChapterList is the result of reading a chapter-list page.
type ChapterList struct {
	// Title is the raw candidate for the output filename.
	Title    string
	Chapters []Chapter
}

type Scraper interface {
	GetChapters(ctx context.Context, listURL string) (*ChapterList, error)
	GetChapterText(ctx context.Context, chapterURL string) (string, int, error)
}
