package downloader

import (
	"context"
	"errors"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"
)

const DefaultChapterDelay = 1200 * time.Millisecond

// TextSource fetches the full text of one chapter.
type TextSource interface {
	GetChapterText(ctx context.Context, chapterURL string) (string, int, error)
}

type Progress interface {
	Update(done, total int, pages int64)
	MarkDone()
}

type logger interface {
	Debugf(string, ...any)
	Infof(string, ...any)
	Errorf(string, ...any)
}

type Downloader struct {
	src          TextSource
	log          logger
	chapterDelay time.Duration

	Stats ui.Stats
}

func New(src TextSource, log logger, chapterDelay time.Duration) *Downloader {
	if chapterDelay < 0 {
		chapterDelay = 0
	}

	return &Downloader{
		src:          src,
		log:          log,
		chapterDelay: chapterDelay,
	}
}

// DownloadAll fetches chs one at a time, in order, and returns the chapters
// whose text was fetched. A failing chapter is logged and left out. The
// returned error is non-nil only when ctx ends; the chapters fetched so far
// are still returned.
func (d *Downloader) DownloadAll(ctx context.Context, chs []chapters.Chapter, ph Progress) ([]chapters.Chapter, error) {
	total := len(chs)
	done := make([]chapters.Chapter, 0, total)

	if ph != nil {
		ph.Update(0, total, 0)
		defer ph.MarkDone()
	}

	for i, ch := range chs {
		if i > 0 {
			if err := util.Sleep(ctx, d.chapterDelay); err != nil {
				return done, err
			}
		}

		d.log.Debugf("Chapter %d/%d: %s (%s)", i+1, total, ch.Title, ch.URL)

		text, pages, err := d.src.GetChapterText(ctx, ch.URL)
		d.Stats.TotalPages.Add(int64(pages))

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return done, err
			}

			d.Stats.FailedChapters.Add(1)
			d.log.Errorf("Chapter %q failed: %v", ch.Title, err)
		} else {
			ch.Content = text
			ch.Pages = pages
			done = append(done, ch)

			d.Stats.TotalChapters.Add(1)
			d.Stats.TotalBytes.Add(int64(len(text)))
		}

		if ph != nil {
			ph.Update(i+1, total, d.Stats.TotalPages.Load())
		}
	}

	d.log.Infof("Fetched %d/%d chapters", len(done), total)

	return done, nil
}
