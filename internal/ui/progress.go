package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders one bar for a novel download: chapters done out of the
// total, pages fetched so far and the elapsed time.
type Progress struct {
	p   *mpb.Progress
	bar *mpb.Bar

	total atomic.Int64
	pages atomic.Int64
	final atomic.Bool
}

// NewProgress starts rendering to w, or to stdout when w is nil.
func NewProgress(w io.Writer, label string) *Progress {
	if w == nil {
		w = os.Stdout
	}

	pr := &Progress{
		p: mpb.New(
			mpb.WithWidth(52),
			mpb.WithOutput(w),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
	}

	pr.bar = pr.p.New(
		0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d chapters", decor.WCSyncWidth),
			decor.Any(func(decor.Statistics) string {
				return fmt.Sprintf(" | %d pages", pr.pages.Load())
			}),
			decor.Name(" | "),
			decor.Elapsed(decor.ET_STYLE_GO),
		),
	)

	return pr
}

// Update records done chapters out of total (ignored when zero) and the
// running page count. Calls after MarkDone are no-ops.
func (pr *Progress) Update(done, total int, pages int64) {
	if pr.final.Load() {
		return
	}

	if total > 0 {
		pr.total.Store(int64(total))
		pr.bar.SetTotal(int64(total), false)
	}

	pr.pages.Store(pages)
	pr.bar.SetCurrent(int64(done))
}

// MarkDone completes the bar, even if some chapters failed.
func (pr *Progress) MarkDone() {
	if pr.final.Swap(true) {
		return
	}

	total := pr.total.Load()
	pr.bar.SetCurrent(total)
	pr.bar.SetTotal(total, true)
}

// Wait blocks until the bar has been rendered for the last time.
func (pr *Progress) Wait() {
	pr.p.Wait()
}
