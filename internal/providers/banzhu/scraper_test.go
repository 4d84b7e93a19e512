package banzhu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brogergvhs/noveld/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordLogger) Debugf(string, ...any) {}

func (l *recordLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

type site struct {
	pages map[string]string
	hits  atomic.Int32
}

func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)

	body, ok := s.pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, body)
}

func newTestScraper(t *testing.T, pages map[string]string, opts Options) (*Scraper, *site, *recordLogger, string) {
	t.Helper()

	s := &site{pages: pages}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	log := &recordLogger{}

	return NewScraper(srv.Client(), log, opts), s, log, srv.URL
}

func chapterPage(text, pager string) string {
	return `<html><body><div id="nr1">` + text + pager + `</div></body></html>`
}

func TestGetChapterTextSinglePage(t *testing.T) {
	sc, s, log, base := newTestScraper(t, map[string]string{
		"/1.html": chapterPage("只有一页", ""),
	}, Options{})

	text, pages, err := sc.GetChapterText(context.Background(), base+"/1.html")
	require.NoError(t, err)

	assert.Equal(t, "只有一页\n\n", text)
	assert.Equal(t, 1, pages)
	assert.EqualValues(t, 1, s.hits.Load())
	assert.Empty(t, log.warns)
}

func TestGetChapterTextWalksPages(t *testing.T) {
	sc, s, _, base := newTestScraper(t, map[string]string{
		"/1.html":   chapterPage("第一页", `<center class="chapterPages"><span class="curr">1</span><a href="1_2.html">2</a><a href="1_3.html">3</a></center>`),
		"/1_2.html": chapterPage("第二页", `<center class="chapterPages"><a href="1.html">1</a><span class="curr">2</span><a href="1_3.html">3</a></center>`),
		"/1_3.html": chapterPage("第三页", `<center class="chapterPages"><a href="1.html">1</a><a href="1_2.html">2</a><span class="curr">3</span></center>`),
	}, Options{PageDelay: time.Millisecond})

	text, pages, err := sc.GetChapterText(context.Background(), base+"/1.html")
	require.NoError(t, err)

	assert.Equal(t, "第一页\n\n第二页\n\n第三页\n\n", text)
	assert.Equal(t, 3, pages)
	assert.EqualValues(t, 3, s.hits.Load())
}

func TestGetChapterTextPageCap(t *testing.T) {
	// every page links to a fresh next page
	pages := map[string]string{}
	for i := 1; i <= 10; i++ {
		pages[fmt.Sprintf("/p%d.html", i)] = chapterPage(
			fmt.Sprintf("p%d", i),
			fmt.Sprintf(`<center class="chapterPages"><a href="p%d.html">下一页</a></center>`, i+1),
		)
	}

	sc, s, _, base := newTestScraper(t, pages, Options{MaxPages: 4})

	text, n, err := sc.GetChapterText(context.Background(), base+"/p1.html")
	require.NoError(t, err)

	assert.Equal(t, 4, n)
	assert.EqualValues(t, 4, s.hits.Load())
	assert.Equal(t, "p1\n\np2\n\np3\n\np4\n\n", text)
}

func TestGetChapterTextSelfLinkStops(t *testing.T) {
	sc, s, _, base := newTestScraper(t, map[string]string{
		"/1.html": chapterPage("text", `<center class="chapterPages"><a href="1.html">下一页</a></center>`),
	}, Options{})

	_, pages, err := sc.GetChapterText(context.Background(), base+"/1.html")
	require.NoError(t, err)

	assert.Equal(t, 1, pages)
	assert.EqualValues(t, 1, s.hits.Load())
}

func TestGetChapterTextMissingContent(t *testing.T) {
	sc, _, log, base := newTestScraper(t, map[string]string{
		"/1.html":   `<html><body><p>ad</p><center class="chapterPages"><span class="curr">1</span><a href="1_2.html">2</a></center></body></html>`,
		"/1_2.html": chapterPage("real text", ""),
	}, Options{})

	text, pages, err := sc.GetChapterText(context.Background(), base+"/1.html")
	require.NoError(t, err)

	assert.Equal(t, "real text\n\n", text)
	assert.Equal(t, 2, pages)
	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], base+"/1.html")
}

func TestGetChapterTextFetchError(t *testing.T) {
	sc, _, _, base := newTestScraper(t, map[string]string{
		"/1.html": chapterPage("first", `<center class="chapterPages"><span class="curr">1</span><a href="gone.html">2</a></center>`),
	}, Options{})

	text, pages, err := sc.GetChapterText(context.Background(), base+"/1.html")
	require.Error(t, err)

	var se *util.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Empty(t, text)
	assert.Equal(t, 1, pages)
}

func TestGetChapterTextCancelled(t *testing.T) {
	sc, _, _, base := newTestScraper(t, map[string]string{
		"/1.html":   chapterPage("first", `<center class="chapterPages"><a href="1_2.html">下一页</a></center>`),
		"/1_2.html": chapterPage("second", ""),
	}, Options{PageDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := sc.GetChapterText(ctx, base+"/1.html")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetChapters(t *testing.T) {
	sc, _, _, base := newTestScraper(t, map[string]string{
		"/book/": listPage,
	}, Options{})

	list, err := sc.GetChapters(context.Background(), base+"/book/")
	require.NoError(t, err)

	require.Len(t, list.Chapters, 3)
	assert.True(t, strings.HasPrefix(list.Chapters[0].URL, base+"/1/1/1.html"))
	assert.Equal(t, base+"/book/2.html", list.Chapters[1].URL)
}

func TestGetChaptersHTTPError(t *testing.T) {
	sc, _, _, base := newTestScraper(t, map[string]string{}, Options{})

	_, err := sc.GetChapters(context.Background(), base+"/book/")

	var se *util.StatusError
	assert.True(t, errors.As(err, &se))
}

func TestNewScraperDefaults(t *testing.T) {
	sc := NewScraper(http.DefaultClient, &recordLogger{}, Options{PageDelay: -time.Second})

	assert.Equal(t, DefaultMaxPages, sc.maxPages)
	assert.Zero(t, sc.pageDelay)
}
