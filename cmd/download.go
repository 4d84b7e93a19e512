package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/downloader"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/banzhu"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL      string
	flagFromFile string
	flagChapter  string
	flagRange    string
	flagList     string

	// output
	flagOutput    string
	flagName      string
	flagOverwrite bool
	flagDryRun    bool

	// pacing
	flagPageDelay    time.Duration
	flagChapterDelay time.Duration
	flagMaxPages     int

	// headers/auth
	flagCloudflare bool
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download a novel into one text file. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "novel chapter-list page URL (base URL for --from-file)")
	downloadCmd.Flags().StringVar(&flagFromFile, "from-file", "", "read the chapter-list page from a saved HTML file")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download a single chapter by index (e.g. 5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")

	// output
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for the text file")
	downloadCmd.Flags().StringVar(&flagName, "name", "", "file name to use instead of the page title")
	downloadCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "replace an existing file instead of adding a _N suffix")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list the chapters that would be downloaded and exit")

	// pacing
	downloadCmd.Flags().DurationVar(&flagPageDelay, "page-delay", config.DefaultPageDelay, "pause between pages of one chapter")
	downloadCmd.Flags().DurationVar(&flagChapterDelay, "chapter-delay", config.DefaultChapterDelay, "pause between chapters")
	downloadCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "max pages fetched per chapter (default 50)")

	// headers/auth
	downloadCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "use a browser-like TLS fingerprint to pass Cloudflare checks")
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagOutput,
		Overwrite:    flagOverwrite,
		DefaultURL:   flagURL,
		DefaultRange: flagRange,
		DefaultList:  flagList,
		MaxPages:     flagMaxPages,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		Cloudflare:   flagCloudflare,
	})
	if err != nil {
		return err
	}

	// explicit flags win, zero included
	if cmd.Flags().Changed("page-delay") {
		cfg.PageDelay = flagPageDelay
	}
	if cmd.Flags().Changed("chapter-delay") {
		cfg.ChapterDelay = flagChapterDelay
	}

	out := cmd.OutOrStdout()
	logSvc := ui.NewLogger(out, cfg.Debug)

	if usedPath != "" {
		_, _ = fmt.Fprintf(out, "Config file: %s\n", usedPath)
	}
	if cfg.Debug {
		_, _ = fmt.Fprintln(out, "Full config:")
		cfg.Fprint(out)
		_, _ = fmt.Fprintln(out)
	}

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	scr := banzhu.NewScraper(client, logSvc, banzhu.Options{
		MaxPages:  cfg.MaxPages,
		PageDelay: cfg.PageDelay,
	})

	list, err := loadChapterList(ctx, scr, cfg.DefaultURL)
	if err != nil {
		return err
	}

	all := chapters.FromLinks(list.Chapters)
	logSvc.Infof("Found %d chapters on the page.", len(all))

	selected := chapters.Filter(all, flagChapter, cfg.DefaultRange, cfg.DefaultList)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	name := list.Title
	if flagName != "" {
		name = flagName
	}
	fileName := chapters.FileName(name)

	if flagDryRun {
		printDryRun(out, selected, filepath.Join(cfg.Output, fileName))
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	util.SetupInterruptHandler(cfg.Output)

	bar := ui.NewProgress(out, progressLabel(list.Title))

	dl := downloader.New(scr, logSvc, cfg.ChapterDelay)
	start := time.Now()

	done, err := dl.DownloadAll(ctx, selected, bar)
	bar.Wait()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Output, fileName)
	if !cfg.Overwrite {
		path = util.UniquePath(path)
	}

	text := chapters.Assemble(done)
	if err := util.WriteTextFile(path, text); err != nil {
		return err
	}

	printSummary(out, &dl.Stats, path, time.Since(start))

	return nil
}

func loadChapterList(ctx context.Context, scr providers.Scraper, listURL string) (*providers.ChapterList, error) {
	if flagFromFile != "" {
		return banzhu.ParseChapterListFile(flagFromFile, listURL)
	}

	return scr.GetChapters(ctx, listURL)
}

func progressLabel(title string) string {
	r := []rune(chapters.CleanTitle(title))
	if len(r) > 20 {
		return string(r[:20]) + "…"
	}
	if len(r) == 0 {
		return chapters.DefaultName
	}

	return string(r)
}

func printDryRun(w io.Writer, selected []chapters.Chapter, path string) {
	_, _ = fmt.Fprintf(w, "Dry-run: %d chapters selected.\n", len(selected))
	_, _ = fmt.Fprintf(w, "Output: %s\n\n", path)

	for i, ch := range selected {
		_, _ = fmt.Fprintf(w, "%4d) %s\n      %s\n", i+1, ch.Title, ch.URL)
	}
}

func printSummary(w io.Writer, stats *ui.Stats, path string, took time.Duration) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Download Summary:")
	_, _ = fmt.Fprintf(w, "Chapters: %d\n", stats.TotalChapters.Load())
	if failed := stats.FailedChapters.Load(); failed > 0 {
		_, _ = fmt.Fprintf(w, "Failed:   %d\n", failed)
	}
	_, _ = fmt.Fprintf(w, "Pages:    %d\n", stats.TotalPages.Load())
	_, _ = fmt.Fprintf(w, "Text:     %s\n", util.Human(stats.TotalBytes.Load()))
	_, _ = fmt.Fprintf(w, "Time:     %s\n", took.Round(time.Second))
	_, _ = fmt.Fprintf(w, "File:     %s\n", path)
	_, _ = fmt.Fprintln(w, "\nAll done.")
}
