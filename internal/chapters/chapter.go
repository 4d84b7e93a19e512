package chapters

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/noveld/internal/providers"
)

const separatorWidth = 50

// Chapter is a discovered chapter together with its fetched text.
type Chapter struct {
	providers.Chapter

	Content string
	Pages   int
}

func FromLinks(links []providers.Chapter) []Chapter {
	out := make([]Chapter, len(links))
	for i, l := range links {
		out[i] = Chapter{Chapter: l}
	}

	return out
}

// Header is the line that opens chapter n (1-based) in the assembled text.
func Header(n int, title string) string {
	return fmt.Sprintf("第%d章: %s", n, title)
}

// Assemble joins chapters into the final document. Numbering follows the
// position in chs, so it stays contiguous when failed chapters were left out.
func Assemble(chs []Chapter) string {
	sep := strings.Repeat("=", separatorWidth)

	var b strings.Builder
	for i, ch := range chs {
		b.WriteString(Header(i+1, ch.Title))
		b.WriteString("\n\n")
		b.WriteString(ch.Content)
		b.WriteString(sep)
		b.WriteString("\n\n")
	}

	return b.String()
}
