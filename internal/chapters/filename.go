package chapters

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultName is used when no usable title survives cleaning.
const DefaultName = "小说全文"

const Ext = ".txt"

// Unicode whitespace; \s alone is ASCII only and titles often carry U+3000.
const ws = `[\s\p{Z}\x{FEFF}]`

var (
	titleNoise = []*regexp.Regexp{
		regexp.MustCompile(`最新章节$`),
		regexp.MustCompile(`新书作品$`),
		regexp.MustCompile(`_小说$`),
		regexp.MustCompile(`第一版主网$`),
		regexp.MustCompile(`完整小说$`),
		regexp.MustCompile(`作品$`),
		regexp.MustCompile(`小说$`),
	}

	reSeparators = regexp.MustCompile(ws + `*[-_|]` + ws + `*`)
	reStars      = regexp.MustCompile(`\*\*\*\*\*`)
	reEdges      = regexp.MustCompile(`^(?:_|` + ws + `)+|(?:_|` + ws + `)+$`)
	reSpaceRuns  = regexp.MustCompile(ws + `{2,}`)
)

// CleanTitle strips site branding and separators from a novel title. The
// removals are repeated until the title stops changing, so cleaning a
// cleaned title is a no-op. An empty result falls back to title.
func CleanTitle(title string) string {
	clean := title
	for {
		next := cleanOnce(clean)
		if next == clean {
			break
		}
		clean = next
	}

	if clean == "" {
		return title
	}

	return clean
}

func cleanOnce(s string) string {
	for _, re := range titleNoise {
		if loc := re.FindStringIndex(s); loc != nil {
			s = s[:loc[0]] + s[loc[1]:]
		}
	}

	s = reSeparators.ReplaceAllString(s, "")
	s = reStars.ReplaceAllString(s, "")

	s = reEdges.ReplaceAllString(s, "")
	s = reSpaceRuns.ReplaceAllString(s, " ")

	return strings.TrimFunc(s, isSpace)
}

// FileName turns a title candidate into a safe ".txt" file name. A candidate
// that already is one is returned as is.
func FileName(candidate string) string {
	if strings.HasSuffix(candidate, Ext) && !strings.ContainsFunc(candidate, isForbidden) {
		return candidate
	}

	name := CleanTitle(candidate)
	if name == "" {
		name = DefaultName
	}

	name += Ext

	return strings.Map(func(r rune) rune {
		if isForbidden(r) {
			return '_'
		}
		return r
	}, name)
}

func isForbidden(r rune) bool {
	switch r {
	case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
		return true
	}

	return isSpace(r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}
