package chapters

import (
	"strconv"
	"strings"
)

// Filter picks chapters by 1-based position in the chapter list. chapter
// selects one, rng an inclusive "a-b" span and list a comma separated set,
// checked in that order; with none given all chapters are returned. Invalid
// selectors select nothing.
func Filter(all []Chapter, chapter, rng, list string) []Chapter {
	switch {
	case chapter != "":
		if i, ok := position(chapter, len(all)); ok {
			return all[i : i+1]
		}
		return nil
	case rng != "":
		return FilterChapterRange(all, rng)
	case list != "":
		return FilterChapterList(all, list)
	default:
		return all
	}
}

func FilterChapterRange(all []Chapter, rng string) []Chapter {
	from, to, found := strings.Cut(rng, "-")
	if !found {
		return nil
	}

	start, ok1 := position(from, len(all))
	end, ok2 := position(to, len(all))
	if !ok1 || !ok2 || start > end {
		return nil
	}

	return all[start : end+1]
}

// FilterChapterList keeps the listed positions in the given order and
// silently drops entries that are not valid positions.
func FilterChapterList(all []Chapter, list string) []Chapter {
	var out []Chapter
	for _, field := range strings.Split(list, ",") {
		if i, ok := position(field, len(all)); ok {
			out = append(out, all[i])
		}
	}

	return out
}

// position converts a 1-based index to a slice index within n.
func position(s string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > n {
		return 0, false
	}

	return v - 1, true
}
