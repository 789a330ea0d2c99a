package extractors

import (
	"strings"
)

// PageBreak separates pages in pdftotext output and in plain-text sources.
const PageBreak = "\f"

// SplitPages splits text on form feeds into pages.
// A trailing empty segment after the last form feed is dropped, invalid
// UTF-8 is replaced with U+FFFD and empty input yields no pages.
func SplitPages(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ToValidUTF8(text, "�")
	pages := strings.Split(text, PageBreak)
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
