package ui

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockBreaks = regexp.MustCompile(`(?i)<(?:/p|/li|/h[1-6]|/div|/tr|br\s*/?)>`)

// HTMLToText flattens a scraped job description into terminal-friendly plain
// text. Descriptions arrive as whatever HTML the source site produced, so
// this is deliberately forgiving: unparseable input comes back trimmed as-is.
func HTMLToText(s string) string {
	if !strings.Contains(s, "<") {
		return cleanLines(s)
	}

	// Keep block boundaries as newlines before goquery collapses them.
	s = blockBreaks.ReplaceAllString(s, "$0\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanLines(s)
	}
	doc.Find("script,style").Remove()
	return cleanLines(doc.Text())
}

func cleanLines(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
