package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatHeader returns a Markdown header.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a Markdown list item of the form "- **Key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// FormatSize renders a byte count in IEC units; zero renders as "-".
func FormatSize(n uint64) string {
	if n == 0 {
		return "-"
	}
	return humanize.IBytes(n)
}

// FormatCount renders n with the singular or plural noun.
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + plural
}

// orDash renders empty strings as "-" in table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
