// Package textproc cleans article text and splits it into quiz-sized sentences.
package textproc

import (
	"iter"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	citationRe = regexp.MustCompile(`\[\d+\]`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
)

// Normalize removes bracketed numeric citation markers, collapses
// whitespace runs (any Unicode space, including NBSP) to a single space
// and trims the result. It is idempotent.
func Normalize(text string) string {
	text = collapseSpace(citationRe.ReplaceAllString(text, ""))
	// Removing a marker can expose a new one, e.g. "[1[2]]".
	for citationRe.MatchString(text) {
		text = collapseSpace(citationRe.ReplaceAllString(text, ""))
	}
	return text
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StripTags removes every <...> span.
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, "")
}

// WordCount returns the number of whitespace-delimited words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TruncateWords keeps the first n whitespace-delimited words joined by
// single spaces.
func TruncateWords(text string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// Sentences lazily yields the sentences of normalized text whose word
// count exceeds minWords. Text is split on ". " and each sentence is
// returned trimmed with its terminal period.
func Sentences(text string, minWords int) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for rest != "" {
			var part string
			if i := strings.Index(rest, ". "); i >= 0 {
				part, rest = rest[:i], rest[i+2:]
			} else {
				part, rest = rest, ""
			}
			s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
			if s == "" || WordCount(s) <= minWords {
				continue
			}
			if !yield(s + ".") {
				return
			}
		}
	}
}

// Segment materializes Sentences with exact-text duplicates removed,
// keeping first-occurrence order.
func Segment(text string, minWords int) []string {
	var out []string
	for s := range Sentences(text, minWords) {
		out = append(out, s)
	}
	return lo.Uniq(out)
}
