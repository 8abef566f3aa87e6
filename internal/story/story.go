// Package story wraps encyclopedic text in a short, age-appropriate
// narrative about a historical figure.
package story

import (
	"fmt"
	"html"
	"strings"

	"github.com/abhisek/itihas/internal/knowledge"
	"github.com/abhisek/itihas/internal/textproc"
)

// AgeBand sets how much text a reader sees and how large it is rendered.
type AgeBand struct {
	Name     string
	MaxWords int
	FontSize int // px
}

var bands = []AgeBand{
	{Name: "5-8 years", MaxWords: 250, FontSize: 20},
	{Name: "9-12 years", MaxWords: 600, FontSize: 18},
	{Name: "13+ years", MaxWords: 1000, FontSize: 16},
}

// Bands returns the age bands, youngest first.
func Bands() []AgeBand {
	out := make([]AgeBand, len(bands))
	copy(out, bands)
	return out
}

// LookupBand finds a band by name, ignoring case and surrounding space.
func LookupBand(name string) (AgeBand, error) {
	name = strings.TrimSpace(name)
	for _, b := range bands {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.Name
	}
	return AgeBand{}, fmt.Errorf("unknown age band %q (choose one of: %s)", name, strings.Join(names, ", "))
}

// Story is a formatted narrative.
type Story struct {
	Subject string
	Epithet string
	Band    AgeBand

	// HTML is the rendered narrative.
	HTML string

	// Narration is the same text with markup removed, for speech.
	Narration string

	// Paragraphs holds the plain-text paragraphs in order.
	Paragraphs []string
}

// Format normalizes the article body, truncates it to the band's word
// limit and wraps it in the fixed three-paragraph template.
func Format(a knowledge.Article, subject, epithet string, band AgeBand) Story {
	body := textproc.TruncateWords(textproc.Normalize(a.RawSummary), band.MaxWords)

	heading := fmt.Sprintf("The Amazing Story of %s (%s)", subject, epithet)
	paras := []string{
		"Long ago in the vast lands of India, lived a remarkable person whose story we remember to this day...",
		body + "...",
		fmt.Sprintf("And that is how %s became a legendary figure in Indian history!", subject),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div style=\"font-size: %dpx;\">\n", band.FontSize)
	fmt.Fprintf(&b, "  <h4>%s</h4>\n", html.EscapeString(heading))
	for _, p := range paras {
		fmt.Fprintf(&b, "  <p>%s</p>\n", html.EscapeString(p))
	}
	b.WriteString("</div>")
	out := b.String()

	return Story{
		Subject:    subject,
		Epithet:    epithet,
		Band:       band,
		HTML:       out,
		Narration:  textproc.Normalize(html.UnescapeString(textproc.StripTags(out))),
		Paragraphs: append([]string{heading}, paras...),
	}
}
