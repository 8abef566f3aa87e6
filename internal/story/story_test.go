package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/itihas/internal/knowledge"
	"github.com/abhisek/itihas/internal/textproc"
)

func TestLookupBand(t *testing.T) {
	b, err := LookupBand(" 9-12 YEARS ")
	require.NoError(t, err)
	assert.Equal(t, 600, b.MaxWords)
	assert.Equal(t, 18, b.FontSize)

	_, err = LookupBand("adults")
	assert.ErrorContains(t, err, "5-8 years")
}

func TestFormat_Template(t *testing.T) {
	band, _ := LookupBand("13+ years")
	a := knowledge.Article{Title: "Aryabhata", Language: "en", RawSummary: "Aryabhata was a mathematician [1] and   astronomer."}

	s := Format(a, "Aryabhata", "Ancient mathematician", band)

	assert.Contains(t, s.HTML, `font-size: 16px;`)
	assert.Contains(t, s.HTML, "<h4>The Amazing Story of Aryabhata (Ancient mathematician)</h4>")
	assert.Contains(t, s.HTML, "<p>Long ago in the vast lands of India, lived a remarkable person whose story we remember to this day...</p>")
	assert.Contains(t, s.HTML, "<p>Aryabhata was a mathematician and astronomer....</p>")
	assert.Contains(t, s.HTML, "<p>And that is how Aryabhata became a legendary figure in Indian history!</p>")
	assert.Equal(t, 3, strings.Count(s.HTML, "<p>"))

	require.Len(t, s.Paragraphs, 4)
	assert.NotContains(t, s.Narration, "<")
	assert.True(t, strings.HasPrefix(s.Narration, "The Amazing Story of Aryabhata"))
}

func TestFormat_TruncatesByWords(t *testing.T) {
	band, _ := LookupBand("5-8 years")
	raw := strings.Repeat("word\n\t", 400)
	s := Format(knowledge.Article{RawSummary: raw}, "Sushruta", "Ancient surgeon", band)

	assert.Equal(t, 250, textproc.WordCount(s.Paragraphs[2]))
	assert.True(t, strings.HasSuffix(s.Paragraphs[2], "word..."))
}

func TestFormat_EscapesMarkup(t *testing.T) {
	band, _ := LookupBand("9-12 years")
	s := Format(knowledge.Article{RawSummary: "Uses <script> & such"}, "A & B", "x", band)

	assert.NotContains(t, s.HTML, "<script>")
	assert.Contains(t, s.HTML, "&lt;script&gt;")
	assert.Contains(t, s.Narration, "Uses <script> & such")
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{"Kings & Queens", "Freedom Fighters", "Scientists & Scholars"}, Categories())

	figs, err := Figures("Freedom Fighters")
	require.NoError(t, err)
	assert.Equal(t, Figure{"Subhas Chandra Bose", "Netaji"}, figs[0])

	figs[0].Name = "changed"
	again, _ := Figures("Freedom Fighters")
	assert.Equal(t, "Subhas Chandra Bose", again[0].Name)

	_, err = Figures("Poets")
	assert.Error(t, err)

	f, ok := FindFigure("C. V. Raman")
	require.True(t, ok)
	assert.Equal(t, "Nobel Prize physicist", f.Epithet)
}
