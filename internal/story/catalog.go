package story

import (
	"fmt"
	"slices"
)

// Figure is a historical person a story can be told about.
type Figure struct {
	Name    string
	Epithet string
}

// Category groups figures for browsing.
type Category struct {
	Name    string
	Figures []Figure
}

var catalog = []Category{
	{Name: "Kings & Queens", Figures: []Figure{
		{"Krishnadevaraya", "Vijayanagara king"},
		{"Rani Lakshmibai", "Queen of Jhansi"},
		{"Raja Raja Chola", "Great Chola emperor"},
	}},
	{Name: "Freedom Fighters", Figures: []Figure{
		{"Subhas Chandra Bose", "Netaji"},
		{"Bhagat Singh", "Revolutionary"},
		{"Sarojini Naidu", "Poet and activist"},
	}},
	{Name: "Scientists & Scholars", Figures: []Figure{
		{"Aryabhata", "Ancient mathematician"},
		{"C. V. Raman", "Nobel Prize physicist"},
		{"Sushruta", "Ancient surgeon"},
	}},
}

// Categories returns the category names in display order.
func Categories() []string {
	out := make([]string, len(catalog))
	for i, c := range catalog {
		out[i] = c.Name
	}
	return out
}

// Figures returns the figures in a category.
func Figures(category string) ([]Figure, error) {
	for _, c := range catalog {
		if c.Name == category {
			return slices.Clone(c.Figures), nil
		}
	}
	return nil, fmt.Errorf("unknown story category %q", category)
}

// FindFigure looks a figure up by name across all categories.
func FindFigure(name string) (Figure, bool) {
	for _, c := range catalog {
		for _, f := range c.Figures {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Figure{}, false
}
