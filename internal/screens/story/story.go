package story

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/story"
	"github.com/abhisek/itihas/internal/ui/components"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

type step int

const (
	stepCategory step = iota
	stepFigure
	stepBand
	stepLoading
	stepStory
	stepError
)

// Menu selections arrive as messages so the menu is swapped outside its
// own Update.
type (
	categoryChosenMsg string
	figureChosenMsg   story.Figure
	bandChosenMsg     story.AgeBand
)

type storyMsg struct {
	Result *pipeline.StoryResult
	Err    error
}

// StoryScreen walks the learner through picking a figure and an age band
// and then tells that figure's story.
type StoryScreen struct {
	svc  *screen.Services
	step step
	menu components.Menu

	category string
	figure   story.Figure

	result    *pipeline.StoryResult
	audioNote string
	errMsg    string
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

// New creates a new StoryScreen.
func New(svc *screen.Services) *StoryScreen {
	s := &StoryScreen{svc: svc}
	s.showCategories()
	return s
}

func (s *StoryScreen) Init() tea.Cmd {
	return nil
}

func (s *StoryScreen) Title() string {
	return "Magic Stories"
}

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepStory, stepError:
		return []layout.KeyHint{
			{Key: "N", Description: "Another story"},
			{Key: "Esc", Description: "Back"},
		}
	case stepLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StoryScreen) showCategories() {
	cats := story.Categories()
	items := make([]components.MenuItem, len(cats))
	for i, c := range cats {
		items[i] = components.MenuItem{Label: c, Action: func() tea.Cmd {
			return func() tea.Msg { return categoryChosenMsg(c) }
		}}
	}
	s.menu = components.NewMenu(items)
	s.step = stepCategory
}

func (s *StoryScreen) showFigures(category string) {
	figures, err := story.Figures(category)
	if err != nil {
		s.fail(err)
		return
	}
	s.category = category
	items := make([]components.MenuItem, len(figures))
	for i, f := range figures {
		items[i] = components.MenuItem{Label: f.Name, Description: f.Epithet, Action: func() tea.Cmd {
			return func() tea.Msg { return figureChosenMsg(f) }
		}}
	}
	s.menu = components.NewMenu(items)
	s.step = stepFigure
}

func (s *StoryScreen) showBands(f story.Figure) {
	s.figure = f
	bands := story.Bands()
	items := make([]components.MenuItem, len(bands))
	for i, b := range bands {
		items[i] = components.MenuItem{
			Label:       b.Name,
			Description: fmt.Sprintf("up to %d words", b.MaxWords),
			Action: func() tea.Cmd {
				return func() tea.Msg { return bandChosenMsg(b) }
			},
		}
	}
	s.menu = components.NewMenu(items)
	s.step = stepBand
}

func (s *StoryScreen) tell(band story.AgeBand) tea.Cmd {
	eng := s.svc.Engine
	f := s.figure
	code := s.svc.Prefs.Language().Code
	return func() tea.Msg {
		res, err := eng.Story(context.Background(), f.Name, f.Epithet, band, code)
		return storyMsg{Result: res, Err: err}
	}
}

func (s *StoryScreen) fail(err error) {
	if s.svc.Log != nil {
		s.svc.Log.Warn("story failed", "figure", s.figure.Name, "error", err)
	}
	s.errMsg = apperr.UserMessage(err)
	s.step = stepError
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case categoryChosenMsg:
		s.showFigures(string(msg))
		return s, nil
	case figureChosenMsg:
		s.showBands(story.Figure(msg))
		return s, nil
	case bandChosenMsg:
		s.step = stepLoading
		return s, s.tell(story.AgeBand(msg))

	case storyMsg:
		if msg.Err != nil {
			s.fail(msg.Err)
			return s, nil
		}
		s.result = msg.Result
		s.audioNote = s.svc.SaveAudio(s.figure.Name+" story", msg.Result.Audio)
		s.step = stepStory
		return s, nil

	case tea.KeyMsg:
		switch s.step {
		case stepCategory, stepFigure, stepBand:
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case stepStory, stepError:
			if k := msg.String(); k == "n" || k == "N" {
				s.result = nil
				s.audioNote = ""
				s.errMsg = ""
				s.showCategories()
			}
		}
	}
	return s, nil
}

func (s *StoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.step {
	case stepCategory:
		b.WriteString(layout.Centered("Discover tales of valor, wisdom and courage!", width, theme.Text))
		b.WriteString("\n")
		b.WriteString(layout.Centered("Choose a story category", width, theme.TextDim))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	case stepFigure:
		b.WriteString(layout.Centered(s.category, width, theme.Primary))
		b.WriteString("\n")
		b.WriteString(layout.Centered("Choose a historical figure", width, theme.TextDim))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	case stepBand:
		b.WriteString(layout.Centered(s.figure.Name, width, theme.Primary))
		b.WriteString("\n")
		b.WriteString(layout.Centered("Choose an age group", width, theme.TextDim))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	case stepLoading:
		b.WriteString(layout.Centered("Weaving your story from the threads of history...", width, theme.TextDim))
	case stepStory:
		b.WriteString(s.renderStory(width))
	case stepError:
		b.WriteString(layout.Wrapped(s.errMsg, width, 70, theme.Incorrect))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("Press N to pick another story.", width, theme.TextDim))
	}
	return b.String()
}

func (s *StoryScreen) renderStory(width int) string {
	res := s.result
	st := res.Story
	boxWidth := min(width-8, 80)

	var body strings.Builder
	for i, p := range st.Paragraphs {
		if i == 0 {
			body.WriteString(theme.Title.Width(boxWidth - 8).Render("🌟 " + p + " 🌟"))
		} else {
			body.WriteString(theme.Body.Width(boxWidth - 8).Render(p))
		}
		if i < len(st.Paragraphs)-1 {
			body.WriteString("\n\n")
		}
	}

	var b strings.Builder
	b.WriteString(layout.Centered(theme.StoryBox.Width(boxWidth).Render(body.String()), width, theme.Text))
	b.WriteString("\n")
	b.WriteString(layout.Centered(fmt.Sprintf("Told in %s", lang.LabelFor(res.Effective)), width, theme.TextDim))
	b.WriteString("\n")

	if n := layout.Notices(res.Warnings, width); n != "" {
		b.WriteString(n)
		b.WriteString("\n")
	}
	if s.audioNote != "" {
		b.WriteString(layout.Centered("🎧 "+s.audioNote, width, theme.Secondary))
		b.WriteString("\n")
	}
	if res.ImageURL != "" {
		b.WriteString(layout.Centered("🖼  "+res.ImageURL, width, theme.Secondary))
	} else {
		b.WriteString(layout.Centered(fmt.Sprintf("We couldn't find a suitable image for %s.", st.Subject), width, theme.TextDim))
	}
	return b.String()
}
