package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/screens/explore"
	"github.com/abhisek/itihas/internal/screens/history"
	"github.com/abhisek/itihas/internal/screens/sloka"
	storyscreen "github.com/abhisek/itihas/internal/screens/story"
	"github.com/abhisek/itihas/internal/ui/components"
)

// Menu positions.
const (
	itemExplore = iota
	itemStories
	itemSloka
	itemHistory
	itemLanguage
	itemExit
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc  *screen.Services
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		itemExplore: {Label: "SUMMARY & QUIZ", Action: push(func() screen.Screen { return explore.New(svc) })},
		itemStories: {Label: "MAGIC STORIES", Action: push(func() screen.Screen { return storyscreen.New(svc) })},
		itemSloka:   {Label: "SLOKA TRANSLATOR", Action: push(func() screen.Screen { return sloka.New(svc) })},
		itemHistory: {Label: "SCORE HISTORY", Action: push(func() screen.Screen { return history.New(svc) })},
		itemLanguage: {Label: h.languageLabel(), Action: func() tea.Cmd {
			h.svc.Prefs.CycleLanguage()
			h.menu.SetLabel(itemLanguage, h.languageLabel())
			return nil
		}},
		itemExit: {Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) languageLabel() string {
	return "LANGUAGE: " + strings.ToUpper(h.svc.Prefs.Language().Label)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 90

	cw := contentWidth(width)

	labels := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		labels[i] = it.Label
	}

	var quizzes, topics int
	if h.svc.Learner != nil {
		hist := h.svc.Learner.History()
		quizzes = hist.Len()
		topics = len(hist.Topics())
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.svc.Prefs.Language().Label, quizzes, topics, cw, compact),
	}
	if compact {
		sections = append(sections, renderMenuCompact(labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(labels, h.menu.Selected, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
