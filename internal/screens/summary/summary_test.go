package summary

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen/screentest"
	"github.com/abhisek/itihas/internal/session"
)

func completedServices(t *testing.T) (*SummaryScreen, *session.Learner) {
	t.Helper()
	svc := screentest.Services(&screentest.Engine{})
	l := svc.Learner
	if _, err := l.Start("Ashoka", screentest.Items(2)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, ans := range []string{"right", "wrong one"} {
		if _, err := l.Submit(context.Background(), ans); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	return New(svc, session.BuildSummary(l.Session())), l
}

func TestSummaryScreen_Title(t *testing.T) {
	s, _ := completedServices(t)
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s, _ := completedServices(t)
	view := s.View(80, 24)
	for _, want := range []string{"Ashoka", "1/2", "50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EnterResetsAndPops(t *testing.T) {
	s, l := completedServices(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg")
	}
	if l.Phase() != session.PhaseIdle {
		t.Errorf("phase = %v, want idle", l.Phase())
	}
	if got := l.History().Results("Ashoka"); len(got) != 1 || got[0] != "1/2" {
		t.Errorf("history = %v, want [1/2]", got)
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s, _ := completedServices(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s, _ := completedServices(t)
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		sum  session.Summary
		want string
	}{
		{session.Summary{Score: 3, Total: 3, Accuracy: 1}, "Perfect"},
		{session.Summary{Score: 2, Total: 3, Accuracy: 2.0 / 3}, "Well done"},
		{session.Summary{Score: 0, Total: 3}, "Keep going"},
	}
	for _, tt := range tests {
		if got := verdict(tt.sum); !strings.Contains(got, tt.want) {
			t.Errorf("verdict(%+v) = %q, want it to contain %q", tt.sum, got, tt.want)
		}
	}
}
