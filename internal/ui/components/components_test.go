package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoiceNumberKeysAndSubmit(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, 40)

	m, _ = m.Update(key('3'))
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	if m.Chosen() != "" {
		t.Error("nothing should be chosen before Enter")
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.Chosen() != "c" {
		t.Fatalf("Chosen = %q, submitted = %v", m.Chosen(), m.Submitted)
	}

	// Input after submission is ignored.
	m, _ = m.Update(key('1'))
	if m.Selected != 2 {
		t.Errorf("selection changed after submit")
	}
}

func TestMultiChoiceIgnoresOutOfRangeNumbers(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b"}, 0)
	m, _ = m.Update(key('4'))
	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1", m.Selected)
	}
}

func TestMultiChoiceEnterWithoutPick(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c"}, 0)
	if m.Selected != -1 {
		t.Fatalf("Selected = %d, want -1 before any pick", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Submitted || m.Chosen() != "" {
		t.Fatalf("Enter with nothing picked submitted %q", m.Chosen())
	}
	if !m.NeedsPick || !strings.Contains(m.View(), "Pick an option first (1-3") {
		t.Errorf("expected a pick prompt, got:\n%s", m.View())
	}

	m, _ = m.Update(key('2'))
	if m.NeedsPick {
		t.Error("picking an option should clear the prompt")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.Chosen() != "b" {
		t.Fatalf("Chosen = %q, submitted = %v", m.Chosen(), m.Submitted)
	}
}

func TestMultiChoiceArrowsStartFromNothing(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c"}, 0)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("down from nothing: Selected = %d, want 0", m.Selected)
	}

	m = NewMultiChoice("Q?", []string{"a", "b", "c"}, 0)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up from nothing: Selected = %d, want 2", m.Selected)
	}
}

func TestMultiChoiceReveal(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c"}, 0)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Reveal("b")
	if !m.IsCorrect() {
		t.Error("expected chosen b to be correct")
	}

	m2 := NewMultiChoice("Q?", []string{"a", "b", "c"}, 0)
	m2, _ = m2.Update(key('1'))
	m2, _ = m2.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m2.Reveal("c")
	if m2.IsCorrect() {
		t.Error("expected chosen a to be wrong")
	}
	if m2.CorrectIndex != 2 {
		t.Errorf("CorrectIndex = %d, want 2", m2.CorrectIndex)
	}
}

func TestMultiChoiceViewLabels(t *testing.T) {
	m := NewMultiChoice("Which?", []string{"first", "second"}, 0)
	view := m.View()
	for _, want := range []string{"Which?", "A)", "B)", "first", "second"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "▸") {
		t.Error("no option should be highlighted before a pick")
	}
	m, _ = m.Update(key('2'))
	if !strings.Contains(m.View(), "▸") {
		t.Error("picked option should be highlighted")
	}
}

func TestMenuSkipsDisabledAndRunsAction(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "one", Action: func() tea.Cmd { ran = "one"; return nil }},
		{Label: "two", Disabled: true},
		{Label: "three", Action: func() tea.Cmd { ran = "three"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "three" {
		t.Errorf("ran = %q, want three", ran)
	}
}

func TestMenuSetLabel(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "LANGUAGE: ENGLISH"}})
	m.SetLabel(0, "LANGUAGE: HINDI")
	m.SetLabel(5, "ignored")
	if !strings.Contains(m.View(), "LANGUAGE: HINDI") {
		t.Error("expected new label in view")
	}
}

func TestStepProgressLabel(t *testing.T) {
	p := NewStepProgress("Question", 2, 3, 40)
	if p.Label != "Question 2/3" {
		t.Errorf("Label = %q", p.Label)
	}
	if p.Percent < 0.66 || p.Percent > 0.67 {
		t.Errorf("Percent = %v", p.Percent)
	}
	if NewStepProgress("Q", 0, 0, 10).Percent != 0 {
		t.Error("zero total should give zero percent")
	}
}
