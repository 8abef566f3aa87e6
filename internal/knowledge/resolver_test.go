package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/itihas/internal/apperr"
)

func TestResolve(t *testing.T) {
	src := NewStaticSource().
		Add("en", "Ashoka", "Ashoka was an emperor.").
		Add("en", "Ashoka Chakra", "A wheel.").
		Add("hi", "Ashoka Hindi", "...")

	r := NewResolver(src, "en", 5)
	got, err := r.Resolve(context.Background(), "  ashoka ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0] != "Ashoka" || got[1] != "Ashoka Chakra" {
		t.Errorf("candidates = %v", got)
	}
}

func TestResolve_NoResults(t *testing.T) {
	r := NewResolver(NewStaticSource(), "en", 5)
	_, err := r.Resolve(context.Background(), "zzzzxx_nonexistent_topic_123")

	var noRes *apperr.ErrNoResults
	if !errors.As(err, &noRes) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if noRes.Topic != "zzzzxx_nonexistent_topic_123" {
		t.Errorf("topic = %q", noRes.Topic)
	}
}

func TestResolve_EmptyTopic(t *testing.T) {
	src := NewStaticSource()
	r := NewResolver(src, "en", 5)
	if _, err := r.Resolve(context.Background(), "   "); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}
	if s, _ := src.Calls(); s != 0 {
		t.Errorf("expected no search for empty topic, got %d", s)
	}
}

func TestResolve_Transient(t *testing.T) {
	src := NewStaticSource()
	src.SearchFn = func(string, string) error { return errors.New("connection reset") }

	_, err := NewResolver(src, "en", 5).Resolve(context.Background(), "Ashoka")
	var tr *apperr.ErrTransientService
	if !errors.As(err, &tr) {
		t.Fatalf("expected ErrTransientService, got %v", err)
	}
}
