package session

import (
	"context"
	"sync"
	"testing"
)

func TestRegistry_IsolatesLearners(t *testing.T) {
	r := NewRegistry(nil)
	idA, a := r.Create()
	idB, b := r.Create()
	if idA == idB {
		t.Fatal("ids collide")
	}

	if _, err := a.Start("Ashoka", testItems()[:1]); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Submit(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}

	if b.Phase() != PhaseIdle || b.History().Len() != 0 {
		t.Error("learner B observed learner A's state")
	}

	got, ok := r.Get(idA)
	if !ok || got != a {
		t.Error("Get returned wrong learner")
	}

	r.Drop(idA)
	if _, ok := r.Get(idA); ok {
		t.Error("dropped learner still present")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_ConcurrentCreate(t *testing.T) {
	r := NewRegistry(func() *Learner { return NewLearner(nil, nil) })
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := r.Create()
			if _, ok := r.Get(id); !ok {
				t.Error("created learner missing")
			}
		}()
	}
	wg.Wait()
	if r.Len() != 32 {
		t.Errorf("Len() = %d, want 32", r.Len())
	}
}
