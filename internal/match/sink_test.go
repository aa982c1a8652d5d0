package match

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestSlice_KeepsInsertionOrder(t *testing.T) {
	s := NewSlice()
	want := []string{"b", "a", "c"}
	for _, p := range want {
		s.Add(p)
	}

	got := s.Paths()
	if len(got) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if s.Len() != 3 {
		t.Errorf("expected Len 3, got %d", s.Len())
	}
}

func TestSlice_PathsReturnsCopy(t *testing.T) {
	s := NewSlice()
	s.Add("a")
	got := s.Paths()
	got[0] = "mutated"

	if s.Paths()[0] != "a" {
		t.Error("mutating the returned slice changed the sink")
	}
}

func TestSink_EmptyIsNotNil(t *testing.T) {
	for _, s := range []Sink{NewSlice(), NewSync()} {
		if s.Paths() == nil {
			t.Errorf("%T: expected empty non-nil slice", s)
		}
		if s.Len() != 0 {
			t.Errorf("%T: expected Len 0, got %d", s, s.Len())
		}
	}
}

// Concurrent appends must never drop or duplicate an element.
func TestSync_ConcurrentAdd(t *testing.T) {
	const goroutines = 32
	const perGoroutine = 200

	s := NewSync()
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				s.Add(fmt.Sprintf("%d/%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	got := s.Paths()
	if len(got) != goroutines*perGoroutine {
		t.Fatalf("expected %d paths, got %d", goroutines*perGoroutine, len(got))
	}

	sort.Strings(got)
	for i := 1; i < len(got); i++ {
		if got[i] == got[i-1] {
			t.Fatalf("duplicate path %q", got[i])
		}
	}
}
