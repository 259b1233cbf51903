package session

import (
	"sync"
	"testing"
)

func TestGetOrCreate_ReturnsSameSession(t *testing.T) {
	st := NewStore()

	a := st.GetOrCreate("conv-1")
	b := st.GetOrCreate("conv-1")
	if a != b {
		t.Error("expected the same session for the same id")
	}

	c := st.GetOrCreate("conv-2")
	if c == a {
		t.Error("expected distinct sessions for distinct ids")
	}
	if st.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", st.Len())
	}
}

func TestGetOrCreate_ConcurrentFirstContact(t *testing.T) {
	st := NewStore()

	const goroutines = 32
	results := make([]*Session, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = st.GetOrCreate("conv-race")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent first contact produced more than one session")
		}
	}
	if st.Len() != 1 {
		t.Errorf("expected exactly 1 session, got %d", st.Len())
	}
}

func TestGet_MissingSession(t *testing.T) {
	st := NewStore()
	if _, ok := st.Get("nope"); ok {
		t.Error("expected no session for unseen id")
	}
}

func TestIDs_Sorted(t *testing.T) {
	st := NewStore()
	st.GetOrCreate("b")
	st.GetOrCreate("a")
	st.GetOrCreate("c")

	ids := st.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("expected sorted ids, got %v", ids)
	}
}
