package cache

import (
	"sync"
	"testing"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore[string, int]("test")

	// Test Get on empty store
	val, ok := s.Get("nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if val != 0 {
		t.Error("Get on empty store should return zero value")
	}

	s.Set("key", 7)

	got, ok := s.Get("key")
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if got != 7 {
		t.Errorf("Get returned %d, want 7", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_SetOverwrite(t *testing.T) {
	s := NewStore[int64, string]("test")

	s.Set(1, "value1")
	s.Set(1, "value2")

	got, ok := s.Get(1)
	if !ok {
		t.Fatal("Get after overwrite should return ok=true")
	}
	if got != "value2" {
		t.Errorf("Get returned %q, want %q", got, "value2")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after overwrite", s.Len())
	}
}

func TestStore_EmptyValueIsHit(t *testing.T) {
	s := NewStore[string, []int]("test")

	s.Set("empty", nil)

	got, ok := s.Get("empty")
	if !ok {
		t.Error("Get after Set with nil value should return ok=true")
	}
	if got != nil {
		t.Errorf("Get returned %v, want nil", got)
	}
}

func TestStore_EmptyKey(t *testing.T) {
	s := NewStore[string, int]("test")

	s.Set("", 1)
	if got, ok := s.Get(""); !ok || got != 1 {
		t.Errorf("Get(\"\") = (%d, %v), want (1, true)", got, ok)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore[int, int]("test")

	const numGoroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				if j%2 == 0 {
					s.Set(j%10, id)
				} else {
					_, _ = s.Get(j % 10)
				}
			}
		}(i)
	}

	wg.Wait()

	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestStore_Name(t *testing.T) {
	s := NewStore[string, int](NamespaceTags)
	if s.Name() != "tags" {
		t.Errorf("Name() = %q, want %q", s.Name(), "tags")
	}
}
