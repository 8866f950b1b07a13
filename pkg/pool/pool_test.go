package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetOrInsertConstructsOnce(t *testing.T) {
	p := New[string, int]()

	var calls atomic.Int32
	construct := func() (int, error) {
		calls.Add(1)
		return 7, nil
	}

	v1, err := p.GetOrInsert("a", construct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := p.GetOrInsert("a", construct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v1 != 7 || v2 != 7 {
		t.Fatalf("v1=%d v2=%d, want both 7", v1, v2)
	}
	if calls.Load() != 1 {
		t.Fatalf("construct called %d times, want 1", calls.Load())
	}
}

func TestGetOrInsertDeduplicatesConcurrentCallers(t *testing.T) {
	p := New[string, int]()

	var calls atomic.Int32
	ready := make(chan struct{})
	release := make(chan struct{})

	construct := func() (int, error) {
		n := calls.Add(1)
		if n == 1 {
			close(ready)
			<-release
		}
		return 99, nil
	}

	const goroutines = 8
	var wg sync.WaitGroup
	results := make([]int, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := p.GetOrInsert("shared", construct)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}

	<-ready
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("construct called %d times concurrently, want exactly 1", calls.Load())
	}
	for i, v := range results {
		if v != 99 {
			t.Fatalf("results[%d] = %d, want 99", i, v)
		}
	}
}

func TestGetOrInsertPropagatesConstructError(t *testing.T) {
	p := New[string, int]()
	wantErr := errors.New("boom")

	_, err := p.GetOrInsert("x", func() (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after a failed construct", p.Len())
	}
}

func TestRemoveDeletesEntry(t *testing.T) {
	p := New[string, int]()
	p.GetOrInsert("k", func() (int, error) { return 5, nil })

	v, ok := p.Remove("k")
	if !ok || v != 5 {
		t.Fatalf("Remove() = (%d, %v), want (5, true)", v, ok)
	}
	if _, ok := p.Get("k"); ok {
		t.Fatal("Get() after Remove must report false")
	}
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
}

func TestGetMissingKey(t *testing.T) {
	p := New[string, int]()
	if _, ok := p.Get("missing"); ok {
		t.Fatal("Get() on a missing key must report false")
	}
}
