package freelist

import "testing"

// fakeLinks is a minimal Links implementation over a plain slice, enough
// to exercise List without needing a full container.
type fakeLinks struct {
	prev, next []int
}

func newFakeLinks(n int) *fakeLinks {
	f := &fakeLinks{prev: make([]int, n), next: make([]int, n)}
	for i := range f.prev {
		f.prev[i] = None
		f.next[i] = None
	}
	return f
}

func (f *fakeLinks) GetLink(i int) (prev, next int) { return f.prev[i], f.next[i] }
func (f *fakeLinks) SetLink(i int, prev, next int) {
	f.prev[i] = prev
	f.next[i] = next
}

func TestPushSingletonThenPopFront(t *testing.T) {
	links := newFakeLinks(4)
	l := NewList()
	if !l.Empty() {
		t.Fatal("new list must be empty")
	}

	l.Push(links, 2, 0, 0)
	if l.Empty() {
		t.Fatal("list must be non-empty after Push")
	}
	if l.Head() != 2 {
		t.Fatalf("Head() = %d, want 2", l.Head())
	}

	got := l.PopFront(links, 1)
	if got != 2 {
		t.Fatalf("PopFront() = %d, want 2", got)
	}
	if !l.Empty() {
		t.Fatal("list must be empty after popping its only run")
	}
}

func TestPushTwoSingletonsOrdersMostRecentFirst(t *testing.T) {
	links := newFakeLinks(4)
	l := NewList()

	l.Push(links, 1, 0, 0)
	l.Push(links, 3, 0, 0)

	if l.Head() != 3 {
		t.Fatalf("Head() = %d, want 3 (most recently pushed)", l.Head())
	}

	first := l.PopFront(links, 1)
	second := l.PopFront(links, 1)
	if first != 3 || second != 1 {
		t.Fatalf("pop order = (%d, %d), want (3, 1)", first, second)
	}
}

func TestPopFrontShrinksMultiSlotRun(t *testing.T) {
	// A run of length 3 occupying indices [0,1,2], linked as the sole
	// list entry.
	links := newFakeLinks(4)
	l := List{head: 0}
	links.SetLink(0, None, None)

	popped := l.PopFront(links, 3)
	if popped != 0 {
		t.Fatalf("PopFront() = %d, want 0", popped)
	}
	if l.Head() != 1 {
		t.Fatalf("Head() = %d, want 1 after shrinking the run from the left", l.Head())
	}
}

func TestPushExtendRightEndMovesNoLinks(t *testing.T) {
	// A vacant run at index 0 (length 1); pushing index 1, whose left
	// neighbour (index 0) is that run, must extend it without touching
	// the list head.
	links := newFakeLinks(4)
	l := List{head: 0}
	links.SetLink(0, None, None)

	l.Push(links, 1, 1, 0)
	if l.Head() != 0 {
		t.Fatalf("Head() = %d, want 0 (run head unchanged on tail-side extension)", l.Head())
	}
}

func TestPushExtendLeftEndRelinksHead(t *testing.T) {
	// A vacant run at index 2 (length 1), linked as sole entry; pushing
	// index 1, whose right neighbour (index 2) is that run, must move
	// the run's head index to 1.
	links := newFakeLinks(4)
	l := List{head: 2}
	links.SetLink(2, None, None)

	l.Push(links, 1, 0, 1)
	if l.Head() != 1 {
		t.Fatalf("Head() = %d, want 1 (run head moves to the new left endpoint)", l.Head())
	}
}

func TestPushMergeUnlinksRightRun(t *testing.T) {
	// Two singleton runs at indices 0 and 2, both linked into the list
	// (0 pushed first, then 2, so head is 2 -> 0). Pushing index 1
	// merges them; run 2's head node must be unlinked entirely, leaving
	// only run 0 in the list.
	links := newFakeLinks(4)
	l := NewList()
	l.Push(links, 0, 0, 0)
	l.Push(links, 2, 0, 0)

	l.Push(links, 1, 1, 1)

	if l.Head() != 0 {
		t.Fatalf("Head() = %d, want 0 (surviving run)", l.Head())
	}
	prev, next := links.GetLink(0)
	if prev != None || next != None {
		t.Fatalf("surviving run head links = (%d, %d), want (%d, %d)", prev, next, None, None)
	}
}
