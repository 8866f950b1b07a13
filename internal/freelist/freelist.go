// Package freelist implements an intrusive freelist of vacant-slot runs.
// It knows nothing about a container's element type or its skipfield
// storage layout — it operates entirely through the small Links
// accessor, the same separation of concerns arena-cache uses to keep
// internal/clockpro's metaNode list free of pkg/cache's wrapper types.
// Where clockpro links *metaNode pointers, freelist links plain slice
// indices, since the links live inside the slots themselves rather than
// in separately allocated nodes.
//
// © 2025 slotarena authors. MIT License.
package freelist

// None marks the absence of a link (end of list, or "no prev").
const None = -1

// Links is the accessor a container provides so the freelist can read and
// write the (prev, next) run-links stored inside a vacant slot's payload.
type Links interface {
	GetLink(i int) (prev, next int)
	SetLink(i int, prev, next int)
}

// List is the freelist head: the index of the run currently at the front
// of the list, or None if the freelist is empty. The zero value is not
// ready to use — construct with NewList.
type List struct {
	head int
}

// NewList returns an empty freelist.
func NewList() List { return List{head: None} }

// Empty reports whether the freelist has no runs.
func (l *List) Empty() bool { return l.head == None }

// Head returns the index of the run currently linked at the list head.
// Only meaningful when !Empty().
func (l *List) Head() int { return l.head }

func setNext(acc Links, idx, next int) {
	prev, _ := acc.GetLink(idx)
	acc.SetLink(idx, prev, next)
}

func setPrev(acc Links, idx, prev int) {
	_, next := acc.GetLink(idx)
	acc.SetLink(idx, prev, next)
}

// PopFront removes one slot from the left end of the head run and returns
// its index. runLen is the head run's length (read from the skipfield by
// the caller before the skipfield was updated for this insertion). If
// runLen is 1 the run's single node is unlinked; otherwise the head index
// advances by one and its (prev, next) links are copied to the new head
// slot.
func (l *List) PopFront(acc Links, runLen int) int {
	head := l.head
	if runLen <= 1 {
		_, next := acc.GetLink(head)
		l.head = next
		if next != None {
			setPrev(acc, next, None)
		}
		return head
	}

	newHead := head + 1
	prev, next := acc.GetLink(head)
	acc.SetLink(newHead, prev, next)
	if next != None {
		setPrev(acc, next, newHead)
	}
	l.head = newHead
	return head
}

// Push links a newly vacated slot at index i into the freelist. leftRun
// and rightRun are the skipfield values of i's neighbours, read *before*
// the skipfield was updated for this removal (0 meaning "occupied, not a
// vacant run"). This determines which of four cases applies:
//
//   - neither neighbour vacant: i becomes a new singleton run, linked at
//     the list head.
//   - exactly one neighbour vacant, and i extends that run on its tail
//     side (the vacant neighbour is to i's left): the run's head index is
//     unchanged, so no link update is needed.
//   - exactly one neighbour vacant, and i extends that run on its head
//     side (the vacant neighbour is to i's right): the run's head index
//     moves to i, so i inherits the old head's links and neighbouring
//     nodes are repointed at i.
//   - both neighbours vacant: the two runs merge. The left run keeps its
//     head index unchanged (it silently absorbs i and the whole right
//     run); the right run's head node is unlinked from the list entirely.
func (l *List) Push(acc Links, i, leftRun, rightRun int) {
	switch {
	case leftRun == 0 && rightRun == 0:
		oldHead := l.head
		acc.SetLink(i, None, oldHead)
		if oldHead != None {
			setPrev(acc, oldHead, i)
		}
		l.head = i

	case leftRun > 0 && rightRun == 0:
		// Extends on the tail side; the run's head slot (at i-leftRun)
		// keeps its existing links untouched.

	case leftRun == 0 && rightRun > 0:
		oldRunHead := i + 1
		prev, next := acc.GetLink(oldRunHead)
		acc.SetLink(i, prev, next)
		if prev != None {
			setNext(acc, prev, i)
		} else {
			l.head = i
		}
		if next != None {
			setPrev(acc, next, i)
		}

	default: // leftRun > 0 && rightRun > 0: merge
		rightHead := i + 1
		prev, next := acc.GetLink(rightHead)
		if prev != None {
			setNext(acc, prev, next)
		} else {
			l.head = next
		}
		if next != None {
			setPrev(acc, next, prev)
		}
	}
}
