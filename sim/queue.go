// Implements the ReadySet, which holds the released requests of one tier.
// Requests are appended on promotion, in generation order.

package sim

import (
	"fmt"
	"strings"
)

// ReadySet is the pool of released requests of one tier that are waiting
// for the head. Policies read it through Items; only the simulator mutates it.
type ReadySet struct {
	queue []*Request
}

// Enqueue adds a request to the back of the set.
func (rs *ReadySet) Enqueue(r *Request) {
	rs.queue = append(rs.queue, r)
}

func (rs *ReadySet) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rs.queue {
		sb.WriteString(fmt.Sprint(*val))
		if i < len(rs.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of requests in the set.
func (rs *ReadySet) Len() int {
	return len(rs.queue)
}

// Items returns the set contents for iteration.
// The returned slice is the set's internal storage -- callers MUST NOT
// append to, reslice or reorder it.
func (rs *ReadySet) Items() []*Request {
	return rs.queue
}

// Remove takes req out of the set, preserving the order of the rest.
// Panics if req is not a member: a policy handed back a request it was never given.
func (rs *ReadySet) Remove(req *Request) {
	for i, r := range rs.queue {
		if r == req {
			rs.queue = append(rs.queue[:i], rs.queue[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("ReadySet.Remove: request %d is not in the ready set", req.ID))
}

// Partition splits the set by pred. Requests matching pred are removed and
// returned in their original order; the rest are kept in place.
func (rs *ReadySet) Partition(pred func(*Request) bool) []*Request {
	var taken []*Request
	kept := rs.queue[:0]
	for _, r := range rs.queue {
		if pred(r) {
			taken = append(taken, r)
		} else {
			kept = append(kept, r)
		}
	}
	// clear the tail so removed requests are not retained by the backing array
	for i := len(kept); i < len(rs.queue); i++ {
		rs.queue[i] = nil
	}
	rs.queue = kept
	return taken
}
