package sim

// Endpoint is a node's inbound frame queue. The medium pushes surviving
// frames into it; the node's receive process pulls them out. The queue is
// FIFO and unbounded.
//
// Blocking receive is expressed as a continuation: the waiting process
// hands the endpoint a callback and the endpoint resumes it through a
// zero-delay scheduler event. Waking through the scheduler keeps node
// code off the medium's stack during resolution and makes same-tick wake
// order follow the scheduler's FIFO tie-break.
type Endpoint struct {
	nodeID      NodeID
	env         *Scheduler
	queue       []*Frame
	waiter      func(*Frame)
	wakePending bool
}

// NodeID returns the id of the node this endpoint delivers to.
func (ep *Endpoint) NodeID() NodeID { return ep.nodeID }

// Len reports the number of frames waiting in the inbox.
func (ep *Endpoint) Len() int { return len(ep.queue) }

// Push appends a frame to the inbox and wakes a blocked receiver, if any.
func (ep *Endpoint) Push(f *Frame) {
	ep.queue = append(ep.queue, f)
	ep.wake()
}

// Recv suspends the calling process until a frame is available, then
// resumes it with the frame. A node runs a single receive process, so at
// most one receive is outstanding per endpoint at any time. A process
// blocked here with no delivery in flight stays blocked for the remainder
// of the run; there is no timeout-on-receive at this layer.
func (ep *Endpoint) Recv(fn func(*Frame)) {
	ep.waiter = fn
	if len(ep.queue) > 0 {
		ep.wake()
	}
}

func (ep *Endpoint) wake() {
	if ep.waiter == nil || ep.wakePending {
		return
	}
	ep.wakePending = true
	ep.env.mustAfter(0, func() {
		ep.wakePending = false
		if ep.waiter == nil || len(ep.queue) == 0 {
			return
		}
		f := ep.queue[0]
		ep.queue = ep.queue[1:]
		fn := ep.waiter
		ep.waiter = nil
		fn(f)
	})
}
