package sim

import "fmt"

// Registry is the bookkeeping of node identity to node object. It does no
// routing and no protocol work; the medium and the results collector use
// it for lookup and iteration only.
type Registry struct {
	nodes []*Node
	byID  map[NodeID]*Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[NodeID]*Node)}
}

// AddNode registers a node under its configured id. Registering an id
// twice indicates a topology-construction bug and fails with
// ErrDuplicateNode.
func (r *Registry) AddNode(n *Node) error {
	id := n.ID()
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	r.nodes = append(r.nodes, n)
	r.byID[id] = n
	return nil
}

// RemoveNode drops a node from the registry.
func (r *Registry) RemoveNode(n *Node) error {
	if _, ok := r.byID[n.ID()]; !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, n.ID())
	}
	delete(r.byID, n.ID())
	for i, other := range r.nodes {
		if other == n {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			break
		}
	}
	return nil
}

// Node returns the node registered under id.
func (r *Registry) Node(id NodeID) (*Node, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return n, nil
}

// Nodes returns the registered nodes in insertion order. Callers must not
// mutate the returned slice.
func (r *Registry) Nodes() []*Node { return r.nodes }

// Len reports the number of registered nodes.
func (r *Registry) Len() int { return len(r.nodes) }
