package sim

import (
	"io"
	"sort"
)

// BuildGrid creates the layered grid topology and registers every node.
//
// Nodes sit on integer coordinates in a square grid centered at (0, 0).
// The hop of a node is its Chebyshev distance max(|x|, |y|) from the sink.
// Ids are assigned ring by ring starting at the sink (hop 0, id 1), in
// ascending (x, y) order within a ring, so construction is fully
// deterministic. The node at the origin becomes the sink; every other
// node is a sensor. floodIDSource feeds the sink's flood id generation
// (seeded stream for reproducible ids, nil for default entropy).
func BuildGrid(env *Scheduler, medium *Medium, registry *Registry, floodIDSource io.Reader, cfg Config) error {
	type cell struct{ x, y int }
	rings := make([][]cell, cfg.MaxHops+1)
	for y := -cfg.MaxHops; y <= cfg.MaxHops; y++ {
		for x := -cfg.MaxHops; x <= cfg.MaxHops; x++ {
			hop := chebyshev(x, y)
			rings[hop] = append(rings[hop], cell{x, y})
		}
	}

	id := NodeID(1)
	for hop, cells := range rings {
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].x != cells[j].x {
				return cells[i].x < cells[j].x
			}
			return cells[i].y < cells[j].y
		})
		for _, c := range cells {
			var behavior Behavior
			if c.x == 0 && c.y == 0 {
				behavior = NewSinkBehavior(floodIDSource)
			} else {
				behavior = NewSensorBehavior()
			}
			n := NewNode(env, medium, behavior, NodeConfig{
				ID:               id,
				X:                c.x,
				Y:                c.y,
				Hop:              hop,
				MaxTransmissions: cfg.MaxTransmissions,
				GuardTime:        cfg.GuardTime,
				TxRange:          DefaultTxRange,
				Channel:          DefaultChannel,
			})
			if err := registry.AddNode(n); err != nil {
				return err
			}
			id++
		}
	}
	return nil
}

// chebyshev is the hop metric of the grid: max(|x|, |y|).
func chebyshev(x, y int) int {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	if x > y {
		return x
	}
	return y
}
