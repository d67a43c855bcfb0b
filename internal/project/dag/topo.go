package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []FileID   // inheritors before the files they inherit
	Batches [][]FileID // waves of mutually independent files
	Cyclic  bool
	Cycles  []FileID // files lying on an inheritance cycle
}

func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]FileID, 0, nodeCount),
		Batches: make([][]FileID, 0),
	}

	active := 0
	for i := range nodeCount {
		if g.Present[i] {
			active++
		}
	}

	current := make([]FileID, 0, nodeCount)
	for i := range nodeCount {
		if g.Present[i] && indeg[i] == 0 {
			current = append(current, fileID(i))
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := make([]FileID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]FileID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		topo.Cycles = onCycle(g, indeg)
	}
	return topo
}

// onCycle narrows the files Kahn could not release to those on a cycle: a
// leftover file that inherits no other leftover only hangs below a cycle.
func onCycle(g Graph, indeg []int) []FileID {
	left := make([]bool, len(indeg))
	for i := range indeg {
		left[i] = g.Present[i] && indeg[i] > 0
	}
	for changed := true; changed; {
		changed = false
		for i := range left {
			if !left[i] {
				continue
			}
			stuck := false
			for _, to := range g.Edges[i] {
				if left[int(to)] {
					stuck = true
					break
				}
			}
			if !stuck {
				left[i] = false
				changed = true
			}
		}
	}
	var out []FileID
	for i, ok := range left {
		if ok {
			out = append(out, fileID(i))
		}
	}
	return out
}

func fileID(i int) FileID {
	id, err := safecast.Conv[FileID](i)
	if err != nil {
		panic(fmt.Errorf("file id overflow: %w", err))
	}
	return id
}
