package dag

import (
	"fmt"
	"slices"
	"strings"

	"lpcls/internal/diag"
	"lpcls/internal/source"
)

type Graph struct {
	Edges   [][]FileID // Edges[file] = files it inherits
	Indeg   []int      // number of present files inheriting each file
	Present []bool     // file belongs to the checked set, not only inherited
}

// InheritEdge is one resolved inherit statement.
type InheritEdge struct {
	Path string
	Span source.Span
}

type FileNode struct {
	Path     string
	Inherits []InheritEdge
	Reporter diag.Reporter
}

type FileSlot struct {
	FileNode
	Present bool
}

func BuildGraph(idx FileIndex, nodes []FileNode) (Graph, []FileSlot) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]FileID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]FileSlot, nodeCount)
	for i, name := range idx.IDToName {
		slots[i].Path = name
	}

	for _, node := range nodes {
		if node.Path == "" {
			continue
		}
		id, ok := idx.NameToID[node.Path]
		if !ok || slots[int(id)].Present {
			continue
		}
		slots[int(id)] = FileSlot{FileNode: node, Present: true}
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present || len(slot.Inherits) == 0 {
			continue
		}
		seen := make(map[FileID]struct{}, len(slot.Inherits))
		for _, inh := range slot.Inherits {
			toID, ok := idx.NameToID[inh.Path]
			if !ok {
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}
			g.Edges[from] = append(g.Edges[from], toID)
			if g.Present[int(toID)] {
				g.Indeg[int(toID)]++
			}
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, slots
}

// ReportCycles warns on every inherit statement of a cyclic file whose target
// is part of the same cycle set.
func ReportCycles(idx FileIndex, slots []FileSlot, topo *Topo) {
	if topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	cyclic := make(map[string]struct{}, len(topo.Cycles))
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		cyclic[idx.IDToName[int(id)]] = struct{}{}
		names = append(names, idx.IDToName[int(id)])
	}
	summary := strings.Join(names, " -> ")

	for _, id := range topo.Cycles {
		slot := slots[int(id)]
		if !slot.Present || slot.Reporter == nil {
			continue
		}
		for _, inh := range slot.Inherits {
			if _, ok := cyclic[inh.Path]; !ok {
				continue
			}
			msg := fmt.Sprintf("inheriting %s closes an inheritance cycle: %s", inh.Path, summary)
			slot.Reporter.Report(diag.SemaInheritCycle, diag.SevWarning, inh.Span, msg, nil)
		}
	}
}
