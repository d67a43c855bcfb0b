package dag

import (
	"sort"
)

type FileID uint32

type FileIndex struct {
	NameToID map[string]FileID
	IDToName []string
}

// BuildIndex collects every file path and resolved inherit target, sorts
// them and hands out IDs in that order.
func BuildIndex(nodes []FileNode) FileIndex {
	uniq := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if node.Path != "" {
			uniq[node.Path] = struct{}{}
		}
		for _, inh := range node.Inherits {
			if inh.Path == "" {
				continue
			}
			uniq[inh.Path] = struct{}{}
		}
	}

	paths := make([]string, 0, len(uniq))
	for path := range uniq {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	nameToID := make(map[string]FileID, len(paths))
	for i, path := range paths {
		nameToID[path] = FileID(i)
	}

	return FileIndex{
		NameToID: nameToID,
		IDToName: paths,
	}
}
