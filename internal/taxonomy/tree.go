// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import "github.com/pdiddy/curriculum-mapper/pkg/types"

// BuildTree folds the sorted deduplicated taxonomy into a nested
// mapping keyed by successive level values, stopping at the first
// absent level per record. The tree is for inspection and
// serialization only; no lookups are performed against it.
func BuildTree(records []types.ClassificationRecord) types.HierarchyNode {
	root := types.HierarchyNode{}
	for _, r := range records {
		node := root
		for _, v := range r.Levels {
			if v == "" {
				break
			}
			child, ok := node[v]
			if !ok {
				child = types.HierarchyNode{}
				node[v] = child
			}
			node = child
		}
	}
	return root
}
