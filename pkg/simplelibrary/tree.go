package simplelibrary

import "sort"

// BuildTree reconstructs the nested hierarchy from a flat index snapshot,
// starting at rootPath (normally RootToken). Records whose parent chain
// does not reach rootPath are unreachable and simply do not appear.
//
// The snapshot is grouped by ParentPath in a single pass, so assembly is
// O(n) amortized over n records instead of re-filtering per node. Children
// are sorted folders-first then by name so the output is deterministic for
// an unchanged index. The returned nodes share no state with the records.
func BuildTree(records []*ContentRecord, rootPath string) []*TreeNode {
	byParent := make(map[string][]*ContentRecord, len(records))
	for _, rec := range records {
		byParent[rec.ParentPath] = append(byParent[rec.ParentPath], rec)
	}
	return buildChildren(byParent, rootPath)
}

func buildChildren(byParent map[string][]*ContentRecord, parentPath string) []*TreeNode {
	siblings := byParent[parentPath]
	if len(siblings) == 0 {
		return nil
	}

	sorted := make([]*ContentRecord, len(siblings))
	copy(sorted, siblings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind == KindFolder
		}
		return sorted[i].Name < sorted[j].Name
	})

	nodes := make([]*TreeNode, 0, len(sorted))
	for _, rec := range sorted {
		switch rec.Kind {
		case KindFolder:
			// Recurse under the full canonical path, which is how child
			// records store their ParentPath.
			fullPath := JoinPath(parentPath, rec.Name)
			nodes = append(nodes, &TreeNode{
				Name:     rec.Name,
				Type:     KindFolder,
				Path:     fullPath,
				Children: buildChildren(byParent, fullPath),
			})
		default:
			nodes = append(nodes, &TreeNode{
				Name:    rec.Name,
				Type:    KindFile,
				Path:    rec.Path,
				BlobRef: rec.BlobRef,
			})
		}
	}
	return nodes
}
