package rotation

import (
	"sort"

	"Rotar/internal/naming"
)

// Archives selects the archive filenames belonging to name from a directory
// listing, sorted lexically. The fixed-width counter encoding makes lexical
// order equal hierarchical order, and the bare full-backup name sorts first
// because '.' precedes '_'.
func Archives(name string, listing []string) []string {
	var out []string
	for _, f := range listing {
		if naming.IsArchive(name, f) {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// ScanFrontier reconstructs the deepest known counter value at each tree
// position from the archive filenames in listing. found is false when no
// archive for name exists at all; an empty frontier with found=true means
// only the full backup exists.
//
// The scanner trusts the directory contents: it recovers per-position maxima
// and does not validate that the values form a consistent chain.
func ScanFrontier(name string, listing []string) (frontier LevelPath, found bool) {
	archives := Archives(name, listing)
	if len(archives) == 0 {
		return nil, false
	}
	for _, f := range archives {
		for i, v := range naming.ParseArchive(name, f) {
			if len(frontier) < i+1 {
				frontier = append(frontier, v)
			} else if v > frontier[i] {
				frontier[i] = v
			}
		}
	}
	return frontier, true
}
