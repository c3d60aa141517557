package rotation

import (
	"fmt"

	"Rotar/internal/naming"
)

// Plan is the decision for the next backup invocation.
type Plan struct {
	// CreateFull requests a fresh full backup: the chain is either empty
	// or the rotation has wrapped around completely.
	CreateFull bool
	// Target is the level path of the archive to create. Empty when
	// CreateFull is set.
	Target LevelPath
	// Stale lists archive filenames retired by this step. They belong to
	// subtrees the counter has carried past and must be deleted once the
	// new archive exists. Checkpoints of retired subtrees are not listed;
	// see Manager.PruneOrphans for reclaiming those.
	Stale []string
}

// PlanNext computes the next rotation step from a directory listing.
//
// The rotation behaves as a mixed-radix counter: below the maximum depth a
// new branch is opened with counter 1; at the maximum depth the deepest
// counter advances, and when it exceeds CountPerLevel-1 the whole subtree is
// retired and the carry propagates into the parent. A carry out of the root
// forces a new full backup.
func PlanNext(name string, listing []string, pol Policy) (Plan, error) {
	if err := pol.Validate(); err != nil {
		return Plan{}, err
	}
	frontier, found := ScanFrontier(name, listing)
	if !found {
		return Plan{CreateFull: true}, nil
	}
	if err := checkFrontier(name, frontier, pol); err != nil {
		return Plan{}, err
	}

	// Full backup exists but has no incremental child yet.
	if len(frontier) == 0 {
		return Plan{Target: LevelPath{1}}, nil
	}

	// Not yet at maximum depth: open a new branch one level down.
	if len(frontier) < pol.MaxLevels-1 {
		return Plan{Target: append(frontier.clone(), 1)}, nil
	}

	// At maximum depth: advance the deepest counter, carrying as needed.
	work := frontier.clone()
	var stale []string
	seen := make(map[string]struct{})
	for work[len(work)-1] > pol.CountPerLevel-1 {
		for _, f := range Archives(name, listing) {
			if _, dup := seen[f]; dup {
				continue
			}
			// Everything at or below the depth being retired
			// belongs to the abandoned subtree.
			if len(naming.ParseArchive(name, f)) >= len(work) {
				seen[f] = struct{}{}
				stale = append(stale, f)
			}
		}
		work = work[:len(work)-1]
		if len(work) == 0 {
			return Plan{CreateFull: true, Stale: stale}, nil
		}
	}
	work[len(work)-1]++
	return Plan{Target: work, Stale: stale}, nil
}

func checkFrontier(name string, frontier LevelPath, pol Policy) error {
	if len(frontier) > pol.MaxLevels-1 {
		return fmt.Errorf("%w: %s frontier depth %d exceeds levels %d",
			ErrChainCorrupt, name, len(frontier), pol.MaxLevels)
	}
	for i, v := range frontier {
		if v < 1 {
			return fmt.Errorf("%w: %s counter %d at depth %d (counters start at 1)",
				ErrChainCorrupt, name, v, i+1)
		}
	}
	return nil
}
